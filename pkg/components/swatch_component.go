package components

import "image/color"

// ColorSwatchComponent 颜色选择块
// 一组色块组成颜色选择器，同一时刻只有一个处于选中状态
type ColorSwatchComponent struct {
	Hex   string     // "#rrggbb"
	Color color.RGBA // 解析后的颜色
	Size  float64    // 边长（像素）

	Selected  bool
	IsHovered bool

	// OnSelect 被点击时回调，参数为 Hex
	OnSelect func(hex string)
}
