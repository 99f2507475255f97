package systems

import "image/color"

// Surface 烟花绘制目标
//
// 每次调用都显式携带透明度，实现方不得把透明度状态留给后续绘制。
type Surface interface {
	// FillOverlay 以给定颜色和透明度混合覆盖整个画布（不是清屏）
	FillOverlay(c color.RGBA, alpha float64)
	// FillCircle 在 (x, y) 绘制半径为 radius 的实心圆
	FillCircle(x, y, radius float64, c color.RGBA, alpha float64)
}
