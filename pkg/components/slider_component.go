package components

// SliderComponent 滑动条组件
// 用于尺寸、粒子数量等需要在区间内调整数值的控件
type SliderComponent struct {
	// 滑槽尺寸
	SlotWidth  float64
	SlotHeight float64

	// 当前值（0.0 - 1.0），映射到 [Min, Max]
	Value float64

	// 数值区间与步长（Step 为 0 表示连续值）
	Min  float64
	Max  float64
	Step float64

	// 标签文字
	Label string

	// 状态
	IsDragging bool // 是否正在拖动
	IsHovered  bool // 是否鼠标悬停

	// 回调函数，参数为映射后的数值
	OnValueChange func(value float64)
}
