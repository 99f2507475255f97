package components

// PositionComponent 界面元素左上角的屏幕坐标
type PositionComponent struct {
	X float64
	Y float64
}
