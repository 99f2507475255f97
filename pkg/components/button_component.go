package components

// ButtonComponent 按钮组件（ECS 架构）
// 包含按钮的所有数据：文字、尺寸、状态、回调
//
// 设计原则：
//   - 纯数据组件，不包含任何方法
//   - 背景和文字由 UIRenderSystem 使用矢量图形绘制，不依赖图片资源
type ButtonComponent struct {
	// Text 按钮上显示的文字
	Text string

	// Width, Height 按钮尺寸（像素）
	Width  float64
	Height float64

	// State 当前交互状态（Normal/Hover/Clicked/Disabled）
	State UIState
	// Enabled 是否启用（禁用时不响应点击）
	Enabled bool

	// OnClick 点击回调函数（指针在按钮内释放时触发）
	OnClick func()
}
