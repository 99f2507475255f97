package components

// NoticeLevel 提示级别
type NoticeLevel int

const (
	// NoticeInfo 普通提示（保存成功、加载数量）
	NoticeInfo NoticeLevel = iota
	// NoticeError 错误提示（连接失败、服务器拒绝）
	NoticeError
)

// NoticeComponent 模态提示框组件
// 可见时拦截所有指针输入，点击任意位置关闭
type NoticeComponent struct {
	Title   string
	Message string
	Level   NoticeLevel

	Width  float64
	Height float64

	IsVisible bool
}
