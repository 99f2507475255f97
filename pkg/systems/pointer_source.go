package systems

import "github.com/decker502/fireworks/pkg/utils"

// PointerSource 界面系统的指针输入接口
// 用于依赖注入，支持测试时 mock
type PointerSource interface {
	Pointer() utils.PointerState
}

// FramePointer 每帧读取一次 ebiten 指针状态，供所有界面系统共享
type FramePointer struct {
	state utils.PointerState
}

// Refresh 读取本帧的指针状态，应在每帧 Update 开始时调用
func (f *FramePointer) Refresh() {
	f.state = utils.ReadPointerState()
}

// Pointer 实现 PointerSource 接口
func (f *FramePointer) Pointer() utils.PointerState {
	return f.state
}
