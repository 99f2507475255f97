// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 存储当前帧的指针（鼠标或触摸）状态
type PointerState struct {
	// X, Y 指针位置（屏幕坐标）
	X, Y int
	// Pressed 指针是否处于按下状态
	Pressed bool
	// JustPressed 本帧刚按下
	JustPressed bool
	// JustReleased 本帧刚释放
	JustReleased bool
}

// 保存最后一次触摸位置（触摸释放时 ebiten 不再提供位置）
var lastTouchX, lastTouchY int

// ReadPointerState 读取本帧的指针状态，优先检测触摸
// 每帧只应调用一次，结果分发给各个界面系统
func ReadPointerState() PointerState {
	state := PointerState{}

	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		lastTouchX, lastTouchY = state.X, state.Y
		state.Pressed = true
		state.JustPressed = len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
		return state
	}

	if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		state.X, state.Y = lastTouchX, lastTouchY
		state.JustReleased = true
		return state
	}

	state.X, state.Y = ebiten.CursorPosition()
	state.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	state.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	state.JustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	return state
}

// Rect 轴对齐矩形（左上角 + 尺寸）
type Rect struct {
	X, Y, W, H float64
}

// Contains 检查点是否在矩形内（含边界）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}
