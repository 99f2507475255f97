package systems

import (
	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/ecs"
	"github.com/decker502/fireworks/pkg/utils"
)

// ButtonSystem 按钮交互系统
// 负责处理按钮的指针悬停、点击等交互逻辑
//
// 职责：
//   - 检测指针悬停（更新按钮状态为 UIHovered）
//   - 在按钮内按下后于按钮内释放时触发 OnClick 回调
//   - 根据 Enabled 状态决定是否响应交互
type ButtonSystem struct {
	entityManager *ecs.EntityManager
	input         PointerSource
}

// NewButtonSystem 创建按钮交互系统
func NewButtonSystem(em *ecs.EntityManager, input PointerSource) *ButtonSystem {
	return &ButtonSystem{
		entityManager: em,
		input:         input,
	}
}

// Update 更新按钮交互状态
func (s *ButtonSystem) Update(deltaTime float64) {
	pointer := s.input.Pointer()
	px, py := float64(pointer.X), float64(pointer.Y)

	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)
	for _, entityID := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		// 禁用状态不响应交互
		if !button.Enabled {
			button.State = components.UIDisabled
			continue
		}

		bounds := utils.Rect{X: pos.X, Y: pos.Y, W: button.Width, H: button.Height}
		if !bounds.Contains(px, py) {
			button.State = components.UINormal
			continue
		}

		wasPressed := button.State == components.UIClicked
		switch {
		case pointer.JustReleased && wasPressed:
			// 释放瞬间触发回调
			button.State = components.UIHovered
			if button.OnClick != nil {
				button.OnClick()
			}
		case pointer.Pressed && (pointer.JustPressed || wasPressed):
			button.State = components.UIClicked
		default:
			button.State = components.UIHovered
		}
	}
}
