package systems

import (
	"math"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/ecs"
	"github.com/decker502/fireworks/pkg/utils"
)

// SliderSystem 滑块交互系统
// 负责处理滑块的指针拖拽交互
//
// 职责：
//   - 检测指针是否在滑槽区域内
//   - 在滑槽内按下时开始拖拽，释放时结束
//   - 计算指针位置并转换为 0.0~1.0 的 Value（按 Step 取整）
//   - 更新 SliderComponent.Value 并以映射后的数值调用 OnValueChange
type SliderSystem struct {
	entityManager *ecs.EntityManager
	input         PointerSource
}

// NewSliderSystem 创建滑块交互系统
func NewSliderSystem(em *ecs.EntityManager, input PointerSource) *SliderSystem {
	return &SliderSystem{
		entityManager: em,
		input:         input,
	}
}

// Update 更新滑块交互状态
func (s *SliderSystem) Update(deltaTime float64) {
	pointer := s.input.Pointer()
	px, py := float64(pointer.X), float64(pointer.Y)

	entities := ecs.GetEntitiesWith2[*components.SliderComponent, *components.PositionComponent](s.entityManager)
	for _, entityID := range entities {
		slider, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
		if slider == nil || pos == nil {
			continue
		}

		slot := utils.Rect{X: pos.X, Y: pos.Y, W: slider.SlotWidth, H: slider.SlotHeight}
		slider.IsHovered = slot.Contains(px, py)

		if pointer.JustPressed && slider.IsHovered {
			slider.IsDragging = true
		}
		if !pointer.Pressed {
			slider.IsDragging = false
			continue
		}
		if !slider.IsDragging {
			continue
		}

		newValue := quantizeSliderValue(slider, s.calculateValue(px, slot.X, slot.W))
		if newValue != slider.Value {
			slider.Value = newValue
			if slider.OnValueChange != nil {
				slider.OnValueChange(SliderScaledValue(slider))
			}
		}
	}
}

// IsDragging 是否有滑块正在被拖动
func (s *SliderSystem) IsDragging() bool {
	for _, entityID := range ecs.GetEntitiesWith1[*components.SliderComponent](s.entityManager) {
		if slider, ok := ecs.GetComponent[*components.SliderComponent](s.entityManager, entityID); ok && slider.IsDragging {
			return true
		}
	}
	return false
}

// calculateValue 根据指针X坐标计算滑块值，限制在 0.0 ~ 1.0
func (s *SliderSystem) calculateValue(mouseX, slotX, slotWidth float64) float64 {
	if slotWidth <= 0 {
		return 0.0
	}
	return clamp01((mouseX - slotX) / slotWidth)
}

// SliderScaledValue 返回滑块映射到 [Min, Max] 后的数值
func SliderScaledValue(slider *components.SliderComponent) float64 {
	return slider.Min + slider.Value*(slider.Max-slider.Min)
}

// SetSliderScaledValue 按映射后的数值设置滑块（超出区间时取边界），不触发回调
func SetSliderScaledValue(slider *components.SliderComponent, value float64) {
	span := slider.Max - slider.Min
	if span <= 0 {
		slider.Value = 0
		return
	}
	slider.Value = quantizeSliderValue(slider, clamp01((value-slider.Min)/span))
}

// quantizeSliderValue 按 Step 把归一化的值对齐到步长
func quantizeSliderValue(slider *components.SliderComponent, value float64) float64 {
	span := slider.Max - slider.Min
	if slider.Step <= 0 || span <= 0 {
		return value
	}
	steps := math.Round(value * span / slider.Step)
	return clamp01(steps * slider.Step / span)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
