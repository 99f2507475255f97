package entities

import (
	"fmt"
	"log"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/ecs"
	"github.com/decker502/fireworks/pkg/types"
	"github.com/decker502/fireworks/pkg/utils"
)

// NewColorSwatchEntity 创建颜色选择块实体
//
// 参数：
//   - em: 实体管理器
//   - rect: 色块区域（使用 rect.W 作为边长）
//   - hex: "#rrggbb" 颜色
//   - onSelect: 被点击时的回调
//
// 返回：
//   - ecs.EntityID: 色块实体ID
//   - error: 颜色无法解析时返回错误，此时不创建实体
func NewColorSwatchEntity(em *ecs.EntityManager, rect utils.Rect, hex string, onSelect func(string)) (ecs.EntityID, error) {
	clr, err := types.ParseColor(hex)
	if err != nil {
		return 0, fmt.Errorf("swatch %q: %w", hex, err)
	}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.PositionComponent{X: rect.X, Y: rect.Y})
	em.AddComponent(entityID, &components.ColorSwatchComponent{
		Hex:      hex,
		Color:    clr,
		Size:     rect.W,
		OnSelect: onSelect,
	})
	return entityID, nil
}

// NewSliderEntity 创建滑块实体，数值按整数步长映射到 [minValue, maxValue]
//
// 返回滑块组件指针，调用方可直接用 systems.SetSliderScaledValue 设置初值
func NewSliderEntity(em *ecs.EntityManager, rect utils.Rect, label string, minValue, maxValue float64, onChange func(float64)) (ecs.EntityID, *components.SliderComponent) {
	slider := &components.SliderComponent{
		SlotWidth:     rect.W,
		SlotHeight:    rect.H,
		Min:           minValue,
		Max:           maxValue,
		Step:          1,
		Label:         label,
		OnValueChange: onChange,
	}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.PositionComponent{X: rect.X, Y: rect.Y})
	em.AddComponent(entityID, slider)
	log.Printf("[UI Factory] Slider %q at (%.0f, %.0f), range [%.0f, %.0f]", label, rect.X, rect.Y, minValue, maxValue)
	return entityID, slider
}

// NewButtonEntity 创建按钮实体（矢量绘制，无需图片资源）
func NewButtonEntity(em *ecs.EntityManager, rect utils.Rect, text string, onClick func()) ecs.EntityID {
	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.PositionComponent{X: rect.X, Y: rect.Y})
	em.AddComponent(entityID, &components.ButtonComponent{
		Text:    text,
		Width:   rect.W,
		Height:  rect.H,
		State:   components.UINormal,
		Enabled: true,
		OnClick: onClick,
	})
	return entityID
}
