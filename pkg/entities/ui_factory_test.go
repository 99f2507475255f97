package entities

import (
	"errors"
	"image/color"
	"testing"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/ecs"
	"github.com/decker502/fireworks/pkg/types"
	"github.com/decker502/fireworks/pkg/utils"
)

func TestNewColorSwatchEntity(t *testing.T) {
	em := ecs.NewEntityManager()

	id, err := NewColorSwatchEntity(em, utils.Rect{X: 10, Y: 20, W: 28, H: 28}, "#00ff00", nil)
	if err != nil {
		t.Fatalf("NewColorSwatchEntity() error: %v", err)
	}

	swatch, ok := ecs.GetComponent[*components.ColorSwatchComponent](em, id)
	if !ok {
		t.Fatal("entity should have a ColorSwatchComponent")
	}
	if swatch.Color != (color.RGBA{G: 255, A: 255}) || swatch.Size != 28 {
		t.Errorf("swatch = %+v", swatch)
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok || pos.X != 10 || pos.Y != 20 {
		t.Errorf("position = %+v", pos)
	}

	// 无效颜色不创建实体
	before := len(em.GetEntitiesWith())
	if _, err := NewColorSwatchEntity(em, utils.Rect{W: 28}, "green", nil); !errors.Is(err, types.ErrInvalidColor) {
		t.Errorf("error = %v, want ErrInvalidColor", err)
	}
	if len(em.GetEntitiesWith()) != before {
		t.Error("invalid swatch must not create an entity")
	}
}

func TestNewSliderEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	id, slider := NewSliderEntity(em, utils.Rect{X: 5, Y: 6, W: 200, H: 12}, "Size", 10, 100, nil)

	got, ok := ecs.GetComponent[*components.SliderComponent](em, id)
	if !ok || got != slider {
		t.Fatal("returned slider should be the entity's component")
	}
	if slider.SlotWidth != 200 || slider.SlotHeight != 12 || slider.Min != 10 || slider.Max != 100 || slider.Step != 1 {
		t.Errorf("slider = %+v", slider)
	}
}

func TestNewButtonEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	clicked := false
	id := NewButtonEntity(em, utils.Rect{X: 1, Y: 2, W: 80, H: 32}, "Save", func() { clicked = true })

	button, ok := ecs.GetComponent[*components.ButtonComponent](em, id)
	if !ok {
		t.Fatal("entity should have a ButtonComponent")
	}
	if !button.Enabled || button.State != components.UINormal || button.Text != "Save" {
		t.Errorf("button = %+v", button)
	}
	button.OnClick()
	if !clicked {
		t.Error("OnClick should be wired to the callback")
	}
}
