package systems

import (
	"strings"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/ecs"
	"github.com/decker502/fireworks/pkg/utils"
)

// SwatchSystem 颜色选择块交互系统
// 按下某个色块时选中它并取消其他色块的选中状态
type SwatchSystem struct {
	entityManager *ecs.EntityManager
	input         PointerSource
}

// NewSwatchSystem 创建颜色选择块交互系统
func NewSwatchSystem(em *ecs.EntityManager, input PointerSource) *SwatchSystem {
	return &SwatchSystem{
		entityManager: em,
		input:         input,
	}
}

// Update 更新色块悬停与选中状态
func (s *SwatchSystem) Update(deltaTime float64) {
	pointer := s.input.Pointer()
	px, py := float64(pointer.X), float64(pointer.Y)

	var picked *components.ColorSwatchComponent
	for _, entityID := range ecs.GetEntitiesWith2[*components.ColorSwatchComponent, *components.PositionComponent](s.entityManager) {
		swatch, _ := ecs.GetComponent[*components.ColorSwatchComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		bounds := utils.Rect{X: pos.X, Y: pos.Y, W: swatch.Size, H: swatch.Size}
		swatch.IsHovered = bounds.Contains(px, py)
		if pointer.JustPressed && swatch.IsHovered {
			picked = swatch
		}
	}

	if picked == nil {
		return
	}
	s.Select(picked.Hex)
	if picked.OnSelect != nil {
		picked.OnSelect(picked.Hex)
	}
}

// Select 选中与 hex 匹配的色块（不区分大小写），不触发回调
// 返回是否找到匹配色块；找不到时所有色块保持未选中
func (s *SwatchSystem) Select(hex string) bool {
	found := false
	for _, entityID := range ecs.GetEntitiesWith1[*components.ColorSwatchComponent](s.entityManager) {
		swatch, _ := ecs.GetComponent[*components.ColorSwatchComponent](s.entityManager, entityID)
		swatch.Selected = strings.EqualFold(swatch.Hex, hex)
		found = found || swatch.Selected
	}
	return found
}
