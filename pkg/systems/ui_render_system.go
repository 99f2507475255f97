package systems

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/ecs"
	"github.com/decker502/fireworks/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 调试字体的字符尺寸（ebitenutil.DebugPrint）
const (
	debugGlyphWidth  = 6
	debugGlyphHeight = 16
)

var (
	sliderSlotColor   = color.RGBA{R: 60, G: 60, B: 70, A: 255}
	sliderFillColor   = color.RGBA{R: 120, G: 140, B: 220, A: 255}
	sliderKnobColor   = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	buttonNormalColor = color.RGBA{R: 70, G: 80, B: 110, A: 255}
	buttonHoverColor  = color.RGBA{R: 95, G: 110, B: 150, A: 255}
	buttonPressColor  = color.RGBA{R: 50, G: 60, B: 90, A: 255}
	buttonOffColor    = color.RGBA{R: 50, G: 50, B: 50, A: 255}
	noticeInfoColor   = color.RGBA{R: 30, G: 40, B: 70, A: 240}
	noticeErrorColor  = color.RGBA{R: 90, G: 25, B: 25, A: 240}
	outlineColor      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// UIRenderSystem 界面渲染系统
// 负责渲染滑块、按钮、色块和模态提示（全部使用矢量图形与调试字体）
type UIRenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewUIRenderSystem 创建界面渲染系统
func NewUIRenderSystem(em *ecs.EntityManager) *UIRenderSystem {
	return &UIRenderSystem{
		entityManager: em,
	}
}

// Draw 渲染所有控件，提示框最后绘制以覆盖其他内容
func (s *UIRenderSystem) Draw(screen *ebiten.Image) {
	s.drawSliders(screen)
	s.drawSwatches(screen)
	s.drawButtons(screen)
	s.drawNotices(screen)
}

func (s *UIRenderSystem) drawSliders(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.SliderComponent, *components.PositionComponent](s.entityManager) {
		slider, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		x, y := float32(pos.X), float32(pos.Y)
		w, h := float32(slider.SlotWidth), float32(slider.SlotHeight)
		vector.DrawFilledRect(screen, x, y, w, h, sliderSlotColor, false)
		vector.DrawFilledRect(screen, x, y, w*float32(slider.Value), h, sliderFillColor, false)

		knobX := x + w*float32(slider.Value)
		knobR := h * 0.8
		if slider.IsHovered || slider.IsDragging {
			knobR = h
		}
		vector.DrawFilledCircle(screen, knobX, y+h/2, knobR, sliderKnobColor, true)

		label := fmt.Sprintf("%s: %d", slider.Label, int(math.Round(SliderScaledValue(slider))))
		ebitenutil.DebugPrintAt(screen, label, int(pos.X), int(pos.Y)-debugGlyphHeight-2)
	}
}

func (s *UIRenderSystem) drawSwatches(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.ColorSwatchComponent, *components.PositionComponent](s.entityManager) {
		swatch, _ := ecs.GetComponent[*components.ColorSwatchComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		x, y, size := float32(pos.X), float32(pos.Y), float32(swatch.Size)
		vector.DrawFilledRect(screen, x, y, size, size, swatch.Color, false)
		switch {
		case swatch.Selected:
			vector.StrokeRect(screen, x-2, y-2, size+4, size+4, 2, outlineColor, false)
		case swatch.IsHovered:
			vector.StrokeRect(screen, x-1, y-1, size+2, size+2, 1, outlineColor, false)
		}
	}
}

func (s *UIRenderSystem) drawButtons(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager) {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		bg := buttonNormalColor
		switch button.State {
		case components.UIHovered:
			bg = buttonHoverColor
		case components.UIClicked:
			bg = buttonPressColor
		case components.UIDisabled:
			bg = buttonOffColor
		}
		vector.DrawFilledRect(screen, float32(pos.X), float32(pos.Y), float32(button.Width), float32(button.Height), bg, false)

		// 文字居中
		textW := len(button.Text) * debugGlyphWidth
		tx := int(pos.X + (button.Width-float64(textW))/2)
		ty := int(pos.Y + (button.Height-debugGlyphHeight)/2)
		ebitenutil.DebugPrintAt(screen, button.Text, tx, ty)
	}
}

func (s *UIRenderSystem) drawNotices(screen *ebiten.Image) {
	bounds := screen.Bounds()
	for _, id := range ecs.GetEntitiesWith1[*components.NoticeComponent](s.entityManager) {
		notice, _ := ecs.GetComponent[*components.NoticeComponent](s.entityManager, id)
		if !notice.IsVisible {
			continue
		}

		// 半透明遮罩表示其他控件暂不可用
		vector.DrawFilledRect(screen, 0, 0, float32(bounds.Dx()), float32(bounds.Dy()), color.RGBA{A: 120}, false)

		x := (float64(bounds.Dx()) - notice.Width) / 2
		y := (float64(bounds.Dy()) - notice.Height) / 2
		bg := noticeInfoColor
		if notice.Level == components.NoticeError {
			bg = noticeErrorColor
		}
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(notice.Width), float32(notice.Height), bg, false)
		vector.StrokeRect(screen, float32(x), float32(y), float32(notice.Width), float32(notice.Height), 1, outlineColor, false)

		lines := append([]string{notice.Title, ""}, utils.WrapText(notice.Message, int(notice.Width)/debugGlyphWidth-4)...)
		lines = append(lines, "", "(click to close)")
		for i, line := range lines {
			ebitenutil.DebugPrintAt(screen, line, int(x)+12, int(y)+10+i*debugGlyphHeight)
		}
	}
}
