package scenes

import (
	"github.com/decker502/fireworks/pkg/utils"
)

// 控制面板布局常量（像素）
const (
	panelHeight     = 120
	panelPadding    = 20
	swatchSize      = 28
	swatchGap       = 8
	sliderWidth     = 220
	sliderHeight    = 12
	sliderGap       = 60
	buttonWidth     = 80
	buttonHeight    = 32
	buttonGap       = 16
	noticeWidth     = 420
	noticeHeight    = 150
	swatchRowOffset = 14
	sliderRowOffset = 82
)

// controlLayout 控制面板中各控件的位置
type controlLayout struct {
	Panel          utils.Rect
	Swatches       []utils.Rect
	HexLabelX      float64
	HexLabelY      float64
	SizeSlider     utils.Rect
	ParticleSlider utils.Rect
	HueSlider      utils.Rect
	SaveButton     utils.Rect
	LoadButton     utils.Rect
}

// layoutControls 计算宽 width、高 height 的屏幕上控制面板的布局
// 面板固定在屏幕底部，色块一行在上，滑块（尺寸、粒子数、色相）一行在下，按钮靠右
func layoutControls(width, height, swatches int) controlLayout {
	w, h := float64(width), float64(height)
	panelY := h - panelHeight
	l := controlLayout{
		Panel:    utils.Rect{X: 0, Y: panelY, W: w, H: panelHeight},
		Swatches: make([]utils.Rect, swatches),
	}

	x := float64(panelPadding)
	for i := range l.Swatches {
		l.Swatches[i] = utils.Rect{X: x, Y: panelY + swatchRowOffset, W: swatchSize, H: swatchSize}
		x += swatchSize + swatchGap
	}
	l.HexLabelX = x + swatchGap
	l.HexLabelY = panelY + swatchRowOffset + (swatchSize-16)/2

	sliderY := panelY + sliderRowOffset
	l.SizeSlider = utils.Rect{X: panelPadding, Y: sliderY, W: sliderWidth, H: sliderHeight}
	l.ParticleSlider = utils.Rect{X: panelPadding + sliderWidth + sliderGap, Y: sliderY, W: sliderWidth, H: sliderHeight}
	l.HueSlider = utils.Rect{X: panelPadding + 2*(sliderWidth+sliderGap), Y: sliderY, W: sliderWidth, H: sliderHeight}

	buttonY := panelY + (panelHeight-buttonHeight)/2
	l.LoadButton = utils.Rect{X: w - panelPadding - buttonWidth, Y: buttonY, W: buttonWidth, H: buttonHeight}
	l.SaveButton = utils.Rect{X: l.LoadButton.X - buttonGap - buttonWidth, Y: buttonY, W: buttonWidth, H: buttonHeight}
	return l
}
