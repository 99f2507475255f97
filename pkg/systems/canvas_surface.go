package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// CanvasSurface 基于离屏 ebiten.Image 的 Surface 实现
//
// 画布在帧与帧之间保留内容，拖尾效果依赖每帧的半透明覆盖层逐渐淡出旧像素。
// 使用前需要确保 ebiten 已经在运行（离屏图片只能在游戏循环内绘制）。
type CanvasSurface struct {
	image *ebiten.Image
}

// NewCanvasSurface 创建指定尺寸的画布，初始为黑色
func NewCanvasSurface(width, height int) *CanvasSurface {
	img := ebiten.NewImage(width, height)
	img.Fill(color.Black)
	return &CanvasSurface{image: img}
}

// Image 返回底层图片，用于绘制到屏幕
func (c *CanvasSurface) Image() *ebiten.Image {
	return c.image
}

// FillOverlay 实现 Surface 接口
func (c *CanvasSurface) FillOverlay(clr color.RGBA, alpha float64) {
	if alpha <= 0 {
		return
	}
	b := c.image.Bounds()
	vector.DrawFilledRect(c.image, 0, 0, float32(b.Dx()), float32(b.Dy()), withAlpha(clr, alpha), false)
}

// FillCircle 实现 Surface 接口
func (c *CanvasSurface) FillCircle(x, y, radius float64, clr color.RGBA, alpha float64) {
	if radius <= 0 || alpha <= 0 {
		return
	}
	vector.DrawFilledCircle(c.image, float32(x), float32(y), float32(radius), withAlpha(clr, alpha), true)
}

// withAlpha 把不透明颜色转换为指定透明度的非预乘颜色
func withAlpha(clr color.RGBA, alpha float64) color.NRGBA {
	if alpha > 1 {
		alpha = 1
	}
	return color.NRGBA{R: clr.R, G: clr.G, B: clr.B, A: uint8(alpha*255 + 0.5)}
}
