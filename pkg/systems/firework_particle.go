package systems

import "github.com/decker502/fireworks/pkg/components"

// UpdateParticle 推进一帧：位置加速度，尺寸按 decay 衰减，寿命减一
func UpdateParticle(p *components.ParticleComponent, decay float64) {
	p.X += p.VelocityX
	p.Y += p.VelocityY
	p.Size *= decay
	p.Lifetime--
}

// ParticleOpacity 返回粒子当前透明度：剩余寿命 / 初始寿命，限制在 [0, 1]
func ParticleOpacity(p *components.ParticleComponent) float64 {
	if p.InitialLifetime <= 0 {
		return 0
	}
	alpha := float64(p.Lifetime) / float64(p.InitialLifetime)
	switch {
	case alpha < 0:
		return 0
	case alpha > 1:
		return 1
	}
	return alpha
}

// DrawParticle 以粒子颜色和当前透明度绘制实心圆
func DrawParticle(surface Surface, p *components.ParticleComponent) {
	surface.FillCircle(p.X, p.Y, p.Size, p.Color, ParticleOpacity(p))
}
