package components

import "image/color"

// ParticleComponent represents a single firework particle.
//
// It is a pure data component: FireworkSystem owns the update, draw and
// eviction rules. A particle belongs to exactly one ExplosionComponent.
type ParticleComponent struct {
	// Position (屏幕坐标)
	X float64
	Y float64

	// Velocity (像素/帧)，生成时随机确定，之后不再改变
	VelocityX float64
	VelocityY float64

	// Size is the circle radius in pixels; shrinks by a fixed factor every frame.
	Size float64

	// Color 粒子颜色，从预设的十六进制颜色解析而来
	Color color.RGBA

	// Lifecycle (帧)
	Lifetime        int // Remaining frames; the particle is evicted once this reaches 0
	InitialLifetime int // Lifetime at spawn, used for the opacity fade
}
