package systems

import (
	"image/color"
	"log"
	"math/rand"
	"slices"
	"time"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/types"
)

// FireworkSystem owns the live explosion registry and drives the per-frame
// simulation pass.
//
// Each frame (Step):
//  1. blend a translucent black overlay over the whole surface (trail effect)
//  2. for every explosion, for every particle: update, then draw
//  3. drop particles whose lifetime reached zero
//  4. drop explosions left without particles
//
// Explosions are kept in an ordered slice rather than in the EntityManager
// because spawn order is also draw order. All methods must be called from the
// game update goroutine; the system holds no locks.
type FireworkSystem struct {
	cfg        config.SimulationConfig
	rng        *rand.Rand
	explosions []*components.ExplosionComponent

	particleCount int // 所有爆炸中存活粒子总数
	frame         uint64
}

// trailColor 拖尾覆盖层颜色
var trailColor = color.RGBA{A: 255}

// NewFireworkSystem creates a FireworkSystem seeded from the wall clock.
func NewFireworkSystem(cfg config.SimulationConfig) *FireworkSystem {
	return NewFireworkSystemWithRand(cfg, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewFireworkSystemWithRand creates a FireworkSystem with an explicit random
// source (用于测试，保证结果可复现).
func NewFireworkSystemWithRand(cfg config.SimulationConfig, rng *rand.Rand) *FireworkSystem {
	return &FireworkSystem{
		cfg:        cfg,
		rng:        rng,
		explosions: make([]*components.ExplosionComponent, 0, 16),
	}
}

// SpawnExplosion creates rocket.ParticleCount particles at (x, y) and appends
// them as one explosion to the end of the registry.
//
// Particle size is rocket.Size / SizeDivisor. The particle count is clamped to
// MaxParticlesPerExplosion and MaxParticles; when MaxExplosions or
// MaxParticles would be exceeded, the oldest explosions are evicted first.
// Returns nil when nothing was spawned (non-positive particle count).
func (s *FireworkSystem) SpawnExplosion(x, y float64, rocket types.Rocket) *components.ExplosionComponent {
	count := rocket.ParticleCount
	if limit := s.cfg.MaxParticlesPerExplosion; limit > 0 && count > limit {
		log.Printf("[FireworkSystem] particle count %d clamped to %d", count, limit)
		count = limit
	}
	if limit := s.cfg.MaxParticles; limit > 0 && count > limit {
		count = limit
	}
	if count <= 0 {
		return nil
	}

	s.makeRoom(count)

	clr := rocket.RGBA()
	size := rocket.Size / s.cfg.SizeDivisor
	explosion := &components.ExplosionComponent{
		X:         x,
		Y:         y,
		Particles: make([]*components.ParticleComponent, count),
	}
	for i := range explosion.Particles {
		explosion.Particles[i] = &components.ParticleComponent{
			X:               x,
			Y:               y,
			VelocityX:       s.randomVelocity(),
			VelocityY:       s.randomVelocity(),
			Size:            size,
			Color:           clr,
			Lifetime:        s.cfg.ParticleLifetime,
			InitialLifetime: s.cfg.ParticleLifetime,
		}
	}

	s.explosions = append(s.explosions, explosion)
	s.particleCount += count
	return explosion
}

// makeRoom 按先进先出顺序淘汰最旧的爆炸，直到可以容纳 incoming 个新粒子
func (s *FireworkSystem) makeRoom(incoming int) {
	evicted := 0
	for len(s.explosions) > 0 {
		overExplosions := s.cfg.MaxExplosions > 0 && len(s.explosions) >= s.cfg.MaxExplosions
		overParticles := s.cfg.MaxParticles > 0 && s.particleCount+incoming > s.cfg.MaxParticles
		if !overExplosions && !overParticles {
			break
		}
		s.particleCount -= len(s.explosions[0].Particles)
		s.explosions = slices.Delete(s.explosions, 0, 1)
		evicted++
	}
	if evicted > 0 {
		log.Printf("[FireworkSystem] evicted %d oldest explosion(s) to stay within limits", evicted)
	}
}

// randomVelocity 单轴速度，均匀分布于 [-spread/2, spread/2)
func (s *FireworkSystem) randomVelocity() float64 {
	return (s.rng.Float64() - 0.5) * s.cfg.SpeedSpread
}

// Step runs one frame of the simulation against surface.
// A nil surface updates and evicts without drawing.
func (s *FireworkSystem) Step(surface Surface) {
	if surface != nil {
		surface.FillOverlay(trailColor, s.cfg.TrailAlpha)
	}

	// 原地过滤：写指针永远不超过读指针，删除元素时不会跳过后继元素
	liveExplosions := s.explosions[:0]
	for _, explosion := range s.explosions {
		alive := explosion.Particles[:0]
		for _, p := range explosion.Particles {
			UpdateParticle(p, s.cfg.SizeDecay)
			if surface != nil {
				DrawParticle(surface, p)
			}
			if p.Lifetime > 0 {
				alive = append(alive, p)
			} else {
				s.particleCount--
			}
		}
		clear(explosion.Particles[len(alive):])
		explosion.Particles = alive

		if len(alive) > 0 {
			liveExplosions = append(liveExplosions, explosion)
		}
	}
	clear(s.explosions[len(liveExplosions):])
	s.explosions = liveExplosions
	s.frame++
}

// Explosions returns the live registry in spawn order. Callers must not
// modify the returned slice.
func (s *FireworkSystem) Explosions() []*components.ExplosionComponent {
	return s.explosions
}

// ExplosionCount 返回存活爆炸数量
func (s *FireworkSystem) ExplosionCount() int {
	return len(s.explosions)
}

// ParticleCount 返回所有爆炸中存活的粒子总数
func (s *FireworkSystem) ParticleCount() int {
	return s.particleCount
}

// Frame 返回已执行的帧数
func (s *FireworkSystem) Frame() uint64 {
	return s.frame
}

// Reset 清空注册表，用于场景退出
func (s *FireworkSystem) Reset() {
	clear(s.explosions)
	s.explosions = s.explosions[:0]
	s.particleCount = 0
}
