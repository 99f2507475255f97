package systems

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/types"
)

// recordingSurface 记录绘制调用的测试 Surface
type recordingSurface struct {
	overlays []float64
	circles  []circleCall
}

type circleCall struct {
	x, y, radius float64
	color        color.RGBA
	alpha        float64
}

func (r *recordingSurface) FillOverlay(c color.RGBA, alpha float64) {
	r.overlays = append(r.overlays, alpha)
}

func (r *recordingSurface) FillCircle(x, y, radius float64, c color.RGBA, alpha float64) {
	r.circles = append(r.circles, circleCall{x: x, y: y, radius: radius, color: c, alpha: alpha})
}

func testSimulationConfig() config.SimulationConfig {
	return config.DefaultFireworksConfig().Simulation
}

func newTestFireworkSystem(cfg config.SimulationConfig) *FireworkSystem {
	return NewFireworkSystemWithRand(cfg, rand.New(rand.NewSource(42)))
}

var redRocket = types.Rocket{Color: "#ff0000", Size: 50, ParticleCount: 30}

func TestFireworkSystem_SpawnExplosion(t *testing.T) {
	fs := newTestFireworkSystem(testSimulationConfig())

	explosion := fs.SpawnExplosion(120, 80, redRocket)
	if explosion == nil {
		t.Fatal("SpawnExplosion returned nil")
	}
	if len(explosion.Particles) != 30 {
		t.Fatalf("expected 30 particles, got %d", len(explosion.Particles))
	}

	red := color.RGBA{R: 255, A: 255}
	for i, p := range explosion.Particles {
		if p.X != 120 || p.Y != 80 {
			t.Errorf("particle %d at (%v, %v), want (120, 80)", i, p.X, p.Y)
		}
		if p.Color != red {
			t.Errorf("particle %d color %v, want %v", i, p.Color, red)
		}
		if p.Size != 10 {
			t.Errorf("particle %d size %v, want 10", i, p.Size)
		}
		if p.Lifetime != 100 || p.InitialLifetime != 100 {
			t.Errorf("particle %d lifetime %d/%d, want 100/100", i, p.Lifetime, p.InitialLifetime)
		}
	}

	if fs.ExplosionCount() != 1 || fs.ParticleCount() != 30 {
		t.Errorf("registry: %d explosions / %d particles, want 1 / 30", fs.ExplosionCount(), fs.ParticleCount())
	}
}

func TestFireworkSystem_SpawnNonPositiveCount(t *testing.T) {
	fs := newTestFireworkSystem(testSimulationConfig())

	if ex := fs.SpawnExplosion(0, 0, types.Rocket{Color: "#fff", Size: 10, ParticleCount: 0}); ex != nil {
		t.Error("zero particle count should spawn nothing")
	}
	if ex := fs.SpawnExplosion(0, 0, types.Rocket{Color: "#fff", Size: 10, ParticleCount: -5}); ex != nil {
		t.Error("negative particle count should spawn nothing")
	}
	if fs.ExplosionCount() != 0 {
		t.Errorf("registry should stay empty, got %d", fs.ExplosionCount())
	}
}

// TestUpdateParticle_Decay 验证 N 次更新后的寿命和尺寸
func TestUpdateParticle_Decay(t *testing.T) {
	for _, n := range []int{1, 10, 50, 99} {
		p := &components.ParticleComponent{Size: 10, Lifetime: 100, InitialLifetime: 100, VelocityX: 1.5, VelocityY: -2}
		for i := 0; i < n; i++ {
			UpdateParticle(p, 0.98)
		}
		if p.Lifetime != 100-n {
			t.Errorf("after %d updates lifetime = %d, want %d", n, p.Lifetime, 100-n)
		}
		want := 10 * math.Pow(0.98, float64(n))
		if math.Abs(p.Size-want) > 1e-9 {
			t.Errorf("after %d updates size = %v, want %v", n, p.Size, want)
		}
		if math.Abs(p.X-1.5*float64(n)) > 1e-9 || math.Abs(p.Y+2*float64(n)) > 1e-9 {
			t.Errorf("after %d updates position = (%v, %v)", n, p.X, p.Y)
		}
	}
}

func TestParticleOpacity(t *testing.T) {
	p := &components.ParticleComponent{Size: 10, Lifetime: 100, InitialLifetime: 100}
	if got := ParticleOpacity(p); got != 1.0 {
		t.Errorf("opacity at creation = %v, want 1.0", got)
	}
	for i := 0; i < 50; i++ {
		UpdateParticle(p, 0.98)
	}
	if got := ParticleOpacity(p); got != 0.5 {
		t.Errorf("opacity after 50 updates = %v, want 0.5", got)
	}

	p.Lifetime = -3
	if got := ParticleOpacity(p); got != 0 {
		t.Errorf("opacity below zero lifetime = %v, want 0", got)
	}
	if got := ParticleOpacity(&components.ParticleComponent{}); got != 0 {
		t.Errorf("opacity with zero initial lifetime = %v, want 0", got)
	}
}

func TestFireworkSystem_VelocityBounds(t *testing.T) {
	fs := newTestFireworkSystem(testSimulationConfig())
	for i := 0; i < 10000; i++ {
		v := fs.randomVelocity()
		if v < -4 || v > 4 {
			t.Fatalf("sample %d out of bounds: %v", i, v)
		}
	}

	explosion := fs.SpawnExplosion(0, 0, types.Rocket{Color: "#00ff00", Size: 5, ParticleCount: 2000})
	for _, p := range explosion.Particles {
		if math.Abs(p.VelocityX) > 4 || math.Abs(p.VelocityY) > 4 {
			t.Fatalf("particle velocity out of bounds: (%v, %v)", p.VelocityX, p.VelocityY)
		}
	}
}

func TestFireworkSystem_StepDrawsEveryParticle(t *testing.T) {
	fs := newTestFireworkSystem(testSimulationConfig())
	fs.SpawnExplosion(10, 10, redRocket)
	fs.SpawnExplosion(20, 20, types.Rocket{Color: "#0000ff", Size: 25, ParticleCount: 5})

	surface := &recordingSurface{}
	fs.Step(surface)

	if len(surface.overlays) != 1 || surface.overlays[0] != 0.2 {
		t.Errorf("overlay calls = %v, want one call with alpha 0.2", surface.overlays)
	}
	if len(surface.circles) != 35 {
		t.Fatalf("expected 35 circles, got %d", len(surface.circles))
	}
	// 绘制顺序与生成顺序一致
	if surface.circles[0].color != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("first circle should belong to the first explosion, got %v", surface.circles[0].color)
	}
	if surface.circles[34].color != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("last circle should belong to the second explosion, got %v", surface.circles[34].color)
	}
	// 绘制发生在更新之后
	wantAlpha := 0.99
	if math.Abs(surface.circles[0].alpha-wantAlpha) > 1e-9 {
		t.Errorf("first frame alpha = %v, want %v", surface.circles[0].alpha, wantAlpha)
	}
	if math.Abs(surface.circles[0].radius-10*0.98) > 1e-9 {
		t.Errorf("first frame radius = %v, want %v", surface.circles[0].radius, 10*0.98)
	}
}

func TestFireworkSystem_EvictsExpiredParticles(t *testing.T) {
	fs := newTestFireworkSystem(testSimulationConfig())
	fs.SpawnExplosion(0, 0, redRocket)

	for i := 0; i < 99; i++ {
		fs.Step(nil)
	}
	if fs.ExplosionCount() != 1 || fs.ParticleCount() != 30 {
		t.Fatalf("after 99 frames: %d explosions / %d particles, want 1 / 30", fs.ExplosionCount(), fs.ParticleCount())
	}

	// 第 100 帧：粒子最后一次绘制（透明度 0）后被移除
	surface := &recordingSurface{}
	fs.Step(surface)
	if len(surface.circles) != 30 {
		t.Errorf("final frame should still draw 30 particles, got %d", len(surface.circles))
	}
	for _, c := range surface.circles {
		if c.alpha != 0 {
			t.Fatalf("final frame alpha = %v, want 0", c.alpha)
		}
	}
	if fs.ExplosionCount() != 0 || fs.ParticleCount() != 0 {
		t.Errorf("after 100 frames: %d explosions / %d particles, want 0 / 0", fs.ExplosionCount(), fs.ParticleCount())
	}

	// 移除后不再被访问
	surface = &recordingSurface{}
	fs.Step(surface)
	if len(surface.circles) != 0 {
		t.Errorf("evicted particles were drawn again: %d circles", len(surface.circles))
	}
}

// TestFireworkSystem_NoSkipOnRemoval 相邻的过期粒子和爆炸都必须被移除，不能因为删除而跳过后继元素
func TestFireworkSystem_NoSkipOnRemoval(t *testing.T) {
	fs := newTestFireworkSystem(testSimulationConfig())
	a := fs.SpawnExplosion(0, 0, types.Rocket{Color: "#ff0000", Size: 10, ParticleCount: 4})
	b := fs.SpawnExplosion(0, 0, types.Rocket{Color: "#00ff00", Size: 10, ParticleCount: 1})
	c := fs.SpawnExplosion(0, 0, types.Rocket{Color: "#0000ff", Size: 10, ParticleCount: 1})
	d := fs.SpawnExplosion(0, 0, types.Rocket{Color: "#ffffff", Size: 10, ParticleCount: 2})

	lifetimes := []int{1, 1, 5, 1}
	for i, p := range a.Particles {
		p.Lifetime = lifetimes[i]
	}
	b.Particles[0].Lifetime = 1
	c.Particles[0].Lifetime = 1
	survivor := a.Particles[2]

	fs.Step(nil)

	if len(a.Particles) != 1 || a.Particles[0] != survivor {
		t.Errorf("explosion a should keep only the long-lived particle, got %d particles", len(a.Particles))
	}
	got := fs.Explosions()
	if len(got) != 2 || got[0] != a || got[1] != d {
		t.Errorf("registry should be [a, d] after adjacent empty explosions are removed, got %d entries", len(got))
	}
	if fs.ParticleCount() != 3 {
		t.Errorf("ParticleCount() = %d, want 3", fs.ParticleCount())
	}
}

func TestFireworkSystem_ExplosionRemovedOnlyWhenEmpty(t *testing.T) {
	fs := newTestFireworkSystem(testSimulationConfig())
	first := fs.SpawnExplosion(0, 0, redRocket)
	for i := 0; i < 40; i++ {
		fs.Step(nil)
	}
	second := fs.SpawnExplosion(50, 50, redRocket)

	for i := 0; i < 60; i++ {
		fs.Step(nil)
	}
	got := fs.Explosions()
	if len(got) != 1 || got[0] != second {
		t.Fatalf("only the second explosion should remain, got %d entries", len(got))
	}
	if len(first.Particles) != 0 {
		t.Errorf("first explosion should be empty, has %d particles", len(first.Particles))
	}

	for i := 0; i < 40; i++ {
		fs.Step(nil)
	}
	if fs.ExplosionCount() != 0 {
		t.Errorf("registry should be empty, got %d", fs.ExplosionCount())
	}
	if fs.Frame() != 140 {
		t.Errorf("Frame() = %d, want 140", fs.Frame())
	}
}

func TestFireworkSystem_Limits(t *testing.T) {
	tests := []struct {
		name           string
		maxExplosions  int
		maxParticles   int
		maxPerBurst    int
		spawnCounts    []int
		wantCounts     []int
		wantTotalAlive int
	}{
		{"explosion cap evicts oldest", 2, 0, 0, []int{10, 20, 30}, []int{20, 30}, 50},
		{"particle cap evicts oldest", 0, 50, 0, []int{10, 20, 30}, []int{20, 30}, 50},
		{"per explosion clamp", 0, 0, 25, []int{10, 100}, []int{10, 25}, 35},
		{"particle cap clamps single burst", 0, 40, 0, []int{10, 100}, []int{40}, 40},
		{"unlimited", 0, 0, 0, []int{1000, 2000}, []int{1000, 2000}, 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testSimulationConfig()
			cfg.MaxExplosions = tt.maxExplosions
			cfg.MaxParticles = tt.maxParticles
			cfg.MaxParticlesPerExplosion = tt.maxPerBurst
			fs := newTestFireworkSystem(cfg)

			for _, n := range tt.spawnCounts {
				fs.SpawnExplosion(0, 0, types.Rocket{Color: "#ffffff", Size: 10, ParticleCount: n})
			}

			got := fs.Explosions()
			if len(got) != len(tt.wantCounts) {
				t.Fatalf("got %d explosions, want %d", len(got), len(tt.wantCounts))
			}
			for i, ex := range got {
				if len(ex.Particles) != tt.wantCounts[i] {
					t.Errorf("explosion %d has %d particles, want %d", i, len(ex.Particles), tt.wantCounts[i])
				}
			}
			if fs.ParticleCount() != tt.wantTotalAlive {
				t.Errorf("ParticleCount() = %d, want %d", fs.ParticleCount(), tt.wantTotalAlive)
			}
		})
	}
}

func TestFireworkSystem_Reset(t *testing.T) {
	fs := newTestFireworkSystem(testSimulationConfig())
	fs.SpawnExplosion(0, 0, redRocket)
	fs.SpawnExplosion(0, 0, redRocket)
	fs.Reset()

	if fs.ExplosionCount() != 0 || fs.ParticleCount() != 0 {
		t.Errorf("after Reset: %d explosions / %d particles", fs.ExplosionCount(), fs.ParticleCount())
	}
	surface := &recordingSurface{}
	fs.Step(surface)
	if len(surface.circles) != 0 {
		t.Errorf("Reset registry should draw nothing, got %d circles", len(surface.circles))
	}
}
