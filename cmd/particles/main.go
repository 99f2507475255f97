// Package main provides a stress viewer for the fireworks particle simulation.
// It runs FireworkSystem without the control panel so that explosion limits,
// eviction and frame cost can be watched in isolation.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--config <path>       Fireworks config file (default data/fireworks.yaml)
//	--auto-spawn <n>      Spawn n random explosions per second (0 = off)
//	--particles <n>       Particle count per explosion (overrides the default rocket)
//	--verbose             Enable verbose logging
//
// Controls:
//
//	Mouse Click       - Spawn an explosion at cursor position
//	Space             - Spawn an explosion at screen center
//	A                 - Toggle auto spawn
//	P                 - Toggle pause
//	R                 - Clear all explosions
//	Q/Escape          - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/systems"
	"github.com/decker502/fireworks/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var (
	configFlag    = flag.String("config", config.DefaultConfigPath, "Fireworks config file")
	autoSpawnFlag = flag.Int("auto-spawn", 10, "Random explosions per second (0 = off)")
	particlesFlag = flag.Int("particles", 0, "Particle count per explosion (0 = use default rocket)")
	verboseFlag   = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

var errQuit = errors.New("quit requested")

// ParticleViewerGame implements ebiten.Game for the stress viewer
type ParticleViewerGame struct {
	cfg       *config.FireworksConfig
	fireworks *systems.FireworkSystem
	canvas    *systems.CanvasSurface
	rng       *rand.Rand

	rocket    types.Rocket
	autoSpawn bool
	spawnRate int
	spawnAcc  float64
	paused    bool

	lastStep time.Duration
}

// NewParticleViewerGame 创建查看器
func NewParticleViewerGame(cfg *config.FireworksConfig) *ParticleViewerGame {
	rocket := cfg.Controls.DefaultRocket
	if *particlesFlag > 0 {
		rocket.ParticleCount = *particlesFlag
	}
	return &ParticleViewerGame{
		cfg:       cfg,
		fireworks: systems.NewFireworkSystem(cfg.Simulation),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		rocket:    rocket,
		autoSpawn: *autoSpawnFlag > 0,
		spawnRate: *autoSpawnFlag,
	}
}

func (g *ParticleViewerGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.autoSpawn = !g.autoSpawn
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.fireworks.Reset()
		log.Println("[Viewer] cleared all explosions")
	}

	w, h := g.cfg.Window.Width, g.cfg.Window.Height
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.fireworks.SpawnExplosion(float64(w)/2, float64(h)/2, g.rocket)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.fireworks.SpawnExplosion(float64(x), float64(y), g.rocket)
	}

	if g.paused {
		return nil
	}

	if g.autoSpawn && g.spawnRate > 0 {
		g.spawnAcc += float64(g.spawnRate) / float64(ebiten.TPS())
		for g.spawnAcc >= 1 {
			g.spawnAcc--
			g.spawnRandom(w, h)
		}
	}

	if g.canvas == nil {
		g.canvas = systems.NewCanvasSurface(w, h)
	}
	start := time.Now()
	g.fireworks.Step(g.canvas)
	g.lastStep = time.Since(start)
	return nil
}

// spawnRandom 随机位置、随机调色板颜色
func (g *ParticleViewerGame) spawnRandom(w, h int) {
	rocket := g.rocket
	if palette := g.cfg.Controls.Palette; len(palette) > 0 {
		rocket.Color = palette[g.rng.Intn(len(palette))]
	}
	g.fireworks.SpawnExplosion(g.rng.Float64()*float64(w), g.rng.Float64()*float64(h), rocket)
}

func (g *ParticleViewerGame) Draw(screen *ebiten.Image) {
	if g.canvas != nil {
		screen.DrawImage(g.canvas.Image(), nil)
	}

	status := "running"
	if g.paused {
		status = "PAUSED"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"Explosions: %d  Particles: %d  Frame: %d (%s)\nStep: %v  TPS: %.1f  FPS: %.1f\nAuto spawn: %v (%d/s)  Rocket: %s\n[Click/Space] spawn  [A] auto  [P] pause  [R] clear  [Q] quit",
		g.fireworks.ExplosionCount(), g.fireworks.ParticleCount(), g.fireworks.Frame(), status,
		g.lastStep.Round(time.Microsecond), ebiten.ActualTPS(), ebiten.ActualFPS(),
		g.autoSpawn, g.spawnRate, g.rocket,
	))
}

func (g *ParticleViewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// loadConfig 读取配置失败时退回内置默认值
func loadConfig(path string) *config.FireworksConfig {
	cfg, err := config.LoadFireworksConfig(path)
	if err != nil {
		log.Printf("Warning: %v, using built-in defaults", err)
		return config.DefaultFireworksConfig()
	}
	return cfg
}

func main() {
	flag.Parse()

	log.Println("=== Fireworks Particle Stress Viewer ===")
	cfg := loadConfig(*configFlag)
	log.Printf("Limits: %d explosions, %d particles, %d per explosion",
		cfg.Simulation.MaxExplosions, cfg.Simulation.MaxParticles, cfg.Simulation.MaxParticlesPerExplosion)

	game := NewParticleViewerGame(cfg)

	// 默认静音运行：驱逐日志在高负载下非常频繁；如需详细调试，传入 --verbose
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title + " - Particle Stress Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}

	log.Println("Particle viewer closed")
	os.Exit(0)
}
