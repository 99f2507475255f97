package config

import (
	"fmt"
	"os"
	"time"

	"github.com/decker502/fireworks/pkg/embedded"
	"github.com/decker502/fireworks/pkg/types"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 嵌入配置文件的路径
const DefaultConfigPath = "data/fireworks.yaml"

// 预设存储请求格式
const (
	// PresetModeREST POST/GET {baseURL}/rockets，JSON 请求体
	PresetModeREST = "rest"
	// PresetModeQuery GET {baseURL}?command=...&collection=...&data=...
	PresetModeQuery = "query"
)

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// SimulationConfig 粒子模拟参数
type SimulationConfig struct {
	ParticleLifetime int     `yaml:"particleLifetime"` // 粒子寿命（帧）
	SizeDecay        float64 `yaml:"sizeDecay"`        // 每帧尺寸衰减系数
	SpeedSpread      float64 `yaml:"speedSpread"`      // 速度区间宽度，每轴取 (rand-0.5)*spread
	SizeDivisor      float64 `yaml:"sizeDivisor"`      // 粒子尺寸 = 预设尺寸 / SizeDivisor
	TrailAlpha       float64 `yaml:"trailAlpha"`       // 每帧黑色覆盖层的透明度

	// 上限，0 表示不限制
	MaxExplosions            int `yaml:"maxExplosions"`
	MaxParticles             int `yaml:"maxParticles"`
	MaxParticlesPerExplosion int `yaml:"maxParticlesPerExplosion"`
}

// PresetStoreConfig 远程预设存储配置
type PresetStoreConfig struct {
	BaseURL    string        `yaml:"baseURL"`
	Mode       string        `yaml:"mode"`       // "rest" 或 "query"
	Collection string        `yaml:"collection"` // query 模式下的集合名
	Timeout    time.Duration `yaml:"timeout"`
}

// ControlsConfig 控制面板配置
type ControlsConfig struct {
	Palette       []string     `yaml:"palette"`
	DefaultRocket types.Rocket `yaml:"defaultRocket"`
	SizeMin       float64      `yaml:"sizeMin"`
	SizeMax       float64      `yaml:"sizeMax"`
	ParticlesMin  int          `yaml:"particlesMin"`
	ParticlesMax  int          `yaml:"particlesMax"`
}

// FireworksConfig 应用配置文件结构
type FireworksConfig struct {
	Window      WindowConfig      `yaml:"window"`
	Simulation  SimulationConfig  `yaml:"simulation"`
	PresetStore PresetStoreConfig `yaml:"presetStore"`
	Controls    ControlsConfig    `yaml:"controls"`
}

// DefaultFireworksConfig 返回内置默认配置
// 配置文件中缺失的字段保留这里的默认值
func DefaultFireworksConfig() *FireworksConfig {
	return &FireworksConfig{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Fireworks",
		},
		Simulation: SimulationConfig{
			ParticleLifetime:         100,
			SizeDecay:                0.98,
			SpeedSpread:              8,
			SizeDivisor:              5,
			TrailAlpha:               0.2,
			MaxExplosions:            256,
			MaxParticles:             50000,
			MaxParticlesPerExplosion: 5000,
		},
		PresetStore: PresetStoreConfig{
			BaseURL:    "http://localhost:8090",
			Mode:       PresetModeREST,
			Collection: "rockets",
			Timeout:    5 * time.Second,
		},
		Controls: ControlsConfig{
			Palette: []string{"#ff0000", "#ff8000", "#ffff00", "#00ff00", "#00ffff", "#0080ff", "#ff00ff", "#ffffff"},
			DefaultRocket: types.Rocket{
				Color:         "#ff0000",
				Size:          50,
				ParticleCount: 100,
			},
			SizeMin:      10,
			SizeMax:      100,
			ParticlesMin: 10,
			ParticlesMax: 500,
		},
	}
}

// ParseFireworksConfig 解析 YAML 配置，缺失字段使用默认值
func ParseFireworksConfig(data []byte) (*FireworksConfig, error) {
	cfg := DefaultFireworksConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse fireworks config: %w", err)
	}
	if err := validateFireworksConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid fireworks config: %w", err)
	}
	return cfg, nil
}

// LoadFireworksConfig 加载配置
//
// 参数：
//   - path: 磁盘上的配置文件路径；为空时读取嵌入的 data/fireworks.yaml
func LoadFireworksConfig(path string) (*FireworksConfig, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = embedded.ReadFile(DefaultConfigPath)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		name := path
		if name == "" {
			name = DefaultConfigPath
		}
		return nil, fmt.Errorf("failed to read fireworks config %s: %w", name, err)
	}
	return ParseFireworksConfig(data)
}

// validateFireworksConfig 验证配置的合法性
func validateFireworksConfig(cfg *FireworksConfig) error {
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}

	sim := cfg.Simulation
	if sim.ParticleLifetime <= 0 {
		return fmt.Errorf("simulation.particleLifetime must be positive, got %d", sim.ParticleLifetime)
	}
	if sim.SizeDecay <= 0 || sim.SizeDecay > 1 {
		return fmt.Errorf("simulation.sizeDecay must be in (0, 1], got %v", sim.SizeDecay)
	}
	if sim.SizeDivisor <= 0 {
		return fmt.Errorf("simulation.sizeDivisor must be positive, got %v", sim.SizeDivisor)
	}
	if sim.TrailAlpha < 0 || sim.TrailAlpha > 1 {
		return fmt.Errorf("simulation.trailAlpha must be in [0, 1], got %v", sim.TrailAlpha)
	}
	if sim.MaxExplosions < 0 || sim.MaxParticles < 0 || sim.MaxParticlesPerExplosion < 0 {
		return fmt.Errorf("simulation limits cannot be negative")
	}

	switch cfg.PresetStore.Mode {
	case PresetModeREST, PresetModeQuery:
	default:
		return fmt.Errorf("presetStore.mode must be %q or %q, got %q", PresetModeREST, PresetModeQuery, cfg.PresetStore.Mode)
	}
	if cfg.PresetStore.Timeout <= 0 {
		return fmt.Errorf("presetStore.timeout must be positive, got %v", cfg.PresetStore.Timeout)
	}

	ctl := cfg.Controls
	if len(ctl.Palette) == 0 {
		return fmt.Errorf("controls.palette must not be empty")
	}
	for _, hex := range ctl.Palette {
		if _, err := types.ParseColor(hex); err != nil {
			return fmt.Errorf("controls.palette: %w", err)
		}
	}
	if ctl.SizeMin <= 0 || ctl.SizeMax < ctl.SizeMin {
		return fmt.Errorf("controls size range invalid: [%v, %v]", ctl.SizeMin, ctl.SizeMax)
	}
	if ctl.ParticlesMin <= 0 || ctl.ParticlesMax < ctl.ParticlesMin {
		return fmt.Errorf("controls particle range invalid: [%d, %d]", ctl.ParticlesMin, ctl.ParticlesMax)
	}
	if err := ctl.DefaultRocket.Validate(); err != nil {
		return fmt.Errorf("controls.defaultRocket: %w", err)
	}

	return nil
}
