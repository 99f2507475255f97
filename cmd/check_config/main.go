// Package main validates a fireworks configuration file and prints a summary.
//
// Usage:
//
//	go run ./cmd/check_config [path]
//
// Without an argument data/fireworks.yaml is checked.
package main

import (
	"fmt"
	"os"

	"github.com/decker502/fireworks/pkg/config"
	"gopkg.in/yaml.v3"
)

func main() {
	path := config.DefaultConfigPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("❌ 读取文件失败: %v\n", err)
		os.Exit(1)
	}

	// 先做一次通用解析，报告未知的顶层键
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		fmt.Printf("❌ YAML 解析失败: %v\n", err)
		os.Exit(1)
	}
	for key := range raw {
		switch key {
		case "window", "simulation", "presetStore", "controls":
		default:
			fmt.Printf("⚠️  未知的顶层字段: %s\n", key)
		}
	}

	cfg, err := config.ParseFireworksConfig(data)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ YAML 格式正确: %s\n", path)

	sim := cfg.Simulation
	fmt.Printf("   窗口: %dx%d %q\n", cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	fmt.Printf("   粒子寿命: %d 帧, 衰减 %.3f, 速度区间 %.1f, 尺寸除数 %.1f\n",
		sim.ParticleLifetime, sim.SizeDecay, sim.SpeedSpread, sim.SizeDivisor)
	fmt.Printf("   上限: 爆炸 %d, 粒子 %d, 单次爆炸 %d\n",
		sim.MaxExplosions, sim.MaxParticles, sim.MaxParticlesPerExplosion)
	fmt.Printf("   预设存储: %s (%s, collection=%s, timeout=%v)\n",
		cfg.PresetStore.BaseURL, cfg.PresetStore.Mode, cfg.PresetStore.Collection, cfg.PresetStore.Timeout)

	// 默认预设超出滑块范围时控件会被截断，只给出警告
	ctl := cfg.Controls
	def := ctl.DefaultRocket
	if def.Size < ctl.SizeMin || def.Size > ctl.SizeMax {
		fmt.Printf("⚠️  默认尺寸 %v 超出滑块范围 [%v, %v]\n", def.Size, ctl.SizeMin, ctl.SizeMax)
	}
	if def.ParticleCount < ctl.ParticlesMin || def.ParticleCount > ctl.ParticlesMax {
		fmt.Printf("⚠️  默认粒子数 %d 超出滑块范围 [%d, %d]\n", def.ParticleCount, ctl.ParticlesMin, ctl.ParticlesMax)
	}
	if limit := sim.MaxParticlesPerExplosion; limit > 0 && ctl.ParticlesMax > limit {
		fmt.Printf("⚠️  粒子滑块上限 %d 大于单次爆炸上限 %d\n", ctl.ParticlesMax, limit)
	}
	fmt.Printf("✅ 调色板 %d 种颜色，默认预设 %s\n", len(ctl.Palette), def)
}
