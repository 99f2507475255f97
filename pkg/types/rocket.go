// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrInvalidColor 颜色不是 #rrggbb 或 #rgb 形式
	ErrInvalidColor = errors.New("invalid rocket color")
	// ErrInvalidSize 尺寸必须为正数
	ErrInvalidSize = errors.New("rocket size must be positive")
	// ErrInvalidParticleCount 粒子数量必须为正整数
	ErrInvalidParticleCount = errors.New("rocket particle count must be positive")
)

// Rocket 烟花预设：颜色、尺寸、粒子数量
//
// 值类型，创建后不再修改。由输入面板生成，供爆炸生成和预设存储使用。
type Rocket struct {
	Color         string  `json:"color" yaml:"color"`
	Size          float64 `json:"size" yaml:"size"`
	ParticleCount int     `json:"particleCount" yaml:"particleCount"`
}

// rocketWire 解码用的宽松结构，兼容旧存储里的 "particles" 字段
type rocketWire struct {
	Color         string   `json:"color"`
	Size          float64  `json:"size"`
	ParticleCount *int     `json:"particleCount"`
	Particles     *float64 `json:"particles"`
}

// UnmarshalJSON 解码预设，particleCount 优先于旧字段 particles
func (r *Rocket) UnmarshalJSON(data []byte) error {
	var w rocketWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.Color = w.Color
	r.Size = w.Size
	r.ParticleCount = 0
	switch {
	case w.ParticleCount != nil:
		r.ParticleCount = *w.ParticleCount
	case w.Particles != nil:
		n, err := legacyParticleCount(*w.Particles)
		if err != nil {
			return err
		}
		r.ParticleCount = n
	}
	return nil
}

// legacyParticleCount 旧字段 particles 以浮点数存储，只接受 int32 范围内的整数
func legacyParticleCount(v float64) (int, error) {
	if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: legacy particles value %v is not a whole number in range", ErrInvalidParticleCount, v)
	}
	return int(v), nil
}

// Validate 检查预设是否可以用于生成爆炸
func (r Rocket) Validate() error {
	if _, err := ParseColor(r.Color); err != nil {
		return err
	}
	if !(r.Size > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSize, r.Size)
	}
	if r.ParticleCount <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidParticleCount, r.ParticleCount)
	}
	return nil
}

// RGBA 返回预设颜色，无法解析时返回白色
func (r Rocket) RGBA() color.RGBA {
	c, err := ParseColor(r.Color)
	if err != nil {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return c
}

// String 返回便于日志输出的描述
func (r Rocket) String() string {
	return fmt.Sprintf("Rocket{%s size=%g particles=%d}", r.Color, r.Size, r.ParticleCount)
}

// ParseColor 解析 "#rrggbb" 或 "#rgb" 形式的颜色
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// FormatColor 把颜色格式化为 "#rrggbb"
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HueColor 返回色相 hue（度，取模 360）对应的全饱和、全亮度颜色 "#rrggbb"
func HueColor(hue float64) string {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	r, g, b := colorful.Hsv(hue, 1, 1).Clamped().RGB255()
	return FormatColor(color.RGBA{R: r, G: g, B: b, A: 255})
}

// ColorHue 返回颜色的色相（度，[0, 360)）
func ColorHue(hex string) (float64, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	h, _, _ := c.Hsv()
	return h, nil
}
