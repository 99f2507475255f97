package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/ecs"
	"github.com/decker502/fireworks/pkg/entities"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/systems"
	"github.com/decker502/fireworks/pkg/types"
	"github.com/decker502/fireworks/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	panelColor     = color.RGBA{R: 20, G: 20, B: 28, A: 220}
	panelEdgeColor = color.RGBA{R: 80, G: 80, B: 100, A: 255}
)

// pointerInput 每帧刷新一次的指针输入
type pointerInput interface {
	systems.PointerSource
	Refresh()
}

// FireworksScene 烟花场景
//
// 画面上半部分是画布：在画布上点击会以当前火箭参数生成一次爆炸。
// 底部控制面板包含调色板、色相、尺寸和粒子数量滑块以及保存/读取按钮。
// 按 N 依次应用已读取的预设。
type FireworksScene struct {
	cfg      *config.FireworksConfig
	settings *game.SettingsManager
	presets  *game.PresetManager

	entityManager *ecs.EntityManager
	input         pointerInput
	keyPressed    func(ebiten.Key) bool

	fireworks    *systems.FireworkSystem
	canvas       *systems.CanvasSurface
	surface      systems.Surface
	sliderSystem *systems.SliderSystem
	swatchSystem *systems.SwatchSystem
	buttonSystem *systems.ButtonSystem
	noticeSystem *systems.NoticeSystem
	uiRender     *systems.UIRenderSystem

	layout         controlLayout
	sizeSlider     *components.SliderComponent
	particleSlider *components.SliderComponent
	hueSlider      *components.SliderComponent

	rocket types.Rocket
}

// NewFireworksScene 创建烟花场景
// 初始火箭取自已保存的设置
func NewFireworksScene(cfg *config.FireworksConfig, settings *game.SettingsManager, presets *game.PresetManager) *FireworksScene {
	return newFireworksScene(cfg, settings, presets, &systems.FramePointer{}, inpututil.IsKeyJustPressed)
}

func newFireworksScene(cfg *config.FireworksConfig, settings *game.SettingsManager, presets *game.PresetManager, input pointerInput, keyPressed func(ebiten.Key) bool) *FireworksScene {
	em := ecs.NewEntityManager()
	s := &FireworksScene{
		cfg:           cfg,
		settings:      settings,
		presets:       presets,
		entityManager: em,
		input:         input,
		keyPressed:    keyPressed,
		fireworks:     systems.NewFireworkSystem(cfg.Simulation),
		sliderSystem:  systems.NewSliderSystem(em, input),
		swatchSystem:  systems.NewSwatchSystem(em, input),
		buttonSystem:  systems.NewButtonSystem(em, input),
		noticeSystem:  systems.NewNoticeSystem(em, input, noticeWidth, noticeHeight),
		uiRender:      systems.NewUIRenderSystem(em),
		layout:        layoutControls(cfg.Window.Width, cfg.Window.Height, len(cfg.Controls.Palette)),
		rocket:        settings.GetSettings().Rocket,
	}

	s.createControls()
	s.applyRocket(s.rocket)

	log.Printf("[FireworksScene] Initialized %dx%d, rocket %s", cfg.Window.Width, cfg.Window.Height, s.rocket)
	return s
}

// createControls 创建色块、滑块和按钮实体
func (s *FireworksScene) createControls() {
	controls := s.cfg.Controls

	for i, hex := range controls.Palette {
		if _, err := entities.NewColorSwatchEntity(s.entityManager, s.layout.Swatches[i], hex, s.onColorSelected); err != nil {
			log.Printf("[FireworksScene] Skipping palette entry: %v", err)
		}
	}

	_, s.sizeSlider = entities.NewSliderEntity(s.entityManager, s.layout.SizeSlider, "Size", controls.SizeMin, controls.SizeMax, func(v float64) {
		s.rocket.Size = math.Round(v)
	})
	_, s.particleSlider = entities.NewSliderEntity(s.entityManager, s.layout.ParticleSlider, "Particles",
		float64(controls.ParticlesMin), float64(controls.ParticlesMax), func(v float64) {
			s.rocket.ParticleCount = int(math.Round(v))
		})
	// 色相滑块可以选择调色板以外的任意颜色
	_, s.hueSlider = entities.NewSliderEntity(s.entityManager, s.layout.HueSlider, "Hue", 0, 359, s.onHueChanged)

	entities.NewButtonEntity(s.entityManager, s.layout.SaveButton, "Save", s.onSave)
	entities.NewButtonEntity(s.entityManager, s.layout.LoadButton, "Load", s.onLoad)
}

// applyRocket 把 rocket 设为当前火箭并同步控件
// 超出滑块范围的数值保持原样，只有滑块显示被限制在边界
func (s *FireworksScene) applyRocket(rocket types.Rocket) {
	s.rocket = rocket
	systems.SetSliderScaledValue(s.sizeSlider, rocket.Size)
	systems.SetSliderScaledValue(s.particleSlider, float64(rocket.ParticleCount))
	if !s.swatchSystem.Select(rocket.Color) {
		log.Printf("[FireworksScene] Color %s is not in the palette", rocket.Color)
	}
	s.syncHueSlider(rocket.Color)
}

func (s *FireworksScene) onColorSelected(hex string) {
	s.rocket.Color = hex
	s.syncHueSlider(hex)
}

// onHueChanged 色相滑块拖动时换成对应颜色，调色板中有同色时一并选中
func (s *FireworksScene) onHueChanged(hue float64) {
	s.rocket.Color = types.HueColor(hue)
	s.swatchSystem.Select(s.rocket.Color)
}

// syncHueSlider 把色相滑块移到 hex 的色相，不触发回调
func (s *FireworksScene) syncHueSlider(hex string) {
	hue, err := types.ColorHue(hex)
	if err != nil {
		return
	}
	systems.SetSliderScaledValue(s.hueSlider, hue)
}

func (s *FireworksScene) onSave() {
	log.Printf("[FireworksScene] Save requested: %s", s.rocket)
	s.presets.SaveAsync(s.rocket)
}

func (s *FireworksScene) onLoad() {
	log.Printf("[FireworksScene] Load requested")
	s.presets.LoadAllAsync()
}

// Rocket 返回当前火箭参数
func (s *FireworksScene) Rocket() types.Rocket {
	return s.rocket
}

// Fireworks 返回烟花系统
func (s *FireworksScene) Fireworks() *systems.FireworkSystem {
	return s.fireworks
}

// Update 处理一帧的输入并推进模拟
func (s *FireworksScene) Update(deltaTime float64) {
	s.input.Refresh()

	for _, notice := range s.presets.Poll() {
		level := components.NoticeInfo
		if notice.Failed() {
			level = components.NoticeError
		}
		s.noticeSystem.Show(notice.Title, notice.Message, level)
	}

	// 提示框为模态：可见时只处理关闭，点击不会生成烟花
	if s.noticeSystem.Blocking() {
		s.noticeSystem.Update(deltaTime)
	} else {
		s.sliderSystem.Update(deltaTime)
		s.swatchSystem.Update(deltaTime)
		s.buttonSystem.Update(deltaTime)
		s.handleKeys()
		s.handleSpark()
	}

	s.fireworks.Step(s.frameSurface())

	s.entityManager.RemoveMarkedEntities() // 关闭的提示等待删除的实体（始终最后执行）
}

// frameSurface 返回模拟绘制的目标，首次调用时创建离屏画布
func (s *FireworksScene) frameSurface() systems.Surface {
	if s.surface == nil {
		s.canvas = systems.NewCanvasSurface(s.cfg.Window.Width, s.cfg.Window.Height)
		s.surface = s.canvas
	}
	return s.surface
}

func (s *FireworksScene) handleKeys() {
	if !s.keyPressed(ebiten.KeyN) {
		return
	}
	rocket, ok := s.presets.NextCached()
	if !ok {
		s.noticeSystem.Show("No presets", "Press Load to fetch saved rockets first.", components.NoticeInfo)
		return
	}
	s.applyRocket(rocket)
	log.Printf("[FireworksScene] Applied preset %s", rocket)
}

// handleSpark 在控制面板之外按下时生成爆炸
func (s *FireworksScene) handleSpark() {
	pointer := s.input.Pointer()
	if !pointer.JustPressed || s.sliderSystem.IsDragging() {
		return
	}
	x, y := float64(pointer.X), float64(pointer.Y)
	if s.layout.Panel.Contains(x, y) {
		return
	}
	s.fireworks.SpawnExplosion(x, y, s.rocket)
}

// Draw 把画布复制到屏幕，然后绘制控制面板和提示
func (s *FireworksScene) Draw(screen *ebiten.Image) {
	if s.canvas != nil {
		screen.DrawImage(s.canvas.Image(), nil)
	}

	p := s.layout.Panel
	vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), panelColor, false)
	vector.StrokeLine(screen, float32(p.X), float32(p.Y), float32(p.X+p.W), float32(p.Y), 1, panelEdgeColor, false)
	ebitenutil.DebugPrintAt(screen, s.rocket.Color, int(s.layout.HexLabelX), int(s.layout.HexLabelY))

	ebitenutil.DebugPrintAt(screen, s.hudText(), 8, 8)

	s.uiRender.Draw(screen)
}

// hudText 左上角状态信息
func (s *FireworksScene) hudText() string {
	action := "click"
	if utils.IsMobile() {
		action = "tap"
	}
	text := fmt.Sprintf("FPS %.0f  explosions %d  particles %d\n%s: launch   N: next preset (%d cached)",
		ebiten.ActualFPS(), s.fireworks.ExplosionCount(), s.fireworks.ParticleCount(), action, len(s.presets.Cached()))
	if n := s.presets.InFlight(); n > 0 {
		text += fmt.Sprintf("\ncontacting preset store (%d)...", n)
	}
	if n := s.noticeSystem.Pending(); n > 0 {
		text += fmt.Sprintf("\n%d more notice(s) waiting", n)
	}
	return text
}

// SaveOnExit 实现 game.Saveable：保存当前火箭
func (s *FireworksScene) SaveOnExit() bool {
	s.settings.SetRocket(s.rocket)
	if err := s.settings.Save(); err != nil {
		log.Printf("[FireworksScene] Failed to save settings: %v", err)
		return false
	}
	return true
}
