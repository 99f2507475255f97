// Package app 提供烟花应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/presets"
	"github.com/decker502/fireworks/pkg/scenes"
	"github.com/decker502/fireworks/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// gdataAppName 本地存储使用的应用名
const gdataAppName = "fireworks_newx"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 配置文件路径，为空则使用内嵌的 data/fireworks.yaml
	ConfigPath string
	// ServerURL 覆盖配置中的预设服务地址
	ServerURL string
	// Mode 覆盖配置中的预设服务请求方式（rest / query）
	Mode string
	// Fullscreen 以全屏启动（同时会被写入本地设置）
	Fullscreen bool
}

// App 是烟花应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg          *config.FireworksConfig
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	presets      *game.PresetManager

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	fwConfig, err := config.LoadFireworksConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}
	if cfg.ServerURL != "" {
		fwConfig.PresetStore.BaseURL = cfg.ServerURL
	}
	if cfg.Mode != "" {
		fwConfig.PresetStore.Mode = cfg.Mode
	}
	log.Printf("[App] Preset store: %s (%s)", fwConfig.PresetStore.BaseURL, fwConfig.PresetStore.Mode)

	client, err := presets.NewClient(fwConfig.PresetStore, nil)
	if err != nil {
		return nil, fmt.Errorf("预设客户端创建失败: %w", err)
	}

	// gdata 初始化失败时降级为仅内存设置
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: storage directory unavailable: %v", err)
	}
	gdataManager, err := gdata.Open(gdata.Config{AppName: gdataAppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable (%v), settings will not persist", err)
		gdataManager = nil
	}
	settings := game.NewSettingsManager(gdataManager, fwConfig.Controls.DefaultRocket)
	if cfg.Fullscreen {
		settings.SetFullscreen(true)
	}

	presetManager := game.NewPresetManager(client, settings)

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewFireworksScene(fwConfig, settings, presetManager))

	return &App{
		cfg:          fwConfig,
		sceneManager: sceneManager,
		settings:     settings,
		presets:      presetManager,
	}, nil
}

// ApplyWindowSettings 设置窗口尺寸、标题和全屏状态，在 RunGame 之前调用
func (a *App) ApplyWindowSettings() {
	ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
	ebiten.SetWindowTitle(a.cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(a.settings.GetSettings().Fullscreen)
	ebiten.SetWindowClosingHandled(true)
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.Shutdown()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.cfg.Window.Width, a.cfg.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		if !fullscreen {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settings.SetFullscreen(fullscreen)
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Window.Width, a.cfg.Window.Height
}

// Shutdown 保存当前场景状态并取消未完成的网络请求
// 可重复调用
func (a *App) Shutdown() {
	if !a.sceneManager.SaveOnExit() {
		log.Printf("[App] Warning: state was not saved on exit")
	}
	a.presets.Close()
}
