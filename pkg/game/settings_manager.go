package game

import (
	"fmt"
	"log"
	"slices"

	"github.com/decker502/fireworks/pkg/types"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Settings 本地持久化的用户状态
// 注意：与远程预设存储无关，仅保存在本机
type Settings struct {
	// 当前控制面板上的火箭
	Rocket types.Rocket `yaml:"rocket"`

	// 最近一次从预设存储读取的预设（离线时仍可按 N 切换）
	Presets []types.Rocket `yaml:"presets"`

	// 启动时是否全屏
	Fullscreen bool `yaml:"fullscreen"`
}

// DefaultSettings 返回以 rocket 为初始火箭的默认设置
func DefaultSettings(rocket types.Rocket) *Settings {
	return &Settings{
		Rocket:  rocket,
		Presets: []types.Rocket{},
	}
}

// SettingsManager 设置管理器
// 负责本地设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager  *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	defaultRocket types.Rocket
	settings      *Settings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "local"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//   - defaultRocket: 没有已保存设置时使用的火箭
//
// 加载失败不是致命错误，会记录日志并使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager, defaultRocket types.Rocket) *SettingsManager {
	sm := &SettingsManager{
		gdataManager:  gdataManager,
		defaultRocket: defaultRocket,
		settings:      DefaultSettings(defaultRocket),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
//
// gdataManager 为 nil 或文件不存在时使用默认设置；
// 已保存的火箭无效时替换为默认火箭，无效的缓存预设被丢弃
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings(sm.defaultRocket)

	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if err := loaded.Rocket.Validate(); err != nil {
		log.Printf("[SettingsManager] Saved rocket is invalid (%v), using default", err)
		loaded.Rocket = sm.defaultRocket
	}
	loaded.Presets = validPresets(loaded.Presets)

	sm.settings = &loaded
	log.Printf("[SettingsManager] Settings loaded (%d cached presets)", len(loaded.Presets))
	return nil
}

// Save 保存设置到 gdata
//
// gdataManager 为 nil 时返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *Settings {
	return sm.settings
}

// SetRocket 设置当前火箭（仅修改内存，需调用 Save 持久化）
func (sm *SettingsManager) SetRocket(rocket types.Rocket) {
	sm.settings.Rocket = rocket
}

// SetPresets 替换缓存的预设（保存副本）
func (sm *SettingsManager) SetPresets(presets []types.Rocket) {
	sm.settings.Presets = slices.Clone(presets)
	if sm.settings.Presets == nil {
		sm.settings.Presets = []types.Rocket{}
	}
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// validPresets 过滤掉无法使用的预设
func validPresets(presets []types.Rocket) []types.Rocket {
	valid := make([]types.Rocket, 0, len(presets))
	for _, p := range presets {
		if p.Validate() == nil {
			valid = append(valid, p)
		}
	}
	return valid
}
