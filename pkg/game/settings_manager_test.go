package game

import (
	"os"
	"testing"

	"github.com/decker502/fireworks/pkg/types"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

var testDefaultRocket = types.Rocket{Color: "#ff0000", Size: 50, ParticleCount: 100}

// openTestGdata 在临时 HOME 下创建 gdata manager
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return gdataManager
}

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings(testDefaultRocket)
	if settings.Rocket != testDefaultRocket {
		t.Errorf("Rocket: got %+v, want %+v", settings.Rocket, testDefaultRocket)
	}
	if settings.Presets == nil || len(settings.Presets) != 0 {
		t.Errorf("Presets: got %v, want empty slice", settings.Presets)
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil, testDefaultRocket)

	if sm.GetSettings().Rocket != testDefaultRocket {
		t.Errorf("Degraded mode Rocket: got %+v", sm.GetSettings().Rocket)
	}

	sm.SetRocket(types.Rocket{Color: "#00ff00", Size: 10, ParticleCount: 5})
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should not fail: %v", err)
	}
	if sm.GetSettings().Rocket != testDefaultRocket {
		t.Error("Load() in degraded mode should reset to defaults")
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := openTestGdata(t, "test_fireworks_settings")

	sm1 := NewSettingsManager(gdataManager, testDefaultRocket)
	if sm1.GetSettings().Rocket != testDefaultRocket {
		t.Fatalf("fresh store should use default rocket, got %+v", sm1.GetSettings().Rocket)
	}

	rocket := types.Rocket{Color: "#00ff00", Size: 30, ParticleCount: 250}
	presets := []types.Rocket{
		{Color: "#0000ff", Size: 10, ParticleCount: 20},
		{Color: "#ffffff", Size: 90, ParticleCount: 400},
	}
	sm1.SetRocket(rocket)
	sm1.SetPresets(presets)
	sm1.SetFullscreen(true)

	// 修改调用方切片不影响已缓存的预设
	presets[0].Color = "#123456"

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(gdataManager, testDefaultRocket)
	settings := sm2.GetSettings()

	if settings.Rocket != rocket {
		t.Errorf("Loaded Rocket: got %+v, want %+v", settings.Rocket, rocket)
	}
	if len(settings.Presets) != 2 || settings.Presets[0].Color != "#0000ff" {
		t.Errorf("Loaded Presets: got %+v", settings.Presets)
	}
	if !settings.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
}

// TestSettingsLoadInvalid 无效的已保存数据回退到默认值
func TestSettingsLoadInvalid(t *testing.T) {
	gdataManager := openTestGdata(t, "test_fireworks_settings_invalid")

	stored := Settings{
		Rocket: types.Rocket{Color: "blue", Size: 30, ParticleCount: 10},
		Presets: []types.Rocket{
			{Color: "#0000ff", Size: 10, ParticleCount: 20},
			{Color: "#0000ff", Size: 0, ParticleCount: 20},
		},
	}
	data, err := yaml.Marshal(stored)
	if err != nil {
		t.Fatalf("yaml.Marshal() error: %v", err)
	}
	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := NewSettingsManager(gdataManager, testDefaultRocket)
	if sm.GetSettings().Rocket != testDefaultRocket {
		t.Errorf("invalid saved rocket should fall back to default, got %+v", sm.GetSettings().Rocket)
	}
	if len(sm.GetSettings().Presets) != 1 {
		t.Errorf("invalid presets should be dropped, got %+v", sm.GetSettings().Presets)
	}

	// 损坏的 YAML
	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("rocket: [")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should fail on corrupt data")
	}
	if sm.GetSettings().Rocket != testDefaultRocket {
		t.Error("corrupt data should leave default settings in place")
	}
}

func TestSetPresetsNil(t *testing.T) {
	sm := NewSettingsManager(nil, testDefaultRocket)
	sm.SetPresets(nil)
	if sm.GetSettings().Presets == nil {
		t.Error("SetPresets(nil) should store an empty slice")
	}
}
