package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/decker502/fireworks/pkg/presets"
	"github.com/decker502/fireworks/pkg/types"
)

// fakePresetClient 内存中的预设客户端
type fakePresetClient struct {
	mu      sync.Mutex
	saved   []types.Rocket
	load    []types.Rocket
	saveErr error
	loadErr error
	block   chan struct{} // 非 nil 时调用阻塞到关闭或 ctx 取消
}

func (f *fakePresetClient) wait(ctx context.Context) error {
	if f.block == nil {
		return nil
	}
	select {
	case <-f.block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakePresetClient) Save(ctx context.Context, rocket types.Rocket) error {
	if err := f.wait(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, rocket)
	return nil
}

func (f *fakePresetClient) LoadAll(ctx context.Context) ([]types.Rocket, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.load, nil
}

// pollUntil 轮询直到收到 n 条通知
func pollUntil(t *testing.T, pm *PresetManager, n int) []PresetNotice {
	t.Helper()
	var got []PresetNotice
	deadline := time.Now().Add(2 * time.Second)
	for len(got) < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d notice(s), got %d", n, len(got))
		}
		got = append(got, pm.Poll()...)
		time.Sleep(time.Millisecond)
	}
	return got
}

func TestPresetManagerSave(t *testing.T) {
	client := &fakePresetClient{}
	pm := NewPresetManager(client, nil)
	defer pm.Close()

	rocket := types.Rocket{Color: "#ff0000", Size: 50, ParticleCount: 30}
	pm.SaveAsync(rocket)

	notices := pollUntil(t, pm, 1)
	if notices[0].Kind != PresetSaved || notices[0].Failed() {
		t.Errorf("notice = %+v, want PresetSaved", notices[0])
	}
	if len(client.saved) != 1 || client.saved[0] != rocket {
		t.Errorf("saved = %+v", client.saved)
	}
	if pm.InFlight() != 0 {
		t.Errorf("InFlight() = %d, want 0", pm.InFlight())
	}
}

// TestPresetManagerSaveInvalid 无效火箭不发送请求
func TestPresetManagerSaveInvalid(t *testing.T) {
	client := &fakePresetClient{}
	pm := NewPresetManager(client, nil)
	defer pm.Close()

	pm.SaveAsync(types.Rocket{Color: "#ff0000", Size: 50, ParticleCount: 0})
	notices := pm.Poll()
	if len(notices) != 1 || notices[0].Kind != PresetSaveFailed {
		t.Fatalf("notices = %+v, want one PresetSaveFailed", notices)
	}
	if !errors.Is(notices[0].Err, types.ErrInvalidParticleCount) {
		t.Errorf("Err = %v, want ErrInvalidParticleCount", notices[0].Err)
	}
	if len(client.saved) != 0 {
		t.Error("invalid rocket must not reach the client")
	}
}

func TestPresetManagerErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
	}{
		{"连接失败", fmt.Errorf("save: %w: dial tcp", presets.ErrUnreachable), "Could not reach the preset store. Check that the server is running."},
		{"状态码", &presets.StatusError{Op: "save", StatusCode: 503}, "The preset store rejected the request (HTTP 503)."},
		{"调用方超时", fmt.Errorf("load: %w", context.DeadlineExceeded), "The preset store did not answer in time."},
		{"其他错误", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := NewPresetManager(&fakePresetClient{saveErr: tt.err, loadErr: tt.err}, nil)
			defer pm.Close()

			pm.SaveAsync(types.Rocket{Color: "#ff0000", Size: 50, ParticleCount: 30})
			pm.LoadAllAsync()

			for _, n := range pollUntil(t, pm, 2) {
				if !n.Failed() {
					t.Errorf("notice %+v should be a failure", n)
				}
				if n.Message != tt.wantMessage {
					t.Errorf("Message = %q, want %q", n.Message, tt.wantMessage)
				}
				if !errors.Is(n.Err, tt.err) {
					t.Errorf("Err = %v, want %v", n.Err, tt.err)
				}
			}
			if len(pm.Cached()) != 0 {
				t.Error("failed load must not change the cache")
			}
		})
	}
}

func TestPresetManagerLoadUpdatesCache(t *testing.T) {
	gdataManager := openTestGdata(t, "test_fireworks_presets")
	settings := NewSettingsManager(gdataManager, testDefaultRocket)

	client := &fakePresetClient{load: []types.Rocket{
		{Color: "#0000ff", Size: 10, ParticleCount: 20},
		{Color: "bad", Size: 10, ParticleCount: 20},
		{Color: "#ffffff", Size: 90, ParticleCount: 400},
	}}
	pm := NewPresetManager(client, settings)
	defer pm.Close()

	if _, ok := pm.NextCached(); ok {
		t.Fatal("NextCached() on empty cache should return false")
	}

	pm.LoadAllAsync()
	notices := pollUntil(t, pm, 1)
	if notices[0].Kind != PresetsLoaded || len(notices[0].Presets) != 2 {
		t.Fatalf("notice = %+v, want PresetsLoaded with 2 presets", notices[0])
	}

	cached := pm.Cached()
	if len(cached) != 2 {
		t.Fatalf("Cached() = %+v", cached)
	}
	cached[0].Color = "#000000"
	if pm.Cached()[0].Color != "#0000ff" {
		t.Error("Cached() must return a copy")
	}

	// 循环切换
	var colors []string
	for range 3 {
		r, ok := pm.NextCached()
		if !ok {
			t.Fatal("NextCached() returned false")
		}
		colors = append(colors, r.Color)
	}
	if colors[0] != "#0000ff" || colors[1] != "#ffffff" || colors[2] != "#0000ff" {
		t.Errorf("NextCached() order = %v", colors)
	}

	// 已持久化，重新打开后缓存仍在
	reopened := NewPresetManager(client, NewSettingsManager(gdataManager, testDefaultRocket))
	defer reopened.Close()
	if len(reopened.Cached()) != 2 {
		t.Errorf("persisted cache = %+v, want 2 presets", reopened.Cached())
	}
}

// TestPresetManagerCloseCancels Close 取消进行中的请求
func TestPresetManagerCloseCancels(t *testing.T) {
	client := &fakePresetClient{block: make(chan struct{})}
	pm := NewPresetManager(client, nil)

	pm.LoadAllAsync()
	if pm.InFlight() != 1 {
		t.Errorf("InFlight() = %d, want 1", pm.InFlight())
	}

	done := make(chan struct{})
	go func() {
		pm.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close() did not return")
	}
	if pm.InFlight() != 0 {
		t.Errorf("InFlight() after Close = %d, want 0", pm.InFlight())
	}
}
