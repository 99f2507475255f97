package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/decker502/fireworks/pkg/presets"
	"github.com/decker502/fireworks/pkg/types"
)

// noticeBuffer 通知通道容量
const noticeBuffer = 16

// PresetNoticeKind 预设操作结果类型
type PresetNoticeKind int

const (
	PresetSaved PresetNoticeKind = iota
	PresetSaveFailed
	PresetsLoaded
	PresetLoadFailed
)

// PresetNotice 一次预设操作的结果，由后台 goroutine 发出，在 Update 中消费
type PresetNotice struct {
	Kind    PresetNoticeKind
	Title   string
	Message string
	Err     error

	// 仅 PresetsLoaded 时有效
	Presets []types.Rocket
}

// Failed 是否为失败通知
func (n PresetNotice) Failed() bool {
	return n.Kind == PresetSaveFailed || n.Kind == PresetLoadFailed
}

// PresetManager 在后台执行预设的保存和读取，不阻塞帧循环
//
// SaveAsync / LoadAllAsync 可在任意时刻调用；结果通过 Poll 在更新线程取回。
// 缓存的预设只在 Poll 中修改，因此 Cached / NextCached 也只能在更新线程调用。
type PresetManager struct {
	client   presets.Client
	settings *SettingsManager // 可为 nil，此时读取结果不持久化

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	notices  chan PresetNotice
	inFlight atomic.Int32

	cache []types.Rocket
	next  int
}

// NewPresetManager 创建预设管理器，缓存以 settings 中已保存的预设初始化
func NewPresetManager(client presets.Client, settings *SettingsManager) *PresetManager {
	ctx, cancel := context.WithCancel(context.Background())
	pm := &PresetManager{
		client:   client,
		settings: settings,
		ctx:      ctx,
		cancel:   cancel,
		notices:  make(chan PresetNotice, noticeBuffer),
		cache:    []types.Rocket{},
	}
	if settings != nil {
		pm.cache = slices.Clone(settings.GetSettings().Presets)
	}
	return pm
}

// SaveAsync 在后台保存 rocket
func (pm *PresetManager) SaveAsync(rocket types.Rocket) {
	if err := rocket.Validate(); err != nil {
		pm.post(PresetNotice{
			Kind:    PresetSaveFailed,
			Title:   "Save failed",
			Message: fmt.Sprintf("Rocket is not valid: %v", err),
			Err:     err,
		})
		return
	}

	pm.run(func(ctx context.Context) PresetNotice {
		if err := pm.client.Save(ctx, rocket); err != nil {
			log.Printf("[PresetManager] Save %s failed: %v", rocket, err)
			return PresetNotice{Kind: PresetSaveFailed, Title: "Save failed", Message: describeError(err), Err: err}
		}
		log.Printf("[PresetManager] Saved %s", rocket)
		return PresetNotice{Kind: PresetSaved, Title: "Saved", Message: fmt.Sprintf("Saved rocket %s", rocket)}
	})
}

// LoadAllAsync 在后台读取全部预设
func (pm *PresetManager) LoadAllAsync() {
	pm.run(func(ctx context.Context) PresetNotice {
		rockets, err := pm.client.LoadAll(ctx)
		if err != nil {
			log.Printf("[PresetManager] Load failed: %v", err)
			return PresetNotice{Kind: PresetLoadFailed, Title: "Load failed", Message: describeError(err), Err: err}
		}
		valid := validPresets(rockets)
		if dropped := len(rockets) - len(valid); dropped > 0 {
			log.Printf("[PresetManager] Dropped %d invalid preset(s)", dropped)
		}
		log.Printf("[PresetManager] Loaded %d preset(s)", len(valid))
		return PresetNotice{
			Kind:    PresetsLoaded,
			Title:   "Loaded",
			Message: fmt.Sprintf("Loaded %d rocket preset(s). Press N to cycle.", len(valid)),
			Presets: valid,
		}
	})
}

// run 在新 goroutine 中执行 op 并发送结果
func (pm *PresetManager) run(op func(ctx context.Context) PresetNotice) {
	pm.inFlight.Add(1)
	pm.wg.Add(1)
	go func() {
		defer pm.wg.Done()
		defer pm.inFlight.Add(-1)
		notice := op(pm.ctx)
		select {
		case pm.notices <- notice:
		case <-pm.ctx.Done():
		}
	}()
}

// post 从更新线程直接发送通知；通道已满时丢弃
func (pm *PresetManager) post(notice PresetNotice) {
	select {
	case pm.notices <- notice:
	default:
		log.Printf("[PresetManager] Notice dropped: %s", notice.Title)
	}
}

// Poll 取出所有已完成的操作结果
// 成功读取时替换缓存并持久化
func (pm *PresetManager) Poll() []PresetNotice {
	var out []PresetNotice
	for {
		select {
		case notice := <-pm.notices:
			if notice.Kind == PresetsLoaded {
				pm.applyLoaded(notice.Presets)
			}
			out = append(out, notice)
		default:
			return out
		}
	}
}

func (pm *PresetManager) applyLoaded(rockets []types.Rocket) {
	pm.cache = slices.Clone(rockets)
	pm.next = 0
	if pm.settings == nil {
		return
	}
	pm.settings.SetPresets(rockets)
	if err := pm.settings.Save(); err != nil {
		log.Printf("[PresetManager] Failed to persist presets: %v", err)
	}
}

// InFlight 返回尚未完成的后台请求数
func (pm *PresetManager) InFlight() int {
	return int(pm.inFlight.Load())
}

// Cached 返回缓存预设的副本
func (pm *PresetManager) Cached() []types.Rocket {
	return slices.Clone(pm.cache)
}

// NextCached 依次循环返回缓存中的预设，缓存为空时返回 false
func (pm *PresetManager) NextCached() (types.Rocket, bool) {
	if len(pm.cache) == 0 {
		return types.Rocket{}, false
	}
	if pm.next >= len(pm.cache) {
		pm.next = 0
	}
	rocket := pm.cache[pm.next]
	pm.next = (pm.next + 1) % len(pm.cache)
	return rocket, true
}

// Close 取消未完成的请求并等待后台 goroutine 退出
func (pm *PresetManager) Close() {
	pm.cancel()
	pm.wg.Wait()
}

// describeError 把客户端错误转换为面向用户的说明
func describeError(err error) string {
	var statusErr *presets.StatusError
	switch {
	case errors.Is(err, presets.ErrUnreachable):
		return "Could not reach the preset store. Check that the server is running."
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "The preset store did not answer in time."
	case errors.As(err, &statusErr):
		return fmt.Sprintf("The preset store rejected the request (HTTP %d).", statusErr.StatusCode)
	case errors.Is(err, presets.ErrBadResponse):
		return "The preset store sent a response that could not be read."
	default:
		return err.Error()
	}
}
