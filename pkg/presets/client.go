// Package presets talks to the remote rocket preset store.
//
// Two request shapes are supported: a REST collection endpoint and a
// query-string document store (command/collection/data). Both are single
// attempt; callers decide whether to retry.
package presets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/types"
	"golang.org/x/sync/singleflight"
)

// maxErrorBody 错误信息中保留的响应体长度
const maxErrorBody = 256

// Client 预设存储客户端
type Client interface {
	// Save 保存一个火箭预设
	Save(ctx context.Context, rocket types.Rocket) error
	// LoadAll 读取全部预设
	LoadAll(ctx context.Context) ([]types.Rocket, error)
}

// NewClient 根据配置的 mode 创建对应的客户端
// httpClient 为 nil 时使用默认客户端
func NewClient(cfg config.PresetStoreConfig, httpClient *http.Client) (Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	base := &transport{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		collection: cfg.Collection,
		timeout:    cfg.Timeout,
		httpClient: httpClient,
	}
	if base.collection == "" {
		base.collection = config.DefaultFireworksConfig().PresetStore.Collection
	}

	switch cfg.Mode {
	case config.PresetModeREST, "":
		return &RESTClient{base}, nil
	case config.PresetModeQuery:
		return &QueryClient{base}, nil
	default:
		return nil, fmt.Errorf("unknown preset store mode %q", cfg.Mode)
	}
}

// transport 两种客户端共用的 HTTP 细节：超时、合并并发请求、状态码检查
type transport struct {
	baseURL    string
	collection string
	timeout    time.Duration
	httpClient *http.Client

	group singleflight.Group
}

// callContext 为共享请求创建上下文
//
// 配置了超时时，请求脱离发起者的取消信号，只受超时约束：合并进来的其他
// 调用者不会因为第一个调用者放弃而失败。未配置超时时沿用发起者的 ctx。
func (t *transport) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if t.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(context.WithoutCancel(ctx), t.timeout)
}

// do 发送请求并返回 2xx 响应体
func (t *transport) do(req *http.Request, op string) ([]byte, error) {
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w: %w", op, ErrUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := strings.TrimSpace(string(body))
		text = truncateUTF8(text, maxErrorBody)
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Body: text}
	}
	return body, nil
}

// shared 合并同一 key 的并发调用，后到的调用共享第一次调用的结果
//
// 每个调用者只等待到自己的 ctx 结束为止，提前返回不会取消共享的请求。
func shared[T any](ctx context.Context, t *transport, op, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	ch := t.group.DoChan(key, func() (any, error) {
		callCtx, cancel := t.callContext(ctx)
		defer cancel()
		return fn(callCtx)
	})

	select {
	case res := <-ch:
		result, _ := res.Val.(T)
		return result, res.Err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("%s: %w", op, ctx.Err())
	}
}

// truncateUTF8 截断到不超过 limit 字节，且不切断多字节字符
func truncateUTF8(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
