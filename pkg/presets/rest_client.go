package presets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/decker502/fireworks/pkg/types"
)

// RESTClient 使用 REST 风格接口的预设客户端
//
//	POST {base}/{collection}  请求体为火箭 JSON
//	GET  {base}/{collection}  返回火箭 JSON 数组
type RESTClient struct {
	*transport
}

func (c *RESTClient) collectionURL() string {
	return c.baseURL + "/" + c.collection
}

// Save 保存预设，2xx 即视为成功
func (c *RESTClient) Save(ctx context.Context, rocket types.Rocket) error {
	payload, err := json.Marshal(rocket)
	if err != nil {
		return fmt.Errorf("encode rocket: %w", err)
	}

	_, err = shared(ctx, c.transport, "save", "save:"+string(payload), func(ctx context.Context) (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.collectionURL(), bytes.NewReader(payload))
		if err != nil {
			return struct{}{}, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		_, err = c.do(req, "save")
		return struct{}{}, err
	})
	return err
}

// LoadAll 读取全部预设
func (c *RESTClient) LoadAll(ctx context.Context) ([]types.Rocket, error) {
	return shared(ctx, c.transport, "load", "load", func(ctx context.Context) ([]types.Rocket, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.collectionURL(), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		body, err := c.do(req, "load")
		if err != nil {
			return nil, err
		}
		return decodeRockets(body)
	})
}
