package presets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/decker502/fireworks/pkg/types"
)

// 文档存储的命令名
const (
	CommandInsert = "insert"
	CommandFind   = "find"
)

// QueryClient 使用查询字符串接口的预设客户端
//
//	GET {base}?command=insert&collection=rockets&data=<rocket json>
//	GET {base}?command=find&collection=rockets&data={}
type QueryClient struct {
	*transport
}

func (c *QueryClient) commandURL(command string, data []byte) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", c.baseURL, err)
	}
	q := u.Query()
	q.Set("command", command)
	q.Set("collection", c.collection)
	q.Set("data", string(data))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *QueryClient) get(ctx context.Context, command string, data []byte) ([]byte, error) {
	target, err := c.commandURL(command, data)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, command)
}

// Save 以 insert 命令保存预设
func (c *QueryClient) Save(ctx context.Context, rocket types.Rocket) error {
	payload, err := json.Marshal(rocket)
	if err != nil {
		return fmt.Errorf("encode rocket: %w", err)
	}
	_, err = shared(ctx, c.transport, "save", "save:"+string(payload), func(ctx context.Context) (struct{}, error) {
		_, err := c.get(ctx, CommandInsert, payload)
		return struct{}{}, err
	})
	return err
}

// LoadAll 以 find 命令读取全部预设
func (c *QueryClient) LoadAll(ctx context.Context) ([]types.Rocket, error) {
	return shared(ctx, c.transport, "load", "load", func(ctx context.Context) ([]types.Rocket, error) {
		body, err := c.get(ctx, CommandFind, []byte("{}"))
		if err != nil {
			return nil, err
		}
		return decodeRockets(body)
	})
}
