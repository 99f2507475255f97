package presets

import (
	"errors"
	"fmt"
)

// ErrUnreachable 预设服务无法连接（网络错误、超时、连接被拒绝）
var ErrUnreachable = errors.New("preset store unreachable")

// ErrBadResponse 预设服务返回了无法解析的内容
var ErrBadResponse = errors.New("preset store returned an invalid response")

// StatusError 预设服务返回非 2xx 状态码
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Op, e.StatusCode, e.Body)
}
