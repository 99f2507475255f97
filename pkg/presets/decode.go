package presets

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"strconv"

	"github.com/decker502/fireworks/pkg/types"
)

// decodeRockets 解析预设列表
//
// 接受两种形状：
//   - JSON 数组：[{"color":...}, ...]
//   - 以文档 ID 为键的对象：{"1": {...}, "2": {...}}，按 ID 排序（数字 ID 按数值且在前）
//
// 空响应体和 null 视为空列表。
func decodeRockets(body []byte) ([]types.Rocket, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return []types.Rocket{}, nil
	}

	switch body[0] {
	case '[':
		var rockets []types.Rocket
		if err := json.Unmarshal(body, &rockets); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadResponse, err)
		}
		return rockets, nil
	case '{':
		var byID map[string]types.Rocket
		if err := json.Unmarshal(body, &byID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadResponse, err)
		}
		keys := make([]string, 0, len(byID))
		for k := range byID {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, compareIDs)
		rockets := make([]types.Rocket, 0, len(keys))
		for _, k := range keys {
			rockets = append(rockets, byID[k])
		}
		return rockets, nil
	default:
		log.Printf("[presets] unexpected response: %.64s", body)
		return nil, fmt.Errorf("%w: unexpected payload", ErrBadResponse)
	}
}

// compareIDs 数字 ID 按数值排在前面，其余 ID 按字符串排在后面
func compareIDs(a, b string) int {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(na, nb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}
