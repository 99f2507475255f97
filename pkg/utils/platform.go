//go:build !mobile

package utils

import "os"

// IsMobile 是否以触屏模式运行
// 桌面端返回 false；设置 FIREWORKS_MOBILE_EMULATE=1 可在桌面上模拟触屏（调试用）
func IsMobile() bool {
	return os.Getenv("FIREWORKS_MOBILE_EMULATE") == "1"
}
