//go:build !mobile

package utils

import "testing"

// TestIsMobile_Desktop 测试桌面端编译时 IsMobile() 默认返回 false
func TestIsMobile_Desktop(t *testing.T) {
	t.Setenv("FIREWORKS_MOBILE_EMULATE", "")
	if IsMobile() {
		t.Error("IsMobile() should return false on desktop")
	}
}

func TestIsMobile_Emulate(t *testing.T) {
	t.Setenv("FIREWORKS_MOBILE_EMULATE", "1")
	if !IsMobile() {
		t.Error("IsMobile() should honour FIREWORKS_MOBILE_EMULATE=1")
	}
}

func TestStorageDefaults(t *testing.T) {
	if err := EnsureStorageDir(); err != nil {
		t.Errorf("EnsureStorageDir() error: %v", err)
	}
	if GetStoragePath() != "" {
		t.Errorf("GetStoragePath() = %q, want empty on desktop", GetStoragePath())
	}
}
