package utils

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 30}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"左上角", 10, 20, true},
		{"右下角", 110, 50, true},
		{"中心", 60, 35, true},
		{"左侧外部", 9.9, 30, false},
		{"下方外部", 50, 50.1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
