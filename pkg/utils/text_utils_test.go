package utils

import "testing"

// TestWrapText 测试文本换行功能
func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxChars int
		want     []string
	}{
		{"短文本不换行", "hello world", 20, []string{"hello world"}},
		{"按单词换行", "hello brave new world", 11, []string{"hello brave", "new world"}},
		{"超长单词独占一行", "abcdefghijkl x", 5, []string{"abcdefghijkl", "x"}},
		{"连续空白", "a   b\n\nc", 10, []string{"a b c"}},
		{"宽度为零", "keep as is", 0, []string{"keep as is"}},
		{"空文本", "", 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.input, tt.maxChars)
			if len(got) != len(tt.want) {
				t.Fatalf("WrapText() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
