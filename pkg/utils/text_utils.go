package utils

import (
	"strings"
)

// WrapText 将文本按单词折行，每行不超过 maxChars 个字符
// 用于等宽的调试字体（ebitenutil.DebugPrint）
//
// 换行规则:
//   - 在空白处断行，连续空白视为一个
//   - 单个单词超过 maxChars 时独占一行，不拆分
//   - maxChars <= 0 时原样返回
func WrapText(textStr string, maxChars int) []string {
	if maxChars <= 0 {
		return []string{textStr}
	}

	var (
		lines       []string
		currentLine strings.Builder
	)
	for _, word := range strings.Fields(textStr) {
		if currentLine.Len() > 0 && currentLine.Len()+1+len(word) > maxChars {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
		}
		if currentLine.Len() > 0 {
			currentLine.WriteByte(' ')
		}
		currentLine.WriteString(word)
	}

	// 添加最后一行
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}
	return lines
}
