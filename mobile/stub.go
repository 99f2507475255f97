//go:build !mobile

// stub.go - 桌面构建时的占位文件
//
// 桌面端没有 ebitenmobile 绑定，也没有 mobile/data 下的配置副本，
// 这里只保留导出符号，让 go build ./... 在不带 -tags mobile 时通过。
package mobile

// Dummy 与移动端版本保持同一导出签名
func Dummy() {}
