package xstore

import "errors"

var (
	// ErrInvalidKey 表示键为空字符串。
	ErrInvalidKey = errors.New("xstore: key must not be empty")

	// ErrInvalidCapacity 表示容量配置无效。
	ErrInvalidCapacity = errors.New("xstore: max entries must be greater than 0")

	// ErrClosed 表示存储已关闭。
	// 关闭后读操作返回零值/false，变更操作返回此错误。
	ErrClosed = errors.New("xstore: store is closed")
)
