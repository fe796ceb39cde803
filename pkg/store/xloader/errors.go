package xloader

import "errors"

var (
	// ErrNilStore 表示传入的存储为 nil。
	ErrNilStore = errors.New("xloader: nil store")

	// ErrNilLoadFunc 表示传入的回源函数为 nil。
	ErrNilLoadFunc = errors.New("xloader: nil load func")
)
