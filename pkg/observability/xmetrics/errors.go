package xmetrics

import "errors"

var (
	// ErrCreateInstrument 表示创建 OTel 指标失败。
	ErrCreateInstrument = errors.New("xmetrics: create instrument failed")

	// ErrEmptyLabel 表示计时标签为空。
	ErrEmptyLabel = errors.New("xmetrics: empty timing label")

	// ErrMissingLabel 表示 Stop 的标签从未被 Start。
	ErrMissingLabel = errors.New("xmetrics: timing label was never started")
)
