package xloader

import (
	"log/slog"
	"time"
)

// DefaultLoadTimeout 默认的单次回源超时。
// 在 singleflight 场景下防止 goroutine 因回源挂起而泄漏。
const DefaultLoadTimeout = 30 * time.Second

// Options 定义 Loader 的配置选项。
type Options struct {
	// EnableSingleflight 是否启用 singleflight 去重，默认为 true。
	EnableSingleflight bool

	// LoadTimeout 单次回源的超时时间。
	//   - > 0: 使用指定超时
	//   - == 0: 禁用超时（需确保 LoadFunc 不会无限阻塞）
	//   - < 0: 使用 DefaultLoadTimeout (30s)
	//
	// 注意：singleflight 场景下即使禁用超时，回源 context 仍会脱离
	// 原始取消链，避免首个调用者取消影响其他等待者。
	LoadTimeout time.Duration

	// Logger 用于记录写回失败等警告日志，默认 slog.Default()。
	Logger *slog.Logger
}

// Option 定义配置 Loader 的函数类型。
type Option func(*Options)

// defaultOptions 返回默认配置。
func defaultOptions() *Options {
	return &Options{
		EnableSingleflight: true,
		LoadTimeout:        DefaultLoadTimeout,
		Logger:             slog.Default(),
	}
}

// WithSingleflight 设置是否启用 singleflight 去重。
func WithSingleflight(enable bool) Option {
	return func(o *Options) {
		o.EnableSingleflight = enable
	}
}

// WithLoadTimeout 设置单次回源的超时时间。
func WithLoadTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.LoadTimeout = timeout
	}
}

// WithLogger 设置自定义 Logger。传入 nil 将禁用日志输出。
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
