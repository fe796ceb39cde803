package xstore

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// 默认配置值。
const (
	// DefaultMaxEntries 默认容量上限。
	DefaultMaxEntries = 10000

	// DefaultCleanupInterval 默认清扫周期。
	DefaultCleanupInterval = 60 * time.Second
)

// Config 定义存储配置。
type Config struct {
	// MaxEntries 容量上限，必须大于 0。
	// 零值使用 DefaultMaxEntries。
	MaxEntries int

	// CleanupInterval 后台清扫周期。
	// 零值使用 DefaultCleanupInterval；负值禁用后台清扫
	// （惰性过期和手动 CleanupExpired 仍然有效）。
	CleanupInterval time.Duration

	// DisableStats 关闭累计计数器（过期数、清扫次数等）。
	// 零值即开启统计；关闭后 Stats() 仍报告 TotalEntries
	// （镜像容器长度，无额外开销）。
	DisableStats bool

	// EnableDetailedMemoryStats 是否在 Stats() 中执行昂贵的内存估算。
	// 估算是 O(N) 全量扫描，绝不会在热点路径上自动运行。
	EnableDetailedMemoryStats bool
}

// DefaultConfig 返回默认配置：
// 容量 10000，清扫周期 60s，计数器开启，内存估算关闭。
func DefaultConfig() Config {
	return Config{
		MaxEntries:      DefaultMaxEntries,
		CleanupInterval: DefaultCleanupInterval,
	}
}

// Recorder 接收存储事件通知，用于外部指标系统。
// 实现见 pkg/observability/xmetrics。
//
// 设计决策: 回调在存储的互斥锁内同步执行。实现方必须遵守：
//   - 严禁在回调中调用 Store 自身的任何方法，否则会死锁
//   - 应避免耗时操作，计数器自增级别的开销为宜
type Recorder interface {
	// Hit 记录一次命中读取。
	Hit()

	// Miss 记录一次未命中读取（含键已过期的情况）。
	Miss()

	// Eviction 记录一次容量淘汰。
	Eviction()

	// Expiration 记录 n 个条目因过期被移除（惰性或清扫）。
	Expiration(n int)

	// Sweep 记录一次有效清扫及其移除数量。
	Sweep(removed int)
}

// nopRecorder 是 Recorder 的空实现，未配置时使用。
type nopRecorder struct{}

func (nopRecorder) Hit()           {}
func (nopRecorder) Miss()          {}
func (nopRecorder) Eviction()      {}
func (nopRecorder) Expiration(int) {}
func (nopRecorder) Sweep(int)      {}

// Option 定义存储可选配置函数类型。
type Option[V any] func(*options[V])

// options 内部可选配置。
type options[V any] struct {
	clock     clockwork.Clock
	recorder  Recorder
	onEvicted func(key string, value V)
}

// WithClock 注入时钟源，默认使用真实时钟。
// 测试中注入 clockwork.NewFakeClock() 可确定性地推进过期时间。
func WithClock[V any](clock clockwork.Clock) Option[V] {
	return func(o *options[V]) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithRecorder 设置存储事件接收器。
func WithRecorder[V any](rec Recorder) Option[V] {
	return func(o *options[V]) {
		if rec != nil {
			o.recorder = rec
		}
	}
}

// WithOnEvicted 设置条目因容量淘汰被移除时的回调函数。
// 仅容量淘汰触发；过期移除和显式删除不触发。
// 回调在互斥锁内执行，约束与 Recorder 相同。
func WithOnEvicted[V any](fn func(key string, value V)) Option[V] {
	return func(o *options[V]) {
		o.onEvicted = fn
	}
}
