package xmetrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/omeyang/xstore/pkg/store/xstore"
)

const (
	defaultInstrumentationName = "github.com/omeyang/xstore/xmetrics"

	metricHits        = "xstore.hits"
	metricMisses      = "xstore.misses"
	metricEvictions   = "xstore.evictions"
	metricExpirations = "xstore.expirations"
	metricSweeps      = "xstore.sweeps"
)

type config struct {
	instrumentationName string
	meterProvider       metric.MeterProvider
}

// Option 定义 Recorder 的配置选项。
type Option func(*config)

// WithInstrumentationName 设置 OTel instrumentation 名称。
func WithInstrumentationName(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.instrumentationName = name
		}
	}
}

// WithMeterProvider 设置 MeterProvider，默认使用全局 Provider。
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg *config) {
		if provider != nil {
			cfg.meterProvider = provider
		}
	}
}

// Recorder 把存储事件累加到 OTel 计数器。
// 实现 xstore.Recorder 接口；各方法只做一次计数器累加，
// 可以安全地在存储互斥锁内执行。
type Recorder struct {
	hits        metric.Int64Counter
	misses      metric.Int64Counter
	evictions   metric.Int64Counter
	expirations metric.Int64Counter
	sweeps      metric.Int64Counter
}

var _ xstore.Recorder = (*Recorder)(nil)

// NewRecorder 创建 OTel 计数器并返回 Recorder。
func NewRecorder(opts ...Option) (*Recorder, error) {
	cfg := &config{
		instrumentationName: defaultInstrumentationName,
		meterProvider:       otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	meter := cfg.meterProvider.Meter(cfg.instrumentationName)

	r := &Recorder{}
	for _, c := range []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&r.hits, metricHits, "cache read hits"},
		{&r.misses, metricMisses, "cache read misses"},
		{&r.evictions, metricEvictions, "entries evicted by capacity"},
		{&r.expirations, metricExpirations, "entries removed by expiry"},
		{&r.sweeps, metricSweeps, "effective cleanup sweeps"},
	} {
		counter, err := meter.Int64Counter(c.name,
			metric.WithDescription(c.desc),
			metric.WithUnit("1"),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrCreateInstrument, c.name, err)
		}
		*c.dst = counter
	}
	return r, nil
}

// Hit 记录一次命中读取。
func (r *Recorder) Hit() {
	r.hits.Add(context.Background(), 1)
}

// Miss 记录一次未命中读取。
func (r *Recorder) Miss() {
	r.misses.Add(context.Background(), 1)
}

// Eviction 记录一次容量淘汰。
func (r *Recorder) Eviction() {
	r.evictions.Add(context.Background(), 1)
}

// Expiration 记录 n 个条目因过期被移除。
func (r *Recorder) Expiration(n int) {
	if n <= 0 {
		return
	}
	r.expirations.Add(context.Background(), int64(n))
}

// Sweep 记录一次有效清扫。
func (r *Recorder) Sweep(removed int) {
	if removed <= 0 {
		return
	}
	r.sweeps.Add(context.Background(), 1)
}
