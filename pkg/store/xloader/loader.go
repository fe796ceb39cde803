package xloader

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/omeyang/xstore/pkg/store/xstore"
)

// LoadFunc 定义从后端加载数据的函数类型。
type LoadFunc[V any] func(ctx context.Context) (V, error)

// Loader 是 xstore 之上的 Cache-Aside 加载器。
// 必须通过 [New] 创建。所有方法并发安全。
type Loader[V any] struct {
	store *xstore.Store[V]
	opts  *Options
	group singleflight.Group
}

// New 创建 Loader 实例。
// 如果 store 为 nil，返回 ErrNilStore。
func New[V any](store *xstore.Store[V], opts ...Option) (*Loader[V], error) {
	if store == nil {
		return nil, ErrNilStore
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return &Loader[V]{store: store, opts: o}, nil
}

// Load 从缓存加载数据，未命中时调用 fn 回源并按 ttl 写回。
// ttl 语义与 xstore.Set 一致：省略表示永不过期。
//
// 启用 singleflight 时，同一 key 的并发未命中只触发一次回源，
// 所有等待者共享同一份结果（或同一个错误）。
func (l *Loader[V]) Load(ctx context.Context, key string, fn LoadFunc[V], ttl ...time.Duration) (V, error) {
	var zero V
	if fn == nil {
		return zero, ErrNilLoadFunc
	}

	v, ok, err := l.store.Get(key)
	if err != nil {
		return zero, err
	}
	if ok {
		return v, nil
	}

	if !l.opts.EnableSingleflight {
		loadCtx, cancel := applyLoadTimeout(ctx, l.opts.LoadTimeout)
		defer cancel()
		return l.loadAndStore(loadCtx, key, fn, ttl)
	}

	res, err, _ := l.group.Do(key, func() (any, error) {
		// 脱离首个调用者的取消链并套上独立超时：
		// 首个调用者取消不应让其他等待者也拿到取消错误。
		loadCtx, cancel := detachedLoadContext(ctx, l.opts.LoadTimeout)
		defer cancel()
		return l.loadAndStore(loadCtx, key, fn, ttl)
	})
	if err != nil {
		return zero, err
	}
	return res.(V), nil
}

// loadAndStore 回源并写回缓存。
// 写回失败不阻断数据返回：记录警告，下次请求会再次回源。
func (l *Loader[V]) loadAndStore(ctx context.Context, key string, fn LoadFunc[V], ttl []time.Duration) (V, error) {
	var zero V

	v, err := fn(ctx)
	if err != nil {
		return zero, err
	}

	if setErr := l.store.Set(key, v, ttl...); setErr != nil {
		if l.opts.Logger != nil {
			l.opts.Logger.Warn("xloader: cache set failed",
				slog.String("key", key),
				slog.Any("error", setErr),
			)
		}
	}
	return v, nil
}

// =============================================================================
// context 辅助
// =============================================================================

// detachedCtx 脱离原始 context 取消链，但保留其 Value。
type detachedCtx struct {
	context.Context
}

func (c detachedCtx) Deadline() (time.Time, bool) { return time.Time{}, false }
func (c detachedCtx) Done() <-chan struct{}       { return nil }
func (c detachedCtx) Err() error                  { return nil }

// detachedLoadContext 创建脱离原始取消链、带独立超时的回源 context。
func detachedLoadContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	detached := detachedCtx{Context: ctx}

	if timeout == 0 {
		return context.WithCancel(detached)
	}
	if timeout < 0 {
		timeout = DefaultLoadTimeout
	}
	return context.WithTimeout(detached, timeout)
}

// applyLoadTimeout 在保留取消链的前提下套上回源超时（未启用 singleflight 时）。
func applyLoadTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout == 0 {
		return context.WithCancel(ctx)
	}
	if timeout < 0 {
		timeout = DefaultLoadTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
