package xmetrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Timings 是标签化的耗时测量注册表。
// 并发安全；同一标签重复 Start 会重置起点。
type Timings struct {
	clock clockwork.Clock

	mu      sync.Mutex
	started map[string]time.Time
}

// TimingsOption 定义 Timings 的配置选项。
type TimingsOption func(*Timings)

// WithTimingsClock 注入时钟源，测试中使用假时钟。
func WithTimingsClock(clock clockwork.Clock) TimingsOption {
	return func(t *Timings) {
		if clock != nil {
			t.clock = clock
		}
	}
}

// NewTimings 创建计时注册表。
func NewTimings(opts ...TimingsOption) *Timings {
	t := &Timings{
		clock:   clockwork.NewRealClock(),
		started: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start 记录标签的计时起点。
// 标签已存在时重置起点；空标签返回 ErrEmptyLabel。
func (t *Timings) Start(label string) error {
	if label == "" {
		return ErrEmptyLabel
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.started[label] = t.clock.Now()
	return nil
}

// Stop 结束标签计时并返回经过的时长。
// 标签从未 Start（或已被 Stop）时返回 ErrMissingLabel。
func (t *Timings) Stop(label string) (time.Duration, error) {
	if label == "" {
		return 0, ErrEmptyLabel
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	start, ok := t.started[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingLabel, label)
	}
	delete(t.started, label)
	return t.clock.Since(start), nil
}

// Active 返回当前进行中的标签数。
func (t *Timings) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.started)
}
