package xsweep

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

var (
	// ErrNilSweeper 表示传入的清扫目标为 nil。
	ErrNilSweeper = errors.New("xsweep: nil sweeper")

	// ErrInvalidSpec 表示 cron 表达式无效。
	ErrInvalidSpec = errors.New("xsweep: invalid cron spec")
)

// Sweeper 是可被调度清扫的存储。
// *xstore.Store[V] 天然满足此接口。
type Sweeper interface {
	// CleanupExpired 清扫所有已过期条目，返回移除数量。
	CleanupExpired() int
}

// Option 定义调度器可选配置函数类型。
type Option func(*Scheduler)

// WithOnSweep 设置每次清扫完成后的回调（包括移除数为 0 的空跑）。
// 回调在 cron 的调度 goroutine 中同步执行，应避免耗时操作。
func WithOnSweep(fn func(removed int)) Option {
	return func(s *Scheduler) {
		s.onSweep = fn
	}
}

// Scheduler 按 cron 表达式驱动存储清扫。
// 必须通过 [New] 创建。Start/Stop 并发安全且幂等。
type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	onSweep func(removed int)

	runs         atomic.Int64
	totalRemoved atomic.Int64

	mu          sync.Mutex
	lastRun     time.Time
	lastRemoved int
	running     bool
}

// Stats 是调度器执行统计的一次性快照。
type Stats struct {
	// Runs 已执行的清扫次数（含空跑）。
	Runs int64

	// TotalRemoved 累计移除的条目数。
	TotalRemoved int64

	// LastRun 最近一次执行的时刻，从未执行时为零值。
	LastRun time.Time

	// LastRemoved 最近一次执行的移除数。
	LastRemoved int
}

// New 创建调度器并注册清扫任务。
// spec 是 robfig/cron/v3 表达式，如 "@every 5m" 或 "0 4 * * *"。
// 表达式无效时返回 ErrInvalidSpec；创建后需调用 Start 才开始调度。
func New(sweeper Sweeper, spec string, opts ...Option) (*Scheduler, error) {
	if sweeper == nil {
		return nil, ErrNilSweeper
	}

	s := &Scheduler{
		cron:    cron.New(),
		sweeper: sweeper,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidSpec, spec, err)
	}
	return s, nil
}

// Start 启动调度（非阻塞）。重复调用无效果。
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true
	s.cron.Start()
}

// Stop 停止调度。返回的 context 在进行中的清扫完成后 Done。
// 重复调用安全。停止调度不影响存储内容。
func (s *Scheduler) Stop() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = false
	return s.cron.Stop()
}

// Stats 返回执行统计快照。
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Stats{
		Runs:         s.runs.Load(),
		TotalRemoved: s.totalRemoved.Load(),
		LastRun:      s.lastRun,
		LastRemoved:  s.lastRemoved,
	}
}

// run 实现单次调度执行：清扫、记账、回调。
func (s *Scheduler) run() {
	removed := s.sweeper.CleanupExpired()

	s.runs.Add(1)
	s.totalRemoved.Add(int64(removed))

	s.mu.Lock()
	s.lastRun = time.Now()
	s.lastRemoved = removed
	s.mu.Unlock()

	if s.onSweep != nil {
		s.onSweep(removed)
	}
}
