package xrun

import (
	"context"
	"os"
	"syscall"
	"time"
)

// DefaultSignals 返回默认监听的系统信号列表。
//
// 包含 SIGHUP、SIGINT、SIGTERM、SIGQUIT。SIGHUP 在终端断开时也会触发，
// 如需排除可通过 [WithSignals] 自定义列表。
// 每次调用返回新的切片，调用者可安全修改。
func DefaultSignals() []os.Signal {
	return []os.Signal{
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	}
}

// testSigChanKey 用于在测试中通过 context 注入信号通道，
// 避免测试发送真实系统信号。生产路径只有一次 context.Value 查找。
type testSigChanKey struct{}

func testSigChan(ctx context.Context) <-chan os.Signal {
	c, ok := ctx.Value(testSigChanKey{}).(<-chan os.Signal)
	if !ok {
		return nil
	}
	return c
}

func withTestSigChan(ctx context.Context, c <-chan os.Signal) context.Context {
	return context.WithValue(ctx, testSigChanKey{}, c)
}

// =============================================================================
// 服务函数
// =============================================================================

// Ticker 返回周期性执行任务的服务函数。
//
// interval 必须为正数，否则服务函数返回 ErrInvalidInterval。
// immediate 为 true 时启动后立即执行一次；ctx 取消时返回 ctx.Err()。
func Ticker(interval time.Duration, immediate bool, fn func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if interval <= 0 {
			return ErrInvalidInterval
		}
		if fn == nil {
			return ErrNilFunc
		}

		if immediate {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err := fn(ctx); err != nil {
				return err
			}
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := fn(ctx); err != nil {
					return err
				}
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// WaitForDone 返回等待 context 取消的占位服务函数，
// 用于保持 Group 运行直到收到取消信号。
func WaitForDone() func(ctx context.Context) error {
	return func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}
}

// Sweeper 是可被周期清扫的存储，*xstore.Store[V] 天然满足。
type Sweeper interface {
	CleanupExpired() int
}

// SweepService 返回按固定间隔驱动存储清扫的服务函数，
// 使存储清扫作为 Group 管理的服务运行。
// 适用于关闭了内置清扫器（CleanupInterval < 0）、
// 希望清扫随进程生命周期统一编排的部署形态。
func SweepService(sweeper Sweeper, interval time.Duration) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if sweeper == nil {
			return ErrNilService
		}
		return Ticker(interval, false, func(context.Context) error {
			sweeper.CleanupExpired()
			return nil
		})(ctx)
	}
}
