// Package xrun 提供基于 errgroup 的服务生命周期管理。
//
// Group 把多个长驻服务（存储清扫、配置监视等）编排为一个单元：
// 任一服务出错或收到系统信号时，所有服务协调关闭。
//
// 最常用的入口是 Run：
//
//	err := xrun.Run(ctx,
//	    xrun.SweepService(store, time.Minute),
//	    watcherService,
//	)
//	if errors.Is(err, xrun.ErrSignal) {
//	    // 信号退出，正常关闭
//	}
//
// 需要更细粒度控制时直接使用 NewGroup / Go / Wait。
package xrun
