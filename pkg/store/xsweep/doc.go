// Package xsweep 提供基于 cron 表达式的过期清扫调度。
//
// xstore 内置的清扫器按固定周期运行；xsweep 面向偏好 cron 表达式的
// 部署形态（例如"每天凌晨四点清一次"），把任意实现了 Sweeper 接口的
// 存储挂到 robfig/cron/v3 的调度上，并记录执行统计。
//
// # 使用方式
//
//	sched, err := xsweep.New(store, "@every 5m",
//	    xsweep.WithOnSweep(func(removed int) {
//	        log.Printf("swept %d entries", removed)
//	    }))
//	if err != nil { ... }
//	sched.Start()
//	defer func() { <-sched.Stop().Done() }()
//
// # 与内置清扫器的关系
//
// 两者调用同一个 CleanupExpired 例程，可以并存；
// 通常二选一：固定周期用内置清扫器（xstore.Config.CleanupInterval），
// cron 表达式用 xsweep（此时将 CleanupInterval 设为负值禁用内置清扫）。
package xsweep
