// Package xmetrics 提供存储事件的 OpenTelemetry 指标上报和标签化计时工具。
//
// # Recorder
//
// Recorder 实现 xstore.Recorder 接口，把命中/未命中/淘汰/过期/清扫事件
// 累加到 OTel Int64Counter 上：
//
//	rec, err := xmetrics.NewRecorder()
//	if err != nil { ... }
//	s, err := xstore.New[string](cfg, xstore.WithRecorder[string](rec))
//
// 设计决策: Recorder 的回调在存储互斥锁内同步执行，
// 因此各方法只做一次计数器累加，不做任何可能阻塞的操作。
//
// # Timings
//
// Timings 是标签化的耗时测量注册表，适合测量跨函数边界的阶段耗时：
//
//	tm := xmetrics.NewTimings()
//	tm.Start("warmup")
//	// ... 预热 ...
//	elapsed, err := tm.Stop("warmup")
//
// Stop 一个从未 Start 过的标签返回 ErrMissingLabel。
package xmetrics
