// Package xstore 提供有界、支持 TTL 的 LRU 进程内键值存储。
//
// xstore 是热点路径缓存（用户查询、会话数据、临时计算结果）的核心子系统，
// 在容量压力、时间过期和批量变更下同时维持三组不变量：
// 淘汰正确性、过期正确性、统计一致性。
//
// # 核心特性
//
//   - 泛型值类型：Store[V any]，键固定为非空字符串
//   - 条目级 TTL：过期时刻在写入时固定，重新 Set 整体替换（包括 TTL）
//   - LRU 淘汰：容量满时淘汰最久未触碰的条目，插入和命中读取都算触碰
//   - 惰性过期 + 后台清扫：读路径按需移除过期条目，清扫器周期性兜底
//   - 批量操作：SetBulk/GetBulk/HasBulk/DeleteBulk，单次容量溢出计算
//   - 统计：廉价计数器常开，昂贵的内存估算显式开启、仅在 Stats() 中执行
//
// # 语义要点
//
//   - Get 命中会触碰条目（影响淘汰顺序），Has 不会
//   - 过期判定为严格大于：时间刚好等于过期时刻的条目仍视为存活
//   - 过期但未清扫的条目仍占用容量槽位，Len() 反映原始容器长度
//   - Delete 不关心过期状态：删除一个已过期未清扫的键仍返回 true
//   - TTL 省略表示永不过期；显式传入 ttl <= 0 表示写入即过期
//
// # 并发模型
//
// 整个引擎（容器 + 统计）由单把互斥锁保护，每个实例一把。
// 不做读写锁拆分：触碰会修改共享的 recency 顺序，命中读取本质上是写。
// 后台清扫器与惰性过期复用同一把锁下的同一条移除例程，
// 任何操作都不可能观察到半变更状态。
//
// # 资源管理
//
// Store 独占拥有全部条目；返回给调用方的值是赋值拷贝语义，
// 调用方对返回值的修改不保证写回存储。
// New 会启动清扫 goroutine（CleanupInterval > 0 时），
// StartSweep/StopSweep 可重复调用且不泄漏周期任务，
// 停止清扫不清空已有条目；Close 停止清扫并清空存储。
//
// # 已知限制
//
//   - 非分布式：无复制、无跨进程一致性、无持久化
//   - 不压缩、不序列化存储值
//   - Keys() 可能包含已过期未清扫的键；Values()/Entries() 只返回存活条目
package xstore
