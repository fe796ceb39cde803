package xstore

import "time"

// Stats 是存储统计信息的一次性快照。
type Stats struct {
	// TotalEntries 当前条目数，始终镜像容器长度
	// （包含已过期但尚未清扫的条目）。
	TotalEntries int

	// ExpiredEntries 因过期被移除的条目累计数（惰性 + 清扫），
	// 单调不减，Clear 时归零但绝不因其他操作递减。
	ExpiredEntries uint64

	// TotalMemoryUsage 尽力而为的内存占用估算（字节）。
	// 仅在 EnableDetailedMemoryStats 开启时计算，否则恒为 0。
	TotalMemoryUsage int

	// CleanupRuns 有效清扫（移除数 > 0）的累计次数。
	CleanupRuns uint64

	// LastCleanup 最近一次有效清扫的时刻，从未清扫时为零值。
	LastCleanup time.Time
}

// Stats 返回统计快照。
//
// TotalEntries 永远可用（镜像容器长度，零开销）。
// DisableStats 开启时累计计数器保持为零。
// EnableDetailedMemoryStats 开启时在此处执行 O(N) 内存估算——
// 这是估算唯一的执行点，绝不在读写热路径上运行。
func (s *Store[V]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{TotalEntries: len(s.items)}
	if s.enableStats {
		st.ExpiredEntries = s.expiredEntries
		st.CleanupRuns = s.cleanupRuns
		st.LastCleanup = s.lastCleanup
	}
	if s.detailedStats {
		st.TotalMemoryUsage = s.estimateLocked()
	}
	return st
}

// estimateLocked 全量扫描累加每个键值对的估算尺寸。
func (s *Store[V]) estimateLocked() int {
	total := 0
	for el := s.order.Front(); el != nil; el = el.Next() {
		e := el.Value.(*entry[V])
		total += entryOverheadBytes + estimateSize(e.key) + estimateSize(e.value)
	}
	return total
}
