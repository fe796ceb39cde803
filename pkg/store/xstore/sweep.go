package xstore

// 后台清扫器：约束"已过期但从未被访问"条目的存活时间，
// 让 Len()/TotalEntries 无需调用方动作也能最终准确。
// 周期触发与手动调用走同一条移除例程。

// CleanupExpired 立即清扫所有已过期条目，返回移除数量。
// 可与周期触发并存，重复调用安全；
// 没有过期条目时返回 0 且不改动 CleanupRuns/LastCleanup。
func (s *Store[V]) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0
	}
	return s.sweepLocked()
}

// StartSweep 启动后台清扫 goroutine。
// 幂等：已在运行、清扫被禁用（周期 <= 0）或存储已关闭时无效果。
func (s *Store[V]) StartSweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.sweeping || s.sweepInterval <= 0 {
		return
	}
	s.sweeping = true
	s.sweepStop = make(chan struct{})
	s.wg.Add(1)
	go s.sweepLoop(s.sweepStop)
}

// StopSweep 停止后台清扫并等待 goroutine 退出。
// 幂等。停止清扫不清空已有条目，惰性过期不受影响。
func (s *Store[V]) StopSweep() {
	s.mu.Lock()
	if !s.sweeping {
		s.mu.Unlock()
		return
	}
	s.sweeping = false
	close(s.sweepStop)
	s.mu.Unlock()

	s.wg.Wait()
}

// sweepLoop 周期触发清扫，直到 stop 关闭。
// 进行中的单次清扫不可中断——它持锁运行至扫描结束。
func (s *Store[V]) sweepLoop(stop <-chan struct{}) {
	defer s.wg.Done()

	ticker := s.clock.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			s.CleanupExpired()
		}
	}
}

// sweepLocked 单趟扫描移除全部过期条目。
// 有条目被移除时：CleanupRuns 自增、LastCleanup 刷新、
// 移除数计入 ExpiredEntries；空跑不留痕迹。
func (s *Store[V]) sweepLocked() int {
	now := s.clock.Now()

	removed := 0
	for el := s.order.Front(); el != nil; {
		next := el.Next()
		e := el.Value.(*entry[V])
		if e.expired(now) {
			delete(s.items, e.key)
			s.order.Remove(el)
			removed++
		}
		el = next
	}

	if removed > 0 {
		if s.enableStats {
			s.expiredEntries += uint64(removed)
			s.cleanupRuns++
			s.lastCleanup = now
		}
		s.rec.Expiration(removed)
		s.rec.Sweep(removed)
	}
	return removed
}
