package xstore

// 批量操作层：可观测结果必须等价于按输入顺序逐项执行单项操作，
// 区别只在性能——容量溢出对整个批次只计算一次，而非逐项计算。
//
// 非法键（空字符串）在批量变体中被静默跳过而非让整批失败；
// 作为补偿，每个批量变更都返回实际生效的数量，
// 调用方无需部分失败错误列表也能察觉有条目被丢弃。

// SetBulk 批量写入，返回实际写入的条目数。
//
// 先对整个批次做一次容量核算：统计批次中尚不存在的有效新键数，
// 如果当前长度加新键数超出容量，按最旧优先规则一次性淘汰溢出量，
// 然后按输入顺序逐项写入（已存在的键按单项 Set 的触碰语义原地替换）。
func (s *Store[V]) SetBulk(items []BulkItem[V]) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || len(items) == 0 {
		return 0
	}

	// 单次溢出计算：批次内去重，只数尚不存在的有效键。
	newKeys := make(map[string]struct{})
	for _, it := range items {
		if it.Key == "" {
			continue
		}
		if _, ok := s.items[it.Key]; !ok {
			newKeys[it.Key] = struct{}{}
		}
	}
	overflow := len(s.items) + len(newKeys) - s.capacity
	for i := 0; i < overflow; i++ {
		s.evictOldestLocked()
	}

	applied := 0
	for _, it := range items {
		if it.Key == "" {
			continue
		}
		if it.TTL != nil {
			s.setLocked(it.Key, it.Value, *it.TTL, true)
		} else {
			s.setLocked(it.Key, it.Value, 0, false)
		}
		applied++
	}
	return applied
}

// GetBulk 批量读取，返回命中键到值的映射；未命中（含过期）的键不在映射中。
// 过期判定与移除逐键等同于 Get，存活命中按输入顺序触碰。
func (s *Store[V]) GetBulk(keys []string) map[string]V {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]V, len(keys))
	if s.closed {
		return out
	}

	now := s.clock.Now()
	for _, key := range keys {
		if key == "" {
			continue
		}
		el, ok := s.items[key]
		if !ok {
			s.rec.Miss()
			continue
		}
		e := el.Value.(*entry[V])
		if e.expired(now) {
			s.removeExpiredLocked(el)
			s.rec.Miss()
			continue
		}
		s.order.MoveToBack(el)
		s.rec.Hit()
		out[key] = e.value
	}
	return out
}

// HasBulk 批量存在性检查，返回键到存在与否的映射。
// 过期判定与 GetBulk 一致，但绝不触碰淘汰顺序，与 Has 对齐。
func (s *Store[V]) HasBulk(keys []string) map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]bool, len(keys))
	if s.closed {
		for _, key := range keys {
			if key != "" {
				out[key] = false
			}
		}
		return out
	}

	for _, key := range keys {
		if key == "" {
			continue
		}
		out[key] = s.hasLocked(key)
	}
	return out
}

// DeleteBulk 批量无条件删除，返回实际删除的数量。
func (s *Store[V]) DeleteBulk(keys []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0
	}

	removed := 0
	for _, key := range keys {
		if key == "" {
			continue
		}
		if s.deleteLocked(key) {
			removed++
		}
	}
	return removed
}
