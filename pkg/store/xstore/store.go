package xstore

import (
	"container/list"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Store 是有界、支持 TTL 的 LRU 键值存储。
// 必须通过 [New] 创建，零值不可用。
// 所有方法都是并发安全的。
//
// 容器结构刻意保持机械直观：map 提供 O(1) 键定位，
// 双向链表维护触碰顺序——表头是最久未触碰的条目（淘汰候选），
// 表尾是最近触碰的条目。
type Store[V any] struct {
	mu sync.Mutex

	capacity  int
	items     map[string]*list.Element
	order     *list.List // Front = 最久未触碰 (LRU)，Back = 最近触碰 (MRU)
	clock     clockwork.Clock
	rec       Recorder
	onEvicted func(key string, value V)

	enableStats   bool
	detailedStats bool

	// 累计计数器，仅在 enableStats 时维护。
	expiredEntries uint64
	cleanupRuns    uint64
	lastCleanup    time.Time

	sweepInterval time.Duration
	sweepStop     chan struct{}
	sweeping      bool
	wg            sync.WaitGroup

	closed bool
}

// New 创建存储并启动后台清扫（CleanupInterval >= 0 时）。
// 如果 cfg.MaxEntries 为负，返回 ErrInvalidCapacity。
func New[V any](cfg Config, opts ...Option[V]) (*Store[V], error) {
	if cfg.MaxEntries < 0 {
		return nil, ErrInvalidCapacity
	}
	if cfg.MaxEntries == 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if cfg.CleanupInterval == 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}

	o := &options[V]{
		clock:    clockwork.NewRealClock(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	s := &Store[V]{
		capacity:      cfg.MaxEntries,
		items:         make(map[string]*list.Element),
		order:         list.New(),
		clock:         o.clock,
		rec:           o.recorder,
		onEvicted:     o.onEvicted,
		enableStats:   !cfg.DisableStats,
		detailedStats: cfg.EnableDetailedMemoryStats,
		sweepInterval: cfg.CleanupInterval,
	}

	s.StartSweep()
	return s, nil
}

// Set 写入或覆盖一个键。
//
// ttl 至多传一个：省略表示永不过期；ttl <= 0 表示写入即逻辑过期，
// 该条目占用一个槽位直到下次访问或清扫时被移除并计入过期统计。
//
// 键已存在时整体替换条目（包括 TTL）并移动到最新位置——
// 更新算触碰而非新插入，不参与容量核算。
// 新键写入且容量已满时，先淘汰恰好一个最久未触碰的条目。
func (s *Store[V]) Set(key string, value V, ttl ...time.Duration) error {
	if key == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	d, hasTTL := singleTTL(ttl)
	s.setLocked(key, value, d, hasTTL)
	return nil
}

// Get 读取一个键。
//
// 惰性过期：已过期的键在访问时被移除并计入过期统计，返回未命中。
// 命中读取会将条目移动到最新位置（触碰），返回值是赋值拷贝语义。
func (s *Store[V]) Get(key string) (V, bool, error) {
	var zero V
	if key == "" {
		return zero, false, ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return zero, false, nil
	}

	el, ok := s.items[key]
	if !ok {
		s.rec.Miss()
		return zero, false, nil
	}

	e := el.Value.(*entry[V])
	if e.expired(s.clock.Now()) {
		s.removeExpiredLocked(el)
		s.rec.Miss()
		return zero, false, nil
	}

	s.order.MoveToBack(el)
	s.rec.Hit()
	return e.value, true, nil
}

// Has 检查键是否存在。
// 过期检查与 Get 一致（同样惰性移除），但存活命中不触碰条目——
// 存在性检查不得扰动淘汰顺序。
func (s *Store[V]) Has(key string) (bool, error) {
	if key == "" {
		return false, ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, nil
	}
	return s.hasLocked(key), nil
}

// hasLocked 是 Has 与 HasBulk 共用的实现。
func (s *Store[V]) hasLocked(key string) bool {
	el, ok := s.items[key]
	if !ok {
		return false
	}
	if el.Value.(*entry[V]).expired(s.clock.Now()) {
		s.removeExpiredLocked(el)
		return false
	}
	return true
}

// Delete 无条件删除一个键，返回是否实际发生了删除。
// 不检查过期状态：删除一个已过期未清扫的键仍返回 true。
func (s *Store[V]) Delete(key string) (bool, error) {
	if key == "" {
		return false, ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrClosed
	}
	return s.deleteLocked(key), nil
}

// Clear 清空所有条目。
// 重置 TotalEntries/ExpiredEntries/TotalMemoryUsage；
// 保留 CleanupRuns/LastCleanup——它们描述清扫器自身的历史而非存储内容。
func (s *Store[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.items = make(map[string]*list.Element)
	s.order.Init()
	s.expiredEntries = 0
}

// Len 返回当前容器长度，O(1)。
// 包含已过期但尚未清扫的条目——这是权威长度，与 Stats().TotalEntries 一致。
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Keys 返回所有键，按从最旧到最新的触碰顺序排列。
// 可能包含已过期但尚未清扫的键。
func (s *Store[V]) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, s.order.Len())
	for el := s.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*entry[V]).key)
	}
	return out
}

// Values 全量扫描并返回所有存活值，按从最旧到最新的触碰顺序排列。
// 扫描途中遇到的过期条目被惰性移除并计入过期统计，
// 因此返回长度可能小于 Len()。
func (s *Store[V]) Values() []V {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]V, 0, s.order.Len())
	s.scanLiveLocked(func(e *entry[V]) {
		out = append(out, e.value)
	})
	return out
}

// Entries 与 Values 相同，但返回键值对。
func (s *Store[V]) Entries() []KV[V] {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]KV[V], 0, s.order.Len())
	s.scanLiveLocked(func(e *entry[V]) {
		out = append(out, KV[V]{Key: e.key, Value: e.value})
	})
	return out
}

// Close 关闭存储：停止清扫 goroutine 并清空条目。
// 幂等，可重复调用。关闭后读操作返回零值/false，变更操作返回 ErrClosed。
func (s *Store[V]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.sweeping {
		s.sweeping = false
		close(s.sweepStop)
	}
	s.items = make(map[string]*list.Element)
	s.order.Init()
	s.mu.Unlock()

	s.wg.Wait()
}

// =============================================================================
// 内部实现（调用方必须持有 s.mu）
// =============================================================================

// setLocked 是 Set 与 SetBulk 共用的写入例程。
func (s *Store[V]) setLocked(key string, value V, ttl time.Duration, hasTTL bool) {
	var expiresAt time.Time
	if hasTTL {
		expiresAt = s.clock.Now().Add(ttl)
	}

	if el, ok := s.items[key]; ok {
		// 替换整个条目（包括 TTL）并移动到最新位置。
		e := el.Value.(*entry[V])
		e.value = value
		e.hasExpiry = hasTTL
		e.expiresAt = expiresAt
		s.order.MoveToBack(el)
		return
	}

	if len(s.items) >= s.capacity {
		s.evictOldestLocked()
	}

	e := &entry[V]{
		key:       key,
		value:     value,
		expiresAt: expiresAt,
		hasExpiry: hasTTL,
	}
	s.items[key] = s.order.PushBack(e)
}

// evictOldestLocked 淘汰触碰顺序中最旧的一个条目。
// 容量淘汰不计入过期统计——即使被淘汰的条目碰巧已过期，
// ExpiredEntries 只统计因过期本身发生的移除。
func (s *Store[V]) evictOldestLocked() {
	el := s.order.Front()
	if el == nil {
		return
	}
	e := el.Value.(*entry[V])
	delete(s.items, e.key)
	s.order.Remove(el)
	s.rec.Eviction()
	if s.onEvicted != nil {
		s.onEvicted(e.key, e.value)
	}
}

// removeExpiredLocked 移除一个已过期条目并更新统计。
// 这是惰性过期的唯一移除路径；清扫器经由 sweepLocked 批量走同样的账目。
func (s *Store[V]) removeExpiredLocked(el *list.Element) {
	e := el.Value.(*entry[V])
	delete(s.items, e.key)
	s.order.Remove(el)
	if s.enableStats {
		s.expiredEntries++
	}
	s.rec.Expiration(1)
}

// deleteLocked 无条件删除，返回键是否存在。
func (s *Store[V]) deleteLocked(key string) bool {
	el, ok := s.items[key]
	if !ok {
		return false
	}
	delete(s.items, key)
	s.order.Remove(el)
	return true
}

// scanLiveLocked 按触碰顺序遍历存活条目，途中惰性移除过期条目。
func (s *Store[V]) scanLiveLocked(fn func(e *entry[V])) {
	now := s.clock.Now()
	for el := s.order.Front(); el != nil; {
		next := el.Next()
		e := el.Value.(*entry[V])
		if e.expired(now) {
			s.removeExpiredLocked(el)
		} else {
			fn(e)
		}
		el = next
	}
}

// singleTTL 解析可变 TTL 参数：至多传一个，多传时取第一个。
func singleTTL(ttl []time.Duration) (time.Duration, bool) {
	if len(ttl) == 0 {
		return 0, false
	}
	return ttl[0], true
}
