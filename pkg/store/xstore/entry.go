package xstore

import "time"

// entry 是存储单元：值加上可选的绝对过期时刻。
// hasExpiry 为 false 表示永不过期，避免与零值时间比较。
// 过期时刻在创建时固定，重新 Set 替换整个条目（包括 TTL）。
type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	hasExpiry bool
}

// expired 是"此条目当前是否存活"的唯一判定，
// 所有读路径和清扫器都经由此处。
// 严格大于：条目在 TTL 刚好流逝的那一刻仍视为存活。
func (e *entry[V]) expired(now time.Time) bool {
	return e.hasExpiry && now.After(e.expiresAt)
}

// KV 是 Entries 返回的键值对，按从最旧到最新的触碰顺序排列。
type KV[V any] struct {
	Key   string
	Value V
}

// BulkItem 是 SetBulk 的输入项。
// TTL 为 nil 表示永不过期；指向非正值表示写入即过期。
type BulkItem[V any] struct {
	Key   string
	Value V
	TTL   *time.Duration
}

// TTL 构造 BulkItem 的 TTL 字段。
//
//	xstore.BulkItem[int]{Key: "k", Value: 1, TTL: xstore.TTL(time.Minute)}
func TTL(d time.Duration) *time.Duration {
	return &d
}
