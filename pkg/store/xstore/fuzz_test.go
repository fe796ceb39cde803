package xstore

import (
	"testing"
	"time"
)

func FuzzStore(f *testing.F) {
	// 种子语料：覆盖不同操作类型与非法键。
	f.Add("key1", 100, int64(time.Minute), uint8(0))
	f.Add("", 0, int64(0), uint8(1))
	f.Add("key2", -1, int64(-time.Second), uint8(2))
	f.Add("key3", 42, int64(0), uint8(3))
	f.Add("key4", 999, int64(time.Hour), uint8(4))
	f.Add("key5", 7, int64(time.Millisecond), uint8(5))

	// 共享实例测试长期混合操作下的稳定性；容量刻意小以高频触发淘汰。
	s, err := New[int](Config{MaxEntries: 64, CleanupInterval: -1})
	if err != nil {
		f.Fatalf("New failed: %v", err)
	}
	f.Cleanup(s.Close)

	f.Fuzz(func(t *testing.T, key string, value int, ttlNanos int64, op uint8) {
		switch op % 8 {
		case 0:
			_ = s.Set(key, value, time.Duration(ttlNanos))
		case 1:
			_, _, _ = s.Get(key)
		case 2:
			_, _ = s.Has(key)
		case 3:
			_, _ = s.Delete(key)
		case 4:
			_ = s.SetBulk([]BulkItem[int]{{Key: key, Value: value}})
		case 5:
			_ = s.CleanupExpired()
		case 6:
			_ = s.Values()
		case 7:
			_ = s.Stats()
		}

		// 容量不变量在任何操作序列下都必须成立。
		if s.Len() > 64 {
			t.Fatalf("capacity invariant violated: len=%d", s.Len())
		}
	})
}

func FuzzNew(f *testing.F) {
	f.Add(1, int64(time.Minute))
	f.Add(0, int64(0))
	f.Add(-1, int64(-time.Second))
	f.Add(10000, int64(time.Hour))

	f.Fuzz(func(t *testing.T, maxEntries int, intervalNanos int64) {
		s, err := New[int](Config{
			MaxEntries:      maxEntries,
			CleanupInterval: time.Duration(intervalNanos),
		})
		if err != nil {
			return
		}
		// 基本操作不应 panic。
		_ = s.Set("k", 1)
		_, _, _ = s.Get("k")
		_, _ = s.Has("k")
		_ = s.Len()
		s.Close()
	})
}
