package xstore

import (
	"fmt"
	"testing"
)

// =============================================================================
// 基本操作基准测试
// =============================================================================

func newBenchStore(b *testing.B, maxEntries int) *Store[int] {
	b.Helper()
	s, err := New[int](Config{MaxEntries: maxEntries, CleanupInterval: -1})
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(s.Close)
	return s
}

func BenchmarkStore_Get(b *testing.B) {
	s := newBenchStore(b, 1000)
	_ = s.Set("benchmark_key", 42)

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		_, _, _ = s.Get("benchmark_key")
	}
}

func BenchmarkStore_Get_Miss(b *testing.B) {
	s := newBenchStore(b, 1000)

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		_, _, _ = s.Get("nonexistent")
	}
}

func BenchmarkStore_Set(b *testing.B) {
	s := newBenchStore(b, 10000)

	keys := make([]string, 1000)
	for i := range keys {
		keys[i] = fmt.Sprintf("key_%d", i)
	}

	b.ReportAllocs()
	b.ResetTimer()
	i := 0
	for b.Loop() {
		_ = s.Set(keys[i%len(keys)], i)
		i++
	}
}

func BenchmarkStore_Set_Evicting(b *testing.B) {
	// 容量远小于键空间，测量持续淘汰下的写入。
	s := newBenchStore(b, 128)

	keys := make([]string, 1024)
	for i := range keys {
		keys[i] = fmt.Sprintf("key_%d", i)
	}

	b.ReportAllocs()
	b.ResetTimer()
	i := 0
	for b.Loop() {
		_ = s.Set(keys[i%len(keys)], i)
		i++
	}
}

func BenchmarkStore_Has(b *testing.B) {
	s := newBenchStore(b, 1000)
	_ = s.Set("benchmark_key", 42)

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		_, _ = s.Has("benchmark_key")
	}
}

func BenchmarkStore_SetBulk(b *testing.B) {
	s := newBenchStore(b, 10000)

	items := make([]BulkItem[int], 100)
	for i := range items {
		items[i] = BulkItem[int]{Key: fmt.Sprintf("key_%d", i), Value: i}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		_ = s.SetBulk(items)
	}
}

func BenchmarkStore_GetBulk(b *testing.B) {
	s := newBenchStore(b, 10000)

	keys := make([]string, 100)
	for i := range keys {
		keys[i] = fmt.Sprintf("key_%d", i)
		_ = s.Set(keys[i], i)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		_ = s.GetBulk(keys)
	}
}

func BenchmarkStore_Stats_Detailed(b *testing.B) {
	s, err := New[string](Config{
		MaxEntries:                10000,
		CleanupInterval:           -1,
		EnableDetailedMemoryStats: true,
	})
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(s.Close)

	for i := 0; i < 1000; i++ {
		_ = s.Set(fmt.Sprintf("key_%d", i), "some value payload")
	}

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		_ = s.Stats()
	}
}
