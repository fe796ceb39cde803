package xstore

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 场景 5：set×3 后 delete×1，TotalEntries 为 2。
func TestStats_TotalEntriesMirrorsLen(t *testing.T) {
	s, _ := newTestStore(t, 10)

	require.NoError(t, s.Set("a", 1))
	require.NoError(t, s.Set("b", 2))
	require.NoError(t, s.Set("c", 3))
	_, err := s.Delete("a")
	require.NoError(t, err)

	st := s.Stats()
	assert.Equal(t, 2, st.TotalEntries)
	assert.Equal(t, s.Len(), st.TotalEntries)
}

// 零值配置即开启统计：不显式设置任何开关，过期移除也要计数。
func TestStats_EnabledByDefault(t *testing.T) {
	fc := clockwork.NewFakeClock()
	s, err := New[int](Config{MaxEntries: 10, CleanupInterval: -1},
		WithClock[int](fc))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("k", 1, time.Second))
	fc.Advance(2 * time.Second)

	_, ok, err := s.Get("k")
	require.NoError(t, err)
	require.False(t, ok)

	assert.Equal(t, uint64(1), s.Stats().ExpiredEntries)
}

func TestStats_Disabled(t *testing.T) {
	fc := clockwork.NewFakeClock()
	s, err := New[int](Config{
		MaxEntries:      10,
		CleanupInterval: -1,
		DisableStats:    true,
	}, WithClock[int](fc))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("a", 1, time.Second))
	fc.Advance(2 * time.Second)
	_, _, _ = s.Get("a")
	_ = s.CleanupExpired()

	// TotalEntries 仍然准确，累计计数器保持为零。
	st := s.Stats()
	assert.Equal(t, 0, st.TotalEntries)
	assert.Equal(t, uint64(0), st.ExpiredEntries)
	assert.Equal(t, uint64(0), st.CleanupRuns)
	assert.True(t, st.LastCleanup.IsZero())
}

func TestStats_DetailedMemoryOptIn(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		s, _ := newTestStore(t, 10)
		require.NoError(t, s.Set("k", 1))
		assert.Equal(t, 0, s.Stats().TotalMemoryUsage)
	})

	t.Run("enabled", func(t *testing.T) {
		s, err := New[string](Config{
			MaxEntries:                10,
			CleanupInterval:           -1,
			EnableDetailedMemoryStats: true,
		})
		require.NoError(t, err)
		defer s.Close()

		require.NoError(t, s.Set("k", "hello"))
		small := s.Stats().TotalMemoryUsage
		assert.Positive(t, small)

		// 更大的值产生更大的估算。
		require.NoError(t, s.Set("k2", string(make([]byte, 4096))))
		assert.Greater(t, s.Stats().TotalMemoryUsage, small+4096)
	})
}

type sizedValue struct{ n int }

func (v sizedValue) SizeBytes() int { return v.n }

func TestEstimateSize(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want int
	}{
		{"nil", nil, 0},
		{"string", "hello", stringHeaderBytes + 5},
		{"bytes", []byte{1, 2, 3}, sliceHeaderBytes + 3},
		{"int", 42, 8},
		{"bool", true, 1},
		{"nil slice", []int(nil), sliceHeaderBytes},
		{"int slice", []int64{1, 2}, sliceHeaderBytes + 16},
		{"sizer", sizedValue{n: 1234}, 1234},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, estimateSize(tt.v))
		})
	}

	t.Run("map", func(t *testing.T) {
		got := estimateSize(map[string]string{"k": "v"})
		assert.Equal(t, mapOverheadBytes+(stringHeaderBytes+1)*2, got)
	})

	t.Run("struct", func(t *testing.T) {
		type payload struct {
			Name string
			N    int64
		}
		assert.Equal(t, stringHeaderBytes+2+8, estimateSize(payload{Name: "ab", N: 1}))
	})

	t.Run("depth capped", func(t *testing.T) {
		type node struct{ next *node }
		head := &node{}
		cur := head
		for i := 0; i < 100; i++ {
			cur.next = &node{}
			cur = cur.next
		}
		// 深层嵌套被深度上限截断，不得失控或栈溢出。
		assert.Less(t, estimateSize(head), 100*wordBytes)
	})
}

// countingRecorder 记录事件次数，用于验证 Recorder 挂接点。
type countingRecorder struct {
	hits, misses, evictions int
	expired, swept          int
}

func (r *countingRecorder) Hit()               { r.hits++ }
func (r *countingRecorder) Miss()              { r.misses++ }
func (r *countingRecorder) Eviction()          { r.evictions++ }
func (r *countingRecorder) Expiration(n int)   { r.expired += n }
func (r *countingRecorder) Sweep(removed int)  { r.swept += removed }

func TestStats_Recorder(t *testing.T) {
	rec := &countingRecorder{}
	fc := clockwork.NewFakeClock()
	s, err := New[int](Config{MaxEntries: 2, CleanupInterval: -1},
		WithClock[int](fc), WithRecorder[int](rec))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("a", 1))
	require.NoError(t, s.Set("b", 2))
	require.NoError(t, s.Set("c", 3)) // 淘汰 a

	_, _, _ = s.Get("b")       // 命中
	_, _, _ = s.Get("missing") // 未命中

	require.NoError(t, s.Set("d", 4, time.Second)) // 淘汰 c
	fc.Advance(2 * time.Second)
	_ = s.CleanupExpired() // 清扫掉 d

	assert.Equal(t, 1, rec.hits)
	assert.Equal(t, 1, rec.misses)
	assert.Equal(t, 2, rec.evictions)
	assert.Equal(t, 1, rec.expired)
	assert.Equal(t, 1, rec.swept)
}
