package xconf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xstore/pkg/store/xstore"
)

func TestDefaultStoreConfig(t *testing.T) {
	sc := DefaultStoreConfig()

	got, err := sc.ToStore()
	require.NoError(t, err)
	assert.Equal(t, xstore.DefaultConfig(), got)
}

func TestStoreConfig_ToStore(t *testing.T) {
	tests := []struct {
		name string
		in   StoreConfig
		want xstore.Config
	}{
		{
			name: "explicit values",
			in: StoreConfig{
				MaxEntries:      512,
				CleanupInterval: "5m",
				EnableStats:     true,
			},
			want: xstore.Config{
				MaxEntries:      512,
				CleanupInterval: 5 * time.Minute,
			},
		},
		{
			// 文件侧 enable_stats 缺省为 false，翻转后关闭统计。
			name: "empty interval keeps zero value",
			in:   StoreConfig{MaxEntries: 10},
			want: xstore.Config{MaxEntries: 10, DisableStats: true},
		},
		{
			name: "negative interval disables sweeping",
			in:   StoreConfig{MaxEntries: 10, CleanupInterval: "-1s"},
			want: xstore.Config{MaxEntries: 10, CleanupInterval: -time.Second, DisableStats: true},
		},
		{
			name: "detailed memory stats",
			in: StoreConfig{
				MaxEntries:                10,
				CleanupInterval:           "1h",
				EnableStats:               true,
				EnableDetailedMemoryStats: true,
			},
			want: xstore.Config{
				MaxEntries:                10,
				CleanupInterval:           time.Hour,
				EnableDetailedMemoryStats: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.ToStore()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStoreConfig_ToStore_InvalidDuration(t *testing.T) {
	_, err := StoreConfig{CleanupInterval: "soon"}.ToStore()
	require.ErrorIs(t, err, ErrInvalidDuration)
}

func TestLoadStore(t *testing.T) {
	cfg, err := NewFromBytes([]byte(testYAMLContent), FormatYAML)
	require.NoError(t, err)

	sc, err := LoadStore(cfg, "store")
	require.NoError(t, err)
	assert.Equal(t, 512, sc.MaxEntries)
	assert.Equal(t, 5*time.Minute, sc.CleanupInterval)
	assert.False(t, sc.DisableStats)
}

func TestLoadStore_MissingSectionUsesDefaults(t *testing.T) {
	cfg, err := NewFromBytes([]byte("log:\n  level: info\n"), FormatYAML)
	require.NoError(t, err)

	sc, err := LoadStore(cfg, "store")
	require.NoError(t, err)
	assert.Equal(t, xstore.DefaultConfig(), sc)
}

func TestLoadStore_PartialOverride(t *testing.T) {
	cfg, err := NewFromBytes([]byte("store:\n  max_entries: 64\n"), FormatYAML)
	require.NoError(t, err)

	sc, err := LoadStore(cfg, "store")
	require.NoError(t, err)
	assert.Equal(t, 64, sc.MaxEntries)
	// 未出现的字段保持默认值
	assert.Equal(t, xstore.DefaultCleanupInterval, sc.CleanupInterval)
	assert.False(t, sc.DisableStats)
}

// 配置可直接驱动存储创建。
func TestLoadStore_DrivesStore(t *testing.T) {
	cfg, err := NewFromBytes([]byte("store:\n  max_entries: 2\n  cleanup_interval: -1s\n"), FormatYAML)
	require.NoError(t, err)

	sc, err := LoadStore(cfg, "store")
	require.NoError(t, err)

	s, err := xstore.New[string](sc)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Set("b", "2"))
	require.NoError(t, s.Set("c", "3"))
	assert.Equal(t, 2, s.Len())
}
