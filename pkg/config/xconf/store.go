package xconf

import (
	"fmt"
	"time"

	"github.com/omeyang/xstore/pkg/store/xstore"
)

// StoreConfig 是 xstore.Config 的文件表示。
// 周期字段使用时长字符串（"60s"、"5m"），便于在 YAML/JSON 中书写；
// 负值时长（"-1s"）表示禁用后台清扫。
type StoreConfig struct {
	// MaxEntries 容量上限，零值使用 xstore.DefaultMaxEntries。
	MaxEntries int `koanf:"max_entries"`

	// CleanupInterval 后台清扫周期，如 "60s"。
	// 空字符串使用 xstore.DefaultCleanupInterval；负值禁用后台清扫。
	CleanupInterval string `koanf:"cleanup_interval"`

	// EnableStats 是否维护累计计数器。文件侧保持正向语义，
	// 转换时翻转为 xstore.Config.DisableStats。
	EnableStats bool `koanf:"enable_stats"`

	// EnableDetailedMemoryStats 是否在 Stats() 中执行内存估算。
	EnableDetailedMemoryStats bool `koanf:"enable_detailed_memory_stats"`
}

// DefaultStoreConfig 返回与 xstore.DefaultConfig 一致的文件表示。
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		MaxEntries:      xstore.DefaultMaxEntries,
		CleanupInterval: xstore.DefaultCleanupInterval.String(),
		EnableStats:     true,
	}
}

// ToStore 将文件表示转换为 xstore.Config。
// CleanupInterval 无法解析时返回 ErrInvalidDuration。
func (sc StoreConfig) ToStore() (xstore.Config, error) {
	var interval time.Duration
	if sc.CleanupInterval != "" {
		d, err := time.ParseDuration(sc.CleanupInterval)
		if err != nil {
			return xstore.Config{}, fmt.Errorf("%w: cleanup_interval %q: %w",
				ErrInvalidDuration, sc.CleanupInterval, err)
		}
		interval = d
	}

	return xstore.Config{
		MaxEntries:                sc.MaxEntries,
		CleanupInterval:           interval,
		DisableStats:              !sc.EnableStats,
		EnableDetailedMemoryStats: sc.EnableDetailedMemoryStats,
	}, nil
}

// LoadStore 从配置的指定路径加载存储配置。
// 文件中未出现的字段保持 DefaultStoreConfig 的默认值。
func LoadStore(cfg Config, path string) (xstore.Config, error) {
	sc := DefaultStoreConfig()
	if err := cfg.Unmarshal(path, &sc); err != nil {
		return xstore.Config{}, err
	}
	return sc.ToStore()
}
