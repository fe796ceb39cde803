package xconf

import (
	"strings"
	"testing"
)

func FuzzNewFromBytes(f *testing.F) {
	f.Add([]byte("store:\n  max_entries: 100\n"), "yaml")
	f.Add([]byte(`{"store":{"cleanup_interval":"60s"}}`), "json")

	f.Fuzz(func(t *testing.T, data []byte, format string) {
		if len(data) == 0 {
			return
		}

		switch strings.ToLower(format) {
		case "yaml", "yml":
			format = string(FormatYAML)
		case "json":
			format = string(FormatJSON)
		default:
			return
		}

		cfg, err := NewFromBytes(data, Format(format))
		if err != nil {
			return
		}

		// 任意输入下 LoadStore 只能返回配置或错误，不能 panic
		_, _ = LoadStore(cfg, "store")
	})
}

func FuzzStoreConfigDuration(f *testing.F) {
	f.Add("60s")
	f.Add("-1s")
	f.Add("")
	f.Add("1h30m")
	f.Add("soon")

	f.Fuzz(func(t *testing.T, interval string) {
		sc := StoreConfig{MaxEntries: 1, CleanupInterval: interval}
		cfg, err := sc.ToStore()
		if err != nil {
			return
		}
		if interval == "" && cfg.CleanupInterval != 0 {
			t.Fatalf("empty interval must map to zero, got %v", cfg.CleanupInterval)
		}
	})
}
