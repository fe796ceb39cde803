package xconf

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, configPath, "store:\n  max_entries: 100\n")

	cfg, err := New(configPath)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Client().Int("store.max_entries"))

	var mu sync.Mutex
	var reloads int
	var lastErr error

	w, err := Watch(cfg, func(c Config, err error) {
		mu.Lock()
		defer mu.Unlock()
		reloads++
		lastErr = err
	}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	w.StartAsync()
	defer func() { _ = w.Stop() }()

	// 等监视循环就绪
	time.Sleep(50 * time.Millisecond)

	writeConfig(t, configPath, "store:\n  max_entries: 200\n")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return reloads >= 1
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	assert.NoError(t, lastErr)
	mu.Unlock()

	assert.Equal(t, 200, cfg.Client().Int("store.max_entries"))
}

func TestWatch_CallbackGetsReloadError(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, configPath, "store:\n  max_entries: 100\n")

	cfg, err := New(configPath)
	require.NoError(t, err)

	errs := make(chan error, 16)
	w, err := Watch(cfg, func(c Config, err error) {
		select {
		case errs <- err:
		default:
		}
	}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	w.StartAsync()
	defer func() { _ = w.Stop() }()

	time.Sleep(50 * time.Millisecond)

	writeConfig(t, configPath, "store:\n  - [broken")

	select {
	case reloadErr := <-errs:
		require.ErrorIs(t, reloadErr, ErrParseFailed)
	case <-time.After(2 * time.Second):
		t.Fatal("回调未收到重载错误")
	}

	// 旧配置保持可用
	assert.Equal(t, 100, cfg.Client().Int("store.max_entries"))
}

func TestWatch_FromBytes(t *testing.T) {
	cfg, err := NewFromBytes([]byte("store:\n  max_entries: 1\n"), FormatYAML)
	require.NoError(t, err)

	_, err = Watch(cfg, func(Config, error) {})
	assert.ErrorIs(t, err, ErrNotReloadable)
}

func TestWatch_StopIdempotent(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, configPath, "store:\n  max_entries: 1\n")

	cfg, err := New(configPath)
	require.NoError(t, err)

	w, err := Watch(cfg, func(Config, error) {})
	require.NoError(t, err)

	w.StartAsync()
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestWatch_DebounceCollapsesBursts(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, configPath, "store:\n  max_entries: 0\n")

	cfg, err := New(configPath)
	require.NoError(t, err)

	var mu sync.Mutex
	var reloads int

	w, err := Watch(cfg, func(c Config, err error) {
		mu.Lock()
		defer mu.Unlock()
		reloads++
	}, WithDebounce(80*time.Millisecond))
	require.NoError(t, err)

	w.StartAsync()
	defer func() { _ = w.Stop() }()

	time.Sleep(50 * time.Millisecond)

	// 快速连续写入，防抖应将其合并为少量重载
	for i := 1; i <= 5; i++ {
		writeConfig(t, configPath, "store:\n  max_entries: "+string(rune('0'+i))+"\n")
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return reloads >= 1
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	burst := reloads
	mu.Unlock()
	assert.Less(t, burst, 5, "防抖应合并连续写入")
}
