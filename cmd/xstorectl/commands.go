package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xstore/pkg/config/xconf"
	"github.com/omeyang/xstore/pkg/lifecycle/xrun"
	"github.com/omeyang/xstore/pkg/observability/xmetrics"
	"github.com/omeyang/xstore/pkg/store/xstore"
	"github.com/omeyang/xstore/pkg/store/xsweep"
)

// bulkBatchSize 压测写入的批大小。
const bulkBatchSize = 1000

// createCommands 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createBenchCommand(),
		createSweepCommand(),
	}
}

// =============================================================================
// bench
// =============================================================================

func createBenchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "对进程内存储执行填充/读取压测并打印统计",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "entries",
				Usage: "写入条目数",
				Value: 100000,
			},
			&cli.IntFlag{
				Name:  "capacity",
				Usage: "存储容量上限",
				Value: xstore.DefaultMaxEntries,
			},
			&cli.DurationFlag{
				Name:  "ttl",
				Usage: "写入条目的存活时间（0 表示永不过期）",
			},
			&cli.BoolFlag{
				Name:  "detailed",
				Usage: "统计中包含内存估算（O(N) 扫描）",
			},
		},
		Action: runBench,
	}
}

func runBench(_ context.Context, cmd *cli.Command) error {
	entries := cmd.Int("entries")
	capacity := cmd.Int("capacity")
	ttl := cmd.Duration("ttl")
	detailed := cmd.Bool("detailed")

	store, err := xstore.New[string](xstore.Config{
		MaxEntries:                capacity,
		CleanupInterval:           -1, // 压测期间不做后台清扫
		EnableDetailedMemoryStats: detailed,
	})
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	defer store.Close()

	tm := xmetrics.NewTimings()

	// 填充阶段：批量写入
	if err := tm.Start("fill"); err != nil {
		return err
	}
	batch := make([]xstore.BulkItem[string], 0, bulkBatchSize)
	for i := 0; i < entries; i++ {
		key := "bench:" + strconv.Itoa(i)
		item := xstore.BulkItem[string]{Key: key, Value: key}
		if ttl > 0 {
			item.TTL = xstore.TTL(ttl)
		}
		batch = append(batch, item)
		if len(batch) == bulkBatchSize {
			store.SetBulk(batch)
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		store.SetBulk(batch)
	}
	fillElapsed, err := tm.Stop("fill")
	if err != nil {
		return err
	}

	// 读取阶段：全键扫描，命中与未命中混合
	if err := tm.Start("read"); err != nil {
		return err
	}
	var hits int
	for i := 0; i < entries; i++ {
		if _, ok, _ := store.Get("bench:" + strconv.Itoa(i)); ok {
			hits++
		}
	}
	readElapsed, err := tm.Stop("read")
	if err != nil {
		return err
	}

	stats := store.Stats()
	fmt.Printf("entries written:   %d\n", entries)
	fmt.Printf("fill time:         %s\n", fillElapsed)
	fmt.Printf("read time:         %s (%d hits)\n", readElapsed, hits)
	fmt.Printf("total entries:     %d\n", stats.TotalEntries)
	fmt.Printf("expired entries:   %d\n", stats.ExpiredEntries)
	if detailed {
		fmt.Printf("est. memory usage: %d bytes\n", stats.TotalMemoryUsage)
	}
	return nil
}

// =============================================================================
// sweep
// =============================================================================

func createSweepCommand() *cli.Command {
	return &cli.Command{
		Name:  "sweep",
		Usage: "以长驻服务方式运行存储：配置热重载 + 周期/cron 清扫",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Usage:    "配置文件路径 (yaml/json，store 段见文档)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "cron",
				Usage: "cron 清扫表达式（设置后禁用内置周期清扫）",
			},
		},
		Action: runSweep,
	}
}

func runSweep(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger(cmd)
	cronSpec := cmd.String("cron")

	cfg, err := xconf.New(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	storeCfg, err := xconf.LoadStore(cfg, "store")
	if err != nil {
		return fmt.Errorf("load store config: %w", err)
	}
	if cronSpec != "" {
		// cron 接管清扫
		storeCfg.CleanupInterval = -1
	}

	rec, err := xmetrics.NewRecorder()
	if err != nil {
		return fmt.Errorf("create recorder: %w", err)
	}

	store, err := xstore.New[string](storeCfg, xstore.WithRecorder[string](rec))
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	defer store.Close()

	// 配置热重载：容量等结构性变更需重启生效，这里只记录并提示
	watcher, err := xconf.Watch(cfg, func(c xconf.Config, reloadErr error) {
		if reloadErr != nil {
			logger.Warn("config reload failed", slog.Any("error", reloadErr))
			return
		}
		logger.Info("config reloaded; store capacity changes take effect on restart")
	})
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	watcher.StartAsync()
	defer func() { _ = watcher.Stop() }()

	if cronSpec != "" {
		sched, err := xsweep.New(store, cronSpec, xsweep.WithOnSweep(func(removed int) {
			logger.Debug("sweep completed", slog.Int("removed", removed))
		}))
		if err != nil {
			return fmt.Errorf("create sweep scheduler: %w", err)
		}
		sched.Start()
		defer func() { <-sched.Stop().Done() }()
	}

	logger.Info("store service started",
		slog.Int("capacity", storeCfg.MaxEntries),
		slog.Duration("cleanup_interval", storeCfg.CleanupInterval),
		slog.String("cron", cronSpec),
	)

	return xrun.RunWithOptions(ctx, []xrun.Option{
		xrun.WithName("xstorectl"),
		xrun.WithLogger(logger),
	}, xrun.WaitForDone())
}
