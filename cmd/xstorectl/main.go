// xstorectl 是 xstore 的命令行工具。
//
// 用法:
//
//	xstorectl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	--log-level    日志级别 (debug/info/warn/error, 默认: info)
//	--log-file     日志输出文件（启用大小轮转；缺省输出到 stderr）
//
// 命令:
//
//	bench          对进程内存储执行填充/读取压测并打印统计
//	sweep          以长驻服务方式运行存储：配置热重载 + 周期/cron 清扫
//	help           显示帮助信息
//
// 退出码:
//
//	0: 命令执行成功（sweep 命令: 信号触发的优雅退出）
//	1: 命令执行失败
//	2: 参数错误（未知命令、无效 flag 等）
//
// 示例:
//
//	xstorectl bench --entries 100000 --capacity 10000 --detailed
//	xstorectl sweep --config /etc/xstore/config.yaml
//	xstorectl sweep --config config.yaml --cron "@every 5m"
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/omeyang/xstore/pkg/lifecycle/xrun"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "xstorectl",
		Usage:   "xstore 存储命令行工具",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "日志级别 (debug/info/warn/error)",
				Value: "info",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "日志输出文件（启用大小轮转；缺省输出到 stderr）",
			},
		},
		Commands:       createCommands(),
		DefaultCommand: "help",
		// 禁止 urfave/cli 直接调用 os.Exit，由 run() 统一处理退出码映射。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
	}
}

func run() int {
	app := createApp()

	if err := app.Run(context.Background(), os.Args); err != nil {
		// 信号触发的优雅退出按成功处理
		if errors.Is(err, xrun.ErrSignal) {
			return 0
		}
		if isCLIUsageError(err) {
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}
	return 0
}

// isCLIUsageError 判断是否为 CLI 框架产生的参数错误（未知命令、无效 flag）。
func isCLIUsageError(err error) bool {
	if _, ok := err.(cli.ExitCoder); ok {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "flag provided but not defined") ||
		strings.Contains(msg, "No help topic for")
}

// newLogger 根据全局 flag 构建结构化日志记录器。
// 指定 --log-file 时输出到大小轮转的文件，否则输出到 stderr。
func newLogger(cmd *cli.Command) *slog.Logger {
	var out io.Writer = os.Stderr
	if path := cmd.String("log-file"); path != "" {
		out = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    100, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	}

	var level slog.Level
	switch strings.ToLower(cmd.String("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}
