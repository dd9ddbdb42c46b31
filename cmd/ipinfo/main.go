// ipinfo 入口：加载配置、建立双栈监听、提供请求信息端点。
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"ipinfo/internal/config"
	"ipinfo/internal/listener"
	"ipinfo/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (or set CONFIG_PATH); defaults to [::]:80, backlog 1024")
	validateOnly := flag.Bool("validate", false, "load config, then exit 0 on success or 1 on error")
	flag.Parse()

	_ = config.LoadEnvFile(".env", false)
	if *configPath == "" {
		*configPath = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("%v", err)
	}
	if *validateOnly {
		fmt.Fprintf(os.Stderr, "[ipinfo] config validate ok: %s\n", describe(*configPath))
		os.Exit(0)
	}

	color.Cyan("╔════════════════════════════════════════════╗")
	color.Cyan("║          ipinfo 请求信息服务                ║")
	color.Cyan("╚════════════════════════════════════════════╝")
	color.White("  配置: %s", describe(*configPath))

	logger := log.New(os.Stderr, "[ipinfo] ", log.LstdFlags)
	ln, err := listener.Listen(cfg.Listen, logger)
	if err != nil {
		fatal("%v", err)
	}
	color.Green("✓ 双栈监听已就绪: %s (backlog %d)", ln.Addr(), cfg.Listen.Backlog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(cfg, logger)
	if err := srv.Serve(ctx, ln); err != nil {
		stop()
		fatal("serve: %v", err)
	}
	logger.Printf("stopped")
}

func describe(path string) string {
	if path == "" {
		return "内置默认值"
	}
	return path
}

func fatal(format string, args ...any) {
	color.New(color.FgRed).Fprintf(os.Stderr, "✗ "+format+"\n", args...)
	os.Exit(1)
}
