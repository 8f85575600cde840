package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jswain/billfold/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override billfold config path (optional)")
	refreshSeconds := flag.Int("refresh", 0, "invoice list refresh interval in seconds (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath}
	if refresh := *refreshSeconds; refresh > 0 {
		opts.RefreshEvery = refresh
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "billfold: %v\n", err)
		return 1
	}
	return 0
}
