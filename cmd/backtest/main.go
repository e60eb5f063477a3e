package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"swing-reversion-bot/internal/backtest"
	"swing-reversion-bot/internal/logger"
	"swing-reversion-bot/internal/store"
	"swing-reversion-bot/internal/trace"
	"swing-reversion-bot/internal/tradelog"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config")
	reportDir := flag.String("reports", "reports", "directory for report artifacts")
	journal := flag.Bool("journal", false, "write JSON-lines trade/signal logs")
	flag.Parse()

	must(initializeSystem())

	ctx := context.Background()
	defer func() { _ = trace.Shutdown(ctx) }()

	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", *configPath)
		os.Exit(1)
	}

	if v := os.Getenv("TRADER_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		_ = tradelog.CompressOlder(n)
	}

	res, err := runBacktest(ctx, cfg, *journal)
	if err != nil {
		logger.ErrorWithErr(ctx, "Backtest failed", err, "symbol", cfg.Symbol)
		os.Exit(1)
	}

	fmt.Println(backtest.Summary(res))
	writeReports(ctx, res, *reportDir)
}
