package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"kioskanalyzer/internal/blob"
	"kioskanalyzer/internal/config"
	"kioskanalyzer/internal/logger"
	"kioskanalyzer/internal/service"
	"kioskanalyzer/internal/store"
)

// app bundles what a subcommand needs. close releases backend connections.
type app struct {
	cfg     config.Config
	docs    *store.Store
	service *service.Service
	close   func()
}

// as a CLI the process is short lived, so the opener is a package variable
// that tests replace.
var openApp = func(ctx context.Context) (*app, error) {
	cfg := config.Load()
	zl, err := logger.New(cfg.Logger, cfg.IsDevelopment())
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	blobs, backend, closers, err := blob.Open(ctx, blob.Options{
		DatabaseURL:   cfg.DatabaseURL,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	}, zl)
	if err != nil {
		return nil, err
	}
	if backend == blob.BackendMemory {
		zl.Warn("no DATABASE_URL or REDIS_ADDR configured, changes will not outlive this command")
	}

	docs := store.New(ctx, blobs, cfg.DocumentKey, zl)
	return &app{
		cfg:     cfg,
		docs:    docs,
		service: service.New(docs, zl),
		close: func() {
			for _, closeFn := range closers {
				if err := closeFn(); err != nil {
					zl.Error("close error", zap.Error(err))
				}
			}
			_ = zl.Sync()
		},
	}, nil
}

func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
