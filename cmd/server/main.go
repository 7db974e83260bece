package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"kioskanalyzer/internal/blob"
	"kioskanalyzer/internal/config"
	"kioskanalyzer/internal/httpapi"
	"kioskanalyzer/internal/logger"
	"kioskanalyzer/internal/service"
	"kioskanalyzer/internal/store"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := config.Load()
	zl, err := logger.New(cfg.Logger, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := validateSecurityConfig(cfg); err != nil {
		zl.Fatal("invalid security configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	blobs, backend, closers, err := blob.Open(ctx, blob.Options{
		DatabaseURL:   cfg.DatabaseURL,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	}, zl)
	if err != nil {
		zl.Fatal("refusing to start with in-memory fallback", zap.Error(err))
	}
	zl.Info("document backend selected", zap.String("backend", string(backend)))

	docs := store.New(ctx, blobs, cfg.DocumentKey, zl)
	svc := service.New(docs, zl)
	auth := httpapi.NewAuthManager(cfg.AuthSecret, time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute, cfg.OperatorUsername, cfg.OperatorPassword)
	api := httpapi.New(svc, auth, cfg.AllowedOrigin, cfg.Currency, zl)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		zl.Info("kiosk analyzer listening", zap.String("addr", cfg.Address()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown error", zap.Error(err))
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			zl.Error("close error", zap.Error(err))
		}
	}

	zl.Info("server stopped")
}

func validateSecurityConfig(cfg config.Config) error {
	if len(cfg.AuthSecret) < 32 {
		return fmt.Errorf("AUTH_SECRET must be set and at least 32 characters")
	}
	if strings.TrimSpace(cfg.OperatorUsername) == "" {
		return fmt.Errorf("OPERATOR_USERNAME must be set")
	}
	if len(cfg.OperatorPassword) < 8 {
		return fmt.Errorf("OPERATOR_PASSWORD must be set and at least 8 characters")
	}
	if err := validatePasswordStrength(cfg.OperatorPassword, cfg.OperatorUsername); err != nil {
		return fmt.Errorf("OPERATOR_PASSWORD is too weak: %w", err)
	}
	return nil
}

// validatePasswordStrength rejects passwords from a known-weak list, those
// made of a single repeated character, and those equal to the username.
// Pre-hashed bcrypt values are accepted as is.
func validatePasswordStrength(password, username string) error {
	if strings.HasPrefix(password, "$2") {
		return nil
	}

	known := map[string]bool{
		"password": true, "12345678": true, "123456789": true, "qwertyui": true,
		"11111111": true, "abcdefgh": true, "password1": true, "iloveyou": true,
	}
	if known[strings.ToLower(password)] {
		return fmt.Errorf("common password not allowed")
	}
	if strings.EqualFold(password, username) {
		return fmt.Errorf("password must differ from username")
	}

	allSame := true
	for i := 1; i < len(password); i++ {
		if password[i] != password[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return fmt.Errorf("single-character password not allowed")
	}

	return nil
}
