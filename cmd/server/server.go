package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sales-advisor/backend/internal/api"
	"github.com/sales-advisor/backend/internal/config"
	"github.com/sales-advisor/backend/internal/ioc"
	"github.com/sales-advisor/backend/internal/web"
)

const shutdownTimeout = 10 * time.Second

// buildServer wires every component from the configuration.
// The returned LLM must be closed by the caller.
func buildServer(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*echo.Echo, *ioc.LLM, error) {
	analyzer, err := ioc.InitAnalyzer(cfg.Analysis, logger)
	if err != nil {
		return nil, nil, err
	}

	completer := ioc.InitCompleter(ctx, cfg.LLM, logger)
	if !completer.Configured {
		logger.Warn("advice endpoints will fail until a key is set", "env", cfg.ProviderKeyEnv())
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	api.SetupMiddleware(e, api.MiddlewareConfig{
		Logger:               logger,
		BodyLimitBytes:       cfg.Server.BodyLimitBytes,
		EnableCORS:           cfg.Server.EnableCORS,
		AllowOrigins:         cfg.Server.Origins(),
		EnableRequestLogging: cfg.Log.EnableRequestLogging,
	})

	api.RegisterRoutes(e, api.NewHandlers(&api.Dependencies{
		Parser:        ioc.InitParser(cfg.Server),
		Analyzer:      analyzer,
		Completer:     completer,
		Provider:      completer.Provider,
		LLMConfigured: completer.Configured,
		Version:       Version,
		Logger:        logger,
	}))
	web.RegisterRoutes(e, Version)

	return e, completer, nil
}

func newHTTPServer(cfg *config.AppConfig) *http.Server {
	return &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}
}

func run(ctx context.Context, cfg *config.AppConfig, configPath string, logger *slog.Logger) error {
	e, completer, err := buildServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer completer.Close()

	s := newHTTPServer(cfg)

	printBanner(cfg, configPath, completer)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.StartServer(s)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func printBanner(cfg *config.AppConfig, configPath string, completer *ioc.LLM) {
	if configPath == "" {
		configPath = "(defaults + environment)"
	}
	llmState := completer.Provider
	if !completer.Configured {
		llmState += " (not configured)"
	}

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           Sales Advisor Server                            ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("║  LLM:        %-45s║\n", llmState)
	fmt.Printf("║  Engine:     %-45s║\n", cfg.Analysis.Engine)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")
}
