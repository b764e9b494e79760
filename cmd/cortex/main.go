// Command cortex runs the flow-execution service.
//
// With no arguments it serves the HTTP API. With "run <flow.yml>" it executes
// a single flow file and prints the results, which is handy for local flow
// development without a running server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsenselab/cortex/api"
	"github.com/skillsenselab/cortex/auth"
	"github.com/skillsenselab/cortex/blocks"
	"github.com/skillsenselab/cortex/config"
	"github.com/skillsenselab/cortex/engine"
	"github.com/skillsenselab/cortex/logger"
	"github.com/skillsenselab/cortex/observability"
	"github.com/skillsenselab/cortex/server"
	"github.com/skillsenselab/cortex/server/middleware"
	"github.com/skillsenselab/cortex/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cortex: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()

	log.Info("cortex starting", map[string]interface{}{
		"version":     version.GetShortVersion(),
		"environment": cfg.Environment,
	})

	executor, shutdownTelemetry, err := buildExecutor(cfg, log)
	if err != nil {
		return err
	}
	defer shutdownTelemetry()

	if len(os.Args) > 1 && os.Args[1] == "run" {
		if len(os.Args) < 3 {
			return fmt.Errorf("usage: cortex run <flow.yml>")
		}
		return runFlowFile(executor, os.Args[2])
	}

	return serve(cfg, executor, log)
}

// buildExecutor wires the block registry, telemetry, and execution engine.
func buildExecutor(cfg *config.Config, log *logger.Logger) (*engine.Executor, func(), error) {
	executor := engine.NewExecutor(blocks.NewDefaultRegistry(), log)
	if !cfg.Observability.Enabled {
		return executor, func() {}, nil
	}

	ctx := context.Background()
	tp, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName:    cfg.Name,
		ServiceVersion: version.GetVersionInfo().Version,
		Environment:    cfg.Environment,
		Endpoint:       cfg.Observability.Endpoint,
		Insecure:       cfg.Observability.Insecure,
		SampleRate:     cfg.Observability.SampleRate,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("initializing tracer: %w", err)
	}

	mp, err := observability.InitMeter(ctx, observability.MeterConfig{
		ServiceName:    cfg.Name,
		ServiceVersion: version.GetVersionInfo().Version,
		Environment:    cfg.Environment,
		Endpoint:       cfg.Observability.Endpoint,
		Insecure:       cfg.Observability.Insecure,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("initializing meter: %w", err)
	}

	metrics, err := observability.NewFlowMetrics(observability.Meter(cfg.Name))
	if err != nil {
		return nil, nil, fmt.Errorf("creating flow metrics: %w", err)
	}
	executor.WithMetrics(metrics)

	shutdown := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("tracer shutdown error", map[string]interface{}{"error": err.Error()})
		}
		if err := mp.Shutdown(shutdownCtx); err != nil {
			log.Warn("meter shutdown error", map[string]interface{}{"error": err.Error()})
		}
	}
	return executor, shutdown, nil
}

// serve runs the HTTP API until SIGINT/SIGTERM.
func serve(cfg *config.Config, executor *engine.Executor, log *logger.Logger) error {
	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()

	if cfg.Auth.Enabled {
		tokens, err := auth.NewService(cfg.Auth)
		if err != nil {
			return err
		}
		srv.GinEngine().Use(middleware.Auth(middleware.AuthConfig{
			TokenValidator: tokens.ValidatorFunc(),
			SkipPaths:      cfg.Auth.SkipPaths,
		}))
	}

	srv.RegisterDefaultEndpoints(cfg.Name)
	api.NewHandler(executor, log).RegisterRoutes(srv.GinEngine())

	ctx := context.Background()
	if err := srv.Start(ctx); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutdown signal received", map[string]interface{}{
		"signal": sig.String(),
	})

	return srv.Stop(ctx)
}

// runFlowFile executes a single YAML flow file and prints the results.
func runFlowFile(executor *engine.Executor, path string) error {
	flow, g, err := engine.LoadFlowFile(path)
	if err != nil {
		return err
	}

	result, err := executor.Execute(context.Background(), g)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(map[string]any{
		"flow":        flow.Name,
		"run_id":      result.RunID,
		"order":       result.Order,
		"duration_ms": result.Duration.Milliseconds(),
		"results":     result.NodeResults,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
