// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/DitoluT/malackathon2025/api"
	"github.com/DitoluT/malackathon2025/config"
	"github.com/DitoluT/malackathon2025/internal/core"
	"github.com/DitoluT/malackathon2025/internal/dataset"
	"github.com/DitoluT/malackathon2025/internal/dialect"
	"github.com/DitoluT/malackathon2025/internal/insight"
	"github.com/DitoluT/malackathon2025/internal/logger"
	"github.com/DitoluT/malackathon2025/internal/storage"
)

var (
	customLog = logger.NewLogger()
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:          "admissions-api",
		Short:        "Mental-health admissions data API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(checkQueryCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func checkQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-query [query]",
		Short: "Validate a query against the ad-hoc query policy without running it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minLen, _ := cmd.Flags().GetInt("min-length")
			maxLen, _ := cmd.Flags().GetInt("max-length")
			policy := core.QueryPolicy{MinLength: minLen, MaxLength: maxLen}

			verdict := policy.Validate(strings.Join(args, " "))
			out := cmd.OutOrStdout()
			if !verdict.Accepted {
				fmt.Fprintf(out, "rejected (%s): %s\n", verdict.Reason, verdict.Message)
				return verdict.Err()
			}
			fmt.Fprintf(out, "accepted: %s\n", verdict.Query)
			return nil
		},
	}
	defaults := core.DefaultQueryPolicy()
	cmd.Flags().Int("min-length", defaults.MinLength, "Minimum query length")
	cmd.Flags().Int("max-length", defaults.MaxLength, "Maximum query length")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func runServer() error {
	customLog.Println("Starting admissions API server...")

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if version != "dev" {
		cfg.Version = version
	}
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	d, err := dialect.New(cfg.DBDialect)
	if err != nil {
		return err
	}
	mapping, err := dataset.Load(cfg.DatasetMappingFile)
	if err != nil {
		return fmt.Errorf("failed to load dataset mapping: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	pool, err := storage.Connect(connectCtx, cfg, d)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		customLog.Println("Closing database pool...")
		if err := pool.Close(); err != nil {
			customLog.Printf("Error closing database pool: %v", err)
		}
	}()

	var completer insight.Completer
	if cfg.AIEnabled() {
		gc, err := insight.NewGeminiCompleter(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AITimeout)
		if err != nil {
			customLog.Warnf("AI insights disabled: %v", err)
		} else {
			completer = gc
			customLog.Printf("AI insights enabled with model %s", gc.Model())
		}
	}

	router := api.SetupRouter(pool, mapping, completer, cfg)
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		customLog.Printf("Server listening on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		customLog.Println("Shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	customLog.Println("Server stopped.")
	return nil
}
