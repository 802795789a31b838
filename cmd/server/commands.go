package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"internship-service/internal/app"
	"internship-service/internal/config"
	"internship-service/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:          app.ServiceName,
		Short:        "internship-service matches students to internships and screens applicants with a quiz",
		SilenceUsage: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and gRPC health server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create database tables and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			return app.Migrate(cmd.Context(), cfg, log)
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("%s version: %s (commit %s, built %s)\n", app.ServiceName, app.Version, app.GitCommit, app.BuildTime)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is configs/config.<ENV>.yaml)")
	rootCmd.PersistentFlags().String("port", "", "HTTP port, overrides server.port")
	viper.BindPFlag("server.port", rootCmd.PersistentFlags().Lookup("port"))

	rootCmd.AddCommand(serveCmd, migrateCmd, versionCmd)
}

func setup() (*config.Config, *slog.Logger, error) {
	log := logger.NewWithServiceContext(app.ServiceName, app.Version)

	// Set as default logger so slog.Info() uses the same handler
	slog.SetDefault(log)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Info("config loaded", "env", cfg.Env)
	return cfg, log, nil
}

func serve(ctx context.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	return runUntilSignal(application, quit, log)
}

type server interface {
	Run() error
	Shutdown(ctx context.Context) error
}

// runUntilSignal runs srv until it fails or quit fires, then shuts it down.
// A run failure is returned after shutdown so the process exits non-zero.
func runUntilSignal(srv server, quit <-chan os.Signal, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	var runErr error
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig.String())
	case runErr = <-errCh:
		if runErr != nil {
			log.Error("server stopped", "error", runErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Join(runErr, fmt.Errorf("server forced to shutdown: %w", err))
	}
	if runErr != nil {
		return fmt.Errorf("server stopped: %w", runErr)
	}

	log.Info("server exited gracefully")
	return nil
}
