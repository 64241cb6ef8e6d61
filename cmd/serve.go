package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zorak1103/dmon/internal/docker"
	"github.com/zorak1103/dmon/internal/monitor"
	"github.com/zorak1103/dmon/internal/notification"
	"github.com/zorak1103/dmon/internal/server"
	"github.com/zorak1103/dmon/internal/sysinfo"
	"github.com/zorak1103/dmon/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the monitoring agent",
	Long: `Serve starts the HTTP API and keeps it running until interrupted.

The agent connects to the Docker daemon at startup and refuses to start when
the daemon is unreachable. Every route except / and /health requires the
configured bearer token. SIGINT and SIGTERM trigger a graceful shutdown that
drains in-flight requests up to the configured shutdown timeout.`,
	Example: `  # Run with config.yaml from the current directory
  dmon serve

  # Run with an explicit config file
  dmon serve --config /etc/dmon/config.yaml

  # Run configured entirely from the environment
  DMON_SERVER_AUTH_TOKEN=secret dmon serve`,
	RunE: runServe,
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg = GetConfig()
	if err := validateConfigOrExit(cfg, "serve"); err != nil {
		return err
	}

	dockerClient, err := docker.NewClient(cfg.Docker.SocketPath)
	if err != nil {
		return fmt.Errorf("failed to create Docker client: %w", err)
	}
	defer dockerClient.Close() //nolint:errcheck // Close error not actionable in defer context

	pingCtx, cancelPing := context.WithTimeout(context.Background(), cfg.Docker.PingTimeout)
	err = dockerClient.Ping(pingCtx)
	cancelPing()
	if err != nil {
		return fmt.Errorf("docker daemon not reachable: %w", err)
	}

	host := sysinfo.NewProvider(cfg.Metrics.DiskPath, cfg.Metrics.CPUSampleInterval)
	mon := monitor.NewService(dockerClient, host, cfg.Docker.PingTimeout)

	notifier, err := notification.NewNotifier(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize notifier: %w", err)
	}

	srv := server.New(cfg.Server, mon, notifier)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Listen()
	}()

	fmt.Printf("🐳 dmon %s listening on %s\n", version.Version, cfg.Server.Addr())

	if notifier.IsEnabled() {
		if err := notifier.SendAgentUp(cfg.Server.Addr(), version.Version); err != nil {
			fmt.Printf("Warning: failed to send startup notification: %v\n", err)
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return fmt.Errorf("server stopped: %w", err)
	case sig := <-quit:
		fmt.Printf("\n🛑 Received %s, shutting down...\n", sig)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	fmt.Println("✅ Shutdown complete")
	return nil
}
