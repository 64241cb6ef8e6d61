package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zorak1103/dmon/internal/docker"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check Docker daemon connectivity",
	Long: `Check verifies that the agent can reach the Docker daemon with the current
configuration and prints a short summary of what it finds.

Run this after editing the configuration and before starting the agent.`,
	Example: `  # Check connectivity with config.yaml from the current directory
  dmon check

  # Check against a non-default socket
  DMON_DOCKER_SOCKET_PATH=unix:///run/docker.sock dmon check`,
	RunE: runCheck,
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, _ []string) error {
	cfg = GetConfig()
	if err := validateConfigOrExit(cfg, "check"); err != nil {
		return err
	}

	fmt.Printf("🐳 Checking Docker daemon at %s...\n", cfg.Docker.SocketPath)

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
	fmt.Println("✅ Docker daemon reachable")

	infoCtx, cancelInfo := context.WithTimeout(context.Background(), cfg.Docker.PingTimeout)
	defer cancelInfo()

	info, err := dockerClient.Info(infoCtx)
	if err != nil {
		return fmt.Errorf("failed to read daemon info: %w", err)
	}

	fmt.Printf("   Version:    %s\n", info.ServerVersion)
	fmt.Printf("   Containers: %d (%d running)\n", info.Containers, info.ContainersRunning)
	fmt.Printf("   Images:     %d\n", info.Images)
	fmt.Printf("   Driver:     %s\n", info.Driver)
	fmt.Printf("   OS:         %s (%s)\n", info.OperatingSystem, info.Architecture)

	return nil
}
