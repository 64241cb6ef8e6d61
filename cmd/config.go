package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zorak1103/dmon/internal/config"
)

// validateConfigOrExit validates that the configuration was loaded and is
// usable. Returns a user-friendly error if validation fails.
func validateConfigOrExit(cfg *config.Config, _ string) error {
	if cfg == nil {
		if loadErr := GetConfigLoadError(); loadErr != nil {
			return fmt.Errorf("configuration not usable: %w\n\nRun 'dmon init' to create a sample config.yaml, or set the DMON_* environment variables", loadErr)
		}
		return fmt.Errorf("configuration not loaded\n\nTo get started, run: dmon init")
	}
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display the effective configuration",
	Long: `Display the effective configuration that dmon will use at runtime.

This shows the merged configuration from:
  1. Default values
  2. Configuration file (config.yaml)
  3. Environment variables (highest priority)

Sensitive values like the auth token are masked for security.`,
	Example: `  # Show current configuration
  dmon config

  # Show with custom config file
  dmon config --config /etc/dmon/config.yaml`,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg := GetConfig()
		if err := validateConfigOrExit(cfg, "config"); err != nil {
			return err
		}

		fmt.Println("=== dmon Effective Configuration ===")
		fmt.Println()

		fmt.Println("🌐 Server Configuration:")
		fmt.Printf("   Host:             %s\n", cfg.Server.Host)
		fmt.Printf("   Port:             %d\n", cfg.Server.Port)
		fmt.Printf("   Auth Token:       %s\n", maskToken(cfg.Server.AuthToken))
		fmt.Printf("   Shutdown Timeout: %s\n", cfg.Server.ShutdownTimeout)
		fmt.Println()

		fmt.Println("🐳 Docker Configuration:")
		fmt.Printf("   Socket Path:    %s\n", cfg.Docker.SocketPath)
		fmt.Printf("   Ping Timeout:   %s\n", cfg.Docker.PingTimeout)
		fmt.Println()

		fmt.Println("📊 Metrics Configuration:")
		fmt.Printf("   CPU Sample Interval: %s\n", cfg.Metrics.CPUSampleInterval)
		fmt.Printf("   Disk Path:           %s\n", cfg.Metrics.DiskPath)
		fmt.Println()

		fmt.Println("🔔 Notification Configuration:")
		fmt.Printf("   Enabled:        %v\n", cfg.Notification.Enabled)
		fmt.Printf("   Shoutrrr URL:   %s\n", maskShoutrrrURL(cfg.Notification.ShoutrrrURL))
		fmt.Println()

		return nil
	},
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(configCmd)
}

// maskToken obscures the auth token for display. Shows first 4 and last 4
// characters so operators can tell which token is deployed without the
// output exposing the full secret.
func maskToken(token string) string {
	if token == "" {
		return "❌ Not set"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

// maskShoutrrrURL masks sensitive parts of Shoutrrr URL
func maskShoutrrrURL(url string) string {
	if url == "" {
		return "❌ Not configured"
	}

	// Extract service type (e.g., discord://, slack://, smtp://)
	parts := strings.SplitN(url, "://", 2)
	if len(parts) != 2 {
		return "✅ Configured (invalid format)"
	}

	service := parts[0]
	// Mask the credentials/tokens
	return fmt.Sprintf("✅ Configured (%s://***)", service)
}
