package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zorak1103/dmon/internal/templates"
)

var (
	force bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize dmon configuration",
	Long: `Init creates the configuration files the agent needs.

This command will create:
  - config.yaml (sample configuration file)
  - .env (environment variable template)

Run this once when setting up dmon for the first time.`,
	Example: `  # Initialize in current directory
  dmon init

  # Force overwrite existing files
  dmon init --force`,
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Println("🔧 Initializing dmon...")

		files := map[string][]byte{
			"config.yaml": templates.ConfigYAML,
			".env":        templates.EnvFile,
		}

		for filename, content := range files {
			if _, err := os.Stat(filename); err == nil && !force {
				fmt.Printf("⚠️  Skipping %s (already exists, use --force to overwrite)\n", filename)
				continue
			}

			if err := os.WriteFile(filename, content, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", filename, err)
			}

			fmt.Printf("✅ Created %s\n", filename)
		}

		fmt.Println("\n🎉 Initialization complete!")
		fmt.Println("\n📝 Next steps:")
		fmt.Println("   1. Edit config.yaml or .env and set server.auth_token")
		fmt.Println("   2. Run 'dmon check' to verify Docker connectivity")
		fmt.Println("   3. Run 'dmon serve' to start the agent")

		return nil
	},
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration files")
}
