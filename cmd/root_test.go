package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/zorak1103/dmon/internal/config"
)

const (
	testFalseValue = "false"
	testInitCmd    = "init"
)

// saveRootState stashes the package globals the root command mutates and
// restores them when the test ends.
func saveRootState(t *testing.T) {
	t.Helper()

	origCfg := cfg
	origCfgFile := cfgFile
	origVerbose := verbose
	origErr := errConfigLoad

	t.Cleanup(func() {
		cfg = origCfg
		cfgFile = origCfgFile
		verbose = origVerbose
		errConfigLoad = origErr
	})
}

func TestRootCmd_Identity(t *testing.T) {
	t.Parallel()

	if rootCmd.Use != "dmon" {
		t.Errorf("Expected command use 'dmon', got '%s'", rootCmd.Use)
	}

	if rootCmd.Short != "Docker Monitor Agent" {
		t.Errorf("Expected short description 'Docker Monitor Agent', got '%s'", rootCmd.Short)
	}

	if rootCmd.Long == "" {
		t.Error("Expected command long description to be set")
	}

	if rootCmd.Version == "" {
		t.Error("Expected command version to be set")
	}

	if !strings.Contains(rootCmd.UseLine(), "dmon") {
		t.Errorf("Expected use line to contain 'dmon', got '%s'", rootCmd.UseLine())
	}

	if rootCmd.PersistentPreRunE == nil {
		t.Error("Expected PersistentPreRunE to be defined")
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		shorthand     string
		defValue      string
		usageContains string
	}{
		{name: "config", shorthand: "", defValue: "", usageContains: "config file"},
		{name: "verbose", shorthand: "v", defValue: testFalseValue, usageContains: "verbose"},
	}

	flags := rootCmd.PersistentFlags()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flag := flags.Lookup(tt.name)
			if flag == nil {
				t.Fatalf("Expected '%s' flag to be defined", tt.name)
			}

			if flag.Shorthand != tt.shorthand {
				t.Errorf("Expected '%s' shorthand %q, got %q", tt.name, tt.shorthand, flag.Shorthand)
			}

			if flag.DefValue != tt.defValue {
				t.Errorf("Expected '%s' default %q, got %q", tt.name, tt.defValue, flag.DefValue)
			}

			if !strings.Contains(flag.Usage, tt.usageContains) {
				t.Errorf("Expected '%s' usage to mention %q, got %q", tt.name, tt.usageContains, flag.Usage)
			}
		})
	}
}

func TestRootCmd_HelpOutput(t *testing.T) {
	var buf bytes.Buffer

	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"--help"})

	err := rootCmd.Execute()
	if err != nil {
		t.Errorf("Expected no error executing help command, got: %v", err)
	}

	output := buf.String()

	// Identity, flags, and the feature list from the long description.
	expectedStrings := []string{
		"dmon",
		"Docker Monitor Agent",
		"monitoring agent",
		"Container listing",
		"Lifecycle actions",
		"Bearer-token",
		"constant-time",
		"Shoutrrr",
		"--config",
		"--verbose",
		"-v",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("Expected help output to contain %q, got:\n%s", expected, output)
		}
	}
}

func TestRootCmd_VersionOutput(t *testing.T) {
	var buf bytes.Buffer

	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"--version"})

	err := rootCmd.Execute()
	if err != nil {
		t.Errorf("Expected no error executing version command, got: %v", err)
	}

	if !strings.Contains(buf.String(), "dmon") {
		t.Errorf("Expected version output to contain 'dmon', got:\n%s", buf.String())
	}
}

func TestRootCmd_SubcommandsList(t *testing.T) {
	t.Parallel()

	registered := make(map[string]bool)
	for _, subcmd := range rootCmd.Commands() {
		registered[subcmd.Name()] = true
	}

	for _, expected := range []string{"serve", "check", "init", "config"} {
		if !registered[expected] {
			t.Errorf("Expected subcommand '%s' to be registered", expected)
		}
	}
}

func TestGetConfig(t *testing.T) {
	saveRootState(t)

	cfg = nil
	if result := GetConfig(); result != nil {
		t.Error("Expected GetConfig() to return nil when cfg is nil")
	}

	testConfig := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 9090},
	}
	cfg = testConfig

	result := GetConfig()
	if result != testConfig {
		t.Error("Expected GetConfig() to return the set config")
	}

	if result.Server.Host != "127.0.0.1" {
		t.Errorf("Expected Host to be '127.0.0.1', got '%s'", result.Server.Host)
	}
}

func TestGetConfigLoadError(t *testing.T) {
	saveRootState(t)

	errConfigLoad = nil
	if result := GetConfigLoadError(); result != nil {
		t.Errorf("Expected GetConfigLoadError() to return nil, got: %v", result)
	}

	wantErr := errors.New("load failed")
	errConfigLoad = wantErr

	if result := GetConfigLoadError(); !errors.Is(result, wantErr) {
		t.Errorf("Expected GetConfigLoadError() to return the stored error, got: %v", result)
	}
}

func TestIsVerbose(t *testing.T) {
	saveRootState(t)

	verbose = false
	if IsVerbose() {
		t.Error("Expected IsVerbose() to return false")
	}

	verbose = true
	if !IsVerbose() {
		t.Error("Expected IsVerbose() to return true")
	}
}

func TestRootCmd_PersistentPreRunE_SkipsConfigFreeCommands(t *testing.T) {
	saveRootState(t)

	// init/help/version run without a loaded config; the pre-run must not
	// try to load one for them.
	for _, name := range []string{testInitCmd, "help", "version"} {
		cfg = nil
		errConfigLoad = nil

		mockCmd := &cobra.Command{Use: name}
		if err := rootCmd.PersistentPreRunE(mockCmd, []string{}); err != nil {
			t.Errorf("Expected no error for %s command, got: %v", name, err)
		}

		if errConfigLoad != nil {
			t.Errorf("Expected no load attempt for %s command, got error: %v", name, errConfigLoad)
		}
	}
}

func TestRootCmd_PersistentPreRunE_MissingConfigIsDeferred(t *testing.T) {
	saveRootState(t)

	// A missing config file must not fail the pre-run; serve/check/config
	// surface the stored error from their RunE handlers instead.
	for _, verboseMode := range []bool{false, true} {
		cfg = nil
		errConfigLoad = nil
		cfgFile = "nonexistent.yaml"
		verbose = verboseMode

		mockCmd := &cobra.Command{Use: "serve"}
		if err := rootCmd.PersistentPreRunE(mockCmd, []string{}); err != nil {
			t.Errorf("Expected no error with missing config (verbose=%v), got: %v", verboseMode, err)
		}
	}
}
