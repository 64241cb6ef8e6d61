//go:build integration

package docker

import (
	"context"
	"testing"
)

// requireDaemon pings the daemon and skips the test when it is unreachable,
// so the integration suite passes on hosts without Docker.
func requireDaemon(t *testing.T, cli Client) context.Context {
	t.Helper()

	ctx := context.Background()
	if err := cli.Ping(ctx); err != nil {
		t.Skipf("Skipping test - Docker daemon not available: %v", err)
	}
	return ctx
}

// TestClient_Integration exercises the adapter against a real Docker daemon.
// Run with: go test -tags=integration ./internal/docker/...
func TestClient_Integration(t *testing.T) {
	for _, socketPath := range []string{"", "unix:///var/run/docker.sock"} {
		name := socketPath
		if name == "" {
			name = "autodetected socket"
		}

		t.Run(name, func(t *testing.T) {
			cli, err := NewClient(socketPath)
			if err != nil {
				t.Fatalf("NewClient(%q) error = %v", socketPath, err)
			}
			defer cli.Close() // nolint:errcheck

			ctx := requireDaemon(t, cli)

			containers, err := cli.ListContainers(ctx)
			if err != nil {
				t.Errorf("Unexpected error listing containers: %v", err)
			}
			t.Logf("Daemon reports %d containers", len(containers))

			info, err := cli.Info(ctx)
			if err != nil {
				t.Fatalf("Unexpected error fetching info: %v", err)
			}
			if info.ServerVersion == "" {
				t.Error("Expected non-empty server version from a live daemon")
			}

			// Inspect round-trip for whatever the daemon has, if anything.
			if len(containers) > 0 {
				details, err := cli.InspectContainer(ctx, containers[0].ID)
				if err != nil {
					t.Errorf("Unexpected error inspecting %s: %v", containers[0].ID, err)
				} else if details.ID == "" {
					t.Error("Expected inspect to return the container ID")
				}
			}
		})
	}
}
