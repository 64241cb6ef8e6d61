// Package notification handles sending notifications to external services.
package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/containrrr/shoutrrr"

	"github.com/zorak1103/dmon/internal/config"
)

// Notifier handles sending notifications via Shoutrrr
type Notifier struct {
	enabled     bool
	shoutrrrURL string
}

// NewNotifier initializes a Shoutrrr-based notification client from config.
func NewNotifier(cfg *config.Config) (*Notifier, error) {
	if !cfg.Notification.Enabled {
		return &Notifier{enabled: false}, nil
	}

	url := strings.TrimSpace(cfg.Notification.ShoutrrrURL)
	if url == "" {
		return &Notifier{enabled: false}, fmt.Errorf("notification enabled but shoutrrr_url not configured: provide URL in format 'service://credentials' (e.g., slack://token@channel, discord://token@webhookid)")
	}

	return &Notifier{
		enabled:     true,
		shoutrrrURL: cfg.Notification.ShoutrrrURL,
	}, nil
}

// SendAgentUp announces that the agent has started and is accepting requests.
func (n *Notifier) SendAgentUp(addr, version string) error {
	if !n.enabled {
		return nil // Notifications disabled
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")

	var sb strings.Builder
	sb.WriteString("🐳 dmon Agent Online\n")
	sb.WriteString(fmt.Sprintf("📅 Time: %s\n", timestamp))
	sb.WriteString(fmt.Sprintf("🌐 Listening: %s\n", addr))
	sb.WriteString(fmt.Sprintf("🏷️ Version: %s\n", version))

	return n.send("agent_up", sb.String())
}

// SendActionFailure reports a container lifecycle action that the daemon
// refused or that failed outright.
func (n *Notifier) SendActionFailure(ref, action string, cause error) error {
	if !n.enabled {
		return nil // Notifications disabled
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")

	var sb strings.Builder
	sb.WriteString("🐳 dmon Action Failed\n")
	sb.WriteString(fmt.Sprintf("📅 Time: %s\n", timestamp))
	sb.WriteString(fmt.Sprintf("📦 Container: %s\n", ref))
	sb.WriteString(fmt.Sprintf("⚙️ Action: %s\n", action))

	if cause != nil {
		sb.WriteString(fmt.Sprintf("⚠️ Error: %v\n", cause))
	}

	return n.send("action_failure", sb.String())
}

// send delivers a formatted message using shoutrrr.
func (n *Notifier) send(event, message string) error {
	err := shoutrrr.Send(n.shoutrrrURL, message)
	if err != nil {
		// Extract service type from URL (e.g., "slack://..." -> "slack")
		serviceType := "unknown"
		if idx := strings.Index(n.shoutrrrURL, "://"); idx > 0 {
			serviceType = n.shoutrrrURL[:idx]
		}
		return fmt.Errorf("notification failed to send via %s (event: %s): %w", serviceType, event, err)
	}

	return nil
}

// IsEnabled reports whether notifications are configured and active.
func (n *Notifier) IsEnabled() bool {
	return n.enabled
}
