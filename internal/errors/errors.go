// Package apperrors provides domain-specific error types for the dmon agent.
// These error types include contextual information to aid debugging and error reporting.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when a request carries a missing or invalid bearer token.
var ErrUnauthorized = errors.New("unauthorized: missing or invalid bearer token")

// ConfigurationError represents configuration-related errors.
// It includes the configuration file path and specific key that caused the error.
type ConfigurationError struct {
	ConfigPath string // Path to the configuration file
	Key        string // Configuration key that caused the error
	Err        error  // Underlying error
}

// Error implements the error interface for ConfigurationError.
func (e *ConfigurationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("configuration error in %s (key: %s): %v", e.ConfigPath, e.Key, e.Err)
	}
	return fmt.Sprintf("configuration error in %s: %v", e.ConfigPath, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// DockerConnectionError represents Docker daemon connection and transport errors.
// It includes the socket path and the operation that failed.
type DockerConnectionError struct {
	SocketPath string // Docker socket path (e.g., /var/run/docker.sock)
	Operation  string // Operation that failed (e.g., "Ping", "ListContainers")
	Err        error  // Underlying error
}

// Error implements the error interface for DockerConnectionError.
func (e *DockerConnectionError) Error() string {
	if e.SocketPath != "" {
		return fmt.Sprintf("docker %s failed (socket: %s): %v", e.Operation, e.SocketPath, e.Err)
	}
	return fmt.Sprintf("docker %s failed: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *DockerConnectionError) Unwrap() error {
	return e.Err
}

// ContainerNotFoundError represents a lookup of a container the daemon does not know.
// Ref holds whatever the caller used to address the container (ID or name).
type ContainerNotFoundError struct {
	Ref string // Container ID or name as requested
	Err error  // Underlying error, if the daemon reported one
}

// Error implements the error interface for ContainerNotFoundError.
func (e *ContainerNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("container %s not found: %v", e.Ref, e.Err)
	}
	return fmt.Sprintf("container %s not found", e.Ref)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *ContainerNotFoundError) Unwrap() error {
	return e.Err
}

// InvalidActionError represents a lifecycle action outside the supported vocabulary.
// It is raised before any daemon call is made.
type InvalidActionError struct {
	Action string // The action string as requested
}

// Error implements the error interface for InvalidActionError.
func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action %q: must be one of start, stop, restart, pause, unpause", e.Action)
}

// ActionRejectedError represents a lifecycle action the daemon refused.
// The daemon's own message is preserved in Err.
type ActionRejectedError struct {
	Ref    string // Container ID or name as requested
	Action string // The action that was attempted
	Err    error  // Daemon error carrying the rejection reason
}

// Error implements the error interface for ActionRejectedError.
func (e *ActionRejectedError) Error() string {
	return fmt.Sprintf("action %s rejected for container %s: %v", e.Action, e.Ref, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *ActionRejectedError) Unwrap() error {
	return e.Err
}
