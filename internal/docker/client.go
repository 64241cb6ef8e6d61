// Package docker provides a client for interacting with the Docker API.
package docker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"

	apperrors "github.com/zorak1103/dmon/internal/errors"
)

// Client defines the interface for Docker client operations.
// Implementations must provide container listing, inspection, stats and log
// reading, lifecycle control, and connection management. All methods accept
// context.Context for cancellation and timeout support.
//
// Errors are classified at this boundary: unknown containers surface as
// *apperrors.ContainerNotFoundError and daemon transport failures as
// *apperrors.DockerConnectionError. Anything else is returned wrapped but
// unclassified so callers can decide what a refusal means for them.
type Client interface {
	// Ping verifies the Docker daemon is accessible. Returns error if connection fails.
	Ping(ctx context.Context) error
	// Close closes the Docker client connection and releases resources.
	Close() error

	// ListContainers lists all containers known to the daemon, in daemon
	// order, regardless of state.
	//
	// Example:
	//   containers, err := client.ListContainers(ctx)
	//   if err != nil {
	//       return fmt.Errorf("failed to list containers: %w", err)
	//   }
	//   for _, ctr := range containers {
	//       fmt.Printf("  %s: %s (%s)\n", ctr.Name, ctr.ID[:12], ctr.Status)
	//   }
	ListContainers(ctx context.Context) ([]Container, error)

	// InspectContainer returns the inspect subset for one container,
	// addressed by ID or name.
	InspectContainer(ctx context.Context, ref string) (ContainerDetails, error)

	// ContainerStats performs one non-streaming stats read. The daemon
	// blocks briefly to collect two CPU samples, so the returned pair
	// normally carries a previous sample alongside the current one.
	ContainerStats(ctx context.Context, ref string) (StatsPair, error)

	// ContainerLogs returns up to tail lines of the container's combined
	// stdout/stderr as plain text, with multiplexing headers stripped.
	ContainerLogs(ctx context.Context, ref string, tail int) (string, error)

	// Info returns daemon-level information and container counts.
	Info(ctx context.Context) (DaemonInfo, error)

	// Lifecycle operations delegate state transitions to the daemon.
	// The daemon decides whether a transition is legal for the container's
	// current state; illegal transitions come back as daemon errors.
	StartContainer(ctx context.Context, ref string) error
	StopContainer(ctx context.Context, ref string) error
	RestartContainer(ctx context.Context, ref string) error
	PauseContainer(ctx context.Context, ref string) error
	UnpauseContainer(ctx context.Context, ref string) error
}

// dockerClientWrapper wraps the Docker client to implement our interface
type dockerClientWrapper struct {
	cli        *client.Client
	socketPath string
}

// Compile-time verification that dockerClientWrapper implements Client
var _ Client = (*dockerClientWrapper)(nil)

// NewClient connects to the Docker daemon at socketPath (or default if empty).
func NewClient(socketPath string) (Client, error) {
	opts := []client.Opt{
		client.WithAPIVersionNegotiation(),
	}

	// Add host option if socket path is specified
	if socketPath != "" {
		opts = append(opts, client.WithHost(socketPath))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client for socket %s: %w", socketPath, err)
	}

	wrapper := &dockerClientWrapper{
		cli:        cli,
		socketPath: socketPath,
	}
	return &dockerClient{cli: wrapper}, nil
}

// NewClientWithInterface is used for testing with mock implementations.
func NewClientWithInterface(dockerCli Client) Client {
	return &dockerClient{cli: dockerCli}
}

// classify translates SDK errors into the agent's error types.
func (w *dockerClientWrapper) classify(op, ref string, err error) error {
	switch {
	case client.IsErrNotFound(err):
		return &apperrors.ContainerNotFoundError{Ref: ref, Err: err}
	case client.IsErrConnectionFailed(err):
		return &apperrors.DockerConnectionError{SocketPath: w.socketPath, Operation: op, Err: err}
	case ref != "":
		return fmt.Errorf("docker %s failed for container %s: %w", op, ref, err)
	default:
		return fmt.Errorf("docker %s failed: %w", op, err)
	}
}

func (w *dockerClientWrapper) Ping(ctx context.Context) error {
	_, err := w.cli.Ping(ctx)
	if err != nil {
		return &apperrors.DockerConnectionError{SocketPath: w.socketPath, Operation: "Ping", Err: err}
	}
	return nil
}

func (w *dockerClientWrapper) Close() error {
	return w.cli.Close()
}

func (w *dockerClientWrapper) ListContainers(ctx context.Context) ([]Container, error) {
	containers, err := w.cli.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, w.classify("ListContainers", "", err)
	}

	result := make([]Container, 0, len(containers))
	for _, ctr := range containers {
		// Extract container name (remove leading slash)
		name := ""
		if len(ctr.Names) > 0 {
			name = strings.TrimPrefix(ctr.Names[0], "/")
		}

		ports := make([]PortBinding, 0, len(ctr.Ports))
		for _, p := range ctr.Ports {
			ports = append(ports, PortBinding{
				HostIP:      p.IP,
				PrivatePort: p.PrivatePort,
				PublicPort:  p.PublicPort,
				Protocol:    p.Type,
			})
		}

		result = append(result, Container{
			ID:      ctr.ID,
			Name:    name,
			Status:  ctr.State,
			Image:   ctr.Image,
			Created: time.Unix(ctr.Created, 0).UTC(),
			Ports:   ports,
			Labels:  ctr.Labels,
		})
	}

	return result, nil
}

func (w *dockerClientWrapper) InspectContainer(ctx context.Context, ref string) (ContainerDetails, error) {
	insp, err := w.cli.ContainerInspect(ctx, ref)
	if err != nil {
		return ContainerDetails{}, w.classify("InspectContainer", ref, err)
	}

	details := ContainerDetails{
		ID:           insp.ID,
		Name:         strings.TrimPrefix(insp.Name, "/"),
		RestartCount: insp.RestartCount,
	}

	if insp.State != nil {
		details.Status = insp.State.Status
		// The daemon reports "0001-01-01T00:00:00Z" for never-started
		// containers, which parses to the zero time.
		if started, perr := time.Parse(time.RFC3339Nano, insp.State.StartedAt); perr == nil {
			details.StartedAt = started
		}
	}

	return details, nil
}

func (w *dockerClientWrapper) ContainerStats(ctx context.Context, ref string) (StatsPair, error) {
	resp, err := w.cli.ContainerStats(ctx, ref, false)
	if err != nil {
		return StatsPair{}, w.classify("ContainerStats", ref, err)
	}
	// Close after decoding; error not actionable once the stream is consumed
	defer func() { _ = resp.Body.Close() }()

	var raw container.StatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return StatsPair{}, fmt.Errorf("failed to decode stats for container %s: %w", ref, err)
	}

	return newStatsPair(raw), nil
}

func (w *dockerClientWrapper) ContainerLogs(ctx context.Context, ref string, tail int) (string, error) {
	logOpts := container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Timestamps: true,
		Tail:       strconv.Itoa(tail),
	}

	reader, err := w.cli.ContainerLogs(ctx, ref, logOpts)
	if err != nil {
		return "", w.classify("ContainerLogs", ref, err)
	}
	// Close reader after parsing; error not actionable in defer context as stream is already consumed
	defer func() { _ = reader.Close() }()

	return readLogText(reader)
}

func (w *dockerClientWrapper) Info(ctx context.Context) (DaemonInfo, error) {
	info, err := w.cli.Info(ctx)
	if err != nil {
		return DaemonInfo{}, w.classify("Info", "", err)
	}

	return DaemonInfo{
		ServerVersion:     info.ServerVersion,
		Containers:        info.Containers,
		ContainersRunning: info.ContainersRunning,
		ContainersPaused:  info.ContainersPaused,
		ContainersStopped: info.ContainersStopped,
		Images:            info.Images,
		Driver:            info.Driver,
		KernelVersion:     info.KernelVersion,
		OperatingSystem:   info.OperatingSystem,
		Architecture:      info.Architecture,
		NCPU:              info.NCPU,
		MemTotal:          info.MemTotal,
	}, nil
}

func (w *dockerClientWrapper) StartContainer(ctx context.Context, ref string) error {
	if err := w.cli.ContainerStart(ctx, ref, container.StartOptions{}); err != nil {
		return w.classify("StartContainer", ref, err)
	}
	return nil
}

func (w *dockerClientWrapper) StopContainer(ctx context.Context, ref string) error {
	if err := w.cli.ContainerStop(ctx, ref, container.StopOptions{}); err != nil {
		return w.classify("StopContainer", ref, err)
	}
	return nil
}

func (w *dockerClientWrapper) RestartContainer(ctx context.Context, ref string) error {
	if err := w.cli.ContainerRestart(ctx, ref, container.StopOptions{}); err != nil {
		return w.classify("RestartContainer", ref, err)
	}
	return nil
}

func (w *dockerClientWrapper) PauseContainer(ctx context.Context, ref string) error {
	if err := w.cli.ContainerPause(ctx, ref); err != nil {
		return w.classify("PauseContainer", ref, err)
	}
	return nil
}

func (w *dockerClientWrapper) UnpauseContainer(ctx context.Context, ref string) error {
	if err := w.cli.ContainerUnpause(ctx, ref); err != nil {
		return w.classify("UnpauseContainer", ref, err)
	}
	return nil
}

// dockerClient wraps the Docker client with application-specific logic
type dockerClient struct {
	cli Client
}

func (c *dockerClient) Close() error {
	return c.cli.Close()
}

func (c *dockerClient) Ping(ctx context.Context) error {
	return c.cli.Ping(ctx)
}

func (c *dockerClient) ListContainers(ctx context.Context) ([]Container, error) {
	return c.cli.ListContainers(ctx)
}

func (c *dockerClient) InspectContainer(ctx context.Context, ref string) (ContainerDetails, error) {
	return c.cli.InspectContainer(ctx, ref)
}

func (c *dockerClient) ContainerStats(ctx context.Context, ref string) (StatsPair, error) {
	return c.cli.ContainerStats(ctx, ref)
}

func (c *dockerClient) ContainerLogs(ctx context.Context, ref string, tail int) (string, error) {
	return c.cli.ContainerLogs(ctx, ref, tail)
}

func (c *dockerClient) Info(ctx context.Context) (DaemonInfo, error) {
	return c.cli.Info(ctx)
}

func (c *dockerClient) StartContainer(ctx context.Context, ref string) error {
	return c.cli.StartContainer(ctx, ref)
}

func (c *dockerClient) StopContainer(ctx context.Context, ref string) error {
	return c.cli.StopContainer(ctx, ref)
}

func (c *dockerClient) RestartContainer(ctx context.Context, ref string) error {
	return c.cli.RestartContainer(ctx, ref)
}

func (c *dockerClient) PauseContainer(ctx context.Context, ref string) error {
	return c.cli.PauseContainer(ctx, ref)
}

func (c *dockerClient) UnpauseContainer(ctx context.Context, ref string) error {
	return c.cli.UnpauseContainer(ctx, ref)
}
