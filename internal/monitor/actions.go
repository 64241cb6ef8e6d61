package monitor

import (
	"context"
	"errors"

	apperrors "github.com/zorak1103/dmon/internal/errors"
)

// Action is a container lifecycle action the agent can dispatch.
type Action string

// Supported lifecycle actions. The daemon owns the state machine; the agent
// only validates the vocabulary.
const (
	ActionStart   Action = "start"
	ActionStop    Action = "stop"
	ActionRestart Action = "restart"
	ActionPause   Action = "pause"
	ActionUnpause Action = "unpause"
)

// ParseAction validates raw against the action vocabulary. It runs before
// any daemon call so unknown actions never reach the runtime.
func ParseAction(raw string) (Action, error) {
	switch Action(raw) {
	case ActionStart, ActionStop, ActionRestart, ActionPause, ActionUnpause:
		return Action(raw), nil
	default:
		return "", &apperrors.InvalidActionError{Action: raw}
	}
}

// ActionResult reports a completed action. Status is the container's state
// re-fetched from the daemon after the action, never an assumed value.
type ActionResult struct {
	Ref    string
	Action Action
	Status string
}

// Dispatch delegates one lifecycle action to the daemon. Whether the
// transition is legal for the container's current state is the daemon's
// decision; its refusals come back as ActionRejectedError with the daemon's
// message preserved.
func (s *Service) Dispatch(ctx context.Context, ref string, action Action) (ActionResult, error) {
	var err error
	switch action {
	case ActionStart:
		err = s.docker.StartContainer(ctx, ref)
	case ActionStop:
		err = s.docker.StopContainer(ctx, ref)
	case ActionRestart:
		err = s.docker.RestartContainer(ctx, ref)
	case ActionPause:
		err = s.docker.PauseContainer(ctx, ref)
	case ActionUnpause:
		err = s.docker.UnpauseContainer(ctx, ref)
	default:
		return ActionResult{}, &apperrors.InvalidActionError{Action: string(action)}
	}

	if err != nil {
		return ActionResult{}, classifyActionError(ref, action, err)
	}

	details, err := s.docker.InspectContainer(ctx, ref)
	if err != nil {
		return ActionResult{}, err
	}

	return ActionResult{Ref: ref, Action: action, Status: details.Status}, nil
}

// classifyActionError keeps lookup and transport failures distinct from
// daemon refusals. Whatever is neither becomes an ActionRejectedError.
func classifyActionError(ref string, action Action, err error) error {
	var notFound *apperrors.ContainerNotFoundError
	var connErr *apperrors.DockerConnectionError
	if errors.As(err, &notFound) || errors.As(err, &connErr) {
		return err
	}
	return &apperrors.ActionRejectedError{Ref: ref, Action: string(action), Err: err}
}
