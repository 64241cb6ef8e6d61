package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/zorak1103/dmon/internal/errors"
)

// errorStatus maps taxonomy errors onto HTTP status codes. Anything outside
// the taxonomy is a 500.
func errorStatus(err error) int {
	var (
		invalidAction *apperrors.InvalidActionError
		notFound      *apperrors.ContainerNotFoundError
		rejected      *apperrors.ActionRejectedError
		connErr       *apperrors.DockerConnectionError
	)

	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.As(err, &invalidAction):
		return fiber.StatusBadRequest
	case errors.As(err, &notFound):
		return fiber.StatusNotFound
	case errors.As(err, &rejected):
		return fiber.StatusConflict
	case errors.As(err, &connErr):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

// errorResponse writes the uniform error envelope.
func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(errorStatus(err)).JSON(fiber.Map{"error": err.Error()})
}
