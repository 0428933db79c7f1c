// Package http exposes the generation, build, and artifact lifecycle workflow
// over fiber handlers.
package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kubeaccel/dockforge/internal/config"
	"github.com/kubeaccel/dockforge/internal/core/artifact"
	"github.com/kubeaccel/dockforge/internal/core/ports"
)

// Handler carries the dependencies of every route. Core packages are used
// directly; external collaborators come in through their ports.
type Handler struct {
	cfg     config.Config
	store   *artifact.Store
	source  ports.ConfigSource
	builder ports.ImageBuilder
	pusher  ports.ImagePusher
	scanner ports.ImageScanner
	fetcher ports.ContextFetcher
}

// NewHandler wires the handler with its collaborators.
func NewHandler(
	cfg config.Config,
	store *artifact.Store,
	source ports.ConfigSource,
	builder ports.ImageBuilder,
	pusher ports.ImagePusher,
	scanner ports.ImageScanner,
	fetcher ports.ContextFetcher,
) *Handler {
	return &Handler{
		cfg:     cfg,
		store:   store,
		source:  source,
		builder: builder,
		pusher:  pusher,
		scanner: scanner,
		fetcher: fetcher,
	}
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// storeErr maps store errors onto HTTP statuses.
func storeErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, artifact.ErrNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, artifact.ErrBadName):
		return fail(c, fiber.StatusBadRequest, err.Error())
	default:
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
}
