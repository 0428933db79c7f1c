package http

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	coreconfig "github.com/kubeaccel/dockforge/internal/core/config"
	"github.com/kubeaccel/dockforge/internal/core/dockerfile"
)

// GenerateDockerfiles loads the most recent upload and writes one Dockerfile
// per application. Malformed records and per-app write failures are reported
// in the response; neither aborts the batch.
func (h *Handler) GenerateDockerfiles(c *fiber.Ctx) error {
	path, err := h.latestUpload()
	if err != nil {
		return fail(c, fiber.StatusNotFound, err.Error())
	}
	records, err := h.source.Records(path)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	res := coreconfig.LoadRecords(records)

	generated := make([]string, 0, len(res.Apps.Names))
	writeFailures := []fiber.Map{}
	for _, app := range res.Apps.Names {
		text := dockerfile.Render(res.Apps.Stages[app])
		if _, err := h.store.WriteDockerfile(app, text); err != nil {
			logrus.WithField("app", app).Warnf("dockerfile write failed: %v", err)
			writeFailures = append(writeFailures, fiber.Map{"app_name": app, "error": err.Error()})
			continue
		}
		logrus.WithField("app", app).Info("dockerfile generated")
		generated = append(generated, app)
	}

	return c.JSON(fiber.Map{
		"message":         "dockerfiles generated",
		"spreadsheet":     filepath.Base(path),
		"generated_apps":  generated,
		"total_apps":      len(generated),
		"skipped_records": res.Skipped,
		"write_failures":  writeFailures,
	})
}
