package http

import (
	"os"
	"strconv"

	"github.com/docker/go-units"
	"github.com/gofiber/fiber/v2"

	"github.com/kubeaccel/dockforge/internal/core/artifact"
)

// ListApps enumerates generated applications with Dockerfile metadata.
func (h *Handler) ListApps(c *fiber.Ctx) error {
	apps, err := h.store.List()
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(fiber.Map{"apps": apps, "total": len(apps)})
}

// GetDockerfile returns one application's Dockerfile as plain text.
func (h *Handler) GetDockerfile(c *fiber.Ctx) error {
	path, err := h.store.ResolveFile(c.Params("app"), artifact.DockerfileName)
	if err != nil {
		return storeErr(c, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return storeErr(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Send(content)
}

// ListFiles lists the contents of one application's directory.
func (h *Handler) ListFiles(c *fiber.Ctx) error {
	app := c.Params("app")
	dir, err := h.store.Resolve(app)
	if err != nil {
		return storeErr(c, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return storeErr(c, err)
	}
	files := make([]fiber.Map, 0, len(entries))
	for _, e := range entries {
		f := fiber.Map{"name": e.Name(), "is_directory": e.IsDir()}
		if info, err := e.Info(); err == nil && !e.IsDir() {
			f["size_bytes"] = info.Size()
		}
		files = append(files, f)
	}
	return c.JSON(fiber.Map{"app_name": app, "files": files, "total_files": len(files)})
}

// DownloadFile serves one file from an application's directory.
func (h *Handler) DownloadFile(c *fiber.Ctx) error {
	path, err := h.store.ResolveFile(c.Params("app"), c.Params("file"))
	if err != nil {
		return storeErr(c, err)
	}
	return c.Download(path)
}

// DeleteApp removes one application's directory. Irreversible.
func (h *Handler) DeleteApp(c *fiber.Ctx) error {
	app := c.Params("app")
	if err := h.store.Delete(app); err != nil {
		return storeErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "application " + app + " deleted"})
}

// CleanupAll wipes and recreates the whole output root.
func (h *Handler) CleanupAll(c *fiber.Ctx) error {
	if err := h.store.Reset(); err != nil {
		return storeErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "all applications cleaned up"})
}

// CleanupOld deletes applications older than the days query parameter.
func (h *Handler) CleanupOld(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	report, err := h.store.CleanupOlderThan(days)
	if err != nil {
		return storeErr(c, err)
	}
	return cleanupResponse(c, report)
}

// CleanupEmpty deletes empty application directories.
func (h *Handler) CleanupEmpty(c *fiber.Ctx) error {
	report, err := h.store.CleanupEmpty()
	if err != nil {
		return storeErr(c, err)
	}
	return cleanupResponse(c, report)
}

// CleanupInvalid deletes applications without a valid Dockerfile.
func (h *Handler) CleanupInvalid(c *fiber.Ctx) error {
	report, err := h.store.CleanupInvalid()
	if err != nil {
		return storeErr(c, err)
	}
	return cleanupResponse(c, report)
}

func cleanupResponse(c *fiber.Ctx, report artifact.CleanupReport) error {
	return c.JSON(fiber.Map{
		"deleted_apps":     report.Deleted,
		"total_deleted":    len(report.Deleted),
		"freed_bytes":      report.FreedBytes,
		"total_size_freed": units.HumanSize(float64(report.FreedBytes)),
	})
}

// PreviewCleanup reports what the cleanup operations would delete without
// deleting anything.
func (h *Handler) PreviewCleanup(c *fiber.Ctx) error {
	var days *int
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "days must be an integer")
		}
		days = &n
	}
	preview, err := h.store.PreviewCleanup(days, c.QueryBool("show_empty"), c.QueryBool("show_invalid"))
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(fiber.Map{
		"preview":            true,
		"total_apps":         preview.TotalApps,
		"apps_to_delete":     preview.ToDelete,
		"size_to_free_bytes": preview.FreedBytes,
		"size_to_free":       units.HumanSize(float64(preview.FreedBytes)),
		"apps":               preview.Apps,
	})
}

// StorageSummary reports aggregate usage plus per-application detail.
func (h *Handler) StorageSummary(c *fiber.Ctx) error {
	sum, err := h.store.StorageSummary()
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(fiber.Map{
		"total_apps":        sum.TotalApps,
		"valid_apps":        sum.ValidApps,
		"empty_directories": sum.EmptyDirs,
		"invalid_apps":      sum.InvalidApps,
		"total_size_bytes":  sum.TotalSizeBytes,
		"total_size":        units.HumanSize(float64(sum.TotalSizeBytes)),
		"cleanup_recommendations": fiber.Map{
			"can_cleanup_empty":     sum.EmptyDirs > 0,
			"can_cleanup_invalid":   sum.InvalidApps > 0,
			"total_cleanable_items": sum.EmptyDirs + sum.InvalidApps,
		},
		"apps": sum.Apps,
	})
}
