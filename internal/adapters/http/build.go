package http

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/kubeaccel/dockforge/internal/core/artifact"
)

// BuildApp builds one application's image from its artifact directory and
// runs the vulnerability gate before reporting success.
func (h *Handler) BuildApp(c *fiber.Ctx) error {
	app := c.Params("app")
	dir, err := h.store.Resolve(app)
	if err != nil {
		return storeErr(c, err)
	}
	if _, err := h.store.ResolveFile(app, artifact.DockerfileName); err != nil {
		return storeErr(c, err)
	}

	ref := h.imageRef(app)
	if err := h.builder.Build(c.Context(), dir, ref); err != nil {
		return fail(c, fiber.StatusInternalServerError, "build failed: "+err.Error())
	}
	if !h.cfg.SkipScan {
		if err := h.scanner.Scan(c.Context(), ref); err != nil {
			return fail(c, fiber.StatusInternalServerError, "scan failed: "+err.Error())
		}
	}

	return c.JSON(fiber.Map{
		"message":   "build completed for " + app,
		"app_name":  app,
		"image_ref": ref,
	})
}

// BuildAll builds every application. One failure does not stop the batch;
// the response carries per-item results and the aggregate success count.
func (h *Handler) BuildAll(c *fiber.Ctx) error {
	apps, err := h.store.List()
	if err != nil {
		return storeErr(c, err)
	}

	results := make([]fiber.Map, 0, len(apps))
	succeeded := 0
	for _, app := range apps {
		if !app.HasDockerfile {
			results = append(results, fiber.Map{"app_name": app.Name, "status": "failed", "error": "no Dockerfile"})
			continue
		}
		ref := h.imageRef(app.Name)
		err := h.builder.Build(c.Context(), app.Path, ref)
		if err == nil && !h.cfg.SkipScan {
			err = h.scanner.Scan(c.Context(), ref)
		}
		if err != nil {
			logrus.WithField("app", app.Name).Warnf("build failed: %v", err)
			results = append(results, fiber.Map{"app_name": app.Name, "status": "failed", "error": err.Error()})
			continue
		}
		succeeded++
		results = append(results, fiber.Map{"app_name": app.Name, "status": "success", "image_ref": ref})
	}

	return c.JSON(fiber.Map{
		"message":           "build all completed",
		"results":           results,
		"total_apps":        len(apps),
		"successful_builds": succeeded,
	})
}

// PushApp pushes one application's previously built image.
func (h *Handler) PushApp(c *fiber.Ctx) error {
	app := c.Params("app")
	if _, err := h.store.Resolve(app); err != nil {
		return storeErr(c, err)
	}
	ref := h.imageRef(app)
	if err := h.pusher.Push(c.Context(), ref); err != nil {
		return fail(c, fiber.StatusInternalServerError, "push failed: "+err.Error())
	}
	return c.JSON(fiber.Map{
		"message":   "push completed for " + app,
		"app_name":  app,
		"image_ref": ref,
	})
}

// imageRef derives the fully qualified image reference for an application.
// The registry itself never validates through us; we only normalize the name.
func (h *Handler) imageRef(app string) string {
	repo := repoName(app)
	if h.cfg.Registry != "" {
		repo = strings.TrimSuffix(h.cfg.Registry, "/") + "/" + repo
	}
	return repo + ":" + cleanTag(h.cfg.ImageTag)
}

// repoName normalizes an app name into a registry repository name: lowercase,
// underscores to hyphens, prefixed for namespacing unless already prefixed.
func repoName(app string) string {
	repo := strings.ReplaceAll(strings.ToLower(app), "_", "-")
	if len(repo) < 2 {
		return "k8s-app-" + repo
	}
	if !strings.HasPrefix(repo, "k8s-") && !strings.HasPrefix(repo, "app-") {
		return "k8s-" + repo
	}
	return repo
}

var tagDisallowed = regexp.MustCompile(`[^a-z0-9_.-]`)

// cleanTag clamps a tag to docker's allowed charset and length.
func cleanTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	tag = tagDisallowed.ReplaceAllString(tag, "-")
	for strings.Contains(tag, "--") {
		tag = strings.ReplaceAll(tag, "--", "-")
	}
	if tag == "" {
		return "latest"
	}
	if len(tag) > 128 {
		tag = tag[:128]
	}
	return tag
}
