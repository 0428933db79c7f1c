package http

import (
	"github.com/gofiber/fiber/v2"
)

// FetchContextRequest names the repository to clone build context from.
type FetchContextRequest struct {
	RepoURL string `json:"repo_url"`
}

// FetchContext clones a repository's working tree into an existing
// application's directory so the generated Dockerfile has real context files
// to build against.
func (h *Handler) FetchContext(c *fiber.Ctx) error {
	app := c.Params("app")
	dir, err := h.store.Resolve(app)
	if err != nil {
		return storeErr(c, err)
	}

	var req FetchContextRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.RepoURL == "" {
		return fail(c, fiber.StatusBadRequest, "repo_url is required")
	}

	if err := h.fetcher.Fetch(c.Context(), req.RepoURL, dir); err != nil {
		return fail(c, fiber.StatusInternalServerError, "fetch failed: "+err.Error())
	}
	return c.JSON(fiber.Map{
		"message":  "build context fetched for " + app,
		"app_name": app,
		"repo_url": req.RepoURL,
	})
}
