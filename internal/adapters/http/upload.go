package http

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// UploadExcel accepts a multipart spreadsheet upload, persists it to the
// upload directory, and returns a parsed record preview. Parse failures and
// missing required columns reject the upload.
func (h *Handler) UploadExcel(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "file is required")
	}

	name := filepath.Base(fileHeader.Filename)
	lower := strings.ToLower(name)
	if !strings.HasSuffix(lower, ".xlsx") && !strings.HasSuffix(lower, ".xls") {
		return fail(c, fiber.StatusBadRequest, "file must be a spreadsheet (.xlsx or .xls)")
	}

	if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
		return fail(c, fiber.StatusInternalServerError, fmt.Sprintf("create upload dir: %v", err))
	}
	dest := filepath.Join(h.cfg.UploadDir, name)
	if err := c.SaveFile(fileHeader, dest); err != nil {
		return fail(c, fiber.StatusInternalServerError, fmt.Sprintf("save upload: %v", err))
	}

	records, err := h.source.Records(dest)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{
		"message":        "file uploaded successfully",
		"filename":       name,
		"total_records":  len(records),
		"config_preview": records,
	})
}

// ConfigPreview re-parses the most recent upload.
func (h *Handler) ConfigPreview(c *fiber.Ctx) error {
	path, err := h.latestUpload()
	if err != nil {
		return fail(c, fiber.StatusNotFound, err.Error())
	}
	records, err := h.source.Records(path)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{
		"filename":       filepath.Base(path),
		"total_records":  len(records),
		"configurations": records,
	})
}

// latestUpload returns the most recently modified spreadsheet in the upload
// directory.
func (h *Handler) latestUpload() (string, error) {
	entries, err := os.ReadDir(h.cfg.UploadDir)
	if err != nil {
		return "", fmt.Errorf("no spreadsheet uploaded yet")
	}
	var newest string
	var newestMod int64
	for _, e := range entries {
		lower := strings.ToLower(e.Name())
		if e.IsDir() || (!strings.HasSuffix(lower, ".xlsx") && !strings.HasSuffix(lower, ".xls")) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); newest == "" || mod > newestMod {
			newest = e.Name()
			newestMod = mod
		}
	}
	if newest == "" {
		return "", fmt.Errorf("no spreadsheet uploaded yet")
	}
	return filepath.Join(h.cfg.UploadDir, newest), nil
}
