package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/kubeaccel/dockforge/internal/adapters/docker"
	"github.com/kubeaccel/dockforge/internal/adapters/excel"
	"github.com/kubeaccel/dockforge/internal/adapters/git"
	adapterhttp "github.com/kubeaccel/dockforge/internal/adapters/http"
	"github.com/kubeaccel/dockforge/internal/adapters/scanner"
	"github.com/kubeaccel/dockforge/internal/config"
	"github.com/kubeaccel/dockforge/internal/core/artifact"
)

func main() {
	cfg := config.Load()
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// 1. Initialize the artifact store and working directories
	store := artifact.NewStore(cfg.OutputDir)
	if err := store.EnsureRoot(); err != nil {
		logrus.Fatalf("failed to prepare output root: %v", err)
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logrus.Fatalf("failed to prepare upload dir: %v", err)
	}

	// 2. Initialize adapters (infrastructure)
	dockerAdapter, err := docker.NewAdapter(cfg)
	if err != nil {
		logrus.Fatalf("failed to initialize docker adapter: %v", err)
	}

	// 3. HTTP handlers get the adapters through their ports
	handler := adapterhttp.NewHandler(cfg, store, excel.Source{}, dockerAdapter, dockerAdapter, scanner.NewTrivy(cfg), git.Fetcher{})

	// 4. Framework setup
	app := fiber.New(fiber.Config{
		AppName:   "dockforge",
		BodyLimit: 32 << 20, // spreadsheet uploads are small; this is generous
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "dockforge API", "status": "running"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	api := app.Group("/api")

	api.Post("/upload-excel", handler.UploadExcel)
	api.Get("/config-preview", handler.ConfigPreview)
	api.Post("/generate-dockerfiles", handler.GenerateDockerfiles)

	api.Get("/apps", handler.ListApps)
	api.Get("/dockerfile/:app", handler.GetDockerfile)
	api.Get("/files/:app", handler.ListFiles)
	api.Get("/download/:app/:file", handler.DownloadFile)
	api.Delete("/app/:app", handler.DeleteApp)

	api.Delete("/cleanup", handler.CleanupAll)
	api.Delete("/cleanup/old", handler.CleanupOld)
	api.Delete("/cleanup/empty", handler.CleanupEmpty)
	api.Delete("/cleanup/invalid", handler.CleanupInvalid)
	api.Get("/cleanup/preview", handler.PreviewCleanup)
	api.Get("/storage/summary", handler.StorageSummary)

	api.Post("/build/:app", handler.BuildApp)
	api.Post("/build-all", handler.BuildAll)
	api.Post("/push/:app", handler.PushApp)
	api.Post("/context/:app", handler.FetchContext)

	// 5. Start server
	logrus.Infof("server starting on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		logrus.Fatalf("server failed to start: %v", err)
	}
}
