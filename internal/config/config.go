// Package config holds the service's environment-backed settings. Values are
// read once at startup and passed into components explicitly; no package in
// this module reads directory paths from ambient globals.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config carries every setting the service needs at runtime.
type Config struct {
	Addr      string
	UploadDir string
	OutputDir string

	// Registry is the host[/namespace] images are tagged under, e.g.
	// "registry.example.com/platform". Credentials are optional; pushes to a
	// registry with ambient daemon credentials work without them.
	Registry         string
	RegistryUser     string
	RegistryPassword string
	ImageTag         string

	// Scan gate. Severity is passed straight to the scanner binary.
	ScannerBin   string
	ScanSeverity string
	SkipScan     bool

	DryRun bool
}

// Load reads a .env file when present, then assembles the configuration from
// the environment with defaults.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		logrus.Debug("loaded settings from .env")
	}

	return Config{
		Addr:             getenv("DOCKFORGE_ADDR", ":8000"),
		UploadDir:        getenv("DOCKFORGE_UPLOAD_DIR", "uploads"),
		OutputDir:        getenv("DOCKFORGE_OUTPUT_DIR", "output"),
		Registry:         getenv("DOCKFORGE_REGISTRY", ""),
		RegistryUser:     getenv("DOCKFORGE_REGISTRY_USER", ""),
		RegistryPassword: getenv("DOCKFORGE_REGISTRY_PASSWORD", ""),
		ImageTag:         getenv("DOCKFORGE_IMAGE_TAG", "latest"),
		ScannerBin:       getenv("DOCKFORGE_SCANNER", "trivy"),
		ScanSeverity:     getenv("DOCKFORGE_SCAN_SEVERITY", "CRITICAL"),
		SkipScan:         boolenv("DOCKFORGE_SKIP_SCAN"),
		DryRun:           boolenv("DOCKFORGE_DRY_RUN"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func boolenv(key string) bool {
	return strings.EqualFold(os.Getenv(key), "true")
}
