// Package scanner gates built images on a vulnerability scan. The scanner is
// an external binary treated as a black box: exit code zero passes, anything
// else fails the gate.
package scanner

import (
	"context"
	"fmt"

	"github.com/kubeaccel/dockforge/internal/config"
	"github.com/kubeaccel/dockforge/internal/executil"
)

// Trivy invokes the trivy CLI against a local image.
type Trivy struct {
	Bin      string
	Severity string
	DryRun   bool
}

// NewTrivy builds a scanner from the service configuration.
func NewTrivy(cfg config.Config) Trivy {
	return Trivy{Bin: cfg.ScannerBin, Severity: cfg.ScanSeverity, DryRun: cfg.DryRun}
}

// Scan runs the scanner with --exit-code 1 at the configured severity, so
// findings at or above it fail the gate.
func (t Trivy) Scan(ctx context.Context, ref string) error {
	args := []string{"image", "--severity", t.Severity, "--exit-code", "1", ref}
	if t.DryRun {
		return executil.DryRun(ctx, t.Bin, args...)
	}
	if err := executil.Run(ctx, t.Bin, args...); err != nil {
		return fmt.Errorf("image %s failed %s vulnerability gate: %w", ref, t.Severity, err)
	}
	return nil
}
