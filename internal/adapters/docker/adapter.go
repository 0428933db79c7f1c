// Package docker builds and pushes images through the Docker daemon.
package docker

import (
	"context"
	"fmt"
	"os"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/registry"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/archive"
	"github.com/docker/docker/pkg/jsonmessage"
	"github.com/sirupsen/logrus"

	"github.com/kubeaccel/dockforge/internal/config"
	"github.com/kubeaccel/dockforge/internal/core/artifact"
)

// Adapter implements image build and push over the Docker client SDK.
type Adapter struct {
	cli  *client.Client
	auth string
}

// NewAdapter connects to the daemon from the environment and precomputes the
// registry auth blob when credentials are configured.
func NewAdapter(cfg config.Config) (*Adapter, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}

	a := &Adapter{cli: cli}
	if cfg.RegistryUser != "" {
		auth, err := registry.EncodeAuthConfig(registry.AuthConfig{
			Username:      cfg.RegistryUser,
			Password:      cfg.RegistryPassword,
			ServerAddress: cfg.Registry,
		})
		if err != nil {
			return nil, fmt.Errorf("encode registry auth: %w", err)
		}
		a.auth = auth
	}
	return a, nil
}

// Build tars the artifact directory into a build context and builds it,
// tagging the result with ref. Build output streams to stdout; a failure
// inside the stream surfaces as an error.
func (a *Adapter) Build(ctx context.Context, dir, ref string) error {
	buildCtx, err := archive.TarWithOptions(dir, &archive.TarOptions{})
	if err != nil {
		return fmt.Errorf("create build context from %s: %w", dir, err)
	}
	defer buildCtx.Close()

	logrus.WithFields(logrus.Fields{"dir": dir, "ref": ref}).Info("building image")
	resp, err := a.cli.ImageBuild(ctx, buildCtx, types.ImageBuildOptions{
		Tags:       []string{ref},
		Dockerfile: artifact.DockerfileName,
		Remove:     true,
	})
	if err != nil {
		return fmt.Errorf("build %s: %w", ref, err)
	}
	defer resp.Body.Close()

	if err := jsonmessage.DisplayJSONMessagesStream(resp.Body, os.Stdout, 0, false, nil); err != nil {
		return fmt.Errorf("build %s: %w", ref, err)
	}
	return nil
}

// Push pushes ref to its registry using the configured credentials.
func (a *Adapter) Push(ctx context.Context, ref string) error {
	logrus.WithField("ref", ref).Info("pushing image")
	rc, err := a.cli.ImagePush(ctx, ref, types.ImagePushOptions{RegistryAuth: a.auth})
	if err != nil {
		return fmt.Errorf("push %s: %w", ref, err)
	}
	defer rc.Close()

	if err := jsonmessage.DisplayJSONMessagesStream(rc, os.Stdout, 0, false, nil); err != nil {
		return fmt.Errorf("push %s: %w", ref, err)
	}
	return nil
}
