package dockerfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubeaccel/dockforge/internal/core/domain"
)

func TestRender(t *testing.T) {
	t.Run("renders a single stage with directives in the fixed order", func(t *testing.T) {
		stage := domain.Stage{
			BaseImage:   "python:3.11-slim",
			Workdir:     "/app",
			RunCommands: []string{"pip install -r requirements.txt", "python -m compileall ."},
			ExposePorts: []int{8000},
			Cmd:         []string{"python", "app.py"},
		}

		got := Render([]domain.Stage{stage})

		want := strings.Join([]string{
			"FROM python:3.11-slim",
			"WORKDIR /app",
			"RUN pip install -r requirements.txt",
			"RUN python -m compileall .",
			"EXPOSE 8000",
			`CMD ["python","app.py"]`,
		}, "\n")
		assert.Equal(t, want, got)
	})

	t.Run("renders every directive kind in order", func(t *testing.T) {
		stage := domain.Stage{
			Name:        "builder",
			BaseImage:   "golang:1.24",
			Workdir:     "/src",
			Adds:        []domain.AddInstruction{{Src: "vendor.tar.gz", Dest: "/src/vendor", Chown: "app:app"}},
			Copies:      []domain.CopyInstruction{{Src: "go.mod", Dest: "."}},
			RunCommands: []string{"go build -o /out/app ./cmd/app"},
			EnvVars:     domain.Pairs{}.Append("CGO_ENABLED", "0"),
			Args:        domain.Pairs{}.Append("VERSION", "dev"),
			ExposePorts: []int{8080, 9090},
			Entrypoint:  []string{"/out/app"},
			Cmd:         []string{"serve"},
			Labels:      domain.Pairs{}.Append("team", "platform"),
			Maintainer:  "platform@example.com",
			OnBuildCmd:  "RUN echo hi",
			Shell:       []string{"/bin/bash", "-c"},
			StopSignal:  "SIGTERM",
			User:        "app",
			VolumeDirs:  []string{"/data"},
			Healthcheck: "CMD curl -f http://localhost:8080/health || exit 1",
		}

		lines := strings.Split(Render([]domain.Stage{stage}), "\n")

		want := []string{
			"FROM golang:1.24 AS builder",
			"MAINTAINER platform@example.com",
			`LABEL team="platform"`,
			"ARG VERSION=dev",
			"ENV CGO_ENABLED=0",
			"WORKDIR /src",
			"ADD --chown=app:app vendor.tar.gz /src/vendor",
			"COPY go.mod .",
			"RUN go build -o /out/app ./cmd/app",
			"ONBUILD RUN echo hi",
			`SHELL ["/bin/bash","-c"]`,
			"STOPSIGNAL SIGTERM",
			"USER app",
			`VOLUME ["/data"]`,
			"EXPOSE 8080",
			"EXPOSE 9090",
			"HEALTHCHECK CMD curl -f http://localhost:8080/health || exit 1",
			`ENTRYPOINT ["/out/app"]`,
			`CMD ["serve"]`,
		}
		assert.Equal(t, want, lines)
	})

	t.Run("separates stages with exactly one blank line", func(t *testing.T) {
		stages := []domain.Stage{
			{
				Name:        "builder",
				BaseImage:   "golang:1.24",
				RunCommands: []string{"go build -o /out/app ."},
			},
			{
				BaseImage: "alpine:3.20",
				Copies:    []domain.CopyInstruction{{Src: "/out/app", Dest: "/usr/local/bin/app", FromStage: "builder"}},
				Cmd:       []string{"app"},
			},
		}

		got := Render(stages)

		assert.Contains(t, got, "go build -o /out/app .\n\nFROM alpine:3.20")
		assert.Contains(t, got, "COPY --from=builder /out/app /usr/local/bin/app")
		assert.False(t, strings.HasPrefix(got, "\n"))
		assert.False(t, strings.HasSuffix(got, "\n"))
	})

	t.Run("is deterministic", func(t *testing.T) {
		stage := domain.Stage{
			BaseImage: "nginx:1.27",
			EnvVars:   domain.Pairs{}.Append("A", "1").Append("B", "2").Append("C", "3"),
			Labels:    domain.Pairs{}.Append("x", "y"),
		}
		first := Render([]domain.Stage{stage})
		for i := 0; i < 10; i++ {
			require.Equal(t, first, Render([]domain.Stage{stage}))
		}
	})

	t.Run("pair order is preserved so ARGs can precede dependent ENVs", func(t *testing.T) {
		stage := domain.Stage{
			BaseImage: "debian:12",
			Args:      domain.Pairs{}.Append("APP_HOME", "/app"),
			EnvVars:   domain.Pairs{}.Append("HOME", "$APP_HOME").Append("PATH", "$APP_HOME/bin:$PATH"),
		}
		lines := strings.Split(Render([]domain.Stage{stage}), "\n")
		assert.Equal(t, []string{
			"FROM debian:12",
			"ARG APP_HOME=/app",
			"ENV HOME=$APP_HOME",
			"ENV PATH=$APP_HOME/bin:$PATH",
		}, lines)
	})

	t.Run("absent vectors suppress the directive entirely", func(t *testing.T) {
		got := Render([]domain.Stage{{BaseImage: "alpine:3.20"}})
		assert.Equal(t, "FROM alpine:3.20", got)
		assert.NotContains(t, got, "ENTRYPOINT")
		assert.NotContains(t, got, "CMD")
	})
}

func TestInstructionRender(t *testing.T) {
	t.Run("copy without origin stage", func(t *testing.T) {
		c := domain.CopyInstruction{Src: "a.txt", Dest: "/a.txt"}
		assert.Equal(t, "COPY a.txt /a.txt", c.Render())
	})
	t.Run("copy with origin stage", func(t *testing.T) {
		c := domain.CopyInstruction{Src: "/out", Dest: "/bin", FromStage: "builder"}
		assert.Equal(t, "COPY --from=builder /out /bin", c.Render())
	})
	t.Run("add without ownership", func(t *testing.T) {
		a := domain.AddInstruction{Src: "site.tgz", Dest: "/srv"}
		assert.Equal(t, "ADD site.tgz /srv", a.Render())
	})
	t.Run("add with ownership", func(t *testing.T) {
		a := domain.AddInstruction{Src: "site.tgz", Dest: "/srv", Chown: "www:www"}
		assert.Equal(t, "ADD --chown=www:www site.tgz /srv", a.Render())
	})
}
