// Package dockerfile renders ordered stage models into Dockerfile text.
//
// Render is a total function: it accepts any Stage value and never fails.
// Semantic validation (base image sanity, port conflicts) is out of scope;
// malformed stages are the configuration loader's problem.
package dockerfile

import (
	"strconv"
	"strings"

	"github.com/kubeaccel/dockforge/internal/core/domain"
)

// Render produces Dockerfile text for the given stages, one block per stage,
// separated by a single blank line. The directive order inside a block is
// fixed: FROM, MAINTAINER, LABEL, ARG, ENV, WORKDIR, ADD, COPY, RUN, ONBUILD,
// SHELL, STOPSIGNAL, USER, VOLUME, EXPOSE, HEALTHCHECK, ENTRYPOINT, CMD.
// Rendering the same stages twice yields byte-identical output.
func Render(stages []domain.Stage) string {
	var lines []string

	for _, stage := range stages {
		if stage.Name != "" {
			lines = append(lines, "FROM "+stage.BaseImage+" AS "+stage.Name)
		} else {
			lines = append(lines, "FROM "+stage.BaseImage)
		}

		if stage.Maintainer != "" {
			lines = append(lines, "MAINTAINER "+stage.Maintainer)
		}
		for _, kv := range stage.Labels {
			lines = append(lines, "LABEL "+kv[0]+`="`+kv[1]+`"`)
		}
		for _, kv := range stage.Args {
			lines = append(lines, "ARG "+kv[0]+"="+kv[1])
		}
		for _, kv := range stage.EnvVars {
			lines = append(lines, "ENV "+kv[0]+"="+kv[1])
		}
		if stage.Workdir != "" {
			lines = append(lines, "WORKDIR "+stage.Workdir)
		}
		for _, add := range stage.Adds {
			lines = append(lines, add.Render())
		}
		for _, cp := range stage.Copies {
			lines = append(lines, cp.Render())
		}
		for _, cmd := range stage.RunCommands {
			lines = append(lines, "RUN "+cmd)
		}
		if stage.OnBuildCmd != "" {
			lines = append(lines, "ONBUILD "+stage.OnBuildCmd)
		}
		if len(stage.Shell) > 0 {
			lines = append(lines, "SHELL "+execForm(stage.Shell))
		}
		if stage.StopSignal != "" {
			lines = append(lines, "STOPSIGNAL "+stage.StopSignal)
		}
		if stage.User != "" {
			lines = append(lines, "USER "+stage.User)
		}
		for _, vol := range stage.VolumeDirs {
			lines = append(lines, `VOLUME ["`+vol+`"]`)
		}
		for _, port := range stage.ExposePorts {
			lines = append(lines, "EXPOSE "+strconv.Itoa(port))
		}
		if stage.Healthcheck != "" {
			lines = append(lines, "HEALTHCHECK "+stage.Healthcheck)
		}
		if len(stage.Entrypoint) > 0 {
			lines = append(lines, "ENTRYPOINT "+execForm(stage.Entrypoint))
		}
		if len(stage.Cmd) > 0 {
			lines = append(lines, "CMD "+execForm(stage.Cmd))
		}

		// blank line between stage blocks, stripped again for the last one
		lines = append(lines, "")
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// execForm renders a token vector as a JSON-array exec form: ["a","b"].
func execForm(tokens []string) string {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = strconv.Quote(t)
	}
	return "[" + strings.Join(quoted, ",") + "]"
}
