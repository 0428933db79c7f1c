package config

import (
	"errors"
	"fmt"

	"github.com/kubeaccel/dockforge/internal/core/domain"
)

// ErrMalformedRecord marks a record that fails required-field checks.
var ErrMalformedRecord = errors.New("malformed record")

// RecordError reports one skipped record and why.
type RecordError struct {
	Index   int    `json:"index"`
	AppName string `json:"app_name"`
	Err     string `json:"error"`
}

// AppConfigs maps an application name to its ordered stage list, with Names
// preserving first-seen application order for deterministic generation.
type AppConfigs struct {
	Names  []string
	Stages map[string][]domain.Stage
}

// LoadResult is the outcome of loading one batch of records.
type LoadResult struct {
	Apps    AppConfigs
	Skipped []RecordError
}

// ParseRecord turns one record into a Stage. It fails only on required-field
// violations; all optional fields degrade per their documented decode rules.
func ParseRecord(r Record) (domain.Stage, error) {
	if r.BaseImage == "" {
		return domain.Stage{}, fmt.Errorf("%w: base_image is required", ErrMalformedRecord)
	}
	if r.AppName == "" {
		return domain.Stage{}, fmt.Errorf("%w: app_name is required", ErrMalformedRecord)
	}

	return domain.Stage{
		Name:        r.StageName,
		BaseImage:   r.BaseImage,
		Workdir:     r.Workdir,
		Adds:        decodeAddFiles(r.AddFiles),
		Copies:      decodeCopyPairs(r.CopyPairs),
		RunCommands: splitList(r.RunCommands, ";"),
		EnvVars:     parsePairs(r.EnvVars),
		Args:        parsePairs(r.Args),
		ExposePorts: parsePorts(r.ExposePorts),
		Entrypoint:  parseTokens(r.Entrypoint),
		Cmd:         parseTokens(r.Cmd),
		Labels:      parsePairs(r.LabelPairs),
		Maintainer:  r.Maintainer,
		OnBuildCmd:  r.OnBuildCmd,
		Shell:       decodeShell(r.Shell),
		StopSignal:  r.StopSignal,
		User:        r.User,
		VolumeDirs:  splitList(r.VolumeDirs, ";", ","),
		Healthcheck: r.Healthcheck,
	}, nil
}

// LoadRecords parses a batch. Rows sharing an app name accumulate, in input
// order, into that application's stage list. Malformed records are skipped and
// reported; they never abort the rest of the batch.
func LoadRecords(records []Record) LoadResult {
	res := LoadResult{Apps: AppConfigs{Stages: map[string][]domain.Stage{}}}
	for i, rec := range records {
		stage, err := ParseRecord(rec)
		if err != nil {
			res.Skipped = append(res.Skipped, RecordError{Index: i, AppName: rec.AppName, Err: err.Error()})
			continue
		}
		if _, seen := res.Apps.Stages[rec.AppName]; !seen {
			res.Apps.Names = append(res.Apps.Names, rec.AppName)
		}
		res.Apps.Stages[rec.AppName] = append(res.Apps.Stages[rec.AppName], stage)
	}
	return res
}
