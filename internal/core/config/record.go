// Package config turns raw configuration records (spreadsheet rows with
// string-valued cells) into Dockerfile stage models. Decoding is defensive:
// a malformed record is skipped and reported, it never aborts the batch.
package config

import "strings"

// Record is one raw configuration row. Every field carries spreadsheet cell
// semantics: a missing cell is the empty string. BaseImage is the only
// required field; AppName groups rows into one application's stage list.
type Record struct {
	AppName     string `json:"app_name"`
	StageName   string `json:"stage_name,omitempty"`
	BaseImage   string `json:"base_image"`
	Workdir     string `json:"workdir,omitempty"`
	AddFiles    string `json:"add_files,omitempty"`
	CopyPairs   string `json:"copy_pairs,omitempty"`
	RunCommands string `json:"run_commands,omitempty"`
	EnvVars     string `json:"env_vars,omitempty"`
	Args        string `json:"args,omitempty"`
	LabelPairs  string `json:"label_pairs,omitempty"`
	ExposePorts string `json:"expose_ports,omitempty"`
	Entrypoint  string `json:"entrypoint,omitempty"`
	Cmd         string `json:"cmd,omitempty"`
	Shell       string `json:"shell,omitempty"`
	VolumeDirs  string `json:"volume_dirs,omitempty"`
	Maintainer  string `json:"maintainer,omitempty"`
	OnBuildCmd  string `json:"onbuild_cmd,omitempty"`
	StopSignal  string `json:"stopsignal,omitempty"`
	User        string `json:"user,omitempty"`
	Healthcheck string `json:"healthcheck,omitempty"`
}

// RequiredColumns lists the column names a configuration source must provide.
var RequiredColumns = []string{"base_image"}

// SetColumn assigns a cell value to the field named by its spreadsheet column.
// Unknown columns are ignored and reported as false so sources can warn once.
func (r *Record) SetColumn(column, value string) bool {
	value = strings.TrimSpace(value)
	switch strings.ToLower(strings.TrimSpace(column)) {
	case "app_name":
		r.AppName = value
	case "stage_name":
		r.StageName = value
	case "base_image":
		r.BaseImage = value
	case "workdir":
		r.Workdir = value
	case "add_files":
		r.AddFiles = value
	case "copy_pairs":
		r.CopyPairs = value
	case "run_commands":
		r.RunCommands = value
	case "env_vars":
		r.EnvVars = value
	case "args":
		r.Args = value
	case "label_pairs":
		r.LabelPairs = value
	case "expose_ports":
		r.ExposePorts = value
	case "entrypoint":
		r.Entrypoint = value
	case "cmd":
		r.Cmd = value
	case "shell":
		r.Shell = value
	case "volume_dirs":
		r.VolumeDirs = value
	case "maintainer":
		r.Maintainer = value
	case "onbuild_cmd":
		r.OnBuildCmd = value
	case "stopsignal":
		r.StopSignal = value
	case "user":
		r.User = value
	case "healthcheck":
		r.Healthcheck = value
	default:
		return false
	}
	return true
}
