package domain

// Pairs is an ordered list of key/value pairs. Dockerfile directives generated
// from a pair list must come out in the order the configuration declared them
// (an ARG may be referenced by a later ENV), so a map is not usable here.
type Pairs [][2]string

// Append returns p with one more pair at the end.
func (p Pairs) Append(key, value string) Pairs {
	return append(p, [2]string{key, value})
}

// CopyInstruction is one COPY directive. FromStage, when set, references an
// earlier named stage of the same Dockerfile.
type CopyInstruction struct {
	Src       string `json:"src"`
	Dest      string `json:"dest"`
	FromStage string `json:"from,omitempty"`
}

// Render returns the directive as Dockerfile text.
func (c CopyInstruction) Render() string {
	if c.FromStage != "" {
		return "COPY --from=" + c.FromStage + " " + c.Src + " " + c.Dest
	}
	return "COPY " + c.Src + " " + c.Dest
}

// AddInstruction is one ADD directive with an optional ownership spec.
type AddInstruction struct {
	Src   string `json:"src"`
	Dest  string `json:"dest"`
	Chown string `json:"chown,omitempty"`
}

// Render returns the directive as Dockerfile text.
func (a AddInstruction) Render() string {
	if a.Chown != "" {
		return "ADD --chown=" + a.Chown + " " + a.Src + " " + a.Dest
	}
	return "ADD " + a.Src + " " + a.Dest
}

// Stage holds the full directive set of one build stage. It is an inert value:
// all ordering and rendering rules live in the dockerfile package. A Stage with
// an empty Name is an unnamed (typically final) stage; named stages can be
// referenced by later CopyInstruction.FromStage values.
//
// Entrypoint, Cmd and Shell distinguish nil (directive absent) from an empty
// slice; the loader only ever produces nil or a non-empty slice.
type Stage struct {
	Name        string
	BaseImage   string
	Workdir     string
	Adds        []AddInstruction
	Copies      []CopyInstruction
	RunCommands []string
	EnvVars     Pairs
	Args        Pairs
	ExposePorts []int
	Entrypoint  []string
	Cmd         []string
	Labels      Pairs
	Maintainer  string
	OnBuildCmd  string
	Shell       []string
	StopSignal  string
	User        string
	VolumeDirs  []string
	Healthcheck string
}
