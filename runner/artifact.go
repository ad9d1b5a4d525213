package runner

import (
	"bytes"
	"io"
	"strings"
	"text/template"
)

const DefaultArtifactTemplate = `{{ or .Name "release" }}-v{{ .Version }}-{{ .Channel }}.tar.bz2`

type ArtifactData struct {
	Name    string
	Version string
	Channel string
}

// Artifact renders artifact names from a go text/template.
type Artifact struct {
	t *template.Template
}

var funcMap = template.FuncMap{
	"join": strings.Join,
}

func NewArtifact(s string) (*Artifact, error) {
	name := ""
	if s != "" {
		name = "custom_artifact"
	}
	tmpl := s
	if tmpl == "" {
		tmpl = DefaultArtifactTemplate
	}
	t, err := template.New(name).Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return nil, err
	}
	return &Artifact{t: t}, nil
}

func (a *Artifact) Execute(w io.Writer, d ArtifactData) error {
	return a.t.Execute(w, d)
}

func (a *Artifact) ExecuteString(d ArtifactData) (string, error) {
	b := &bytes.Buffer{}
	if err := a.Execute(b, d); err != nil {
		return "", err
	}

	return b.String(), nil
}
