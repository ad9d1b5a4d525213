// Package runner manages command-line execution
package runner

import (
	"context"

	"github.com/jeffrom/affected/config"
	"github.com/jeffrom/affected/detect"
	"github.com/jeffrom/affected/vcs"
)

type Runner struct {
	cfg      config.Config
	vcs      vcs.Interface
	detector *detect.Detector
	artifact *Artifact
}

func New(cfg config.Config, vcs vcs.Interface) (*Runner, error) {
	artifact, err := NewArtifact(cfg.ArtifactTemplate)
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:      cfg,
		vcs:      vcs,
		detector: detect.New(cfg, vcs),
		artifact: artifact,
	}, nil
}

// Detect runs one detection pass for prefix over the configured commit
// range.
func (r *Runner) Detect(ctx context.Context, prefix string) (*detect.Result, error) {
	return r.detector.ChangedUnder(ctx, r.cfg.CommitRange, prefix)
}
