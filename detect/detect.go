// Package detect decides whether a commit range touches files under a
// path prefix.
package detect

import (
	"context"
	"errors"
	"strings"

	"github.com/jeffrom/affected/config"
	"github.com/jeffrom/affected/vcs"
)

var ErrNoCommitRange = errors.New("detect: commit range is required")

// Result is the outcome of one detection pass.
type Result struct {
	// Changed reports whether any examined path matched.
	Changed bool `json:"changed"`
	// Path is the first matching path, when Changed is true.
	Path string `json:"path,omitempty"`
	// Prefix is the matched prefix, when Changed is true.
	Prefix string `json:"prefix,omitempty"`
	// Examined counts the paths tested before the scan stopped.
	Examined int `json:"examined"`
}

type Detector struct {
	cfg config.Config
	vcs vcs.Interface
}

func New(cfg config.Config, vcs vcs.Interface) *Detector {
	return &Detector{
		cfg: cfg,
		vcs: vcs,
	}
}

// ChangedUnder reports whether any file changed in commitRange has a path
// starting with prefix. Matching is literal, case-sensitive, and anchored
// at the start of the path. The changed-file list is read once per call
// and the scan stops at the first match. The empty prefix matches any
// path.
func (d *Detector) ChangedUnder(ctx context.Context, commitRange, prefix string) (*Result, error) {
	return d.ChangedUnderAny(ctx, commitRange, []string{prefix})
}

// ChangedUnderAny is ChangedUnder against a set of prefixes. The
// changed-file list is still queried once; every path is tested against
// each prefix in order.
func (d *Detector) ChangedUnderAny(ctx context.Context, commitRange string, prefixes []string) (*Result, error) {
	if commitRange == "" {
		return nil, ErrNoCommitRange
	}
	changes, err := d.vcs.ReadChangedFiles(ctx, commitRange)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for _, c := range changes {
		res.Examined++
		if prefix, ok := matchAny(c.Path, prefixes); ok {
			d.cfg.Debugf("%s %s: match (prefix %q)", c.Status, c.Path, prefix)
			res.Changed = true
			res.Path = c.Path
			res.Prefix = prefix
			return res, nil
		}
		d.cfg.Debugf("%s %s: no match", c.Status, c.Path)
	}
	return res, nil
}

func matchAny(path string, prefixes []string) (string, bool) {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return prefix, true
		}
	}
	return "", false
}
