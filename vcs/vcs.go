// Package vcs abstracts version control systems. Currently just git.
package vcs

import (
	"context"
	"fmt"

	"github.com/jeffrom/affected/model"
)

type NotFoundError struct {
	Ref string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("vcs: ref %q not found", e.Ref)
}

type Interface interface {
	// ReadChangedFiles lists the files touched by a commit range, in the
	// order the VCS reports them. The range query is passed through to the
	// underlying tool unparsed.
	ReadChangedFiles(ctx context.Context, rangeQuery string) ([]*model.Change, error)
	ReadTags(ctx context.Context, query string) ([]string, error)
	CurrentCommit(ctx context.Context) (string, error)
	CurrentBranch(ctx context.Context) (string, error)
}
