// Package gitcli implements vcs.Interface using the git commandline tool.
package gitcli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jeffrom/affected/config"
	"github.com/jeffrom/affected/model"
	"github.com/jeffrom/affected/vcs"
)

// Git implements vcs.Interface using the git commandline tool.
type Git struct {
	cfg config.Config
	wd  string
}

func New(cfg config.Config, wd string) *Git {
	return &Git{
		cfg: cfg,
		wd:  wd,
	}
}

func (g *Git) ReadChangedFiles(ctx context.Context, rangeQuery string) ([]*model.Change, error) {
	if rangeQuery == "" {
		return nil, vcs.NotFoundError{Ref: rangeQuery}
	}
	args := []string{"diff", "--name-status", "-z", rangeQuery}
	b, err := g.call(ctx, args)
	if err != nil {
		return nil, err
	}
	return parseNameStatus(b)
}

// parseNameStatus parses NUL-delimited `git diff --name-status -z` output.
// Each record is a status token followed by one path, or two paths for
// renames and copies. Renamed files count as changes at both locations.
func parseNameStatus(b []byte) ([]*model.Change, error) {
	fields := strings.Split(string(b), "\x00")
	var changes []*model.Change
	i := 0
	for i < len(fields) {
		status := fields[i]
		i++
		if status == "" {
			continue
		}
		code := status[:1]
		if i >= len(fields) || fields[i] == "" {
			return nil, fmt.Errorf("gitcli: truncated name-status record after %q", status)
		}
		p := fields[i]
		i++
		if code == "R" || code == "C" {
			if i >= len(fields) || fields[i] == "" {
				return nil, fmt.Errorf("gitcli: %s record missing destination path", code)
			}
			dst := fields[i]
			i++
			changes = append(changes,
				&model.Change{Path: p, Status: code},
				&model.Change{Path: dst, Status: code})
			continue
		}
		changes = append(changes, &model.Change{Path: p, Status: code})
	}
	return changes, nil
}

func (g *Git) ReadTags(ctx context.Context, query string) ([]string, error) {
	args := []string{
		"tag",
	}
	if query != "" {
		args = append(args, "-l", query)
	}
	b, err := g.call(ctx, args)
	if err != nil {
		return nil, err
	}
	var tags []string
	scanner := bufio.NewScanner(bytes.NewBuffer(b))
	for scanner.Scan() {
		s := scanner.Text()
		tags = append(tags, s)
	}
	return tags, nil
}

func (g *Git) CurrentCommit(ctx context.Context) (string, error) {
	b, err := g.call(ctx, []string{"rev-parse", "HEAD"})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	b, err := g.call(ctx, []string{"rev-parse", "--abbrev-ref", "HEAD"})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
