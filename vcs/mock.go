package vcs

import (
	"context"
	"strings"

	"github.com/jeffrom/affected/model"
)

type Mock struct {
	changes   []*model.Change
	tags      []string
	err       error
	ReadCalls int
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SetChanges(changes ...*model.Change) *Mock {
	finalChanges := make([]*model.Change, len(changes))
	for i, change := range changes {
		c := *change
		if c.Status == "" {
			c.Status = "M"
		}
		finalChanges[i] = &c
	}
	m.changes = finalChanges
	return m
}

func (m *Mock) SetChangedPaths(paths ...string) *Mock {
	changes := make([]*model.Change, len(paths))
	for i, p := range paths {
		changes[i] = &model.Change{Path: p}
	}
	return m.SetChanges(changes...)
}

func (m *Mock) SetTags(tags ...string) *Mock {
	m.tags = tags
	return m
}

func (m *Mock) SetError(err error) *Mock {
	m.err = err
	return m
}

func (m *Mock) ReadChangedFiles(ctx context.Context, rangeQuery string) ([]*model.Change, error) {
	m.ReadCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.changes, nil
}

func (m *Mock) ReadTags(ctx context.Context, query string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	var tags []string
	for _, t := range m.tags {
		if globMatches(t, query) {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

func (m *Mock) CurrentCommit(ctx context.Context) (string, error) {
	return "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef", nil
}

func (m *Mock) CurrentBranch(ctx context.Context) (string, error) {
	return "main", nil
}

func globMatches(s string, glob string) bool {
	if glob == "" {
		return true
	}
	parts := strings.Split(glob, "*")
	remaining := s
	for {
		if len(parts) == 0 {
			break
		}
		part := parts[0]
		parts = parts[1:]

		if !strings.HasPrefix(remaining, part) {
			return false
		}
		remaining = strings.TrimPrefix(remaining, part)
	}
	if glob[len(glob)-1] == '*' {
		return true
	}
	return remaining == ""
}
