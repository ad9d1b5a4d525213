// Package model contains abstract data models.
package model

import "strings"

// Change is one file touched by a commit range.
type Change struct {
	Path string `json:"path"`
	// Status is the single-letter git status code (A, M, D, R, C, T).
	Status string `json:"status,omitempty"`
}

// TopDir returns the first path segment, or "" for files at the
// repository root.
func (c *Change) TopDir() string {
	idx := strings.IndexByte(c.Path, '/')
	if idx < 0 {
		return ""
	}
	return c.Path[:idx]
}

// StatusName expands the git status letter to a readable word.
func (c *Change) StatusName() string {
	switch c.Status {
	case "A":
		return "added"
	case "M":
		return "modified"
	case "D":
		return "deleted"
	case "R":
		return "renamed"
	case "C":
		return "copied"
	case "T":
		return "type changed"
	case "":
		return "n/a"
	default:
		return c.Status
	}
}
