package runner

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jeffrom/affected/config"
	"github.com/jeffrom/affected/model"
	"github.com/jeffrom/affected/vcs"
)

func testConfig(overrides *config.Config, out *bytes.Buffer) config.Config {
	return config.NewWithTerminalIO(overrides, &config.TerminalIO{
		Stdout: out,
		Stderr: out,
	})
}

func TestStats(t *testing.T) {
	b := &bytes.Buffer{}
	cfg := testConfig(&config.Config{CommitRange: "HEAD~3..HEAD"}, b)
	mock := vcs.NewMock().SetChanges(
		&model.Change{Path: "src/lib.rs", Status: "M"},
		&model.Change{Path: "src/main.rs", Status: "A"},
		&model.Change{Path: "docs/index.md", Status: "M"},
		&model.Change{Path: "README.md", Status: "M"},
	)
	rnr, err := New(cfg, mock)
	if err != nil {
		t.Fatal(err)
	}

	stats, err := rnr.Stats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Files != 4 {
		t.Fatalf("expected 4 files, got %d", stats.Files)
	}

	out := &bytes.Buffer{}
	if err := stats.TextSummary(out); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	for _, expect := range []string{
		"4 changed files",
		"Directory:",
		"Status:",
		"src",
		"docs",
		"modified",
		"added",
		"n/a",
	} {
		if !strings.Contains(s, expect) {
			t.Errorf("expected summary to contain %q:\n%s", expect, s)
		}
	}
}

func TestStatsMissingRange(t *testing.T) {
	b := &bytes.Buffer{}
	rnr, err := New(testConfig(nil, b), vcs.NewMock())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := rnr.Stats(context.Background()); err == nil {
		t.Fatal("expected missing commit range to be an error")
	}
}
