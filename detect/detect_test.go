package detect

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jeffrom/affected/config"
	"github.com/jeffrom/affected/vcs"
)

func testConfig(out *bytes.Buffer) config.Config {
	return config.NewWithTerminalIO(nil, &config.TerminalIO{
		Stdout: out,
		Stderr: out,
	})
}

func TestChangedUnder(t *testing.T) {
	tcs := []struct {
		name         string
		paths        []string
		prefix       string
		wantChanged  bool
		wantPath     string
		wantExamined int
	}{
		{
			name:         "match-first",
			paths:        []string{"src/lib.rs", "README.md"},
			prefix:       "src/",
			wantChanged:  true,
			wantPath:     "src/lib.rs",
			wantExamined: 1,
		},
		{
			name:         "no-match",
			paths:        []string{"README.md"},
			prefix:       "src/",
			wantExamined: 1,
		},
		{
			name:   "empty-list",
			paths:  nil,
			prefix: "",
		},
		{
			name:         "empty-prefix-matches-first",
			paths:        []string{"README.md", "src/lib.rs"},
			prefix:       "",
			wantChanged:  true,
			wantPath:     "README.md",
			wantExamined: 1,
		},
		{
			name:         "short-circuit",
			paths:        []string{"a/x.go", "b/y.go", "a/z.go"},
			prefix:       "a/",
			wantChanged:  true,
			wantPath:     "a/x.go",
			wantExamined: 1,
		},
		{
			name:         "later-match",
			paths:        []string{"README.md", "docs/x.md", "src/lib.rs"},
			prefix:       "src/",
			wantChanged:  true,
			wantPath:     "src/lib.rs",
			wantExamined: 3,
		},
		{
			name:         "case-sensitive",
			paths:        []string{"SRC/lib.rs"},
			prefix:       "src/",
			wantExamined: 1,
		},
		{
			name:         "dot-is-literal",
			paths:        []string{"srcX/lib.rs"},
			prefix:       "src.",
			wantExamined: 1,
		},
		{
			name:         "anchored-not-substring",
			paths:        []string{"cool/src/lib.rs"},
			prefix:       "src/",
			wantExamined: 1,
		},
	}

	ctx := context.Background()
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			b := &bytes.Buffer{}
			mock := vcs.NewMock().SetChangedPaths(tc.paths...)
			d := New(testConfig(b), mock)

			res, err := d.ChangedUnder(ctx, "HEAD~1..HEAD", tc.prefix)
			if err != nil {
				t.Fatal(err)
			}
			if res.Changed != tc.wantChanged {
				t.Errorf("expected changed=%v, got %v", tc.wantChanged, res.Changed)
			}
			if res.Path != tc.wantPath {
				t.Errorf("expected path %q, got %q", tc.wantPath, res.Path)
			}
			if res.Examined != tc.wantExamined {
				t.Errorf("expected %d examined, got %d", tc.wantExamined, res.Examined)
			}
		})
	}
}

func TestChangedUnderAny(t *testing.T) {
	ctx := context.Background()
	b := &bytes.Buffer{}
	mock := vcs.NewMock().SetChangedPaths("README.md", "sdk/src/lib.rs")
	d := New(testConfig(b), mock)

	res, err := d.ChangedUnderAny(ctx, "HEAD~2..HEAD", []string{"core/", "sdk/"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Changed || res.Path != "sdk/src/lib.rs" || res.Prefix != "sdk/" {
		t.Fatalf("unexpected result: %+v", res)
	}

	res, err = d.ChangedUnderAny(ctx, "HEAD~2..HEAD", nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed {
		t.Fatalf("expected no match for empty prefix set, got %+v", res)
	}
	if res.Examined != 2 {
		t.Fatalf("expected 2 examined, got %d", res.Examined)
	}
}

func TestChangedUnderIdempotent(t *testing.T) {
	ctx := context.Background()
	b := &bytes.Buffer{}
	mock := vcs.NewMock().SetChangedPaths("src/lib.rs")
	d := New(testConfig(b), mock)

	for i := 0; i < 3; i++ {
		res, err := d.ChangedUnder(ctx, "v1.0.0..HEAD", "src/")
		if err != nil {
			t.Fatal(err)
		}
		if !res.Changed {
			t.Fatalf("call %d: expected a match", i)
		}
	}
	// each call re-queries the vcs
	if mock.ReadCalls != 3 {
		t.Fatalf("expected 3 vcs reads, got %d", mock.ReadCalls)
	}
}

func TestChangedUnderMissingRange(t *testing.T) {
	b := &bytes.Buffer{}
	d := New(testConfig(b), vcs.NewMock())
	if _, err := d.ChangedUnder(context.Background(), "", "src/"); !errors.Is(err, ErrNoCommitRange) {
		t.Fatalf("expected ErrNoCommitRange, got %v", err)
	}
}

func TestChangedUnderVCSError(t *testing.T) {
	b := &bytes.Buffer{}
	mock := vcs.NewMock().SetError(errors.New("nope"))
	d := New(testConfig(b), mock)
	if _, err := d.ChangedUnder(context.Background(), "HEAD~1..HEAD", "src/"); err == nil {
		t.Fatal("expected vcs error to propagate")
	}
}

func TestChangedUnderTrace(t *testing.T) {
	ctx := context.Background()
	b := &bytes.Buffer{}
	cfg := config.NewWithTerminalIO(&config.Config{Debug: true}, &config.TerminalIO{
		Stdout: b,
		Stderr: b,
	})
	mock := vcs.NewMock().SetChangedPaths("README.md", "src/lib.rs")
	d := New(cfg, mock)

	if _, err := d.ChangedUnder(ctx, "HEAD~1..HEAD", "src/"); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.Contains(out, "README.md: no match") {
		t.Errorf("expected trace for README.md, got:\n%s", out)
	}
	if !strings.Contains(out, `src/lib.rs: match (prefix "src/")`) {
		t.Errorf("expected trace for src/lib.rs, got:\n%s", out)
	}
}
