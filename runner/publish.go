package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/blang/semver/v4"

	"github.com/jeffrom/affected/vcs/gitcli"
)

var ErrNotCI = errors.New("runner: publish requires a CI environment")
var ErrNoPublishCommand = errors.New("runner: no publish command configured")
var ErrNoTags = errors.New("runner: no release tags found")

var CommandContext = exec.CommandContext

// PublishResult describes what a publish pass did, or why it skipped.
type PublishResult struct {
	Skipped  bool   `json:"skipped,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Commit   string `json:"commit,omitempty"`
	Channel  string `json:"channel"`
	Artifact string `json:"artifact"`
}

// Publish gates the configured packaging command on the watch prefixes
// and runs it. When no watch prefixes are configured the gate always
// passes. The packaging command's failure propagates uninspected.
func (r *Runner) Publish(ctx context.Context) (*PublishResult, error) {
	if !r.cfg.InCI {
		return nil, ErrNotCI
	}
	if len(r.cfg.PublishCommand) == 0 {
		return nil, ErrNoPublishCommand
	}

	if len(r.cfg.Watch) > 0 && !r.cfg.Force {
		res, err := r.detector.ChangedUnderAny(ctx, r.cfg.CommitRange, r.cfg.Watch)
		if err != nil {
			return nil, err
		}
		if !res.Changed {
			reason := fmt.Sprintf("no changes under %s in %s (%d examined)",
				strings.Join(r.cfg.Watch, ", "), r.cfg.CommitRange, res.Examined)
			return &PublishResult{Skipped: true, Reason: reason}, nil
		}
		r.cfg.Debugf("%s changed (prefix %q)", res.Path, res.Prefix)
	}

	commit, err := r.vcs.CurrentCommit(ctx)
	if err != nil {
		return nil, err
	}
	branch, err := r.vcs.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	channel, version, err := r.channel(ctx)
	if err != nil {
		return nil, err
	}
	r.cfg.Debugf("publishing %s from branch %q", shortCommit(commit), branch)
	artifact, err := r.artifact.ExecuteString(ArtifactData{
		Name:    r.cfg.Name,
		Version: version,
		Channel: channel,
	})
	if err != nil {
		return nil, err
	}

	args := r.cfg.PublishCommand
	if r.cfg.Dryrun {
		r.cfg.Printf("+ %s (dryrun)", gitcli.ArgsString(args))
		return &PublishResult{Commit: commit, Channel: channel, Artifact: artifact}, nil
	}

	cmd := CommandContext(ctx, args[0], args[1:]...)
	cmd.Env = append(os.Environ(),
		"AFFECTED_COMMIT="+commit,
		"AFFECTED_CHANNEL="+channel,
		"AFFECTED_ARTIFACT="+artifact,
	)
	cmd.Stdout = r.cfg.Term.Stdout
	cmd.Stderr = r.cfg.Term.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("runner: publish command failed: %w", err)
	}
	return &PublishResult{Commit: commit, Channel: channel, Artifact: artifact}, nil
}

func shortCommit(commit string) string {
	if len(commit) < 8 {
		return commit
	}
	return commit[:8]
}

// channel derives the release channel from the latest release tag: edge
// with no tags, beta when the latest tag is a prerelease, stable
// otherwise.
func (r *Runner) channel(ctx context.Context) (string, string, error) {
	tags, err := r.vcs.ReadTags(ctx, "v*")
	if err != nil {
		return "", "", err
	}
	latest, err := semverLatest(tags)
	if err != nil {
		if errors.Is(err, ErrNoTags) {
			return "edge", "0.0.0", nil
		}
		return "", "", err
	}
	if len(latest.Pre) > 0 {
		return "beta", latest.String(), nil
	}
	return "stable", latest.String(), nil
}

func semverLatest(tags []string) (semver.Version, error) {
	var versions []semver.Version
	for _, t := range tags {
		t = strings.TrimPrefix(t, "v")
		v, err := semver.Parse(t)
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}

	semver.Sort(versions)
	if len(versions) > 0 {
		return versions[len(versions)-1], nil
	}
	return semver.Version{}, ErrNoTags
}
