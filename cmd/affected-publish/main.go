package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/imdario/mergo"
	"github.com/spf13/pflag"

	"github.com/jeffrom/affected/config"
	"github.com/jeffrom/affected/runner"
	"github.com/jeffrom/affected/vcs/gitcli"
)

var (
	// these are overridden by go build -X
	Version string
)

const ciRequiredMsg = "CI environment required: refusing to publish (set CI=true)"

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(rawArgs []string) error {
	cfg := config.New(nil)

	var help bool
	var version bool
	var cfgFile string
	flags := pflag.NewFlagSet("affected-publish", pflag.ExitOnError)
	flags.BoolVarP(&help, "help", "h", false, "show help")
	flags.BoolVarP(&version, "version", "V", false, "print version and exit")
	flags.StringVarP(&cfg.CommitRange, "range", "r", "", "inspect commit `range` (default $COMMIT_RANGE)")
	flags.BoolVar(&cfg.InCI, "ci", false, "Run in CI mode")
	flags.BoolVar(&cfg.Force, "force", false, "publish even when nothing watched changed")
	flags.BoolVarP(&cfg.Dryrun, "dry-run", "n", false, "Don't do destructive operations")
	flags.StringArrayVarP(&cfg.Watch, "watch", "w", nil, "gate publishing on `prefix`")
	flags.StringArrayVar(&cfg.PublishCommand, "publish-cmd", nil, "packaging command `arg`s, in order")
	flags.StringVar(&cfg.ArtifactTemplate, "artifact-template", "", "go text/template for the artifact `name`")
	flags.BoolVarP(&cfg.Debug, "verbose", "v", false, "print additional debugging info")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", false, "print as little as necessary")
	flags.StringVarP(&cfgFile, "config", "c", "", "specify config `file`")

	if err := flags.Parse(rawArgs); err != nil {
		return err
	}

	if help {
		usage(cfg, flags)
		return nil
	}
	if version {
		cfg.Printf("%s", Version)
		return nil
	}
	if !cfg.InCI {
		if env := os.Getenv("CI"); env == "true" || env == "1" || env == "yes" {
			cfg.InCI = true
		}
	}
	if !cfg.InCI {
		return errors.New(ciRequiredMsg)
	}
	if cfg.CommitRange == "" {
		cfg.CommitRange = os.Getenv("COMMIT_RANGE")
	}

	var fileCfg *config.Config
	var err error
	if cfgFile != "" {
		fileCfg, err = config.ReadFile(cfgFile)
	} else {
		fileCfg, err = config.Discover("")
	}
	if err != nil {
		return err
	}
	if fileCfg != nil {
		if err := mergo.Merge(&cfg, fileCfg, mergo.WithOverride); err != nil {
			return err
		}
		if fl := flags.Lookup("range"); fl != nil && fl.Changed {
			cfg.CommitRange = fl.Value.String()
		}
		if flags.Lookup("watch").Changed {
			cfg.Watch = nil
			watch, err := flags.GetStringArray("watch")
			if err != nil {
				return err
			}
			cfg.Watch = watch
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	git := gitcli.New(cfg, "")
	rnr, err := runner.New(cfg, git)
	if err != nil {
		return err
	}

	res, err := rnr.Publish(context.Background())
	if err != nil {
		return err
	}
	if res.Skipped {
		cfg.Printf("skipping publish: %s", res.Reason)
		return nil
	}
	cfg.Printf("published %s (channel %s)", res.Artifact, res.Channel)
	return nil
}

func usage(cfg config.Config, flags *pflag.FlagSet) {
	cfg.Printf(`%s

Packaging entrypoint for CI. Refuses to run outside CI, skips publishing
when nothing under the watched prefixes changed in the commit range, and
otherwise invokes the configured packaging command with AFFECTED_CHANNEL
and AFFECTED_ARTIFACT in its environment.

FLAGS
%s
EXAMPLES

# publish when the sdk changed since the last release
$ affected-publish -r v1.0.0..HEAD -w sdk/ --publish-cmd ./ci/publish.sh

# watch prefixes from affected.yaml, range from the environment
$ COMMIT_RANGE=origin/master..HEAD affected-publish
`, os.Args[0], flags.FlagUsages())
}
