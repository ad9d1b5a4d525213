package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	"github.com/imdario/mergo"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/jeffrom/affected/config"
	"github.com/jeffrom/affected/runner"
	"github.com/jeffrom/affected/vcs/gitcli"
)

var (
	// these are overridden by go build -X
	Version string
)

// errUnchanged maps the negative detection result onto exit code 1
// without printing an error.
var errUnchanged = errors.New("unchanged")

func main() {
	if err := run(os.Args); err != nil {
		if errors.Is(err, errUnchanged) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(rawArgs []string) error {
	cfg := config.New(nil)

	var help bool
	var version bool
	var cfgFile string
	var readStats bool
	var printConfig bool
	flags := pflag.NewFlagSet("affected", pflag.ExitOnError)
	flags.BoolVarP(&help, "help", "h", false, "show help")
	flags.BoolVarP(&version, "version", "V", false, "print version and exit")
	flags.StringVarP(&cfg.CommitRange, "range", "r", "", "inspect commit `range` (default $COMMIT_RANGE)")
	flags.BoolVar(&cfg.InCI, "ci", false, "Run in CI mode")
	flags.BoolVarP(&readStats, "stats", "S", false, "print changed-file stats for the range")
	flags.BoolVarP(&cfg.Dryrun, "dry-run", "n", false, "Don't do destructive operations")
	flags.BoolVarP(&cfg.Debug, "verbose", "v", false, "trace each examined path")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", false, "print as little as necessary")
	flags.StringVarP(&cfgFile, "config", "c", "", "specify config `file`")
	flags.BoolVar(&printConfig, "print-config", false, "Print effective configuration and exit")

	if err := flags.Parse(rawArgs); err != nil {
		return err
	}
	args := flags.Args()[1:]

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
	if cfg.CommitRange == "" {
		cfg.CommitRange = os.Getenv("COMMIT_RANGE")
	}

	fileCfg, err := readConfigFile(cfgFile)
	if err != nil {
		return err
	}
	if fileCfg != nil {
		if err := mergo.Merge(&cfg, fileCfg, mergo.WithOverride); err != nil {
			return err
		}
		if r := rangeFromFlagsOrEnv(flags); r != "" {
			cfg.CommitRange = r
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if printConfig {
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		cfg.Printf("%s", string(b))
		return nil
	}
	// done setting up config

	var prefix string
	if len(args) > 0 {
		prefix = args[0]
	}

	git := gitcli.New(cfg, "")
	rnr, err := runner.New(cfg, git)
	if err != nil {
		return err
	}
	ctx := context.Background()

	if readStats {
		stats, err := rnr.Stats(ctx)
		if err != nil {
			return err
		}
		return stats.TextSummary(cfg.Term.Stdout)
	}

	res, err := rnr.Detect(ctx, prefix)
	if err != nil {
		return err
	}

	istty := isatty.IsTerminal(os.Stdout.Fd())
	if res.Changed {
		if cfg.Quiet {
			if istty {
				fmt.Fprintln(cfg.Term.Stdout, res.Path)
			} else {
				fmt.Fprint(cfg.Term.Stdout, res.Path)
			}
		} else {
			cfg.Printf("changed: %s", res.Path)
		}
		return nil
	}
	cfg.Debugf("unchanged: %d path(s) examined under %q", res.Examined, prefix)
	return errUnchanged
}

// rangeFromFlagsOrEnv resolves the commit range again after a config file
// merge, so the flag and environment still win over affected.yaml.
func rangeFromFlagsOrEnv(flags *pflag.FlagSet) string {
	if fl := flags.Lookup("range"); fl != nil && fl.Changed {
		return fl.Value.String()
	}
	return os.Getenv("COMMIT_RANGE")
}

func readConfigFile(p string) (*config.Config, error) {
	if p != "" {
		return config.ReadFile(p)
	}
	return config.Discover("")
}

func usage(cfg config.Config, flags *pflag.FlagSet) {
	cfg.Printf(`%s [prefix]

Reports whether any file changed in a commit range has a path starting
with prefix. Exits 0 when a change matched, 1 when none did.

FLAGS
%s
EXAMPLES

# rebuild only when the sdk changed
$ affected -r origin/master..HEAD sdk/ && make sdk

# read the range from the environment
$ COMMIT_RANGE=v1.0.0..HEAD affected src/

# print the matched path only
$ affected -q -r HEAD~5..HEAD core/

# summarize a range
$ affected --stats -r origin/master..HEAD
`, os.Args[0], flags.FlagUsages())
}

func die(err error) {
	if err != nil {
		panic(err)
	}
}
