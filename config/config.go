// Package config defines configuration for all affected operations.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/imdario/mergo"
)

type Config struct {
	Debug            bool       `json:"debug,omitempty"`
	Dryrun           bool       `json:"dryrun,omitempty"`
	Quiet            bool       `json:"quiet,omitempty"`
	InCI             bool       `json:"ci,omitempty"`
	Force            bool       `json:"force,omitempty"`
	CommitRange      string     `json:"commit_range,omitempty"`
	Name             string     `json:"name,omitempty"`
	Watch            []string   `json:"watch,omitempty"`
	PublishCommand   []string   `json:"publish_command,omitempty"`
	ArtifactTemplate string     `json:"artifact_template,omitempty"`
	Term             TerminalIO `json:"-"`
}

func New(overrides *Config) Config {
	return NewWithTerminalIO(overrides, nil)
}

func NewWithTerminalIO(overrides *Config, termio *TerminalIO) Config {
	cfg := GetDefault()
	if termio == nil {
		termio = &DefaultTermIO
	}
	cfg.Term = *termio

	if overrides != nil {
		if err := mergo.Merge(&cfg, overrides, mergo.WithOverride); err != nil {
			panic(err)
		}
	}
	return cfg
}

func (c Config) Validate() error {
	if c.Quiet && c.Debug {
		return errors.New("config: --quiet and --verbose are mutually exclusive")
	}
	for _, prefix := range c.Watch {
		if strings.TrimSpace(prefix) == "" {
			return errors.New("config: watch prefixes cannot be blank")
		}
	}
	return nil
}

func (c Config) Printf(msg string, args ...interface{}) {
	if c.Quiet {
		return
	}
	fmt.Fprintf(c.Term.Stdout, msg+"\n", args...)
}

func (c Config) Errorf(msg string, args ...interface{}) {
	fmt.Fprintf(c.Term.Stderr, msg+"\n", args...)
}

func (c Config) Debugf(msg string, args ...interface{}) {
	if !c.Debug {
		return
	}
	c.Printf(msg, args...)
}
