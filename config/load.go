package config

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
)

// DefaultConfigName is the file name searched for by Discover.
const DefaultConfigName = "affected.yaml"

// ReadFile reads a yaml config file at path p.
func ReadFile(p string) (*Config, error) {
	b, err := ioutil.ReadFile(p)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover searches wd and its parent directories for affected.yaml. It
// returns nil without an error when no config file is found.
func Discover(wd string) (*Config, error) {
	if wd == "" {
		var err error
		wd, err = os.Getwd()
		if err != nil {
			return nil, err
		}
	}

	for {
		candPath := filepath.Join(wd, DefaultConfigName)
		cfg, err := ReadFile(candPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				wd, _ = filepath.Split(filepath.Clean(wd))
				if wd == "/" {
					break
				}
				continue
			}
			return nil, err
		}
		return cfg, nil
	}
	return nil, nil
}
