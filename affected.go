// Package affected decides whether a git commit range touches files under
// a path prefix, so CI pipelines can skip steps that nothing relevant to
// them changed.
//
// Related packages: config, detect, model, runner, vcs, vcs/gitcli
package affected

import "github.com/jeffrom/affected/config"

// Config holds most of the configuration variables for affected. This
// struct is intended for command-line use, so not all of its attributes
// are applicable to every operation.
//
// See "go doc github.com/jeffrom/affected/config Config" for more
// information.
type Config = config.Config
