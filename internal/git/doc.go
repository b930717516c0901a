// Package git wraps the git command line tool and go-git for repository
// operations.
//
// All mutating operations go through a CommandRunner bound to a working
// directory, so the package can be used against multiple repositories in
// the same process. Branch names entering mutating operations must be
// validated with utils.IsValidBranchName before a subprocess is spawned.
package git
