// Package actions implements the sweepit workflows on top of the git
// layer: the branch deletion review flow and the two rebase strategies
// (commit-by-commit cherry-pick replay, and native linear rebase).
//
// All mutating git operations within one action run strictly
// sequentially; the working tree is a single shared resource.
package actions
