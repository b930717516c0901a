// Package errors provides sentinel errors and custom error types for the sweepit application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrInvalidReference indicates that a branch name failed validation
	// before any git command was issued
	ErrInvalidReference = errors.New("invalid reference name")

	// ErrTargetNotFound indicates that the rebase target branch does not exist
	ErrTargetNotFound = errors.New("target branch not found")

	// ErrBackupFailed indicates that backup tag creation failed during finalize
	ErrBackupFailed = errors.New("backup tag creation failed")

	// ErrRebaseFailed indicates that the underlying rebase failed and was aborted
	ErrRebaseFailed = errors.New("rebase failed")

	// ErrRebaseContinueFailed indicates that the auto-resolve-and-continue path failed
	ErrRebaseContinueFailed = errors.New("rebase continue failed")

	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")
)

// InvalidReferenceError represents a branch name that failed validation.
// No subprocess is ever invoked with an invalid name.
type InvalidReferenceError struct {
	Name string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid reference name %q", e.Name)
}

// Is returns true if the target error is ErrInvalidReference
func (e *InvalidReferenceError) Is(target error) bool {
	return target == ErrInvalidReference
}

// NewInvalidReferenceError creates a new InvalidReferenceError
func NewInvalidReferenceError(name string) *InvalidReferenceError {
	return &InvalidReferenceError{Name: name}
}

// TargetNotFoundError represents a rebase target that is absent after a fetch
type TargetNotFoundError struct {
	Target string
}

func (e *TargetNotFoundError) Error() string {
	return fmt.Sprintf("target branch %s does not exist", e.Target)
}

// Is returns true if the target error is ErrTargetNotFound
func (e *TargetNotFoundError) Is(target error) bool {
	return target == ErrTargetNotFound
}

// NewTargetNotFoundError creates a new TargetNotFoundError
func NewTargetNotFoundError(target string) *TargetNotFoundError {
	return &TargetNotFoundError{Target: target}
}

// BackupFailedError represents a failed backup-tag creation during finalize.
// The destructive reset is skipped entirely when this occurs.
type BackupFailedError struct {
	Branch string
	Tag    string
	Err    error
}

func (e *BackupFailedError) Error() string {
	return fmt.Sprintf("failed to create backup tag %s for branch %s: %v", e.Tag, e.Branch, e.Err)
}

func (e *BackupFailedError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrBackupFailed
func (e *BackupFailedError) Is(target error) bool {
	return target == ErrBackupFailed
}

// NewBackupFailedError creates a new BackupFailedError
func NewBackupFailedError(branch, tag string, err error) *BackupFailedError {
	return &BackupFailedError{Branch: branch, Tag: tag, Err: err}
}

// RebaseFailedError represents a failed rebase after a best-effort abort
type RebaseFailedError struct {
	Branch string
	Target string
	Err    error
}

func (e *RebaseFailedError) Error() string {
	return fmt.Sprintf("rebase of %s onto %s failed: %v", e.Branch, e.Target, e.Err)
}

func (e *RebaseFailedError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrRebaseFailed
func (e *RebaseFailedError) Is(target error) bool {
	return target == ErrRebaseFailed
}

// NewRebaseFailedError creates a new RebaseFailedError
func NewRebaseFailedError(branch, target string, err error) *RebaseFailedError {
	return &RebaseFailedError{Branch: branch, Target: target, Err: err}
}

// RebaseContinueFailedError represents a failed auto-resolve-and-continue
type RebaseContinueFailedError struct {
	Branch string
	Err    error
}

func (e *RebaseContinueFailedError) Error() string {
	return fmt.Sprintf("automatic conflict resolution on %s failed: %v", e.Branch, e.Err)
}

func (e *RebaseContinueFailedError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrRebaseContinueFailed
func (e *RebaseContinueFailedError) Is(target error) bool {
	return target == ErrRebaseContinueFailed
}

// NewRebaseContinueFailedError creates a new RebaseContinueFailedError
func NewRebaseContinueFailedError(branch string, err error) *RebaseContinueFailedError {
	return &RebaseContinueFailedError{Branch: branch, Err: err}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
