// Package runtime provides the per-invocation context holding the git
// runner, repo configuration and logger. Threading this context through
// actions keeps the core free of global process state.
package runtime
