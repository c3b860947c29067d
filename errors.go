// Package reposync provides sentinel errors for repository synchronization.
// All errors can be checked using errors.Is() for programmatic handling.
package reposync

import (
	"errors"
	"fmt"
)

// Common sentinel errors that can be checked with errors.Is().
// These wrap underlying engine errors while providing a stable API for consumers.

// ErrNotCloned is returned when an operation requires an open handle to a
// local copy but none exists (the repository was never cloned, or opening
// the existing copy failed at construction time).
var ErrNotCloned = errors.New("repository not cloned")

// ErrAlreadyPresent is returned when a clone was requested but a local copy
// or open handle already exists. It signals an expected no-op, not a failure.
var ErrAlreadyPresent = errors.New("local copy already present")

// ErrRemoteUnavailable is returned when a clone or fetch could not reach or
// negotiate with the remote (network failure, bad URL, rejected auth).
// It is distinct from ErrNotCloned so callers can tell "never had a copy"
// apart from "tried and failed over the network".
var ErrRemoteUnavailable = errors.New("remote unavailable")

// ErrAlreadyUpToDate is returned when a pull results in no changes because
// the local and remote states are already synchronized.
var ErrAlreadyUpToDate = errors.New("already up to date")

// ErrInconsistentState is returned when the local directory exists but no
// handle could be opened on it (corruption, permissions). The condition is
// surfaced and never auto-repaired: silently re-cloning over a
// possibly-valid copy risks data loss.
var ErrInconsistentState = errors.New("local copy exists but could not be opened")

// ErrEmptyHistory is returned when a local copy is present but contains no
// commits (freshly initialized, never committed, or corrupt).
var ErrEmptyHistory = errors.New("local history is empty")

// ErrInvalidRef is returned when a commit record cannot be used for a reset
// because it carries no locally fetched native reference (zero value, or a
// record produced by RemoteRev whose commit has not been fetched yet).
var ErrInvalidRef = errors.New("invalid commit reference")

// ErrResetFailed is returned when a hard reset of the working tree could not
// be completed. The underlying cause is always preserved in the chain.
var ErrResetFailed = errors.New("reset failed")

// WrapError wraps an error with additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// WrapErrorf wraps an error with formatted additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
