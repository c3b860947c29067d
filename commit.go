// Package reposync provides revision tracking for remote repositories.
// This file contains the commit record value type and ordering helpers.
package reposync

import (
	"sort"

	"github.com/go-git/go-git/v5/plumbing"
)

// RevRef is an opaque reference into the version-control engine, usable only
// for reset operations. Callers never construct one: records obtained from
// CurrentRev, LastLocalRev, or ListCommits carry a ref, while records from
// RemoteRev deliberately do not, since their commit has not been fetched
// into local storage yet.
type RevRef struct {
	hash plumbing.Hash
}

// CommitRecord describes a single commit known to a local copy.
// Identity is the ID field: two records with equal ID are interchangeable.
type CommitRecord struct {
	// ID is the hex hash uniquely identifying the commit.
	ID string

	// Timestamp is the committed time in Unix epoch seconds.
	Timestamp int64

	// Message is the full commit message.
	Message string

	ref *RevRef
}

// Resettable reports whether the record carries a native reference that
// UseRev can act on. Records produced by RemoteRev are never resettable.
func (c CommitRecord) Resettable() bool {
	return c.ref != nil
}

// sortByTimestamp normalizes a commit collection to ascending committed-time
// order, oldest first. Engines iterate in unspecified (typically reverse
// chronological) order; every collection this package returns goes through
// here so that "last local revision" can always take the tail.
func sortByTimestamp(commits []CommitRecord) {
	sort.SliceStable(commits, func(i, j int) bool {
		return commits[i].Timestamp < commits[j].Timestamp
	})
}
