// Package walk drives the depth-first traversal described by spec.md §4.5:
// it emits a candidate row per filesystem entry and per archive member,
// evaluates each against a compiled expression, and yields matches one at
// a time through a pull-based Next() call — grounded on the teacher's own
// list_directory/filesInDirectory recursion in dir.go, but reshaped from a
// side-effecting printer into a cancellable iterator per spec.md §9's
// "reimplement as a pull-based iterator/state-machine object" guidance.
package walk

import (
	"time"

	"github.com/robomac/qfind/archive"
)

// Policy is the plain configuration record spec.md §4.6 passes to the
// walker. It is populated entirely by the caller (the excluded CLI
// shell); this package never loads it from a file or environment.
type Policy struct {
	// FollowSymlinks, when true, traverses symlinks that resolve to
	// directories (guarded against cycles) instead of leaving them as
	// inert type="link" leaves.
	FollowSymlinks bool

	// NoArchive disables the archive probe entirely: files are never
	// opened as containers, even if their suffix is recognized.
	NoArchive bool

	// StopOnError ends the match stream (cleanly, not via a returned
	// error) after the first non-fatal traversal error is routed to
	// ErrorSink, instead of continuing with the next sibling.
	StopOnError bool

	// ArchiveSeparator is inserted between a container's filesystem path
	// and a member's internal path when building that member's Path
	// attribute. Defaults to "//".
	ArchiveSeparator string

	// ErrorSink receives one human-readable message per non-fatal
	// traversal error (failed directory open, stat, or archive read).
	// May be nil to discard them silently.
	ErrorSink func(message string)

	// Debug, if set, receives non-fatal trace output that doesn't rise
	// to the level of an ErrorSink warning (subdirectory opens, archive
	// capability probes) — the library equivalent of the teacher's
	// conditionalPrint(debug_messages, ...) gate.
	Debug func(message string)

	// Now fixes the capture time used to derive the "today" and mo..su
	// weekday identifiers (spec.md §3 invariant 5: stable for the
	// lifetime of one walker invocation). The zero value means
	// time.Now() at walker construction.
	Now time.Time

	// Capabilities declares which optional archive backends (7z, rar)
	// are available. The zero value is treated as
	// archive.DefaultCapabilities() by New.
	Capabilities archive.Capabilities
}

func (p Policy) withDefaults() Policy {
	if p.ArchiveSeparator == "" {
		p.ArchiveSeparator = "//"
	}
	if p.Now.IsZero() {
		p.Now = time.Now()
	}
	if p.Capabilities == (archive.Capabilities{}) {
		p.Capabilities = archive.DefaultCapabilities()
	}
	return p
}

func (p Policy) debugf(message string) {
	if p.Debug != nil {
		p.Debug(message)
	}
}
