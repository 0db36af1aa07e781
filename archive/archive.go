// Package archive implements the archive probe from spec.md §4.4: given a
// filesystem path, decide whether it names a recognized container and, if
// so, hand back a lazy, pull-based enumerator of its members without
// extracting any content. Grounded on the teacher's own per-format
// scanners in dir.go (filesInZipArchive, filesInTgzArchive,
// linearFilesIn7ZArchive) and FileIsArchiveType's suffix dispatch, but
// reshaped into a single Enumerator interface so the walker never needs
// to know which archive backend produced a given record.Member.
package archive

import "strings"

// Kind names one of the four recognized container families.
type Kind string

const (
	Zip     Kind = "zip"
	Tar     Kind = "tar"
	SevenZ  Kind = "7z"
	Rar     Kind = "rar"
	unknown Kind = ""
)

// compression names the codec wrapping a tar stream, derived from the
// two-part extension table in spec.md §4.4.
type compression int

const (
	compNone compression = iota
	compGzip
	compBzip2
	compXz
)

// Capabilities records which optional archive backends are linked into
// this build. spec.md §9 asks for a capability table populated at walker
// construction so a missing backend degrades with one warning instead of
// failing every query; this module links bodgit/sevenzip and
// nwaples/rardecode/v2 unconditionally, so both default to true, but the
// table stays a first-class value (not a pair of compile-time constants)
// so tests can exercise the degrade path by constructing
// Capabilities{SevenZip: false} directly.
type Capabilities struct {
	SevenZip bool
	Rar      bool
}

// DefaultCapabilities reports every backend this build links as available.
func DefaultCapabilities() Capabilities {
	return Capabilities{SevenZip: true, Rar: true}
}

func (c Capabilities) supports(k Kind) bool {
	switch k {
	case SevenZ:
		return c.SevenZip
	case Rar:
		return c.Rar
	default:
		return true
	}
}

// detect maps a filename suffix to its container kind and, for tar
// members, the compression codec wrapping the stream. Detection is by
// suffix only; magic-number sniffing is an optional future addition that
// does not change this contract.
func detect(filename string) (Kind, compression, bool) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return Zip, compNone, true
	case strings.HasSuffix(lower, ".7z"):
		return SevenZ, compNone, true
	case strings.HasSuffix(lower, ".rar"):
		return Rar, compNone, true
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return Tar, compGzip, true
	case strings.HasSuffix(lower, ".tar.bz2"), strings.HasSuffix(lower, ".tbz2"):
		return Tar, compBzip2, true
	case strings.HasSuffix(lower, ".tar.xz"), strings.HasSuffix(lower, ".txz"):
		return Tar, compXz, true
	case strings.HasSuffix(lower, ".tar"):
		return Tar, compNone, true
	default:
		return unknown, compNone, false
	}
}

// Enumerator lazily yields the members of one open archive, file members
// only (directory members are filtered by the implementation per spec.md
// §4.3). Next returns (member, true, nil) per entry, (zero, false, nil) at
// clean end of stream, or (zero, false, err) on an I/O error — the caller
// (the walker) is responsible for routing that error to the policy sink and
// treating it as end of stream, per spec.md §4.4's guarantee that
// container errors terminate the enumerator cleanly rather than
// propagating.
type Enumerator interface {
	Next() (name string, size int64, mtimeUnix int64, ok bool, err error)
	Close() error
}

// Prober is a capability-aware archive probe: one instance is constructed
// per walker and reused across every candidate file.
type Prober struct {
	caps   Capabilities
	warned map[Kind]bool
	onWarn func(string)
}

// NewProber returns a Prober bound to caps. onWarn receives the one-time
// "backend not linked" message for a kind whose capability is false; pass
// nil to discard it silently.
func NewProber(caps Capabilities, onWarn func(string)) *Prober {
	return &Prober{caps: caps, warned: make(map[Kind]bool), onWarn: onWarn}
}

// Probe decides whether path names a recognized, openable container. A
// false third return means "not an archive, or an unsupported/unopenable
// one" — either way the walker evaluates path itself as an ordinary file
// and does not descend into it. onError receives open failures so the
// walker's policy error sink sees them, per spec.md §7 category 2.
func (p *Prober) Probe(path string, onError func(string)) (Enumerator, Kind, bool) {
	kind, comp, ok := detect(path)
	if !ok {
		return nil, unknown, false
	}
	if !p.caps.supports(kind) {
		if !p.warned[kind] {
			p.warned[kind] = true
			if p.onWarn != nil {
				p.onWarn("archive backend for " + string(kind) + " is not available; skipping " + path)
			}
		}
		return nil, kind, false
	}

	var (
		enum Enumerator
		err  error
	)
	switch kind {
	case Zip:
		enum, err = openZip(path)
	case SevenZ:
		enum, err = openSevenZip(path)
	case Rar:
		enum, err = openRar(path)
	case Tar:
		enum, err = openTar(path, comp)
	}
	if err != nil {
		if onError != nil {
			onError("could not open archive " + path + ": " + err.Error())
		}
		return nil, kind, false
	}
	return enum, kind, true
}
