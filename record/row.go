// Package record builds the immutable candidate row described by spec.md
// §3: one attribute bag per filesystem entry or archive member, with a
// closed, typed identifier→slot map instead of the teacher's dynamic
// string-keyed dispatch (fileitem.go's fileitem struct plus its
// Extension()/FileType() helpers are the grounding for the extension and
// type derivation below).
package record

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/robomac/qfind/value"
)

// compoundExtensions is the closed table of two-part suffixes the row
// builder recognizes for ext2, grounded on the teacher's own fixed,
// comma-delimited Extensions maps in dir.go (closed lists, never a
// wildcard match). Longest-suffix match wins; everything else falls back
// to the plain single-part ext.
var compoundExtensions = []string{"tar.gz", "tar.bz2", "tar.xz"}

// Row is the read-only attribute bag tested by the evaluator. Field names
// mirror spec.md §3's identifier table exactly.
type Row struct {
	Name      string
	Path      string
	Size      int64
	Mtime     time.Time
	Type      string // "file", "dir", "link"
	Ext       string
	Ext2      string
	Archive   string // nonempty only for archive members
	Container string // nonempty only for archive members
}

// Get resolves one of the filesystem/archive-derived identifiers (every
// name in spec.md §3's table except today/mo..su, which only the
// evaluator's clock can answer since they're fixed once per walker
// construction, not per row). The second return is false for names this
// row doesn't recognize, which the evaluator treats as Null.
func (r Row) Get(name string) (value.Value, bool) {
	switch name {
	case "name":
		return value.TextValue(r.Name), true
	case "path":
		return value.TextValue(r.Path), true
	case "size":
		return value.IntValue(r.Size), true
	case "date":
		return value.TextValue(r.Mtime.Local().Format("2006-01-02")), true
	case "time":
		return value.TextValue(r.Mtime.Local().Format("15:04:05")), true
	case "ext":
		return value.TextValue(r.Ext), true
	case "ext2":
		return value.TextValue(r.Ext2), true
	case "type":
		return value.TextValue(r.Type), true
	case "archive":
		return value.TextValue(r.Archive), true
	case "container":
		return value.TextValue(r.Container), true
	default:
		return value.NullValue(), false
	}
}

// CaseInsensitiveIdent reports whether the named identifier compares
// case-insensitively per spec.md §4.2 (name/path/ext/ext2 fold; the
// already-normalized date/time/archive/container/type compare literally).
func CaseInsensitiveIdent(name string) bool {
	switch name {
	case "name", "path", "ext", "ext2":
		return true
	default:
		return false
	}
}

// extsFor derives (ext, ext2) from a file name per spec.md §3/§4.3: both
// lowercased, ext is the suffix after the last dot, ext2 is the longest
// recognized compound suffix or falls back to ext.
func extsFor(name string) (ext, ext2 string) {
	lower := strings.ToLower(name)
	if i := strings.LastIndex(lower, "."); i >= 0 && i < len(lower)-1 {
		ext = lower[i+1:]
	}
	ext2 = ext
	for _, compound := range compoundExtensions {
		if strings.HasSuffix(lower, "."+compound) {
			ext2 = compound
			break
		}
	}
	return ext, ext2
}

// FromDirEntry builds a Row for one filesystem entry: directories get type
// "dir", symlinks get type "link", and every other entry gets type "file".
// Other non-regular entries (pipes, sockets, devices) are not skipped;
// they are reported as "file".
func FromDirEntry(de fs.DirEntry, dirPath string) (Row, error) {
	info, err := de.Info()
	if err != nil {
		return Row{}, err
	}
	name := info.Name()
	typ := "file"
	switch {
	case info.IsDir():
		typ = "dir"
	case info.Mode()&fs.ModeSymlink != 0:
		typ = "link"
	}
	size := info.Size()
	if typ == "dir" {
		size = 0
	}
	ext, ext2 := extsFor(name)
	return Row{
		Name:  name,
		Path:  filepath.Join(dirPath, name),
		Size:  size,
		Mtime: info.ModTime(),
		Type:  typ,
		Ext:   ext,
		Ext2:  ext2,
	}, nil
}

// Member describes one entry read from an archive, before it becomes a
// Row. Directory members are never turned into a Row (spec.md §4.3 skips
// them); callers filter those out before calling FromArchiveMember.
type Member struct {
	Name  string // internal path, forward-slash separated
	Size  int64
	Mtime time.Time
}

// FromArchiveMember builds a Row for one archive member. path is built as
// containerPath+separator+memberName per spec.md §4.3/§6; the member's own
// "name" attribute is just its final path component.
func FromArchiveMember(containerPath, kind, separator string, m Member) Row {
	name := m.Name
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	ext, ext2 := extsFor(name)
	return Row{
		Name:      name,
		Path:      containerPath + separator + m.Name,
		Size:      m.Size,
		Mtime:     m.Mtime,
		Type:      "file",
		Ext:       ext,
		Ext2:      ext2,
		Archive:   kind,
		Container: containerPath,
	}
}
