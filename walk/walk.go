package walk

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/robomac/qfind/archive"
	"github.com/robomac/qfind/ast"
	"github.com/robomac/qfind/eval"
	"github.com/robomac/qfind/record"
)

// activeArchive tracks the one archive enumeration currently being
// drained. spec.md §5 bounds the walker to at most one open archive
// handle at a time: archives are fully scanned then closed before the
// next one opens, which this single field (rather than a stack of them)
// enforces structurally.
type activeArchive struct {
	enum          archive.Enumerator
	containerPath string
	kind          archive.Kind
}

// Walker is a pull-based, single-threaded iterator over one query's
// matches, per spec.md §4.5/§5. Construct with New and call Next
// repeatedly until ok is false; dropping the Walker without draining it
// is a valid cancellation. The Walker has no Close method: an archive
// being drained when the Walker is dropped is not closed by the Walker.
type Walker struct {
	roots   []string
	rootIdx int

	expr   ast.Expression
	policy Policy
	eval   *eval.Evaluator
	prober *archive.Prober

	stack   []*frame
	current *activeArchive
	visited map[string]bool

	done bool
	err  error
}

// New constructs a Walker over roots using expr as the match predicate.
// Policy zero-values are filled in per Policy.withDefaults.
func New(roots []string, expr ast.Expression, policy Policy) *Walker {
	policy = policy.withDefaults()
	return &Walker{
		roots:   roots,
		expr:    expr,
		policy:  policy,
		eval:    eval.New(policy.Now),
		prober:  archive.NewProber(policy.Capabilities, policy.debugf),
		visited: make(map[string]bool),
	}
}

// Next advances the walker to the next match. ok is false at end of
// stream (err is nil then) or once a fatal query error has been returned
// (err is non-nil; the walker will not produce further matches).
// Non-fatal traversal errors never surface here — they go to
// policy.ErrorSink and Next simply continues, per spec.md §7.
func (w *Walker) Next() (*MatchRecord, bool, error) {
	for {
		if w.done || w.err != nil {
			return nil, false, w.err
		}

		if w.current != nil {
			rec, matched := w.drainArchive()
			if matched {
				return rec, true, nil
			}
			continue
		}

		if len(w.stack) == 0 {
			if w.rootIdx >= len(w.roots) {
				return nil, false, nil
			}
			root := w.roots[w.rootIdx]
			w.rootIdx++
			w.pushRoot(root)
			continue
		}

		top := w.stack[len(w.stack)-1]
		switch top.state {
		case frameEmittingFiles:
			rec, matched := w.stepEmitFiles(top)
			if matched {
				return rec, true, nil
			}

		case frameEmittingDirs:
			rec, matched := w.stepEmitDirs(top)
			if matched {
				return rec, true, nil
			}

		case frameDescendingSubdirs:
			w.stepDescend(top)

		case frameClosed:
			w.stack = w.stack[:len(w.stack)-1]
		}
	}
}

// drainArchive pulls one member from the active archive enumeration and
// evaluates it. A clean end of stream, a non-fatal read error, and a
// non-match all leave matched false; the caller's loop simply comes back
// around (checking w.done/w.err again) rather than branching here.
func (w *Walker) drainArchive() (rec *MatchRecord, matched bool) {
	name, size, mtimeUnix, ok, err := w.current.enum.Next()
	if err != nil {
		w.current.enum.Close()
		path := w.current.containerPath
		w.current = nil
		w.reportError(path, err)
		return nil, false
	}
	if !ok {
		w.current.enum.Close()
		w.current = nil
		return nil, false
	}
	member := record.Member{Name: name, Size: size, Mtime: time.Unix(mtimeUnix, 0)}
	row := record.FromArchiveMember(w.current.containerPath, string(w.current.kind), w.policy.ArchiveSeparator, member)
	ok, err = w.eval.Match(w.expr, row)
	if err != nil {
		w.err = err
		return nil, false
	}
	if ok {
		return newMatchRecord(row), true
	}
	return nil, false
}

// stepEmitFiles evaluates exactly one queued non-directory entry. If it's
// an archive-eligible regular file, a successful probe becomes the new
// active archive for subsequent Next calls to drain before this frame's
// next entry is considered.
func (w *Walker) stepEmitFiles(f *frame) (*MatchRecord, bool) {
	if f.fileIdx >= len(f.files) {
		f.state = frameEmittingDirs
		return nil, false
	}
	de := f.files[f.fileIdx]
	f.fileIdx++

	row, err := record.FromDirEntry(de, f.path)
	if err != nil {
		w.reportError(filepath.Join(f.path, de.Name()), err)
		return nil, false
	}

	if row.Type == "file" && !w.policy.NoArchive {
		enum, kind, ok := w.prober.Probe(row.Path, func(msg string) { w.reportRaw(msg) })
		if ok {
			w.current = &activeArchive{enum: enum, containerPath: row.Path, kind: kind}
		}
	}
	if row.Type == "link" && w.policy.FollowSymlinks && targetIsDir(row.Path) {
		f.pendingDirs = append(f.pendingDirs, de)
	}

	matched, err := w.eval.Match(w.expr, row)
	if err != nil {
		w.err = err
		return nil, false
	}
	if matched {
		return newMatchRecord(row), true
	}
	return nil, false
}

// stepEmitDirs evaluates exactly one queued subdirectory entry as a
// candidate row, per spec.md §4.5: a directory is both a match candidate
// (type="dir", size=0) and something the walker later recurses into. Once
// every directory has been emitted, followed symlink-to-directory entries
// queued during EmittingFiles are merged in for descent and the frame
// moves to DescendingSubdirs.
func (w *Walker) stepEmitDirs(f *frame) (*MatchRecord, bool) {
	if f.dirEvalIdx >= len(f.dirs) {
		f.dirs = append(f.dirs, f.pendingDirs...)
		f.pendingDirs = nil
		f.state = frameDescendingSubdirs
		return nil, false
	}
	de := f.dirs[f.dirEvalIdx]
	f.dirEvalIdx++

	row, err := record.FromDirEntry(de, f.path)
	if err != nil {
		w.reportError(filepath.Join(f.path, de.Name()), err)
		return nil, false
	}

	matched, err := w.eval.Match(w.expr, row)
	if err != nil {
		w.err = err
		return nil, false
	}
	if matched {
		return newMatchRecord(row), true
	}
	return nil, false
}

// stepDescend opens exactly one queued subdirectory and pushes a new
// frame for it, applying the symlink-cycle guard when one is needed.
func (w *Walker) stepDescend(f *frame) {
	if f.dirIdx >= len(f.dirs) {
		f.state = frameClosed
		return
	}
	de := f.dirs[f.dirIdx]
	f.dirIdx++
	childPath := filepath.Join(f.path, de.Name())

	if w.policy.FollowSymlinks {
		key, err := visitKey(childPath)
		if err == nil {
			if w.visited[key] {
				return
			}
			w.visited[key] = true
		}
	}

	entries, err := readSortedDir(childPath)
	if err != nil {
		w.reportError(childPath, err)
		return
	}
	w.policy.debugf("opened " + childPath)
	w.stack = append(w.stack, newFrame(childPath, entries))
}

// pushRoot seeds the stack with one caller-supplied root, whether it
// names a directory or a single file/symlink. A single-file root reuses
// the same frame machinery as a directory entry by wrapping it in a
// synthetic one-entry frame, so archive probing and symlink-following
// behave identically whether the candidate came from a directory listing
// or was named directly.
func (w *Walker) pushRoot(path string) {
	fi, err := os.Lstat(path)
	if err != nil {
		w.reportError(path, err)
		return
	}
	if fi.IsDir() {
		if w.policy.FollowSymlinks {
			if key, err := visitKey(path); err == nil {
				w.visited[key] = true
			}
		}
		entries, err := readSortedDir(path)
		if err != nil {
			w.reportError(path, err)
			return
		}
		w.stack = append(w.stack, newFrame(path, entries))
		return
	}
	de := fs.FileInfoToDirEntry(fi)
	w.stack = append(w.stack, &frame{
		path:  filepath.Dir(path),
		files: []fs.DirEntry{de},
		state: frameEmittingFiles,
	})
}

func (w *Walker) reportError(path string, err error) {
	w.reportRaw(path + ": " + err.Error())
}

func (w *Walker) reportRaw(message string) {
	if w.policy.ErrorSink != nil {
		w.policy.ErrorSink(message)
	}
	if w.policy.StopOnError {
		w.done = true
	}
}

func targetIsDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
