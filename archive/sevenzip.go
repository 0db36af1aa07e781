package archive

import "github.com/bodgit/sevenzip"

// sevenZipEnumerator wraps a *sevenzip.ReadCloser's File slice, grounded
// directly on the teacher's filesIn7ZArchive/SevenZIterator pair in
// dir.go: the File slice is fully known up front (7z's format requires
// reading the whole header block before any entry is addressable), so
// enumeration is index-based like zip rather than a streaming Next() call.
type sevenZipEnumerator struct {
	rc    *sevenzip.ReadCloser
	index int
}

func openSevenZip(path string) (Enumerator, error) {
	// No password support: spec.md's member enumeration never needs file
	// contents, and the teacher's own password flag (pw7zip) only guards
	// content extraction, which is out of scope here.
	rc, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	return &sevenZipEnumerator{rc: rc}, nil
}

func (e *sevenZipEnumerator) Next() (name string, size int64, mtimeUnix int64, ok bool, err error) {
	for e.index < len(e.rc.File) {
		f := e.rc.File[e.index]
		e.index++
		if f.FileInfo().IsDir() {
			continue
		}
		return f.Name, f.FileInfo().Size(), f.Modified.Unix(), true, nil
	}
	return "", 0, 0, false, nil
}

func (e *sevenZipEnumerator) Close() error { return e.rc.Close() }
