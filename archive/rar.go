package archive

import (
	"io"

	"github.com/nwaples/rardecode/v2"
)

// rarEnumerator wraps rardecode/v2's streaming reader. rardecode has no
// up-front file table the way zip/7z do (RAR's member headers are
// interleaved with member data), so, like the teacher's tar handling, this
// is a pull-based Next()-over-headers loop rather than an indexed slice.
// No sibling in the teacher or retrieval pack reads RAR archives — this
// library is named directly in SPEC_FULL.md/DESIGN.md as an ungrounded
// ecosystem addition, since RAR support is required by spec.md §4.4 and
// no pack repo touches the format.
type rarEnumerator struct {
	rc *rardecode.ReadCloser
}

func openRar(path string) (Enumerator, error) {
	rc, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, err
	}
	return &rarEnumerator{rc: rc}, nil
}

func (e *rarEnumerator) Next() (name string, size int64, mtimeUnix int64, ok bool, err error) {
	for {
		header, err := e.rc.Next()
		if err == io.EOF {
			return "", 0, 0, false, nil
		}
		if err != nil {
			return "", 0, 0, false, err
		}
		if header.IsDir {
			continue
		}
		return header.Name, header.UnPackedSize, header.ModificationTime.Unix(), true, nil
	}
}

func (e *rarEnumerator) Close() error { return e.rc.Close() }
