package archive

import (
	"archive/tar"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"

	"github.com/ulikunitz/xz"
)

// tarEnumerator wraps a *tar.Reader over an optionally-compressed stream,
// grounded on the teacher's filesInTgzArchive in dir.go (open file, chain
// a gzip.Reader, then a tar.Reader, loop tarReader.Next()), generalized
// to the bzip2/xz siblings spec.md §4.4 also names.
type tarEnumerator struct {
	file   *os.File
	gz     *gzip.Reader
	xzr    io.Reader
	reader *tar.Reader
}

func openTar(path string, comp compression) (Enumerator, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	e := &tarEnumerator{file: file}

	var stream io.Reader = file
	switch comp {
	case compGzip:
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, err
		}
		e.gz = gz
		stream = gz
	case compBzip2:
		stream = bzip2.NewReader(file)
	case compXz:
		xzr, err := xz.NewReader(file)
		if err != nil {
			file.Close()
			return nil, err
		}
		e.xzr = xzr
		stream = xzr
	}
	e.reader = tar.NewReader(stream)
	return e, nil
}

func (e *tarEnumerator) Next() (name string, size int64, mtimeUnix int64, ok bool, err error) {
	for {
		head, err := e.reader.Next()
		if err == io.EOF {
			return "", 0, 0, false, nil
		}
		if err != nil {
			return "", 0, 0, false, err
		}
		if head.FileInfo().IsDir() {
			continue
		}
		return head.Name, head.Size, head.ModTime.Unix(), true, nil
	}
}

func (e *tarEnumerator) Close() error {
	if e.gz != nil {
		e.gz.Close()
	}
	return e.file.Close()
}
