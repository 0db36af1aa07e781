package walk

import "path/filepath"

// canonicalPathKey resolves path to an absolute, symlink-free form to use
// as a visited-set key when no inode identity is available.
func canonicalPathKey(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(resolved)
}
