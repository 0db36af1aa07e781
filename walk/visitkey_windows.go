//go:build windows

package walk

// visitKey identifies path's target. Windows' fs.FileInfo.Sys() exposes
// no portable inode-equivalent through the standard library the way
// syscall.Stat_t's Dev/Ino do on Unix, so spec.md §4.5's documented
// fallback applies here unconditionally: "on platforms lacking inode
// identity, a canonicalized-path set is used instead."
func visitKey(path string) (string, error) {
	return canonicalPathKey(path)
}
