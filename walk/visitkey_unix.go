//go:build !windows

package walk

import (
	"fmt"
	"os"
	"syscall"
)

// visitKey identifies path's target by device+inode, following symlinks,
// per spec.md §4.5: "a visited-device+inode set guards against cycles."
func visitKey(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return canonicalPathKey(path)
	}
	return fmt.Sprintf("%d:%d", st.Dev, st.Ino), nil
}
