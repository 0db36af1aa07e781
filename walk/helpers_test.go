package walk

import (
	"archive/zip"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTestZip builds a minimal zip archive at path with one entry per
// (internalName -> content) pair in contents.
func writeTestZip(t *testing.T, path string, contents map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range contents {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}
