package filestorage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath(t *testing.T) {
	base := t.TempDir()
	ls, err := NewLocalStorage(base, "/api/v1/jobs/download-resume")
	require.NoError(t, err)

	got := ls.Path("/api/v1/jobs/download-resume/abc.pdf")
	assert.Equal(t, filepath.Join(base, "abc.pdf"), got)

	// Traversal segments never escape the base directory
	got = ls.Path("/api/v1/jobs/download-resume/../../etc/passwd")
	assert.Equal(t, filepath.Join(base, "etc", "passwd"), got)
}

func TestURLRoundTrip(t *testing.T) {
	base := t.TempDir()
	ls, err := NewLocalStorage(base, "/api/v1/jobs/download-resume")
	require.NoError(t, err)

	url := ls.URL("abc.pdf")
	assert.Equal(t, "/api/v1/jobs/download-resume/abc.pdf", url)
	assert.Equal(t, filepath.Join(base, "abc.pdf"), ls.Path(url))

	// Pattern characters stay literal, the URL is built verbatim
	assert.Equal(t, "/api/v1/jobs/download-resume/%", ls.URL("%"))
}

func TestDeleteFileOutsideBase(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	assert.Error(t, ls.DeleteFile("/somewhere/else/file.png"))
	assert.NoError(t, ls.DeleteFile(""))
	// Missing files are not an error
	assert.NoError(t, ls.DeleteFile("/uploads/missing.png"))
}
