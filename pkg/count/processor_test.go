package count

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates root/rel with content, creating parent directories.
func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewProcessor(t *testing.T) {
	var errOut bytes.Buffer
	p := NewProcessor(1024, true, &errOut)

	assert.Equal(t, 1024, p.BufferSize)
	assert.True(t, p.SkipEmpty)
	require.NotNil(t, p.Filter)
	assert.True(t, p.Filter.Matches("a.txt"))
	require.NotNil(t, p.Log)
}

func TestProcessFileModes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "one\n\nthree")

	var errOut bytes.Buffer
	raw := NewProcessor(DefaultBufferSize, false, &errOut)
	nonEmpty := NewProcessor(DefaultBufferSize, true, &errOut)

	assert.Equal(t, int64(2), raw.ProcessFile(path).Lines)
	assert.Equal(t, int64(2), nonEmpty.ProcessFile(path).Lines)
	assert.Empty(t, errOut.String())
}

func TestProcessFileEmpty(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.md", "")

	for _, skip := range []bool{false, true} {
		res := NewProcessor(DefaultBufferSize, skip, &bytes.Buffer{}).ProcessFile(path)
		assert.Equal(t, int64(0), res.Lines)
		assert.NoError(t, res.Err)
		assert.False(t, res.Skipped)
	}
}

func TestProcessFileRejectedExtension(t *testing.T) {
	dir := t.TempDir()

	var errOut bytes.Buffer
	p := NewProcessor(DefaultBufferSize, false, &errOut)

	// Neither file exists; a rejected path must not be opened, so no
	// diagnostic is written.
	for _, name := range []string{"a.exe", "README"} {
		res := p.ProcessFile(filepath.Join(dir, name))
		assert.True(t, res.Skipped, name)
		assert.Equal(t, int64(0), res.Lines, name)
		assert.NoError(t, res.Err, name)
	}
	assert.Empty(t, errOut.String())
}

func TestProcessFileOpenError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")

	var errOut bytes.Buffer
	res := NewProcessor(DefaultBufferSize, false, &errOut).ProcessFile(missing)

	assert.Equal(t, int64(0), res.Lines)
	assert.ErrorIs(t, res.Err, os.ErrNotExist)
	assert.Contains(t, errOut.String(), "Cannot open "+missing)
}

func TestProcessFileUnreadable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits not enforced on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}

	path := writeFile(t, t.TempDir(), "locked.txt", "a\nb\n")
	require.NoError(t, os.Chmod(path, 0))

	var errOut bytes.Buffer
	res := NewProcessor(DefaultBufferSize, false, &errOut).ProcessFile(path)

	assert.Equal(t, int64(0), res.Lines)
	assert.ErrorIs(t, res.Err, os.ErrPermission)
	assert.Contains(t, errOut.String(), "Cannot open")
}

func TestProcessFileReadError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("reading a directory handle behaves differently on windows")
	}

	// Opening a directory succeeds but reading it fails.
	dir := filepath.Join(t.TempDir(), "folder.txt")
	require.NoError(t, os.Mkdir(dir, 0o755))

	var errOut bytes.Buffer
	res := NewProcessor(DefaultBufferSize, false, &errOut).ProcessFile(dir)

	assert.Equal(t, int64(0), res.Lines)
	assert.Error(t, res.Err)
	assert.Contains(t, errOut.String(), "Read error: "+dir)
}

func TestProcessorWithoutLogger(t *testing.T) {
	p := &Processor{BufferSize: DefaultBufferSize, Filter: DefaultFilter()}

	res := p.ProcessFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, res.Err)
}

func TestProcessorWithoutFilter(t *testing.T) {
	path := writeFile(t, t.TempDir(), "Makefile", "all:\n\tgo build\n")

	p := &Processor{BufferSize: DefaultBufferSize, Log: log.New(&bytes.Buffer{}, "", 0)}
	assert.Equal(t, int64(2), p.ProcessFile(path).Lines)
}
