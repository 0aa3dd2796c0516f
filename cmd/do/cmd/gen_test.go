package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string, mod time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestIsUpToDate(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().Add(-time.Hour)
	out := filepath.Join(dir, "output.css")
	in := filepath.Join(dir, "input.css")

	assert.False(t, isUpToDate(out, []string{in}))

	touch(t, in, old)
	touch(t, out, time.Now())
	assert.True(t, isUpToDate(out, []string{in, filepath.Join(dir, "missing.css")}))

	touch(t, in, time.Now().Add(time.Minute))
	assert.False(t, isUpToDate(out, []string{in}))
}

func TestStaleTemplFiles(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().Add(-time.Hour)

	touch(t, filepath.Join(dir, "ui", "fresh.templ"), old)
	touch(t, filepath.Join(dir, "ui", "fresh_templ.go"), time.Now())
	touch(t, filepath.Join(dir, "ui", "changed_templ.go"), old)
	touch(t, filepath.Join(dir, "ui", "changed.templ"), time.Now())
	touch(t, filepath.Join(dir, "ui", "new.templ"), time.Now())
	touch(t, filepath.Join(dir, "_examples", "ignored.templ"), time.Now())

	stale := staleTemplFiles(dir)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "ui", "changed.templ"),
		filepath.Join(dir, "ui", "new.templ"),
	}, stale)
}
