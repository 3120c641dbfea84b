package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) add(p string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, p)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func startWatcher(t *testing.T, paths []string, match func(string) bool) *recorder {
	t.Helper()
	w, err := New(paths)
	require.NoError(t, err)
	w.Debounce = 50 * time.Millisecond
	w.Match = match

	ctx, cancel := context.WithCancel(context.Background())
	rec := &recorder{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx, rec.add)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		w.Close()
	})
	return rec
}

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "model.obj")
	other := filepath.Join(dir, "other.obj")
	require.NoError(t, os.WriteFile(target, []byte("v 0 0 0\n"), 0644))

	rec := startWatcher(t, []string{target}, nil)

	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))
	// several quick writes settle into one call
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(target, []byte(strings.Repeat("v 0 0 0\n", i+2)), 0644))
	}

	require.Eventually(t, func() bool { return len(rec.snapshot()) > 0 }, 3*time.Second, 20*time.Millisecond)
	time.Sleep(200 * time.Millisecond)

	abs, err := filepath.Abs(target)
	require.NoError(t, err)
	got := rec.snapshot()
	assert.Equal(t, []string{abs}, got)
}

func TestWatchDirectoryMatch(t *testing.T) {
	dir := t.TempDir()
	rec := startWatcher(t, []string{dir}, func(p string) bool {
		return filepath.Ext(p) == ".obj"
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.obj"), []byte("x"), 0644))

	require.Eventually(t, func() bool { return len(rec.snapshot()) > 0 }, 3*time.Second, 20*time.Millisecond)
	time.Sleep(200 * time.Millisecond)

	got := rec.snapshot()
	require.Len(t, got, 1)
	assert.Equal(t, "new.obj", filepath.Base(got[0]))
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "nope", "model.obj")})
	assert.Error(t, err)
}
