package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const waitFor = 5 * time.Second

func start(t *testing.T, path string, rebuild RebuildFunc, opts ...Option) (cancel func(), done <-chan error) {
	t.Helper()
	w, err := New(path, rebuild, opts...)
	require.NoError(t, err)

	ctx, stop := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()
	t.Cleanup(func() {
		stop()
		w.Close()
	})
	return stop, errc
}

func TestRebuildOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prism.yaml")
	require.NoError(t, os.WriteFile(path, []byte("poly_count: 4\n"), 0644))

	calls := make(chan struct{}, 8)
	start(t, path, func(context.Context) error {
		calls <- struct{}{}
		return nil
	}, WithDebounce(10*time.Millisecond))

	require.NoError(t, os.WriteFile(path, []byte("poly_count: 5\n"), 0644))

	select {
	case <-calls:
	case <-time.After(waitFor):
		t.Fatal("no rebuild after write")
	}
}

func TestIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prism.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	calls := make(chan struct{}, 8)
	start(t, path, func(context.Context) error {
		calls <- struct{}{}
		return nil
	}, WithDebounce(10*time.Millisecond))

	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))

	select {
	case <-calls:
		t.Fatal("rebuild triggered by unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRebuildErrorIsLogged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prism.toml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	core, logs := observer.New(zapcore.DebugLevel)
	calls := make(chan struct{}, 8)
	start(t, path, func(context.Context) error {
		defer func() { calls <- struct{}{} }()
		return errors.New("bad preset")
	}, WithDebounce(10*time.Millisecond), WithLogger(zap.New(core)))

	require.NoError(t, os.WriteFile(path, []byte("poly_count = 3\n"), 0644))

	select {
	case <-calls:
	case <-time.After(waitFor):
		t.Fatal("no rebuild after write")
	}
	assert.Eventually(t, func() bool {
		return logs.FilterMessage("rebuild failed").Len() > 0
	}, waitFor, 10*time.Millisecond)
}

func TestRunStopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prism.yaml")
	cancel, done := start(t, path, func(context.Context) error { return nil })

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(waitFor):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "prism.yaml"), nil)
	assert.Error(t, err)
}

func TestRelevant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prism.yaml")
	w := &Watcher{path: path}

	assert.True(t, w.relevant(fsnotify.Event{Name: path, Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: path, Op: fsnotify.Create}))
	assert.False(t, w.relevant(fsnotify.Event{Name: path, Op: fsnotify.Chmod}))
	assert.False(t, w.relevant(fsnotify.Event{Name: path, Op: fsnotify.Remove}))
	assert.False(t, w.relevant(fsnotify.Event{Name: path + ".swp", Op: fsnotify.Write}))
}
