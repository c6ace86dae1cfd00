package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leapstack-labs/pinelint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatchScope(t *testing.T) {
	dir := t.TempDir()
	file := testutil.WriteFile(t, dir, "top.pine", testutil.CleanScript)
	testutil.WriteFile(t, dir, filepath.Join("sub", "a.pine"), testutil.CleanScript)
	testutil.WriteFile(t, dir, filepath.Join(".hidden", "b.pine"), testutil.CleanScript)

	tests := []struct {
		name      string
		paths     []string
		recursive bool
		wantDirs  []string
		inScope   []string
		outScope  []string
	}{
		{
			name:     "directory",
			paths:    []string{dir},
			wantDirs: []string{dir},
			inScope:  []string{filepath.Join(dir, "new.pine")},
			outScope: []string{filepath.Join(dir, "sub", "a.pine")},
		},
		{
			name:      "recursive skips hidden",
			paths:     []string{dir},
			recursive: true,
			wantDirs:  []string{dir, filepath.Join(dir, "sub")},
			inScope:   []string{filepath.Join(dir, "sub", "a.pine")},
			outScope:  []string{filepath.Join(dir, ".hidden", "b.pine")},
		},
		{
			name:     "explicit file",
			paths:    []string{file},
			wantDirs: []string{dir},
			inScope:  []string{file},
			outScope: []string{filepath.Join(dir, "other.pine")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, err := newWatchScope(tt.paths, tt.recursive)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDirs, scope.dirs)
			for _, p := range tt.inScope {
				assert.True(t, scope.contains(p), p)
			}
			for _, p := range tt.outScope {
				assert.False(t, scope.contains(p), p)
			}
		})
	}

	_, err := newWatchScope([]string{filepath.Join(dir, "missing")}, false)
	assert.Error(t, err)
}

func TestFileWatcher_Debounces(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "a.pine", testutil.CleanScript)

	scope, err := newWatchScope([]string{dir}, false)
	require.NoError(t, err)

	changes := make(chan []string, 4)
	w, err := newFileWatcher(scope, testutil.NewTestLogger(t), func(paths []string) {
		changes <- paths
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	for range 3 {
		require.NoError(t, os.WriteFile(path, []byte(testutil.MisplacedScript), 0o600))
	}

	select {
	case got := <-changes:
		assert.Equal(t, []string{path}, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}
