package tests

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildFixture compiles a worker program from tests/fixtures/workers into a
// temp binary and returns its path.
func buildFixture(t *testing.T, dirName string) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)

	root := wd
	for {
		if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(root)
		if parent == root {
			t.Fatal("could not find project root (go.mod)")
		}
		root = parent
	}

	sourcePath := filepath.Join(root, "tests", "fixtures", "workers", dirName)

	exeName := dirName
	if runtime.GOOS == "windows" {
		exeName += ".exe"
	}
	destPath := filepath.Join(t.TempDir(), exeName)

	cmd := exec.Command("go", "build", "-o", destPath, sourcePath)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "Failed to build fixture %s: %s", dirName, string(out))

	return destPath
}

// safeBuffer is a locked bytes.Buffer. The exec pipe copier writes from its
// own goroutine, so test reads need the lock too.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Len()
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
