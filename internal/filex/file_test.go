package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureDir_RelativeResolvesAgainstCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureDir("state")
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(filepath.Join(tmp, "state"))
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	require.Equal(t, want, gotResolved)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureDir_AbsoluteAndNested(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b")

	got, err := EnsureDir(target)
	require.NoError(t, err)
	require.Equal(t, target, got)

	again, err := EnsureDir(target)
	require.NoError(t, err, "must be idempotent")
	require.Equal(t, got, again)
}

func TestEnsureDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "state")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := EnsureDir(path)
	require.Error(t, err, "should fail when a file exists with the same name")
}

func TestDefaultDataDir_EndsWithApp(t *testing.T) {
	got := DefaultDataDir("newsexplorer")
	require.True(t, strings.HasSuffix(got, "newsexplorer"), got)
}
