package fileio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// unreadableFs fails every open, as a permission-denied filesystem would.
type unreadableFs struct {
	afero.Fs
}

func (unreadableFs) Open(string) (afero.File, error) {
	return nil, os.ErrPermission
}

func (unreadableFs) OpenFile(string, int, os.FileMode) (afero.File, error) {
	return nil, os.ErrPermission
}

func TestLoad_Lines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "empty file", content: "", want: nil},
		{name: "no trailing newline", content: "a\nb", want: []string{"a", "b"}},
		{name: "trailing newline dropped", content: "a\nb\n", want: []string{"a", "b"}},
		{name: "blank last line kept", content: "a\n\n", want: []string{"a", ""}},
		{name: "single newline", content: "\n", want: []string{""}},
		{name: "crlf endings", content: "int x;\r\nint y;\r\n", want: []string{"int x;", "int y;"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fsys, "/work/main.c", []byte(tt.content), 0644))

			got, err := NewStore(fsys).Load("/work/main.c")
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := NewStore(afero.NewMemMapFs()).Load("/missing.c")

	require.ErrorIs(t, err, ErrNotFound)
	require.NotErrorIs(t, err, ErrUnreadable)
}

func TestLoad_Unreadable(t *testing.T) {
	fsys := unreadableFs{Fs: afero.NewMemMapFs()}

	_, err := NewStore(fsys).Load("/secret.c")

	require.ErrorIs(t, err, ErrUnreadable)
	require.ErrorIs(t, err, os.ErrPermission)
}

func TestSave_WritesLinesWithNewlines(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/work", 0755))

	err := NewStore(fsys).Save("/work/main.c", []string{"int main() {", "}", ""})
	require.NoError(t, err)

	data, err := afero.ReadFile(fsys, "/work/main.c")
	require.NoError(t, err)
	require.Equal(t, "int main() {\n}\n\n", string(data))
}

func TestSave_ReplacesExistingAndKeepsMode(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/work/run.sh", []byte("old\n"), 0755))

	require.NoError(t, NewStore(fsys).Save("/work/run.sh", []string{"new"}))

	data, err := afero.ReadFile(fsys, "/work/run.sh")
	require.NoError(t, err)
	require.Equal(t, "new\n", string(data))

	info, err := fsys.Stat("/work/run.sh")
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/work", 0755))

	require.NoError(t, NewStore(fsys).Save("/work/a.txt", []string{"a"}))

	entries, err := afero.ReadDir(fsys, "/work")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "a.txt", entries[0].Name())
}

func TestSave_Unwritable(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/work/a.txt", []byte("keep\n"), 0644))
	fsys := afero.NewReadOnlyFs(base)

	err := NewStore(fsys).Save("/work/a.txt", []string{"lost"})

	require.ErrorIs(t, err, ErrUnwritable)
	data, readErr := afero.ReadFile(base, "/work/a.txt")
	require.NoError(t, readErr)
	require.Equal(t, "keep\n", string(data))
}

func TestSaveThenLoad(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/work", 0755))
	store := NewStore(fsys)
	lines := []string{"#include <stdio.h>", "", "int main() { return 0; }"}

	require.NoError(t, store.Save("/work/main.c", lines))
	got, err := store.Load("/work/main.c")

	require.NoError(t, err)
	require.Equal(t, lines, got)
}

func TestSave_ThroughSymlinkKeepsLink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.c")
	link := filepath.Join(dir, "link.c")
	require.NoError(t, os.WriteFile(target, []byte("old\n"), 0600))
	require.NoError(t, os.Symlink("real.c", link))

	require.NoError(t, NewOSStore().Save(link, []string{"new"}))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	require.NotZero(t, info.Mode()&os.ModeSymlink, "link replaced by a regular file")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, "new\n", string(data))

	info, err = os.Stat(target)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSave_DanglingSymlinkCreatesTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "missing.c")
	link := filepath.Join(dir, "link.c")
	require.NoError(t, os.Symlink(target, link))

	require.NoError(t, NewOSStore().Save(link, []string{"x"}))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, "x\n", string(data))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	require.NotZero(t, info.Mode()&os.ModeSymlink)
}

func TestSave_SymlinkCycleTerminates(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.c")
	b := filepath.Join(dir, "b.c")
	require.NoError(t, os.Symlink(b, a))
	require.NoError(t, os.Symlink(a, b))

	// The cycle resolves to one of the links; the rename then replaces it
	// with a regular file rather than hanging.
	require.NoError(t, NewOSStore().Save(a, []string{"y"}))
}
