// Package fileio loads and saves documents as lines of text.
package fileio

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/zjrosen/tide/internal/log"
)

var (
	// ErrNotFound means the file does not exist yet. Editing a new file is
	// normal, so callers usually treat this as an empty document.
	ErrNotFound = errors.New("file not found")
	// ErrUnreadable means the file exists but could not be read.
	ErrUnreadable = errors.New("file unreadable")
	// ErrUnwritable means the document could not be written.
	ErrUnwritable = errors.New("file unwritable")
)

const defaultPerm fs.FileMode = 0644

// maxLinkHops bounds symlink resolution so a link cycle cannot loop forever.
const maxLinkHops = 40

// Store reads and writes documents on a filesystem.
type Store struct {
	fs afero.Fs
}

// NewStore creates a Store on fsys.
func NewStore(fsys afero.Fs) *Store {
	return &Store{fs: fsys}
}

// NewOSStore creates a Store on the real filesystem.
func NewOSStore() *Store {
	return NewStore(afero.NewOsFs())
}

// Load reads path as lines. A trailing newline does not produce an extra
// empty line and "\r\n" endings are read as "\n". An empty file yields no
// lines.
func (s *Store) Load(path string) ([]string, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	}

	lines := SplitLines(string(data))
	log.Debug(log.CatFile, "loaded", "path", path, "lines", len(lines), "bytes", len(data))
	return lines, nil
}

// SplitLines splits file content into lines the way Load does.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}

// Save writes lines to path, each followed by "\n". The write goes to a
// temporary file in the same directory which is then renamed over path, so
// a failed save never truncates the existing file. When path is a symlink
// the link's final target is replaced and the link itself is kept.
func (s *Store) Save(path string, lines []string) error {
	path = s.resolveLinks(path)
	perm := defaultPerm
	if info, err := s.fs.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	var buf strings.Builder
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}

	dir := filepath.Dir(path)
	temp, err := afero.TempFile(s.fs, dir, ".tide.tmp.*")
	if err != nil {
		return fmt.Errorf("%w: %s: creating temp file: %w", ErrUnwritable, path, err)
	}
	tempPath := temp.Name()

	if _, err := temp.WriteString(buf.String()); err != nil {
		_ = temp.Close()
		_ = s.fs.Remove(tempPath)
		return fmt.Errorf("%w: %s: writing temp file: %w", ErrUnwritable, path, err)
	}
	if err := temp.Close(); err != nil {
		_ = s.fs.Remove(tempPath)
		return fmt.Errorf("%w: %s: closing temp file: %w", ErrUnwritable, path, err)
	}
	if err := s.fs.Chmod(tempPath, perm); err != nil {
		_ = s.fs.Remove(tempPath)
		return fmt.Errorf("%w: %s: setting permissions: %w", ErrUnwritable, path, err)
	}
	if err := s.fs.Rename(tempPath, path); err != nil {
		_ = s.fs.Remove(tempPath)
		return fmt.Errorf("%w: %s: renaming temp file: %w", ErrUnwritable, path, err)
	}

	log.Debug(log.CatFile, "saved", "path", path, "lines", len(lines), "bytes", buf.Len())
	return nil
}

// resolveLinks follows symlinks from path to the file they point at. A
// dangling link resolves to its missing target, so saving creates that file.
// Filesystems without symlink support return path unchanged.
func (s *Store) resolveLinks(path string) string {
	lstater, ok := s.fs.(afero.Lstater)
	if !ok {
		return path
	}
	reader, ok := s.fs.(afero.LinkReader)
	if !ok {
		return path
	}

	for hop := 0; hop < maxLinkHops; hop++ {
		info, lstatCalled, err := lstater.LstatIfPossible(path)
		if err != nil || !lstatCalled || info.Mode()&fs.ModeSymlink == 0 {
			return path
		}
		dest, err := reader.ReadlinkIfPossible(path)
		if err != nil {
			log.Warn(log.CatFile, "unreadable symlink", "path", path, "error", err)
			return path
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(path), dest)
		}
		path = dest
	}
	log.Warn(log.CatFile, "too many symlinks", "path", path)
	return path
}
