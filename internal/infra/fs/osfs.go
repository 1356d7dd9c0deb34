package fs

import (
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// AferoFS implements the application's filesystem port over an afero.Fs.
type AferoFS struct {
	Fs afero.Fs
}

func NewOS() AferoFS {
	return AferoFS{Fs: afero.NewOsFs()}
}

func NewMem() AferoFS {
	return AferoFS{Fs: afero.NewMemMapFs()}
}

// ReadDir lists a directory without following symlinks in the entries.
func (a AferoFS) ReadDir(path string) ([]iofs.FileInfo, error) {
	return afero.ReadDir(a.Fs, path)
}

func (a AferoFS) Stat(path string) (iofs.FileInfo, error) {
	return a.Fs.Stat(path)
}

// RealPath resolves symlinks on the OS filesystem. Other backends have no links.
func (a AferoFS) RealPath(path string) (string, error) {
	if _, ok := a.Fs.(*afero.OsFs); ok {
		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			return "", err
		}
		return filepath.Abs(resolved)
	}
	return filepath.Clean(path), nil
}

func (a AferoFS) Exists(path string) (bool, error) {
	return afero.Exists(a.Fs, path)
}

func (a AferoFS) MkdirAll(path string, perm iofs.FileMode) error {
	return a.Fs.MkdirAll(path, perm)
}

func (a AferoFS) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(a.Fs, path)
}

// CreateExclusive creates path and writes data, failing if path already exists.
func (a AferoFS) CreateExclusive(path string, data []byte) error {
	if err := a.Fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := a.Fs.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// AppendFile appends data to path, creating it when missing.
func (a AferoFS) AppendFile(path string, data []byte) error {
	file, err := a.Fs.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// CopyFile streams src into a temporary sibling of dst and renames it into
// place, so dst only ever appears complete.
func (a AferoFS) CopyFile(src, dst string) error {
	srcFile, err := a.Fs.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dir := filepath.Dir(dst)
	if err := a.Fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmpFile, err := afero.TempFile(a.Fs, dir, ".fq-copy-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	renamed := false
	defer func() {
		if !renamed {
			a.Fs.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmpFile, srcFile); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := a.Fs.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		return err
	}
	if err := a.Fs.Rename(tmpPath, dst); err != nil {
		return err
	}
	renamed = true
	return nil
}
