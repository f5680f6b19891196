package fileutil

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	slash            = '/'
	windowsSeparator = '\\'

	dirPerm = 0o755
)

// Name returns the last element of filePath. Both '/' and '\' are treated as
// separators and a single trailing separator is ignored.
func Name(filePath string) string {
	n := len(filePath)
	if n == 0 {
		return filePath
	}
	if IsFileSeparator(filePath[n-1]) {
		n--
	}

	begin := 0
	for i := n - 1; i >= 0; i-- {
		if IsFileSeparator(filePath[i]) {
			begin = i + 1
			break
		}
	}
	return filePath[begin:n]
}

// IsFileSeparator reports whether c is a Unix or Windows path separator.
func IsFileSeparator(c byte) bool {
	return c == slash || c == windowsSeparator
}

// IsWindows reports whether the platform uses Windows path separators.
func IsWindows() bool {
	return filepath.Separator == windowsSeparator
}

// Mkdirs creates dir and any missing parents. An existing directory is not
// an error.
func Mkdirs(fs afero.Fs, dir string) error {
	return wrap("mkdirs", dir, fs.MkdirAll(dir, dirPerm))
}

// MkParentDirs creates the parent directories of path and returns the parent.
func MkParentDirs(fs afero.Fs, path string) (string, error) {
	parent := filepath.Dir(path)
	if parent == "." || parent == path {
		return parent, nil
	}
	exists, err := afero.DirExists(fs, parent)
	if err != nil {
		return "", wrap("stat", parent, err)
	}
	if !exists {
		if err := fs.MkdirAll(parent, dirPerm); err != nil {
			return "", wrap("mkdirs", parent, err)
		}
	}
	return parent, nil
}

// Touch creates path and its parents if path does not exist yet. Existing
// files are left untouched.
func Touch(fs afero.Fs, path string) error {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return wrap("stat", path, err)
	}
	if exists {
		return nil
	}
	if _, err := MkParentDirs(fs, path); err != nil {
		return err
	}
	f, err := fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return wrap("touch", path, err)
	}
	return wrap("touch", path, f.Close())
}

// OutputWriter touches path and returns a buffered writer that truncates it.
// Close flushes the buffer before closing the file.
func OutputWriter(fs afero.Fs, path string) (io.WriteCloser, error) {
	if err := Touch(fs, path); err != nil {
		return nil, err
	}
	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, wrap("open", path, err)
	}
	return &bufferedFile{Writer: bufio.NewWriter(f), file: f, path: path}, nil
}

type bufferedFile struct {
	*bufio.Writer
	file afero.File
	path string
}

func (b *bufferedFile) Close() error {
	flushErr := b.Flush()
	closeErr := b.file.Close()
	if flushErr != nil {
		return wrap("flush", b.path, flushErr)
	}
	return wrap("close", b.path, closeErr)
}
