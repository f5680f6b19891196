package ftpserver

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goftp/server"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/aescanero/dago-node-ftp/internal/fileutil"
)

const (
	ownerGroup = "ftp"
	dirPerm    = 0o755
)

var (
	errNotDir = errors.New("not a directory")
	errIsDir  = errors.New("is a directory")
)

// driverFactory hands every FTP session a driver over the same home
// filesystem. The user is granted write access.
type driverFactory struct {
	fs     afero.Fs
	owner  string
	logger *zap.Logger
}

// NewDriver implements server.DriverFactory.
func (f *driverFactory) NewDriver() (server.Driver, error) {
	return &driver{fs: f.fs, owner: f.owner, logger: f.logger}, nil
}

// driver serves an afero filesystem rooted at the user's home directory.
// Paths arrive as absolute virtual paths ("/dir/file").
type driver struct {
	fs     afero.Fs
	owner  string
	logger *zap.Logger
}

type fileInfo struct {
	os.FileInfo
	owner string
}

func (fi fileInfo) Owner() string { return fi.owner }
func (fi fileInfo) Group() string { return ownerGroup }

func (d *driver) Init(conn *server.Conn) {
	d.logger.Debug("ftp session opened", zap.String("public_ip", conn.PublicIp()))
}

func (d *driver) Stat(path string) (server.FileInfo, error) {
	info, err := d.fs.Stat(path)
	if err != nil {
		return nil, err
	}
	return fileInfo{FileInfo: info, owner: d.owner}, nil
}

func (d *driver) ChangeDir(path string) error {
	info, err := d.fs.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", path, errNotDir)
	}
	return nil
}

func (d *driver) ListDir(path string, callback func(server.FileInfo) error) error {
	infos, err := afero.ReadDir(d.fs, path)
	if err != nil {
		return err
	}
	for _, info := range infos {
		if err := callback(fileInfo{FileInfo: info, owner: d.owner}); err != nil {
			return err
		}
	}
	return nil
}

func (d *driver) DeleteDir(path string) error {
	info, err := d.fs.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", path, errNotDir)
	}
	return d.fs.Remove(path)
}

func (d *driver) DeleteFile(path string) error {
	info, err := d.fs.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s: %w", path, errIsDir)
	}
	return d.fs.Remove(path)
}

func (d *driver) Rename(fromPath, toPath string) error {
	return d.fs.Rename(fromPath, toPath)
}

func (d *driver) MakeDir(path string) error {
	return d.fs.MkdirAll(path, dirPerm)
}

func (d *driver) GetFile(path string, offset int64) (int64, io.ReadCloser, error) {
	f, err := d.fs.Open(path)
	if err != nil {
		return 0, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return 0, nil, err
	}
	if info.IsDir() {
		f.Close()
		return 0, nil, fmt.Errorf("%s: %w", path, errIsDir)
	}
	if offset > 0 {
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			f.Close()
			return 0, nil, err
		}
	}
	return info.Size() - offset, f, nil
}

func (d *driver) PutFile(destPath string, data io.Reader, appendData bool) (int64, error) {
	info, err := d.fs.Stat(destPath)
	exists := err == nil
	if exists && info.IsDir() {
		return 0, fmt.Errorf("%s: %w", destPath, errIsDir)
	}

	var w io.WriteCloser
	if appendData && exists {
		w, err = d.fs.OpenFile(destPath, os.O_WRONLY|os.O_APPEND, 0o644)
	} else {
		w, err = fileutil.OutputWriter(d.fs, destPath)
	}
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(w, data)
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	return n, err
}
