package ftpserver

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/afero"
)

var (
	// ErrInvalidUser is returned when the configured user cannot be registered.
	ErrInvalidUser = errors.New("invalid ftp user")
	// ErrInvalidHome is returned when the home directory is unusable.
	ErrInvalidHome = errors.New("invalid ftp home directory")
)

// userAuth accepts exactly one user name and password.
type userAuth struct {
	name     string
	password string
}

// CheckPasswd implements server.Auth.
func (a *userAuth) CheckPasswd(name, password string) (bool, error) {
	nameOK := subtle.ConstantTimeCompare([]byte(name), []byte(a.name)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return nameOK && passOK, nil
}

// registerUser validates the user of p against fs and returns its
// credential checker. The home directory must already exist.
func registerUser(fs afero.Fs, p Params) (*userAuth, error) {
	if strings.IndexFunc(p.Username, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) >= 0 {
		return nil, fmt.Errorf("%w: user name %q contains white space or control characters", ErrInvalidUser, p.Username)
	}
	if strings.IndexFunc(p.Password, unicode.IsControl) >= 0 {
		return nil, fmt.Errorf("%w: password contains control characters", ErrInvalidUser)
	}

	isDir, err := afero.IsDir(fs, p.HomeDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHome, err)
	}
	if !isDir {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidHome, p.HomeDir)
	}

	return &userAuth{name: p.Username, password: p.Password}, nil
}
