package ftpserver

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/srv/ftp", 0o755))

	auth, err := registerUser(fs, validParams())
	require.NoError(t, err)

	ok, err := auth.CheckPasswd("uploader", "s3cret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = auth.CheckPasswd("uploader", "wrong")
	assert.False(t, ok)
	ok, _ = auth.CheckPasswd("other", "s3cret")
	assert.False(t, ok)
	ok, _ = auth.CheckPasswd("", "")
	assert.False(t, ok)
}

func TestRegisterUserRejectsBadInput(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/srv/ftp", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/srv/file", []byte("x"), 0o644))

	p := validParams()
	p.Username = "up loader"
	_, err := registerUser(fs, p)
	assert.ErrorIs(t, err, ErrInvalidUser)

	p = validParams()
	p.Password = "pass\nword"
	_, err = registerUser(fs, p)
	assert.ErrorIs(t, err, ErrInvalidUser)

	p = validParams()
	p.HomeDir = "/srv/missing"
	_, err = registerUser(fs, p)
	assert.ErrorIs(t, err, ErrInvalidHome)

	p.HomeDir = "/srv/file"
	_, err = registerUser(fs, p)
	assert.ErrorIs(t, err, ErrInvalidHome)
}
