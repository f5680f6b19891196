package ftpserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() Params {
	return Params{
		Address:  "127.0.0.1",
		Port:     2121,
		Username: "uploader",
		Password: "s3cret",
		HomeDir:  "/srv/ftp",
	}
}

func TestParamsMissing(t *testing.T) {
	t.Parallel()

	assert.Empty(t, validParams().Missing())
	assert.Equal(t, []string{"address", "port", "username", "password", "home_dir"}, Params{}.Missing())

	p := validParams()
	p.Address = " \t"
	p.HomeDir = "\u3000"
	assert.Equal(t, []string{"address", "home_dir"}, p.Missing())

	p = validParams()
	p.Username = "\u0085"
	assert.Empty(t, p.Missing(), "NEL is not blank")

	p = validParams()
	p.Port = 70000
	assert.Equal(t, []string{"port"}, p.Missing())

	p.Port = -1
	assert.Equal(t, []string{"port"}, p.Missing())
}

func TestParamsStringMasksPassword(t *testing.T) {
	t.Parallel()

	p := validParams()
	s := p.String()
	assert.Equal(t, "ftpIp:127.0.0.1, ftpPort:2121, ftpUsername:uploader, ftpPassword:******, ftpDir:/srv/ftp", s)
	assert.NotContains(t, s, "s3cret")

	p.Password = ""
	assert.Contains(t, p.String(), "ftpPassword:,")
}

func TestParamsAddr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "127.0.0.1:2121", validParams().Addr())

	p := validParams()
	p.Address = "::1"
	assert.Equal(t, "[::1]:2121", p.Addr())
}

func TestParamsEventFieldsOmitPassword(t *testing.T) {
	t.Parallel()

	fields := validParams().eventFields()
	require.NotContains(t, fields, "password")
	assert.Equal(t, "uploader", fields["username"])
	assert.Equal(t, 2121, fields["port"])
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	m, err := ParseMode("PASSIVE")
	require.NoError(t, err)
	assert.Equal(t, Passive, m)

	m, err = ParseMode(" active ")
	require.NoError(t, err)
	assert.Equal(t, Active, m)

	_, err = ParseMode("extended")
	assert.Error(t, err)

	assert.Equal(t, "passive", Passive.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
}
