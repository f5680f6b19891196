package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aescanero/dago-node-ftp/internal/ftpserver"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FTP_USERNAME", "uploader")
	t.Setenv("FTP_PASSWORD", "s3cret")
	t.Setenv("FTP_HOME_DIR", "/srv/ftp")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ftp-node-1", cfg.NodeID)
	assert.Equal(t, 2121, cfg.FTPPort)
	assert.True(t, cfg.FTPAutostart)
	assert.False(t, cfg.ControlEnabled())
	assert.Equal(t, time.Second, cfg.BlockTime)
	assert.Empty(t, cfg.AdmissionRules)

	assert.Equal(t, ftpserver.Params{
		Address:  "0.0.0.0",
		Port:     2121,
		Username: "uploader",
		Password: "s3cret",
		HomeDir:  "/srv/ftp",
	}, cfg.FTPParams())

	opts := cfg.ServiceOptions()
	assert.Equal(t, ftpserver.Passive, opts.Mode)
	assert.Equal(t, "ftp-node-1", opts.NodeID)
	assert.Equal(t, 3*time.Second, opts.ProbeTimeout)
}

func TestLoadAdmissionRules(t *testing.T) {
	t.Setenv("ADMISSION_RULES", "request.port >= 1024;request.home_dir.startsWith('/srv')")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"request.port >= 1024", "request.home_dir.startsWith('/srv')"}, cfg.AdmissionRules)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("FTP_MODE", "extended")

	_, err := Load()
	assert.ErrorContains(t, err, "FTP_MODE")
}

func validConfig() *Config {
	return &Config{
		NodeID:         "ftp-node-1",
		FTPMode:        "passive",
		FTPStopTimeout: time.Second,
		ControlStream:  "ftp.control",
		ConsumerGroup:  "ftp-nodes",
		EventStream:    "ftp.events",
		BlockTime:      time.Second,
		ProbeTimeout:   time.Second,
		HealthPort:     8082,
		LogLevel:       "info",
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing node id", mutate: func(c *Config) { c.NodeID = "" }, wantErr: "NODE_ID"},
		{name: "bad mode", mutate: func(c *Config) { c.FTPMode = "epsv" }, wantErr: "FTP_MODE"},
		{name: "passive range", mutate: func(c *Config) { c.FTPPassivePorts = "30000-30009" }},
		{name: "passive range reversed", mutate: func(c *Config) { c.FTPPassivePorts = "30009-30000" }, wantErr: "FTP_PASSIVE_PORTS"},
		{name: "passive range single", mutate: func(c *Config) { c.FTPPassivePorts = "30000" }, wantErr: "FTP_PASSIVE_PORTS"},
		{name: "passive range not numeric", mutate: func(c *Config) { c.FTPPassivePorts = "a-b" }, wantErr: "FTP_PASSIVE_PORTS"},
		{name: "active ignores range", mutate: func(c *Config) { c.FTPMode = "active"; c.FTPPassivePorts = "junk" }},
		{name: "welcome template", mutate: func(c *Config) { c.FTPWelcomeTemplate = "Hello {{user}}" }},
		{name: "broken welcome template", mutate: func(c *Config) { c.FTPWelcomeTemplate = "{{#if}}" }, wantErr: "FTP_WELCOME_TEMPLATE"},
		{name: "stop timeout", mutate: func(c *Config) { c.FTPStopTimeout = 0 }, wantErr: "FTP_STOP_TIMEOUT"},
		{name: "streams unchecked without redis", mutate: func(c *Config) { c.ControlStream = "" }},
		{name: "control stream with redis", mutate: func(c *Config) { c.RedisAddr = "localhost:6379"; c.ControlStream = "" }, wantErr: "CONTROL_STREAM"},
		{name: "group with redis", mutate: func(c *Config) { c.RedisAddr = "localhost:6379"; c.ConsumerGroup = "" }, wantErr: "CONSUMER_GROUP"},
		{name: "event stream with redis", mutate: func(c *Config) { c.RedisAddr = "localhost:6379"; c.EventStream = "" }, wantErr: "EVENT_STREAM"},
		{name: "block time with redis", mutate: func(c *Config) { c.RedisAddr = "localhost:6379"; c.BlockTime = 0 }, wantErr: "BLOCK_TIME"},
		{name: "probe timeout", mutate: func(c *Config) { c.ProbeTimeout = -time.Second }, wantErr: "PROBE_TIMEOUT"},
		{name: "health port", mutate: func(c *Config) { c.HealthPort = 70000 }, wantErr: "HEALTH_PORT"},
		{name: "log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: "LOG_LEVEL"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestStringHidesSecrets(t *testing.T) {
	t.Parallel()
	c := validConfig()
	c.FTPPassword = "ftp-secret"
	c.RedisPassword = "redis-secret"

	s := c.String()
	assert.NotContains(t, s, "ftp-secret")
	assert.NotContains(t, s, "redis-secret")
	assert.Contains(t, s, "NodeID=ftp-node-1")
}

func TestRedisOptions(t *testing.T) {
	t.Parallel()
	c := validConfig()
	c.RedisAddr = "redis:6379"
	c.RedisPassword = "pw"
	c.RedisDB = 2

	opts := c.RedisOptions()
	assert.Equal(t, "redis:6379", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.True(t, c.ControlEnabled())
}
