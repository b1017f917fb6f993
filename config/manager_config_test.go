package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/edgeap/edgeap/manager/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitManagerConfig(t *testing.T) {
	cfg, err := InitManagerConfig("manager_config.test.toml", GetAbsPath("config"))
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.1", cfg.Manager.Address)
	assert.Equal(t, 2*time.Second, cfg.Manager.EngineTimeout)
	assert.Equal(t, time.Duration(0), cfg.Manager.ReconcileInterval)
	assert.Equal(t, int64(4096), cfg.Manager.MaxRequestSize)
	assert.Equal(t, DefaultEngineSocket, cfg.Manager.EngineSocket, "default applies when unset")
	require.Len(t, cfg.Remotes, 2)
	assert.Equal(t, "tcp://10.0.0.5:2375", cfg.Remotes[0].Endpoint())
	assert.True(t, cfg.Remotes[1].TLSVerify)
	ca, cert, key := cfg.Remotes[1].TLSFiles()
	assert.Equal(t, "/etc/edgeap/certs/10.0.0.6/ca.pem", ca)
	assert.Equal(t, "/etc/edgeap/certs/10.0.0.6/cert.pem", cert)
	assert.Equal(t, "/etc/edgeap/certs/10.0.0.6/key.pem", key)
	assert.Equal(t, PlacementConfig{PortMin: 50000, PortMax: 60000}, cfg.Placement)
	assert.Equal(t, "*******", cfg.MongoDB.Password.String())
	assert.Equal(t, LoggingConfig{Level: "debug"}, cfg.Logging)
}

func TestInitManagerConfigEnvOverride(t *testing.T) {
	t.Setenv("EDGEAP_MANAGER_ADDRESS", "192.168.10.1")
	cfg, err := InitManagerConfig("manager_config.test.toml", "")
	require.NoError(t, err)
	assert.Equal(t, "192.168.10.1", cfg.Manager.Address)
}

func TestInitManagerConfigErrors(t *testing.T) {
	_, err := InitManagerConfig("missing_config", t.TempDir())
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.toml"), []byte("[manager\naddress = "), 0o600))
	_, err = InitManagerConfig("broken", dir)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "noaddr.toml"), []byte("[manager]\nrequest_host = \":1\"\n"), 0o600))
	_, err = InitManagerConfig("noaddr", dir)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestValidate(t *testing.T) {
	valid := func() ManageConfig {
		return ManageConfig{
			Manager:   ManagerConfig{Address: "10.0.0.1"},
			Placement: PlacementConfig{PortMin: 50000, PortMax: 60000},
			Remotes:   []RemoteConfig{{Address: "10.0.0.5", Port: 2375}},
		}
	}
	require.NoError(t, valid().Validate())

	cases := map[string]func(c *ManageConfig){
		"empty range":   func(c *ManageConfig) { c.Placement.PortMax = c.Placement.PortMin },
		"range too big": func(c *ManageConfig) { c.Placement.PortMax = 70000 },
		"zero min":      func(c *ManageConfig) { c.Placement.PortMin = 0 },
		"no address":    func(c *ManageConfig) { c.Remotes[0].Address = "" },
		"duplicate":     func(c *ManageConfig) { c.Remotes = append(c.Remotes, c.Remotes[0]) },
		"bad port":      func(c *ManageConfig) { c.Remotes[0].Port = 0 },
		"tls no files":  func(c *ManageConfig) { c.Remotes[0].TLSVerify = true },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(&c)
			assert.ErrorIs(t, c.Validate(), domain.ErrConfiguration)
		})
	}
}
