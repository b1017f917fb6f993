package main

import (
	"bytes"
	"testing"

	"github.com/edgeap/edgeap/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConfigCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"check-config", "--config-name", "manager_config.test.toml", "--config-dir", config.GetAbsPath("config")})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "manager 10.0.0.1, 2 remotes, ports [50000, 60000)\n", out.String())
}

func TestCheckConfigCommandMissingFile(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"check-config", "--config-name", "does_not_exist"})
	assert.Error(t, cmd.Execute())
}
