package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfigInitDeps(home string) ConfigInitDeps {
	return ConfigInitDeps{
		CommonDeps:  CommonDeps{},
		UserHomeDir: func() (string, error) { return home, nil },
		MkdirAll:    os.MkdirAll,
		WriteFile:   os.WriteFile,
	}
}

func TestConfigInitCommand_WritesDefaults(t *testing.T) {
	home := t.TempDir()

	err := NewConfigInitCommand().Run(ConfigInitOptions{}, newConfigInitDeps(home))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(home, ".config", "mpy-ops", "config.yaml"))
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "NUCLEO_H743ZI")
	assert.Contains(t, content, "gcc-arm-none-eabi-10.3-2021.07")
	assert.Contains(t, content, "micropython")
}

func TestConfigInitCommand_RefusesOverwriteWithoutForce(t *testing.T) {
	home := t.TempDir()
	configDir := filepath.Join(home, ".config", "mpy-ops")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("board: CUSTOM\n"), 0644))

	err := NewConfigInitCommand().Run(ConfigInitOptions{}, newConfigInitDeps(home))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	err = NewConfigInitCommand().Run(ConfigInitOptions{Force: true}, newConfigInitDeps(home))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(configDir, "config.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "CUSTOM")
}
