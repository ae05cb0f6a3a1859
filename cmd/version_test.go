package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestVersionCommand_Basic tests version command output.
func TestVersionCommand_Basic(t *testing.T) {
	versionCmd := NewVersionCommand()
	cmd := versionCmd.GetCobraCommand()

	output, err := ExecuteCommandWithCapture(t, cmd, []string{})

	require.NoError(t, err)
	assert.Contains(t, output, "mpy-ops version dev")
	// Development builds never hit the release endpoint.
	assert.Contains(t, output, "Skipping update check")
}
