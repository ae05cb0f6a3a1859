package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/mpy-ops/mpy-ops/internal/prompt"
	"github.com/mpy-ops/mpy-ops/internal/testutil"
	"github.com/mpy-ops/mpy-ops/internal/testutil/fakerunner"
	"github.com/mpy-ops/mpy-ops/internal/toolchain"
	"github.com/mpy-ops/mpy-ops/internal/validate"
)

// ExecuteCommandWithCapture executes a cobra command and captures all output (stdout/stderr).
// This handles both cmd.Print* and fmt.Print* outputs by redirecting os.Stdout/os.Stderr.
func ExecuteCommandWithCapture(t *testing.T, cmd *cobra.Command, args []string) (output string, err error) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	r, w, _ := os.Pipe()
	os.Stdout = w
	os.Stderr = w

	// Also set cobra's output (for cmd.Print* methods)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	outputCh := make(chan string, 1)

	go func() {
		var output bytes.Buffer
		_, _ = io.Copy(&output, r)
		outputCh <- output.String()
	}()

	err = cmd.Execute()

	_ = w.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	capturedOutput := <-outputCh

	return capturedOutput + buf.String(), err
}

// ExecuteCommand is a simpler helper for commands that don't need output capture.
func ExecuteCommand(t *testing.T, cmd *cobra.Command, args []string) error {
	t.Helper()
	cmd.SetArgs(args)
	return cmd.Execute()
}

// AssertCommandOutput verifies command output contains expected strings.
func AssertCommandOutput(t *testing.T, cmd *cobra.Command, args []string, expectedOutputs ...string) {
	t.Helper()
	output, err := ExecuteCommandWithCapture(t, cmd, args)
	assert.NoError(t, err)

	for _, expected := range expectedOutputs {
		assert.Contains(t, output, expected, "Expected output to contain: %s\nActual output: %s", expected, output)
	}
}

// SetupCommandContext attaches an app context to a command for testing.
func SetupCommandContext(cmd *cobra.Command, app *App) {
	ctx := context.WithValue(context.Background(), appContextKey, app)
	cmd.SetContext(ctx)
}

// NewTestApp builds an App wired with test doubles: a fake process
// runner, a stub prompter and a PATH checker that finds everything.
func NewTestApp(t *testing.T, opts ...testutil.ConfigOption) (*App, *fakerunner.Runner) {
	t.Helper()

	logger := testutil.NewTestLogger(t)
	provider := testutil.NewMockConfig(t, opts...)
	runner := fakerunner.New()

	app := &App{
		Logger:         logger,
		Config:         provider.GetConfig(),
		ConfigProvider: provider,
		Runner:         runner,
		Prompter:       &prompt.Stub{},
		Checker:        &validate.Checker{LookPath: func(name string) (string, error) { return "/usr/bin/" + name, nil }},
		Toolchain:      toolchain.NewService(logger),
	}
	return app, runner
}
