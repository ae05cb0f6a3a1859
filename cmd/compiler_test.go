package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpy-ops/mpy-ops/internal/project"
)

func TestCompilerCommand_EnsuresToolchain(t *testing.T) {
	app, _ := NewTestApp(t)
	layout := project.NewLayout(app.Config.ProjectDir)

	var gotDir, gotVersion, gotURL string
	appendCalled := false

	deps := CompilerDeps{
		CommonDeps: NewRootDeps(app),
		Layout:     layout,
		EnsureToolchain: func(_ context.Context, dir, version, url string) error {
			gotDir, gotVersion, gotURL = dir, version, url
			return nil
		},
		AppendPath: func(string) error {
			appendCalled = true
			return nil
		},
	}

	err := NewCompilerCommand().Run(context.Background(), app, CompilerOptions{}, deps)
	require.NoError(t, err)

	assert.Equal(t, layout.CompilerDir(), gotDir)
	assert.Equal(t, app.Config.ToolchainVersion, gotVersion)
	assert.Equal(t, app.Config.ToolchainURL, gotURL)
	assert.False(t, appendCalled)
}

func TestCompilerCommand_AddPathAppendsBinDir(t *testing.T) {
	app, _ := NewTestApp(t)
	layout := project.NewLayout(app.Config.ProjectDir)

	var gotBinDir string
	deps := CompilerDeps{
		CommonDeps:      NewRootDeps(app),
		Layout:          layout,
		EnsureToolchain: func(context.Context, string, string, string) error { return nil },
		AppendPath: func(binDir string) error {
			gotBinDir = binDir
			return nil
		},
	}

	err := NewCompilerCommand().Run(context.Background(), app, CompilerOptions{AddPath: true}, deps)
	require.NoError(t, err)
	assert.Equal(t, layout.ToolchainBinDir(app.Config.ToolchainVersion), gotBinDir)
}

func TestCompilerCommand_InstallFailure(t *testing.T) {
	app, _ := NewTestApp(t)

	deps := CompilerDeps{
		CommonDeps: NewRootDeps(app),
		Layout:     project.NewLayout(app.Config.ProjectDir),
		EnsureToolchain: func(context.Context, string, string, string) error {
			return errors.New("mirror unreachable")
		},
	}

	err := NewCompilerCommand().Run(context.Background(), app, CompilerOptions{}, deps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to install toolchain")
}
