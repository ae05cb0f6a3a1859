package cmd

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpy-ops/mpy-ops/internal/project"
)

func TestGetMpyCommand_ProvisionsFirmwareSources(t *testing.T) {
	app, _ := NewTestApp(t)
	layout := project.NewLayout(app.Config.ProjectDir)

	synced := false
	var madeDir, manifestPath, manifestText string

	deps := GetMpyDeps{
		CommonDeps: NewRootDeps(app),
		Layout:     layout,
		SyncRepo: func() error {
			synced = true
			return nil
		},
		MkdirAll: func(path string, _ os.FileMode) error {
			madeDir = path
			return nil
		},
		AppendManifest: func(path, text string) error {
			manifestPath = path
			manifestText = text
			return nil
		},
	}

	err := NewGetMpyCommand().Run(context.Background(), app, GetMpyOptions{}, deps)
	require.NoError(t, err)

	assert.True(t, synced)
	assert.Equal(t, layout.ModulesDir(), madeDir)
	assert.Equal(t, layout.BoardManifest(app.Config.Board), manifestPath)
	assert.Contains(t, manifestText, `freeze("$(PORT_DIR)/modules/app")`)
}

func TestGetMpyCommand_SyncFailureAborts(t *testing.T) {
	app, _ := NewTestApp(t)

	manifestTouched := false
	deps := GetMpyDeps{
		CommonDeps: NewRootDeps(app),
		Layout:     project.NewLayout(app.Config.ProjectDir),
		SyncRepo:   func() error { return errors.New("remote hung up") },
		MkdirAll:   func(string, os.FileMode) error { return nil },
		AppendManifest: func(string, string) error {
			manifestTouched = true
			return nil
		},
	}

	err := NewGetMpyCommand().Run(context.Background(), app, GetMpyOptions{}, deps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch firmware sources")
	assert.False(t, manifestTouched)
}

// TestGetMpyCommand_ManifestFailureIsNotFatal verifies that a manifest
// patch failure is reported but does not fail the command.
func TestGetMpyCommand_ManifestFailureIsNotFatal(t *testing.T) {
	app, _ := NewTestApp(t)

	deps := GetMpyDeps{
		CommonDeps:     NewRootDeps(app),
		Layout:         project.NewLayout(app.Config.ProjectDir),
		SyncRepo:       func() error { return nil },
		MkdirAll:       func(string, os.FileMode) error { return nil },
		AppendManifest: func(string, string) error { return errors.New("read-only manifest") },
	}

	err := NewGetMpyCommand().Run(context.Background(), app, GetMpyOptions{}, deps)
	assert.NoError(t, err)
}
