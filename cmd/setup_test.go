package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpy-ops/mpy-ops/internal/project"
	"github.com/mpy-ops/mpy-ops/internal/prompt"
	"github.com/mpy-ops/mpy-ops/internal/vscode"
)

// setupRecorder stubs the provisioning steps and records what ran.
type setupRecorder struct {
	toolchainCalls int
	firmwareCalls  int
	stlinkCalls    int
	patchedPath    string
	patchedKey     string
	patchedValue   string
	tasksPath      string
	tasks          vscode.TasksFile

	toolchainErr error
	firmwareErr  error
}

// newSetupDeps builds SetupDeps around the recorder, with the running
// executable stubbed to a throwaway file.
func newSetupDeps(t *testing.T, app *App, stub *prompt.Stub, rec *setupRecorder) SetupDeps {
	t.Helper()

	exe := filepath.Join(t.TempDir(), "mpy-ops")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755))

	return SetupDeps{
		CommonDeps: NewRootDeps(app),
		Prompter:   stub,
		Executable: func() (string, error) { return exe, nil },
		EnsureToolchain: func(_ context.Context, _ project.Layout) error {
			rec.toolchainCalls++
			return rec.toolchainErr
		},
		ProvisionFirmware: func(_ context.Context, _ project.Layout) error {
			rec.firmwareCalls++
			return rec.firmwareErr
		},
		InstallStlink: func(_ context.Context, _ project.Layout) error {
			rec.stlinkCalls++
			return nil
		},
		PatchMakefile: func(path, key, value string) error {
			rec.patchedPath = path
			rec.patchedKey = key
			rec.patchedValue = value
			return nil
		},
		WriteTasks: func(path string, f vscode.TasksFile) error {
			rec.tasksPath = path
			rec.tasks = f
			return nil
		},
	}
}

func TestSetupCommand_DeclinedDeleteLeavesProjectUntouched(t *testing.T) {
	app, _ := NewTestApp(t)

	marker := filepath.Join(app.Config.ProjectDir, "precious.txt")
	require.NoError(t, os.WriteFile(marker, []byte("keep me"), 0644))

	stub := &prompt.Stub{ConfirmAnswer: false}
	rec := &setupRecorder{}
	deps := newSetupDeps(t, app, stub, rec)

	err := NewSetupCommand().Run(context.Background(), app, SetupOptions{DeleteCurrent: true}, deps)
	require.NoError(t, err)

	assert.Len(t, stub.ConfirmCalls, 1)
	assert.FileExists(t, marker)
	assert.Equal(t, 0, rec.toolchainCalls)
	assert.Equal(t, 0, rec.firmwareCalls)
	assert.Equal(t, 0, rec.stlinkCalls)
	assert.Empty(t, rec.tasksPath)
}

func TestSetupCommand_ConfirmedDeleteRecreatesInPlace(t *testing.T) {
	app, _ := NewTestApp(t)
	root := app.Config.ProjectDir

	stale := filepath.Join(root, "stale.txt")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	stub := &prompt.Stub{ConfirmAnswer: true}
	rec := &setupRecorder{}
	deps := newSetupDeps(t, app, stub, rec)

	err := NewSetupCommand().Run(context.Background(), app, SetupOptions{DeleteCurrent: true}, deps)
	require.NoError(t, err)

	assert.NoFileExists(t, stale)

	layout := project.NewLayout(root)
	assert.DirExists(t, layout.AppDir())
	assert.DirExists(t, layout.Stm32Dir())
	assert.DirExists(t, layout.VSCodeDir())
	assert.FileExists(t, layout.AppSource())
	assert.FileExists(t, layout.OrchestratorCopy())

	assert.Equal(t, 1, rec.toolchainCalls)
	assert.Equal(t, 1, rec.firmwareCalls)
	assert.Equal(t, 1, rec.stlinkCalls)
}

func TestSetupCommand_NewProjectCreatedUnderName(t *testing.T) {
	app, _ := NewTestApp(t)

	stub := &prompt.Stub{InputAnswer: "blinky"}
	rec := &setupRecorder{}
	deps := newSetupDeps(t, app, stub, rec)

	err := NewSetupCommand().Run(context.Background(), app, SetupOptions{}, deps)
	require.NoError(t, err)

	assert.Len(t, stub.InputCalls, 1)
	assert.Empty(t, stub.ConfirmCalls)

	layout := project.NewLayout(filepath.Join(app.Config.ProjectDir, "blinky"))
	assert.DirExists(t, layout.AppDir())
	assert.FileExists(t, layout.AppSource())

	// Tasks are written into the new project, not the configured root.
	assert.Equal(t, layout.TasksFile(), rec.tasksPath)
	assert.Len(t, rec.tasks.Tasks, 4)
}

func TestSetupCommand_EmptyProjectNameFails(t *testing.T) {
	app, _ := NewTestApp(t)

	stub := &prompt.Stub{InputAnswer: "   "}
	rec := &setupRecorder{}
	deps := newSetupDeps(t, app, stub, rec)

	err := NewSetupCommand().Run(context.Background(), app, SetupOptions{}, deps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project name")
	assert.Equal(t, 0, rec.toolchainCalls)
}

func TestSetupCommand_StepFailuresDoNotAbort(t *testing.T) {
	app, _ := NewTestApp(t)

	stub := &prompt.Stub{InputAnswer: "resilient"}
	rec := &setupRecorder{
		toolchainErr: errors.New("download refused"),
		firmwareErr:  errors.New("clone refused"),
	}
	deps := newSetupDeps(t, app, stub, rec)

	err := NewSetupCommand().Run(context.Background(), app, SetupOptions{}, deps)
	require.NoError(t, err)

	// Later steps still ran.
	assert.Equal(t, 1, rec.stlinkCalls)
	assert.NotEmpty(t, rec.tasksPath)
	assert.Equal(t, "CROSS_COMPILE", rec.patchedKey)
}

func TestSetupCommand_PatchesCrossCompilePrefix(t *testing.T) {
	app, _ := NewTestApp(t)

	stub := &prompt.Stub{InputAnswer: "pinned"}
	rec := &setupRecorder{}
	deps := newSetupDeps(t, app, stub, rec)

	err := NewSetupCommand().Run(context.Background(), app, SetupOptions{}, deps)
	require.NoError(t, err)

	layout := project.NewLayout(filepath.Join(app.Config.ProjectDir, "pinned"))
	assert.Equal(t, layout.Makefile(), rec.patchedPath)
	assert.Equal(t, layout.CrossCompilePrefix(app.Config.ToolchainVersion), rec.patchedValue)
}
