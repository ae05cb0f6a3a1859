// Package cmd provides firmware source provisioning for the mpy-ops CLI
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpy-ops/mpy-ops/internal/git"
	"github.com/mpy-ops/mpy-ops/internal/mkfile"
	"github.com/mpy-ops/mpy-ops/internal/project"
)

// manifestFreezeLine registers the application module for static
// inclusion in the firmware image.
const manifestFreezeLine = `freeze("$(PORT_DIR)/modules/app")`

// GetMpyOptions holds get_mpy command options.
type GetMpyOptions struct{}

// GetMpyDeps holds get_mpy dependencies.
type GetMpyDeps struct {
	CommonDeps
	Layout         project.Layout
	SyncRepo       func() error
	MkdirAll       func(string, os.FileMode) error
	AppendManifest func(path, text string) error
}

// GetMpyCommand represents the get_mpy command.
type GetMpyCommand struct{}

// NewGetMpyCommand creates a new GetMpyCommand.
func NewGetMpyCommand() *GetMpyCommand {
	return &GetMpyCommand{}
}

// getApp retrieves the App from the command context.
func (c *GetMpyCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for cloning the firmware
// sources.
func (c *GetMpyCommand) GetCobraCommand() *cobra.Command {
	getMpyCmd := &cobra.Command{
		Use:   "get_mpy",
		Short: "Clone and prepare the MicroPython sources",
		Long: `Clone the MicroPython repository with submodules, check out the
pinned release, create the frozen-module directory, and register the
application module in the board manifest.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			deps := c.buildDeps(app)
			return c.Run(cmd.Context(), app, GetMpyOptions{}, deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	return getMpyCmd
}

// Run executes the get_mpy command with injected dependencies.
func (c *GetMpyCommand) Run(_ context.Context, app *App, _ GetMpyOptions, deps GetMpyDeps) error {
	if err := deps.SyncRepo(); err != nil {
		return fmt.Errorf("failed to fetch firmware sources: %w", err)
	}

	if err := deps.MkdirAll(deps.Layout.ModulesDir(), 0755); err != nil {
		return fmt.Errorf("failed to create modules directory: %w", err)
	}

	manifest := deps.Layout.BoardManifest(app.Config.Board)
	if err := deps.AppendManifest(manifest, manifestFreezeLine); err != nil {
		// Manifest patching is reported but does not stop provisioning;
		// the clone itself is usable without the frozen module.
		deps.Logger.Error("Failed to register application module", "manifest", manifest, "error", err)
	}

	return nil
}

// buildDeps creates production dependencies for the get_mpy command.
func (c *GetMpyCommand) buildDeps(app *App) GetMpyDeps {
	return c.buildDepsForLayout(app, project.NewLayout(app.Config.ProjectDir))
}

// buildDepsForLayout creates production dependencies against an explicit
// layout.
func (c *GetMpyCommand) buildDepsForLayout(app *App, layout project.Layout) GetMpyDeps {
	repo := git.NewRepository(layout.FirmwareDir(), app.Config.FirmwareURL, app.Config.FirmwareRef, app.Logger)
	return GetMpyDeps{
		CommonDeps:     NewRootDeps(app),
		Layout:         layout,
		SyncRepo:       repo.Sync,
		MkdirAll:       os.MkdirAll,
		AppendManifest: mkfile.Append,
	}
}
