package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mpy-ops/mpy-ops/internal/firmware"
)

// CleanDeps holds clean dependencies.
type CleanDeps struct {
	CommonDeps
	Clean func(ctx context.Context) error
}

// CleanCommand represents the clean command.
type CleanCommand struct{}

// NewCleanCommand creates a new CleanCommand.
func NewCleanCommand() *CleanCommand {
	return &CleanCommand{}
}

// getApp retrieves the App from the command context.
func (c *CleanCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for cleaning the build tree.
func (c *CleanCommand) GetCobraCommand() *cobra.Command {
	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the firmware build directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			deps := c.buildDeps(app)
			return c.Run(cmd.Context(), app, deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	return cleanCmd
}

// Run executes the clean command with injected dependencies.
func (c *CleanCommand) Run(ctx context.Context, _ *App, deps CleanDeps) error {
	return deps.Clean(ctx)
}

// buildDeps creates production dependencies for the clean command.
func (c *CleanCommand) buildDeps(app *App) CleanDeps {
	svc := firmware.NewService(app.Runner, app.Logger, app.ConfigProvider)
	return CleanDeps{
		CommonDeps: NewRootDeps(app),
		Clean:      svc.Clean,
	}
}
