package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mpy-ops/mpy-ops/internal/firmware"
)

// ResetDeps holds reset dependencies.
type ResetDeps struct {
	CommonDeps
	Reset func(ctx context.Context) error
}

// ResetCommand represents the reset command.
type ResetCommand struct{}

// NewResetCommand creates a new ResetCommand.
func NewResetCommand() *ResetCommand {
	return &ResetCommand{}
}

// getApp retrieves the App from the command context.
func (c *ResetCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for resetting the board.
func (c *ResetCommand) GetCobraCommand() *cobra.Command {
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the connected board",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			deps := c.buildDeps(app)
			return c.Run(cmd.Context(), app, deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	return resetCmd
}

// Run executes the reset command with injected dependencies.
func (c *ResetCommand) Run(ctx context.Context, _ *App, deps ResetDeps) error {
	return deps.Reset(ctx)
}

// buildDeps creates production dependencies for the reset command.
func (c *ResetCommand) buildDeps(app *App) ResetDeps {
	svc := firmware.NewService(app.Runner, app.Logger, app.ConfigProvider)
	return ResetDeps{
		CommonDeps: NewRootDeps(app),
		Reset:      svc.Reset,
	}
}
