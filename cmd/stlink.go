package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mpy-ops/mpy-ops/internal/firmware"
)

// StlinkDeps holds stlink dependencies.
type StlinkDeps struct {
	CommonDeps
	InstallStlink func(ctx context.Context) error
}

// StlinkCommand represents the stlink command.
type StlinkCommand struct{}

// NewStlinkCommand creates a new StlinkCommand.
func NewStlinkCommand() *StlinkCommand {
	return &StlinkCommand{}
}

// getApp retrieves the App from the command context.
func (c *StlinkCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for installing stlink.
func (c *StlinkCommand) GetCobraCommand() *cobra.Command {
	stlinkCmd := &cobra.Command{
		Use:   "stlink",
		Short: "Install the st-flash flashing utility",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			deps := c.buildDeps(app)
			return c.Run(cmd.Context(), app, deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	return stlinkCmd
}

// Run executes the stlink command with injected dependencies.
func (c *StlinkCommand) Run(ctx context.Context, _ *App, deps StlinkDeps) error {
	return deps.InstallStlink(ctx)
}

// buildDeps creates production dependencies for the stlink command.
func (c *StlinkCommand) buildDeps(app *App) StlinkDeps {
	svc := firmware.NewService(app.Runner, app.Logger, app.ConfigProvider)
	return StlinkDeps{
		CommonDeps:    NewRootDeps(app),
		InstallStlink: svc.InstallStlink,
	}
}
