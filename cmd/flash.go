package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mpy-ops/mpy-ops/internal/firmware"
)

// FlashDeps holds flash dependencies.
type FlashDeps struct {
	CommonDeps
	Flash func(ctx context.Context) error
}

// FlashCommand represents the flash command.
type FlashCommand struct{}

// NewFlashCommand creates a new FlashCommand.
func NewFlashCommand() *FlashCommand {
	return &FlashCommand{}
}

// getApp retrieves the App from the command context.
func (c *FlashCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for flashing the firmware.
func (c *FlashCommand) GetCobraCommand() *cobra.Command {
	flashCmd := &cobra.Command{
		Use:   "flash",
		Short: "Flash the firmware image to the connected board",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			deps := c.buildDeps(app)
			return c.Run(cmd.Context(), app, deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	return flashCmd
}

// Run executes the flash command with injected dependencies.
func (c *FlashCommand) Run(ctx context.Context, _ *App, deps FlashDeps) error {
	return deps.Flash(ctx)
}

// buildDeps creates production dependencies for the flash command.
func (c *FlashCommand) buildDeps(app *App) FlashDeps {
	svc := firmware.NewService(app.Runner, app.Logger, app.ConfigProvider)
	return FlashDeps{
		CommonDeps: NewRootDeps(app),
		Flash:      svc.Flash,
	}
}
