package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mpy-ops/mpy-ops/internal/firmware"
)

// CompileDeps holds compile dependencies.
type CompileDeps struct {
	CommonDeps
	Build func(ctx context.Context) error
}

// CompileCommand represents the compile command.
type CompileCommand struct{}

// NewCompileCommand creates a new CompileCommand.
func NewCompileCommand() *CompileCommand {
	return &CompileCommand{}
}

// getApp retrieves the App from the command context.
func (c *CompileCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for building the firmware.
func (c *CompileCommand) GetCobraCommand() *cobra.Command {
	compileCmd := &cobra.Command{
		Use:   "compile",
		Short: "Build the firmware image for the target board",
		Long: `Build the mpy-cross helper, resolve build submodules, refresh the
frozen application module from the project's app directory, and build
the firmware for the configured board.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			deps := c.buildDeps(app)
			return c.Run(cmd.Context(), app, deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	return compileCmd
}

// Run executes the compile command with injected dependencies.
func (c *CompileCommand) Run(ctx context.Context, _ *App, deps CompileDeps) error {
	return deps.Build(ctx)
}

// buildDeps creates production dependencies for the compile command.
func (c *CompileCommand) buildDeps(app *App) CompileDeps {
	svc := firmware.NewService(app.Runner, app.Logger, app.ConfigProvider)
	return CompileDeps{
		CommonDeps: NewRootDeps(app),
		Build:      svc.Build,
	}
}
