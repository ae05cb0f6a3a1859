// Package cmd provides compiler command functionality for the mpy-ops CLI
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpy-ops/mpy-ops/internal/project"
)

// CompilerOptions holds compiler command options.
type CompilerOptions struct {
	AddPath bool
}

// CompilerDeps holds compiler dependencies.
type CompilerDeps struct {
	CommonDeps
	Layout          project.Layout
	EnsureToolchain func(ctx context.Context, dir, version, url string) error
	AppendPath      func(binDir string) error
}

// CompilerCommand represents the compiler command.
type CompilerCommand struct{}

// NewCompilerCommand creates a new CompilerCommand.
func NewCompilerCommand() *CompilerCommand {
	return &CompilerCommand{}
}

// getApp retrieves the App from the command context.
func (c *CompilerCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for installing the toolchain.
func (c *CompilerCommand) GetCobraCommand() *cobra.Command {
	var opts CompilerOptions

	compilerCmd := &cobra.Command{
		Use:   "compiler",
		Short: "Install the ARM GCC cross-compiler toolchain",
		Long: `Install the pinned arm-none-eabi-gcc toolchain under the project's
stm32/arm_gcc_compiler directory. Re-running against an installed
toolchain is a no-op.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			deps := c.buildDeps(app)
			return c.Run(cmd.Context(), app, opts, deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	compilerCmd.Flags().BoolVar(&opts.AddPath, "add-path", false, "Append the toolchain bin directory to the zsh profile PATH")

	return compilerCmd
}

// Run executes the compiler command with injected dependencies.
func (c *CompilerCommand) Run(ctx context.Context, app *App, opts CompilerOptions, deps CompilerDeps) error {
	version := app.Config.ToolchainVersion

	if err := deps.EnsureToolchain(ctx, deps.Layout.CompilerDir(), version, app.Config.ToolchainURL); err != nil {
		return fmt.Errorf("failed to install toolchain: %w", err)
	}

	if opts.AddPath {
		if err := deps.AppendPath(deps.Layout.ToolchainBinDir(version)); err != nil {
			return fmt.Errorf("failed to update shell profile: %w", err)
		}
		fmt.Println("Run 'source ~/.zshrc' to update the PATH in the current shell.")
	}

	return nil
}

// buildDeps creates production dependencies for the compiler command.
func (c *CompilerCommand) buildDeps(app *App) CompilerDeps {
	return c.buildDepsForLayout(app, project.NewLayout(app.Config.ProjectDir))
}

// buildDepsForLayout creates production dependencies against an explicit
// layout, for callers provisioning a root other than the configured one.
func (c *CompilerCommand) buildDepsForLayout(app *App, layout project.Layout) CompilerDeps {
	return CompilerDeps{
		CommonDeps:      NewRootDeps(app),
		Layout:          layout,
		EnsureToolchain: app.Toolchain.Ensure,
		AppendPath:      app.Toolchain.AppendPathExport,
	}
}
