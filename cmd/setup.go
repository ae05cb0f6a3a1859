/*
Copyright © 2025 mpy-ops authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

// Package cmd provides project setup functionality for the mpy-ops CLI
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mpy-ops/mpy-ops/internal/firmware"
	"github.com/mpy-ops/mpy-ops/internal/mkfile"
	"github.com/mpy-ops/mpy-ops/internal/project"
	"github.com/mpy-ops/mpy-ops/internal/prompt"
	"github.com/mpy-ops/mpy-ops/internal/vscode"
)

// SetupOptions holds setup command options.
type SetupOptions struct {
	DeleteCurrent bool
}

// SetupDeps holds setup dependencies.
type SetupDeps struct {
	CommonDeps
	Prompter          prompt.Prompter
	Executable        func() (string, error)
	EnsureToolchain   func(ctx context.Context, layout project.Layout) error
	ProvisionFirmware func(ctx context.Context, layout project.Layout) error
	InstallStlink     func(ctx context.Context, layout project.Layout) error
	PatchMakefile     func(path, key, value string) error
	WriteTasks        func(path string, f vscode.TasksFile) error
}

// SetupCommand represents the setup command.
type SetupCommand struct{}

// NewSetupCommand creates a new SetupCommand.
func NewSetupCommand() *SetupCommand {
	return &SetupCommand{}
}

// getApp retrieves the App from the command context.
func (c *SetupCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for project setup.
func (c *SetupCommand) GetCobraCommand() *cobra.Command {
	var opts SetupOptions

	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Set up a new STM32 MicroPython project",
		Long: `Set up a new STM32 MicroPython project: create the directory
skeleton, write the default application stub, install the toolchain,
clone and patch the firmware sources, generate the VS Code tasks, and
install the flashing utility.

With --delete_current the current project directory is emptied, after
confirmation, and recreated in place instead of under a new name.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			deps := c.buildDeps(app)
			return c.Run(cmd.Context(), app, opts, deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	setupCmd.Flags().BoolVar(&opts.DeleteCurrent, "delete_current", false, "Delete the current project directory contents and recreate in place")

	return setupCmd
}

// Run executes the setup command with injected dependencies.
//
// Provisioning deliberately keeps going after individual step failures:
// there is no rollback, and a partially provisioned tree is more useful
// to the operator than an aborted one.
func (c *SetupCommand) Run(ctx context.Context, app *App, opts SetupOptions, deps SetupDeps) error {
	root, proceed, err := c.resolveRoot(app, opts, deps)
	if err != nil {
		return err
	}
	if !proceed {
		return nil
	}

	layout := project.NewLayout(root)

	if err := project.CreateTree(layout); err != nil {
		return err
	}
	if err := project.WriteAppStub(layout); err != nil {
		return err
	}

	if err := deps.EnsureToolchain(ctx, layout); err != nil {
		deps.Logger.Warn("Toolchain install failed, continuing", "error", err)
	}

	if err := deps.ProvisionFirmware(ctx, layout); err != nil {
		deps.Logger.Warn("Firmware provisioning failed, continuing", "error", err)
	}

	prefix := layout.CrossCompilePrefix(app.Config.ToolchainVersion)
	if err := deps.PatchMakefile(layout.Makefile(), "CROSS_COMPILE", prefix); err != nil {
		deps.Logger.Error("Failed to patch cross-compile prefix", "error", err)
	}

	if err := c.copySelf(deps, layout); err != nil {
		deps.Logger.Warn("Could not copy orchestrator into project", "error", err)
	} else {
		fmt.Printf("Orchestrator copied to %s\n", layout.OrchestratorCopy())
	}

	tasks := vscode.DefaultTasks(filepath.Join("stm32", "mpy-ops"))
	if err := deps.WriteTasks(layout.TasksFile(), tasks); err != nil {
		deps.Logger.Error("Failed to write task descriptor", "error", err)
	} else {
		fmt.Printf("VS Code tasks.json created at %s\n", layout.TasksFile())
	}

	if err := deps.InstallStlink(ctx, layout); err != nil {
		deps.Logger.Warn("Flashing utility install failed, continuing", "error", err)
	}

	color.Green("STM32 project setup completed at %s", root)
	return nil
}

// resolveRoot determines the project root: the current project
// directory after a confirmed teardown, or a freshly created directory
// named by the operator. proceed is false when the operator aborts.
func (c *SetupCommand) resolveRoot(app *App, opts SetupOptions, deps SetupDeps) (root string, proceed bool, err error) {
	root = app.Config.ProjectDir

	if opts.DeleteCurrent {
		confirmed, err := deps.Prompter.Confirm("Do you want to delete this project and recreate it?")
		if err != nil {
			return "", false, fmt.Errorf("confirmation failed: %w", err)
		}
		if !confirmed {
			fmt.Println("Setup aborted.")
			return "", false, nil
		}

		if err := project.RemoveAllEntries(root); err != nil {
			return "", false, fmt.Errorf("failed to delete project content: %w", err)
		}
		fmt.Println("Deleted existing project content.")
		return root, true, nil
	}

	name, err := deps.Prompter.Input("Enter the name of your new STM32 project:")
	if err != nil {
		return "", false, fmt.Errorf("project name prompt failed: %w", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false, errors.New("project name cannot be empty")
	}

	root = filepath.Join(root, name)
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", false, fmt.Errorf("failed to create project directory: %w", err)
	}
	return root, true, nil
}

// copySelf duplicates the running executable into the scaffolded
// project so the project can drive its own lifecycle.
func (c *SetupCommand) copySelf(deps SetupDeps, layout project.Layout) error {
	exe, err := deps.Executable()
	if err != nil {
		return err
	}
	return project.CopyFile(exe, layout.OrchestratorCopy(), 0755)
}

// buildDeps creates production dependencies for the setup command.
func (c *SetupCommand) buildDeps(app *App) SetupDeps {
	return SetupDeps{
		CommonDeps: NewRootDeps(app),
		Prompter:   app.Prompter,
		Executable: os.Executable,
		EnsureToolchain: func(ctx context.Context, layout project.Layout) error {
			compiler := NewCompilerCommand()
			return compiler.Run(ctx, app, CompilerOptions{}, compiler.buildDepsForLayout(app, layout))
		},
		ProvisionFirmware: func(ctx context.Context, layout project.Layout) error {
			getMpy := NewGetMpyCommand()
			return getMpy.Run(ctx, app, GetMpyOptions{}, getMpy.buildDepsForLayout(app, layout))
		},
		InstallStlink: func(ctx context.Context, layout project.Layout) error {
			svc := firmware.NewServiceWithLayout(app.Runner, app.Logger, app.Config, layout)
			return svc.InstallStlink(ctx)
		},
		PatchMakefile: mkfile.SetVariable,
		WriteTasks:    vscode.Write,
	}
}
