// Package cmd provides the command line interface for mpy-ops
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
package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mpy-ops/mpy-ops/internal/config"
	"github.com/mpy-ops/mpy-ops/internal/log"
)

// RootCommand represents the root command for the mpy-ops CLI.
type RootCommand struct{}

var (
	configFilePath string
	projectDir     string
	verbose        bool
)

// GetCobraCommand returns the cobra root command for the mpy-ops CLI.
func (c *RootCommand) GetCobraCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mpy-ops",
		Short: "mpy-ops scaffolds and drives STM32 MicroPython firmware projects.",
		Long: `mpy-ops scaffolds and drives STM32 MicroPython firmware projects.
It provisions the project layout, installs the pinned ARM GCC toolchain,
clones and patches the MicroPython sources, and wraps the build, flash,
reset and clean lifecycle of the target board.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			app, _ := cmd.Context().Value(appContextKey).(*App)

			// Settings come from the provider threaded through the App,
			// not from package globals.
			provider := config.DefaultProvider()
			if app != nil && app.ConfigProvider != nil {
				provider = app.ConfigProvider
			}

			if configFilePath != "" {
				provider.SetConfigFilePath(configFilePath)
				provider.InitConfig()
			}

			cfg := provider.GetConfig()
			if cfg == nil {
				cfg = provider.InitConfig()
			}
			log.Init(verbose)

			if verbose {
				fmt.Printf("%s using config: %s\n\n", cmd.Root().Use, viper.GetViper().ConfigFileUsed())
				cfg.Verbose = verbose
			}

			if projectDir != "" {
				cfg.ProjectDir = projectDir
			}

			// Every action resolves paths against this root; pin it down
			// once so nothing depends on the launch directory later.
			if abs, err := filepath.Abs(cfg.ProjectDir); err == nil {
				cfg.ProjectDir = abs
			}

			if app != nil {
				app.Config = cfg
				if err := app.Checker.SystemRequirements(); err != nil {
					log.GetLogger().Warn("System requirements not met", "err", err)
				}
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// No command token or an unrecognized one: print help and
			// report success.
			return cmd.Help()
		},
		Args: cobra.ArbitraryArgs,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFilePath, "config", "", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&projectDir, "project-dir", "", "Path to the project root directory")

	rootCmd.AddCommand(
		(&CompilerCommand{}).GetCobraCommand(),
		(&GetMpyCommand{}).GetCobraCommand(),
		(&StlinkCommand{}).GetCobraCommand(),
		(&CompileCommand{}).GetCobraCommand(),
		(&FlashCommand{}).GetCobraCommand(),
		(&ResetCommand{}).GetCobraCommand(),
		(&CleanCommand{}).GetCobraCommand(),
		(&SetupCommand{}).GetCobraCommand(),
		(&DoctorCommand{}).GetCobraCommand(),
		(&ConfigCommand{}).GetCobraCommand(),
		(&VersionCommand{}).GetCobraCommand(),
		(&UpdateCommand{}).GetCobraCommand(),
	)

	return rootCmd
}

// Execute runs the root command with the App attached to its context.
func Execute(app *App) error {
	rootCmd := (&RootCommand{}).GetCobraCommand()
	ctx := context.WithValue(context.Background(), appContextKey, app)
	return rootCmd.ExecuteContext(ctx)
}
