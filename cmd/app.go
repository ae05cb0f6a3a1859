// Package cmd provides the command line interface for mpy-ops
package cmd

import (
	"github.com/mpy-ops/mpy-ops/internal/config"
	"github.com/mpy-ops/mpy-ops/internal/execx"
	"github.com/mpy-ops/mpy-ops/internal/log"
	"github.com/mpy-ops/mpy-ops/internal/prompt"
	"github.com/mpy-ops/mpy-ops/internal/toolchain"
	"github.com/mpy-ops/mpy-ops/internal/validate"
)

// contextKey is the type for values stored in the command context.
type contextKey string

// appContextKey carries the App through the cobra command context.
const appContextKey contextKey = "app"

// App holds the application dependencies for the command line interface.
type App struct {
	Logger         log.Logger
	Config         *config.Settings
	ConfigProvider config.Provider
	Runner         execx.Runner
	Prompter       prompt.Prompter
	Checker        *validate.Checker
	Toolchain      *toolchain.Service
}

// NewApp creates a new App with all dependencies initialized.
func NewApp(logger log.Logger, configProvider config.Provider) *App {
	return &App{
		Logger:         logger,
		Config:         configProvider.GetConfig(),
		ConfigProvider: configProvider,
		Runner:         execx.NewRealRunner(),
		Prompter:       prompt.NewHuhPrompter(),
		Checker:        validate.NewChecker(),
		Toolchain:      toolchain.NewService(logger),
	}
}
