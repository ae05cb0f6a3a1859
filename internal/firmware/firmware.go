// Package firmware drives the external firmware build and flashing
// tools for an STM32 MicroPython project.
package firmware

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mpy-ops/mpy-ops/internal/config"
	"github.com/mpy-ops/mpy-ops/internal/execx"
	"github.com/mpy-ops/mpy-ops/internal/log"
	"github.com/mpy-ops/mpy-ops/internal/project"
)

// Service runs the firmware lifecycle commands against a project layout.
type Service struct {
	runner execx.Runner
	logger log.Logger
	cfg    *config.Settings
	layout project.Layout
}

// NewService creates a firmware service for the configured project.
func NewService(runner execx.Runner, logger log.Logger, configProvider config.Provider) *Service {
	cfg := configProvider.GetConfig()
	return &Service{
		runner: runner,
		logger: logger,
		cfg:    cfg,
		layout: project.NewLayout(cfg.ProjectDir),
	}
}

// NewServiceWithLayout creates a firmware service against an explicit
// layout, for callers provisioning a root other than the configured one.
func NewServiceWithLayout(runner execx.Runner, logger log.Logger, cfg *config.Settings, layout project.Layout) *Service {
	return &Service{
		runner: runner,
		logger: logger,
		cfg:    cfg,
		layout: layout,
	}
}

// Build compiles the firmware image: build the cross-compilation helper,
// resolve build submodules, refresh the frozen application module, then
// build the target board.
func (s *Service) Build(ctx context.Context) error {
	s.run(ctx, s.layout.FirmwareDir(), "make", "-C", "mpy-cross")
	s.run(ctx, s.layout.PortDir(), "make", "submodules")

	if err := s.refreshAppModule(); err != nil {
		return err
	}

	s.run(ctx, s.layout.PortDir(), "make", "BOARD="+s.cfg.Board)
	return nil
}

// refreshAppModule replaces the port's frozen application module with a
// fresh copy of the project's application source.
func (s *Service) refreshAppModule() error {
	appModule := s.layout.AppModuleDir()

	if _, err := os.Stat(appModule); err == nil {
		s.logger.Debug("Removing stale application module", "path", appModule)
		if err := os.RemoveAll(appModule); err != nil {
			return fmt.Errorf("failed to remove %s: %w", appModule, err)
		}
	}

	s.logger.Debug("Copying application module", "from", s.layout.AppDir(), "to", appModule)
	if err := project.CopyTree(s.layout.AppDir(), appModule); err != nil {
		return fmt.Errorf("failed to copy application module: %w", err)
	}
	return nil
}

// Flash writes the built firmware image to the connected device,
// connecting under reset.
func (s *Service) Flash(ctx context.Context) error {
	s.run(ctx, s.layout.PortDir(), "st-flash",
		"--connect-under-reset",
		"--format", s.cfg.FlashFormat,
		"write", s.layout.FirmwareImage(s.cfg.Board))
	return nil
}

// Reset resets the connected device.
func (s *Service) Reset(ctx context.Context) error {
	s.run(ctx, "", "st-flash", "--connect-under-reset", "reset")
	return nil
}

// Clean runs the firmware build system's clean target.
func (s *Service) Clean(ctx context.Context) error {
	s.run(ctx, s.layout.PortDir(), "make", "clean")
	return nil
}

// InstallStlink installs the flashing utility via the host package
// manager.
func (s *Service) InstallStlink(ctx context.Context) error {
	s.run(ctx, "", "brew", "install", "stlink")
	return nil
}

// run executes one external tool invocation. Exit status is not acted
// on: a failing tool is logged and the sequence continues.
func (s *Service) run(ctx context.Context, dir string, name string, args ...string) {
	s.logger.Info("Running external command", "cmd", name+" "+strings.Join(args, " "), "dir", dir)

	output, err := s.runner.CombinedOutput(ctx, dir, name, args...)
	if len(output) > 0 {
		s.logger.Debug("External command output", "cmd", name, "output", string(output))
	}
	if err != nil {
		s.logger.Warn("External command failed, continuing", "cmd", name, "error", err)
	}
}
