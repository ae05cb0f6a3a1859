// Package testutil provides common test utilities and helpers to reduce boilerplate in test files.
package testutil

import (
	"context"
	"log/slog"
	"testing"

	"github.com/mpy-ops/mpy-ops/internal/config"
	"github.com/mpy-ops/mpy-ops/internal/log"
)

// NewTestLogger creates a logger that writes to t.Logf for testing.
// This ensures test output is properly captured by the test framework.
func NewTestLogger(t testing.TB) log.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	handler := &testHandler{t: t, opts: opts}

	return log.NewSlogAdapter(slog.New(handler))
}

// ConfigOption allows customization of test config settings.
type ConfigOption func(*config.Settings)

// WithProjectDir sets a custom project directory.
func WithProjectDir(dir string) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.ProjectDir = dir
	}
}

// WithBoard sets a custom target board.
func WithBoard(board string) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.Board = board
	}
}

// WithToolchainURL sets a custom toolchain archive URL.
func WithToolchainURL(url string) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.ToolchainURL = url
	}
}

// WithFirmware sets a custom firmware repository URL and reference.
func WithFirmware(url, ref string) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.FirmwareURL = url
		cfg.FirmwareRef = ref
	}
}

// NewMockConfig creates a config provider for testing with optional
// customizations. The project directory defaults to a per-test tempdir.
func NewMockConfig(t testing.TB, opts ...ConfigOption) config.Provider {
	cfg := &config.Settings{
		ProjectDir:       t.TempDir(),
		ToolchainVersion: config.DefaultToolchainVersion,
		ToolchainURL:     config.DefaultToolchainURL,
		FirmwareURL:      config.DefaultFirmwareURL,
		FirmwareRef:      config.DefaultFirmwareRef,
		Board:            config.DefaultBoard,
		FlashFormat:      config.DefaultFlashFormat,
		Verbose:          true,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	configProvider := config.NewDefaultConfigProvider()
	configProvider.SetConfig(cfg)
	return configProvider
}

// testHandler implements slog.Handler to write to testing.TB.
type testHandler struct {
	t    testing.TB
	opts *slog.HandlerOptions
}

func (h *testHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *testHandler) Handle(_ context.Context, record slog.Record) error {
	attrs := ""
	record.Attrs(func(a slog.Attr) bool {
		attrs += " " + a.Key + "=" + a.Value.String()
		return true
	})
	h.t.Logf("%s: %s%s", record.Level, record.Message, attrs)
	return nil
}

func (h *testHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *testHandler) WithGroup(_ string) slog.Handler      { return h }
