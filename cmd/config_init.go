// Package cmd provides config init command functionality for the mpy-ops CLI
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mpy-ops/mpy-ops/internal/config"
)

// ConfigInitOptions holds config init command options.
type ConfigInitOptions struct {
	Force bool
}

// ConfigInitDeps holds config init dependencies.
type ConfigInitDeps struct {
	CommonDeps
	UserHomeDir func() (string, error)
	MkdirAll    func(string, os.FileMode) error
	WriteFile   func(string, []byte, os.FileMode) error
}

// ConfigInitCommand represents the config init command.
type ConfigInitCommand struct{}

// NewConfigInitCommand creates a new ConfigInitCommand.
func NewConfigInitCommand() *ConfigInitCommand {
	return &ConfigInitCommand{}
}

// GetCobraCommand returns the cobra command for config init.
func (c *ConfigInitCommand) GetCobraCommand() *cobra.Command {
	var opts ConfigInitOptions

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a default configuration file",
		Long:  "Create a configuration file with the default toolchain, firmware and board settings in the user configuration directory",
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.Run(opts, c.buildDeps())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	initCmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Overwrite existing configuration file")

	return initCmd
}

// Run executes the config init command with injected dependencies.
func (c *ConfigInitCommand) Run(opts ConfigInitOptions, deps ConfigInitDeps) error {
	homeDir, err := deps.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", "mpy-ops")
	configFile := filepath.Join(configDir, "config.yaml")

	if _, err := os.Stat(configFile); err == nil && !opts.Force {
		return fmt.Errorf("configuration file already exists at %s, use --force to overwrite", configFile)
	}

	if err := deps.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}

	defaultConfig := &config.Settings{
		ProjectDir:       config.DefaultProjectDir,
		ToolchainVersion: config.DefaultToolchainVersion,
		ToolchainURL:     config.DefaultToolchainURL,
		FirmwareURL:      config.DefaultFirmwareURL,
		FirmwareRef:      config.DefaultFirmwareRef,
		Board:            config.DefaultBoard,
		FlashFormat:      config.DefaultFlashFormat,
		Verbose:          config.DefaultVerbose,
	}

	data, err := yaml.Marshal(defaultConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := deps.WriteFile(configFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configFile, err)
	}

	fmt.Printf("Configuration file created at %s\n", configFile)
	return nil
}

// buildDeps creates production dependencies for the config init command.
func (c *ConfigInitCommand) buildDeps() ConfigInitDeps {
	return ConfigInitDeps{
		CommonDeps:  CommonDeps{},
		UserHomeDir: os.UserHomeDir,
		MkdirAll:    os.MkdirAll,
		WriteFile:   os.WriteFile,
	}
}
