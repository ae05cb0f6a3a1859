// Package cmd provides config command functionality for the mpy-ops CLI
package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCommand represents the config command group.
type ConfigCommand struct{}

// NewConfigCommand creates a new ConfigCommand.
func NewConfigCommand() *ConfigCommand {
	return &ConfigCommand{}
}

// GetCobraCommand returns the cobra command for config operations.
func (c *ConfigCommand) GetCobraCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialize the configuration",
	}

	configCmd.AddCommand(NewConfigShowCommand().GetCobraCommand())
	configCmd.AddCommand(NewConfigInitCommand().GetCobraCommand())

	return configCmd
}
