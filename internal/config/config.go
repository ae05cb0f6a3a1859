// Package config provides configuration management for mpy-ops
package config

import (
	"os"

	"github.com/spf13/viper"
)

// Provider defines the interface for configuration providers.
type Provider interface {
	// GetConfig returns the current application configuration.
	GetConfig() *Settings
	// SetConfig sets the application configuration.
	SetConfig(c *Settings)
	// InitConfig initializes the application configuration.
	InitConfig() *Settings
	// SetConfigFilePath sets the configuration file path.
	SetConfigFilePath(p string)
}

// defaultConfigProvider implements the Provider interface.
type defaultConfigProvider struct {
	cfg *Settings
}

// NewDefaultConfigProvider creates a new default config provider.
func NewDefaultConfigProvider() Provider {
	return &defaultConfigProvider{}
}

var defaultProvider = NewDefaultConfigProvider()

// Default configuration values for mpy-ops. The toolchain and firmware
// pins match the versions the NUCLEO_H743ZI board support was validated
// against; overriding them via the config file is possible but moves the
// project off the tested combination.
const (
	DefaultProjectDir       = "."
	DefaultToolchainVersion = "gcc-arm-none-eabi-10.3-2021.07"
	DefaultToolchainURL     = "https://armkeil.blob.core.windows.net/developer/Files/downloads/gnu-rm/10.3-2021.07/gcc-arm-none-eabi-10.3-2021.07-mac-10.14.6.tar.bz2"
	DefaultFirmwareURL      = "https://github.com/micropython/micropython.git"
	DefaultFirmwareRef      = "v1.22-release"
	DefaultBoard            = "NUCLEO_H743ZI"
	DefaultFlashFormat      = "ihex"
	DefaultVerbose          = false
)

// Settings represents the configuration for mpy-ops: the project root
// every path is resolved against, the pinned toolchain and firmware
// sources, and the target board identifier.
type Settings struct {
	ProjectDir       string `yaml:"projectDir"`
	ToolchainVersion string `yaml:"toolchainVersion"`
	ToolchainURL     string `yaml:"toolchainUrl"`
	FirmwareURL      string `yaml:"firmwareUrl"`
	FirmwareRef      string `yaml:"firmwareRef"`
	Board            string `yaml:"board"`
	FlashFormat      string `yaml:"flashFormat"`
	Verbose          bool   `yaml:"verbose"`
}

// Implementation of Provider methods for defaultConfigProvider

func (p *defaultConfigProvider) SetConfig(c *Settings) {
	p.cfg = c
}

func (p *defaultConfigProvider) GetConfig() *Settings {
	return p.cfg
}

func (p *defaultConfigProvider) SetConfigFilePath(path string) {
	viper.SetConfigFile(path)
}

func (p *defaultConfigProvider) InitConfig() *Settings {
	p.cfg = initConfigInternal()
	return p.cfg
}

// For backward compatibility - pass through to default provider

// SetConfig sets the application configuration.
func SetConfig(c *Settings) {
	defaultProvider.SetConfig(c)
}

// GetConfig returns the current application configuration.
func GetConfig() *Settings {
	return defaultProvider.GetConfig()
}

// SetConfigFilePath sets the configuration file path.
func SetConfigFilePath(p string) {
	defaultProvider.SetConfigFilePath(p)
}

// InitConfig initializes the application configuration.
func InitConfig() *Settings {
	return defaultProvider.InitConfig()
}

// DefaultProvider returns the process-wide configuration provider.
func DefaultProvider() Provider {
	return defaultProvider
}

// Internal function to initialize configuration.
func initConfigInternal() *Settings {
	cfg := &Settings{
		ProjectDir:       DefaultProjectDir,
		ToolchainVersion: DefaultToolchainVersion,
		ToolchainURL:     DefaultToolchainURL,
		FirmwareURL:      DefaultFirmwareURL,
		FirmwareRef:      DefaultFirmwareRef,
		Board:            DefaultBoard,
		FlashFormat:      DefaultFlashFormat,
		Verbose:          DefaultVerbose,
	}

	viper.SetDefault("projectDir", DefaultProjectDir)
	viper.SetDefault("toolchainVersion", DefaultToolchainVersion)
	viper.SetDefault("toolchainUrl", DefaultToolchainURL)
	viper.SetDefault("firmwareUrl", DefaultFirmwareURL)
	viper.SetDefault("firmwareRef", DefaultFirmwareRef)
	viper.SetDefault("board", DefaultBoard)
	viper.SetDefault("flashFormat", DefaultFlashFormat)
	viper.SetDefault("verbose", DefaultVerbose)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(os.ExpandEnv("$HOME/.config/mpy-ops"))
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		panic(err)
	}

	return cfg
}
