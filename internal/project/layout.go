// Package project defines the on-disk layout of an STM32 MicroPython
// project and the scaffolding helpers that produce it.
package project

import "path/filepath"

// Layout resolves every fixed path of a project against an explicit
// root. Nothing in this package reads the process working directory;
// the root is always threaded in by the caller.
type Layout struct {
	Root string
}

// NewLayout creates a Layout rooted at root.
func NewLayout(root string) Layout {
	return Layout{Root: root}
}

// AppDir returns the application module directory.
func (l Layout) AppDir() string {
	return filepath.Join(l.Root, "app")
}

// AppSource returns the application entry-point file.
func (l Layout) AppSource() string {
	return filepath.Join(l.AppDir(), "app.py")
}

// VSCodeDir returns the editor settings directory.
func (l Layout) VSCodeDir() string {
	return filepath.Join(l.Root, ".vscode")
}

// TasksFile returns the VS Code task descriptor path.
func (l Layout) TasksFile() string {
	return filepath.Join(l.VSCodeDir(), "tasks.json")
}

// Stm32Dir returns the embedded tooling directory.
func (l Layout) Stm32Dir() string {
	return filepath.Join(l.Root, "stm32")
}

// CompilerDir returns the directory toolchains are installed under.
func (l Layout) CompilerDir() string {
	return filepath.Join(l.Stm32Dir(), "arm_gcc_compiler")
}

// ToolchainRoot returns the install directory of a toolchain version.
func (l Layout) ToolchainRoot(version string) string {
	return filepath.Join(l.CompilerDir(), version)
}

// ToolchainBinDir returns the bin directory of a toolchain version.
func (l Layout) ToolchainBinDir(version string) string {
	return filepath.Join(l.ToolchainRoot(version), "bin")
}

// CrossCompilePrefix returns the toolchain binary prefix the firmware
// build's CROSS_COMPILE variable points at.
func (l Layout) CrossCompilePrefix(version string) string {
	return filepath.Join(l.ToolchainBinDir(version), "arm-none-eabi-")
}

// FirmwareDir returns the firmware source clone directory.
func (l Layout) FirmwareDir() string {
	return filepath.Join(l.Stm32Dir(), "micropython")
}

// PortDir returns the STM32 port directory inside the firmware tree.
func (l Layout) PortDir() string {
	return filepath.Join(l.FirmwareDir(), "ports", "stm32")
}

// ModulesDir returns the port's frozen-module loading directory.
func (l Layout) ModulesDir() string {
	return filepath.Join(l.PortDir(), "modules")
}

// AppModuleDir returns the location the application module is copied to
// for static inclusion in the firmware image.
func (l Layout) AppModuleDir() string {
	return filepath.Join(l.ModulesDir(), "app")
}

// Makefile returns the port Makefile that carries CROSS_COMPILE.
func (l Layout) Makefile() string {
	return filepath.Join(l.PortDir(), "Makefile")
}

// BoardManifest returns the board manifest file for board.
func (l Layout) BoardManifest(board string) string {
	return filepath.Join(l.PortDir(), "boards", board, "manifest.py")
}

// BuildDir returns the firmware build output directory for board.
func (l Layout) BuildDir(board string) string {
	return "build-" + board
}

// FirmwareImage returns the flashable image path for board, relative to
// the port directory (st-flash is invoked from there).
func (l Layout) FirmwareImage(board string) string {
	return filepath.Join(l.BuildDir(board), "firmware.hex")
}

// OrchestratorCopy returns where the running binary is duplicated so
// the scaffolded project is self-contained.
func (l Layout) OrchestratorCopy() string {
	return filepath.Join(l.Stm32Dir(), "mpy-ops")
}
