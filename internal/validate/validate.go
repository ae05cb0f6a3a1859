// Package validate checks the host for the external tools the
// orchestrator delegates to.
package validate

import (
	"fmt"
	"os/exec"
)

// Tool describes one external dependency.
type Tool struct {
	Name     string
	Purpose  string
	Required bool
	Hint     string
}

// Tools lists every external tool the orchestrator may invoke. Only
// git and make are hard requirements; the rest are installed by the
// tool itself or only needed for specific commands.
func Tools() []Tool {
	return []Tool{
		{Name: "git", Purpose: "clone the firmware sources", Required: true, Hint: "install git via your package manager"},
		{Name: "make", Purpose: "drive the firmware build", Required: true, Hint: "install build tools (xcode-select --install)"},
		{Name: "brew", Purpose: "install the flashing utility", Required: false, Hint: "https://brew.sh"},
		{Name: "st-flash", Purpose: "flash and reset the board", Required: false, Hint: "run 'mpy-ops stlink'"},
		{Name: "arm-none-eabi-gcc", Purpose: "cross-compile the firmware", Required: false, Hint: "run 'mpy-ops compiler --add-path'"},
	}
}

// Checker validates tool availability. LookPath is injectable for
// tests.
type Checker struct {
	LookPath func(string) (string, error)
}

// NewChecker creates a Checker backed by the real PATH lookup.
func NewChecker() *Checker {
	return &Checker{LookPath: exec.LookPath}
}

// Found reports whether the named tool is on PATH.
func (c *Checker) Found(name string) bool {
	lookPath := c.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	_, err := lookPath(name)
	return err == nil
}

// SystemRequirements returns an error naming the first required tool
// that is missing from PATH.
func (c *Checker) SystemRequirements() error {
	for _, tool := range Tools() {
		if tool.Required && !c.Found(tool.Name) {
			return fmt.Errorf("required tool %q not found on PATH (%s)", tool.Name, tool.Purpose)
		}
	}
	return nil
}
