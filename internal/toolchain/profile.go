package toolchain

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppendPathExport appends an export line for binDir to the operator's
// zsh profile so the toolchain binaries are reachable from a shell. The
// change takes effect in new shells only.
func (s *Service) AppendPathExport(binDir string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return s.appendPathExport(filepath.Join(home, ".zshrc"), binDir)
}

func (s *Service) appendPathExport(profilePath, binDir string) error {
	f, err := os.OpenFile(profilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", profilePath, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\nexport PATH=\"%s:$PATH\"\n", binDir); err != nil {
		return fmt.Errorf("failed to update %s: %w", profilePath, err)
	}

	s.logger.Info("Compiler added to PATH", "profile", profilePath)
	return nil
}
