// Package mkfile edits Makefile-style configuration files in place.
//
// The transforms are deliberately line-oriented: every line that is not
// the target of the edit must survive byte-for-byte, including its line
// terminator, so the firmware build tree never sees an unrelated diff.
package mkfile

import (
	"fmt"
	"os"
	"strings"
)

// SetVariable rewrites the first line of the file at path that starts
// with key to "key = value". If no line matches, a new assignment is
// appended at the end of the file. All other lines are preserved
// verbatim.
func SetVariable(path, key, value string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	// SplitAfter keeps each line's terminator attached so untouched
	// lines round-trip exactly.
	lines := strings.SplitAfter(string(data), "\n")

	replaced := false
	for i, line := range lines {
		if strings.HasPrefix(line, key) {
			lines[i] = fmt.Sprintf("%s = %s\n", key, value)
			replaced = true
			break
		}
	}

	if !replaced {
		lines = append(lines, fmt.Sprintf("\n%s = %s\n", key, value))
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "")), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Append appends text verbatim to the file at path.
func Append(path, text string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("failed to append to %s: %w", path, err)
	}

	return nil
}
