// Package prompt provides interactive operator prompts for mpy-ops.
//
// The two places the orchestrator blocks on a human (confirming a
// destructive teardown, naming a fresh project) go through the Prompter
// interface so commands can be exercised in tests with canned answers.
package prompt

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// Prompter asks the operator questions.
type Prompter interface {
	// Confirm asks a yes/no question and returns the answer. A user
	// abort (ctrl-c, esc) is reported as a declined confirmation.
	Confirm(title string) (bool, error)
	// Input asks for a single line of free text.
	Input(title string) (string, error)
}

// HuhPrompter implements Prompter using charmbracelet/huh forms.
type HuhPrompter struct{}

// NewHuhPrompter creates the default interactive prompter.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{}
}

// Confirm implements Prompter.
func (p *HuhPrompter) Confirm(title string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&confirmed),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return confirmed, nil
}

// Input implements Prompter.
func (p *HuhPrompter) Input(title string) (string, error) {
	var value string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Value(&value),
	))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("input prompt failed: %w", err)
	}
	return value, nil
}

// Stub is a canned Prompter for tests and non-interactive callers.
type Stub struct {
	ConfirmAnswer bool
	InputAnswer   string
	ConfirmErr    error
	InputErr      error

	ConfirmCalls []string
	InputCalls   []string
}

// Confirm implements Prompter with the canned answer.
func (s *Stub) Confirm(title string) (bool, error) {
	s.ConfirmCalls = append(s.ConfirmCalls, title)
	return s.ConfirmAnswer, s.ConfirmErr
}

// Input implements Prompter with the canned answer.
func (s *Stub) Input(title string) (string, error) {
	s.InputCalls = append(s.InputCalls, title)
	return s.InputAnswer, s.InputErr
}

var _ Prompter = (*HuhPrompter)(nil)
var _ Prompter = (*Stub)(nil)
