// Package ui provides the interactive prompts of the terminal wizard.
package ui

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
)

const SIGINT = 130 // Standard exit code for SIGINT

// ErrCancelled is returned when the user interrupts a prompt.
var ErrCancelled = errors.New("cancelled by the user")

// Prompter asks the user for input. Select returns the index of the chosen item.
type Prompter interface {
	Select(label string, items []string) (int, error)
	Input(label string, validate func(string) error) (string, error)
	Confirm(label string) (bool, error)
}

// PromptUI is the Prompter backed by promptui.
type PromptUI struct{}

func (PromptUI) Select(label string, items []string) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("no items to select for %q", label)
	}

	sel := promptui.Select{
		Label: label,
		Items: items,
		Size:  10,
	}

	idx, _, err := sel.Run()
	if err != nil {
		return -1, wrapPromptError(err)
	}
	return idx, nil
}

// Input prompts until the validation passes or the user cancels.
func (PromptUI) Input(label string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Validate: validate,
	}

	res, err := prompt.Run()
	if err != nil {
		return "", wrapPromptError(err)
	}
	return res, nil
}

// Confirm asks a yes/no question, defaulting to no.
func (PromptUI) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	res, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, wrapPromptError(err)
	}
	return res == "y" || res == "Y", nil
}

func wrapPromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return ErrCancelled
	}
	return fmt.Errorf("running prompt: %w", err)
}

var _ Prompter = PromptUI{}
