// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package progressui

import (
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// IsInteractive reports whether stdout is attached to a terminal, the same
// check the teacher's sync preview used to decide whether to draw a
// redrawing progress bar or fall back to plain lines.
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Confirm prompts the user with a yes/no question before a destructive
// operation (clean, sync --hard). assumeYes skips the prompt entirely,
// returning true, for scripted/non-interactive invocations.
func Confirm(question string, assumeYes bool) (bool, error) {
	if assumeYes || !IsInteractive() {
		return assumeYes, nil
	}

	var confirmed bool
	err := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed).
		Run()
	if err != nil {
		return false, err
	}
	return confirmed, nil
}
