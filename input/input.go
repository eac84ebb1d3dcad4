// Package input abstracts the interactive prompts used to resolve variable
// values. The production host renders bubbletea prompts on the terminal;
// tests substitute a scripted host.
package input

import (
	"context"

	"github.com/grovetools/launcher/errors"
)

// ErrCancelled marks a dismissed prompt, picker or folder dialog. Callers
// treat it as a silent abort of the whole invocation.
var ErrCancelled = errors.Cancelled()

// IsCancelled reports whether err is the cancellation marker.
func IsCancelled(err error) bool {
	return errors.Is(err, errors.ErrCodePromptCancelled)
}

// Host asks the user for values.
type Host interface {
	// PromptText asks for free text. initial preseeds the input. Unless
	// allowEmpty is set, blank input is rejected and the prompt is kept
	// open.
	PromptText(ctx context.Context, prompt, initial string, allowEmpty bool) (string, error)

	// PromptChoice asks the user to pick one of options. initial is
	// preselected (and offered even when absent from options).
	// allowAdditional accepts typed values outside the list.
	PromptChoice(ctx context.Context, options []string, placeholder, initial string, allowAdditional, allowEmpty bool) (string, error)

	// PromptFolder asks for a directory path, preseeded with defaultPath.
	PromptFolder(ctx context.Context, placeholder, defaultPath string) (string, error)
}
