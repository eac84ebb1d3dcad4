package cli

import (
	"fmt"
	"os"

	"github.com/grovetools/launcher/errors"
)

// ErrorHandler turns launcher error codes into actionable messages.
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle prints a user-facing message for the error and returns it so the
// caller can set the exit code. A cancelled prompt is a deliberate user
// action: it stays silent and swallows the error.
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodePromptCancelled:
		return nil

	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ No launcher.yml found. Create one in your project root to define actions.\n")
		return err

	case errors.ErrCodeVariableNotFound:
		if launcherErr, ok := err.(*errors.LauncherError); ok {
			fmt.Fprintf(os.Stderr, "❌ Variable '%s' is not defined in any action\n", launcherErr.Details["variable"])
			if restricted, _ := launcherErr.Details["groupRestricted"].(bool); restricted {
				fmt.Fprintf(os.Stderr, "The search was restricted to the action's own group (searchVariablesInCurrentGroup).\n")
			}
		}
		return err

	case errors.ErrCodeStorageDamaged:
		if launcherErr, ok := err.(*errors.LauncherError); ok {
			fmt.Fprintf(os.Stderr, "❌ Stored values file is damaged: %s\n", launcherErr.Details["path"])
			fmt.Fprintf(os.Stderr, "Delete it (or run 'launcher storage reset') to start fresh.\n")
		}
		return err

	case errors.ErrCodeExecutionBusy:
		fmt.Fprintf(os.Stderr, "❌ Another action is still resolving its variables. Finish or cancel it first.\n")
		return err

	case errors.ErrCodeActionNotFound:
		if launcherErr, ok := err.(*errors.LauncherError); ok {
			fmt.Fprintf(os.Stderr, "❌ Action '%s' not found in launcher.yml\n", launcherErr.Details["action"])
			fmt.Fprintf(os.Stderr, "Run 'launcher list' to see available actions.\n")
		}
		return err

	case errors.ErrCodeTerminalFailed:
		if launcherErr, ok := err.(*errors.LauncherError); ok {
			fmt.Fprintf(os.Stderr, "❌ Terminal session '%s' could not be created\n", launcherErr.Details["terminal"])
		}
		return err

	case errors.ErrCodeConfigValidation, errors.ErrCodeConfigInvalid:
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		if h.Verbose {
			if launcherErr, ok := err.(*errors.LauncherError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", launcherErr.ToJSON())
			}
		}
		return err
	}
}
