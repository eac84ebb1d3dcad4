package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *LauncherError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *LauncherError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// VariableNotFound reports an unresolvable placeholder. groupRestricted
// records whether the cross-action search was limited to the action's group,
// so the user-facing message can say where it looked.
func VariableNotFound(varName string, groupRestricted bool) *LauncherError {
	msg := fmt.Sprintf("variable %s not found", varName)
	if groupRestricted {
		msg = fmt.Sprintf("variable %s not found in the current group", varName)
	}
	return New(ErrCodeVariableNotFound, msg).
		WithDetail("variable", varName).
		WithDetail("groupRestricted", groupRestricted)
}

// Cancelled creates the cancellation marker raised when the user dismisses a
// prompt, picker or folder dialog. Callers treat it as a silent abort.
func Cancelled() *LauncherError {
	return New(ErrCodePromptCancelled, "selection cancelled")
}

// StorageDamaged creates a storage corruption error
func StorageDamaged(path string) *LauncherError {
	return New(ErrCodeStorageDamaged,
		fmt.Sprintf("'%s' is damaged. Please fix or delete it (it will be recreated next time)", path)).
		WithDetail("path", path)
}

// ExecutionBusy creates the single-flight rejection error
func ExecutionBusy() *LauncherError {
	return New(ErrCodeExecutionBusy, "a command is already running, please wait for it to finish")
}

// ActionNotFound creates an unknown action error
func ActionNotFound(name string) *LauncherError {
	return New(ErrCodeActionNotFound, fmt.Sprintf("action '%s' not found", name)).
		WithDetail("action", name)
}

// NoWorkspace creates an error for operations that require a workspace root
func NoWorkspace() *LauncherError {
	return New(ErrCodeNoWorkspace, "no workspace folder found")
}

// TerminalFailed wraps a terminal host failure
func TerminalFailed(name string, err error) *LauncherError {
	return Wrap(err, ErrCodeTerminalFailed, fmt.Sprintf("terminal '%s' failed", name)).
		WithDetail("terminal", name)
}
