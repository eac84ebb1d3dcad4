// Package terminal provides persistent shell sessions for launcher commands.
//
// A Host creates sessions; the production host runs a shell behind a pty so
// a session survives between dispatched commands the way an editor-embedded
// terminal would. A Manager keys sessions by action identity and toggler key
// and drops entries when their session ends.
package terminal

// InterruptByte is the ETX control byte sent to interrupt the foreground
// process of a session (Ctrl-C).
const InterruptByte byte = 0x03

// Session is a single persistent terminal.
type Session interface {
	// Name returns the display name the session was created with.
	Name() string

	// SendText writes the text followed by a newline, executing it in the
	// session's shell.
	SendText(text string) error

	// SendBytes writes raw bytes without a trailing newline, e.g. an
	// interrupt byte.
	SendBytes(data []byte) error

	// Show reveals the session, replaying buffered output and streaming
	// further output to the user.
	Show()

	// Exited reports whether the underlying shell has ended.
	Exited() bool

	// Wait blocks until the underlying shell ends and returns its exit
	// error, if any.
	Wait() error

	// Close ends the session.
	Close() error
}

// Host creates terminal sessions and reports when they end.
type Host interface {
	CreateTerminal(name, cwd string) (Session, error)

	// OnClose registers a callback fired once per session after it ends.
	OnClose(fn func(Session))
}
