package terminal

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/launcher/config"
	"github.com/grovetools/launcher/errors"
	"github.com/grovetools/launcher/logging"
)

// outputBufferSize caps how much session output is kept for replay on Show.
const outputBufferSize = 64 * 1024

// PtyHost runs each session as the configured shell behind a pty.
type PtyHost struct {
	shell config.ShellConfig
	out   io.Writer
	log   *logrus.Entry

	mu       sync.Mutex
	closeFns []func(Session)
}

// NewPtyHost creates a host launching shell sessions per the given
// configuration. Session output is revealed on out (normally os.Stdout).
func NewPtyHost(shell config.ShellConfig, out io.Writer) *PtyHost {
	if out == nil {
		out = os.Stdout
	}
	return &PtyHost{
		shell: shell,
		out:   out,
		log:   logging.NewLogger("terminal"),
	}
}

// OnClose registers a callback fired after a session's shell ends.
func (h *PtyHost) OnClose(fn func(Session)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closeFns = append(h.closeFns, fn)
}

func (h *PtyHost) fireClose(s Session) {
	h.mu.Lock()
	fns := append([]func(Session){}, h.closeFns...)
	h.mu.Unlock()
	for _, fn := range fns {
		fn(s)
	}
}

// CreateTerminal starts a shell in a fresh pty.
func (h *PtyHost) CreateTerminal(name, cwd string) (Session, error) {
	shellCmd := h.shell.Command
	if shellCmd == "" {
		shellCmd = os.Getenv("SHELL")
	}
	if shellCmd == "" {
		shellCmd = "/bin/sh"
	}

	cmd := exec.Command(shellCmd, h.shell.Args...)
	cmd.Dir = cwd
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, errors.TerminalFailed(name, err)
	}

	s := &ptySession{
		name: name,
		host: h,
		cmd:  cmd,
		ptmx: ptmx,
		out:  h.out,
		done: make(chan struct{}),
	}

	h.log.WithFields(logrus.Fields{
		"terminal": name,
		"shell":    shellCmd,
		"cwd":      cwd,
	}).Debug("Created terminal session")

	go s.readLoop()
	return s, nil
}

type ptySession struct {
	name string
	host *PtyHost
	cmd  *exec.Cmd
	ptmx *os.File
	out  io.Writer
	done chan struct{}

	mu      sync.Mutex
	waitErr error
	buffer  bytes.Buffer
	visible bool
	exited  bool
	closed  bool
}

func (s *ptySession) Name() string { return s.name }

func (s *ptySession) SendText(text string) error {
	return s.SendBytes([]byte(text + "\n"))
}

func (s *ptySession) SendBytes(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exited || s.closed {
		return errors.TerminalFailed(s.name, io.ErrClosedPipe)
	}
	_, err := s.ptmx.Write(data)
	if err != nil {
		return errors.TerminalFailed(s.name, err)
	}
	return nil
}

// Show replays buffered output and streams subsequent output to the host's
// writer. Repeated calls are no-ops.
func (s *ptySession) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.visible {
		return
	}
	s.visible = true
	if s.buffer.Len() > 0 {
		_, _ = s.out.Write(s.buffer.Bytes())
		s.buffer.Reset()
	}
}

func (s *ptySession) Exited() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exited
}

// Wait blocks until the session's shell ends.
func (s *ptySession) Wait() error {
	<-s.done
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waitErr
}

func (s *ptySession) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	return s.ptmx.Close()
}

func (s *ptySession) readLoop() {
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			s.mu.Lock()
			if s.visible {
				_, _ = s.out.Write(buf[:n])
			} else {
				s.buffer.Write(buf[:n])
				if s.buffer.Len() > outputBufferSize {
					trimmed := s.buffer.Bytes()[s.buffer.Len()-outputBufferSize:]
					rest := append([]byte(nil), trimmed...)
					s.buffer.Reset()
					s.buffer.Write(rest)
				}
			}
			s.mu.Unlock()
		}
		if err != nil {
			break
		}
	}

	err := s.cmd.Wait()

	s.mu.Lock()
	alreadyExited := s.exited
	s.exited = true
	s.waitErr = err
	s.mu.Unlock()
	close(s.done)

	if !alreadyExited {
		s.host.log.WithField("terminal", s.name).Debug("Terminal session ended")
		s.host.fireClose(s)
	}
}
