// Package ui prints user-facing messages for dm. Messages produced before
// Start is called are queued and flushed in the order they were produced,
// so command handlers can speak before the terminal setup has run.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

type kind int

const (
	kindInform kind = iota
	kindWarn
	kindAlert
)

type message struct {
	kind kind
	text string
}

// Message styles, chosen to stay readable on both dark and light terminal
// backgrounds.
var (
	styleInform = lipgloss.NewStyle().Foreground(lipgloss.Color("65"))
	styleWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleAlert  = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
)

// UI is the terminal message collaborator. All calls are fire and forget.
// It is used from a single goroutine, matching the rest of the program.
type UI struct {
	quiet    bool
	useColor bool
	started  bool
	queue    []message
	out      io.Writer // inform
	errOut   io.Writer // warn and alert
}

// New returns a UI. With quiet set, Inform messages are dropped; warnings
// and alerts are always shown.
func New(quiet, useColor bool) *UI {
	return &UI{
		quiet:    quiet,
		useColor: useColor,
		out:      os.Stdout,
		errOut:   os.Stderr,
	}
}

// SetOutput redirects informational output to out and warnings/alerts to
// errOut. Intended for tests.
func (u *UI) SetOutput(out, errOut io.Writer) {
	u.out = out
	u.errOut = errOut
}

// Start flushes any queued messages in the order they were produced and
// switches the UI to immediate printing.
func (u *UI) Start() {
	u.started = true
	for _, m := range u.queue {
		u.print(m)
	}
	u.queue = nil
}

// Inform prints a routine progress message. Suppressed in quiet mode.
func (u *UI) Inform(format string, args ...any) {
	if u.quiet {
		return
	}
	u.emit(message{kindInform, fmt.Sprintf(format, args...)})
}

// Warn prints a warning about an unusual but nonfatal situation.
func (u *UI) Warn(format string, args ...any) {
	u.emit(message{kindWarn, fmt.Sprintf(format, args...)})
}

// Alert prints an error message.
func (u *UI) Alert(format string, args ...any) {
	u.emit(message{kindAlert, fmt.Sprintf(format, args...)})
}

func (u *UI) emit(m message) {
	if !u.started {
		u.queue = append(u.queue, m)
		return
	}
	u.print(m)
}

func (u *UI) print(m message) {
	text := m.text
	w := u.errOut
	switch m.kind {
	case kindInform:
		w = u.out
		if u.useColor {
			text = styleInform.Render(text)
		}
	case kindWarn:
		if u.useColor {
			text = styleWarn.Render(text)
		}
	case kindAlert:
		if u.useColor {
			text = styleAlert.Render(text)
		}
	}
	fmt.Fprintln(w, text)
}
