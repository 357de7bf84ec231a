package ui

import (
	"github.com/unkn0wn-root/livereq/internal/form"
	"github.com/unkn0wn-root/livereq/internal/liveclient"
)

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusWarn
	statusError
	statusSuccess
)

type statusMsg struct {
	text  string
	level statusLevel
}

type responseMsg struct {
	result liveclient.Result
}

// CallMsg replaces the whole form, as if a "try it" button was pressed.
// Send it with tea.Program.Send from outside the event loop.
type CallMsg struct {
	Call form.Call
}
