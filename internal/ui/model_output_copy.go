package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// copyOutput puts the plain output text on the system clipboard. The
// write happens in a command so a slow clipboard helper cannot stall the
// event loop.
func (m *Model) copyOutput() tea.Cmd {
	text := m.ctrl.State().Output
	if strings.TrimSpace(text) == "" {
		m.setStatusMessage(statusMsg{text: "No output to copy", level: statusWarn})
		return nil
	}
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return statusMsg{text: fmt.Sprintf("Clipboard error: %v", err), level: statusError}
		}
		return statusMsg{
			text:  fmt.Sprintf("Copied output (%s)", formatByteSize(int64(len(text)))),
			level: statusSuccess,
		}
	}
}
