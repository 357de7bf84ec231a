package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/unkn0wn-root/livereq/internal/format"
	"github.com/unkn0wn-root/livereq/internal/liveclient"
)

// submit snapshots the form and runs the request off the event loop. A
// request still in flight is cancelled; its result would be discarded as
// stale anyway.
func (m *Model) submit() tea.Cmd {
	m.cancelInFlight()

	sub := m.ctrl.Submit()
	ctx, cancel := context.WithCancel(context.Background())
	m.sendCancel = cancel
	m.sending = true
	m.setStatusMessage(statusMsg{
		text:  fmt.Sprintf("Sending %s %s", sub.Request.Method, sub.Request.URL),
		level: statusInfo,
	})

	client := m.client
	opts := m.httpOpts
	return func() tea.Msg {
		defer cancel()
		return responseMsg{result: liveclient.Perform(ctx, client, sub, opts)}
	}
}

func (m *Model) cancelInFlight() {
	if m.sendCancel != nil {
		m.sendCancel()
		m.sendCancel = nil
	}
}

func (m *Model) handleResponse(res liveclient.Result) {
	if !m.ctrl.Resolve(res) {
		return
	}
	m.sending = false
	m.sendCancel = nil
	m.lastResponse = res.Response
	m.lastError = res.Err
	m.refreshOutput()
	m.output.GotoTop()

	if res.Err != nil {
		m.setStatusMessage(statusMsg{text: res.Output, level: statusError})
		return
	}
	m.setStatusMessage(statusMsg{text: responseSummary(res), level: responseLevel(res)})
}

func responseSummary(res liveclient.Result) string {
	resp := res.Response
	if resp == nil {
		return ""
	}
	status := strings.TrimSpace(resp.Status)
	if status == "" {
		status = fmt.Sprintf("%d", resp.StatusCode)
	}
	return fmt.Sprintf("%s in %s (%s)", status, resp.Duration.Round(time.Millisecond), formatByteSize(int64(len(resp.Body))))
}

func responseLevel(res liveclient.Result) statusLevel {
	if res.Response != nil && res.Response.StatusCode >= 400 {
		return statusWarn
	}
	return statusSuccess
}

// refreshOutput renders the stored output into the viewport. The stored
// text stays plain; colour and wrapping are display-only.
func (m *Model) refreshOutput() {
	text := m.ctrl.State().Output
	if strings.TrimSpace(text) == "" {
		m.output.SetContent(m.theme.Placeholder.Render(noOutputMessage))
		return
	}
	rendered := format.Highlight(text, m.profile)
	if m.output.Width > 0 {
		rendered = ansi.Hardwrap(rendered, m.output.Width, true)
	}
	m.output.SetContent(rendered)
}

func formatByteSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
