package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/livereq/internal/form"
)

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.showCatalog {
		return m.handleCatalogKey(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		m.cancelInFlight()
		return tea.Quit
	case "tab":
		m.moveFocus(1)
		return nil
	case "shift+tab":
		m.moveFocus(-1)
		return nil
	case "ctrl+s":
		return m.submit()
	case "ctrl+n":
		m.addHeader()
		return nil
	case "ctrl+d":
		if m.focus.isHeader() {
			m.removeHeader(m.focus.row)
		}
		return nil
	case "ctrl+y":
		return m.copyOutput()
	case "ctrl+t":
		return m.openCatalog()
	case "pgup":
		m.output.PageUp()
		return nil
	case "pgdown":
		m.output.PageDown()
		return nil
	}

	switch m.focus.kind {
	case slotEndpoint:
		if msg.Type == tea.KeyEnter {
			return m.submit()
		}
		var cmd tea.Cmd
		m.endpoint, cmd = m.endpoint.Update(msg)
		m.ctrl.UpdateField(form.FieldEndpoint, m.endpoint.Value())
		return cmd
	case slotHeaderKey, slotHeaderValue:
		return m.updateHeaderInput(msg)
	case slotBody:
		var cmd tea.Cmd
		m.body, cmd = m.body.Update(msg)
		m.ctrl.UpdateField(form.FieldBody, m.body.Value())
		return cmd
	case slotMethod:
		switch msg.String() {
		case "left", "h":
			m.cycleMethod(-1)
		case "right", "l", " ":
			m.cycleMethod(1)
		}
		return nil
	case slotSubmit:
		if msg.Type == tea.KeyEnter || msg.String() == " " {
			return m.submit()
		}
	}
	return nil
}

func (m *Model) updateHeaderInput(msg tea.KeyMsg) tea.Cmd {
	row := m.focus.row
	if row < 0 || row >= len(m.headers) {
		return nil
	}
	var cmd tea.Cmd
	if m.focus.kind == slotHeaderKey {
		m.headers[row].key, cmd = m.headers[row].key.Update(msg)
		m.ctrl.UpdateHeader(row, form.HeaderKey, m.headers[row].key.Value())
	} else {
		m.headers[row].value, cmd = m.headers[row].value.Update(msg)
		m.ctrl.UpdateHeader(row, form.HeaderValue, m.headers[row].value.Value())
	}
	return cmd
}

func (m *Model) cycleMethod(step int) {
	next := m.ctrl.State().Method.Next(step)
	m.ctrl.UpdateField(form.FieldMethod, string(next))
}

func (m *Model) addHeader() {
	m.ctrl.AddHeader()
	m.syncFromState()
	m.setFocus(focusSlot{kind: slotHeaderKey, row: len(m.headers) - 1})
	m.applyLayout()
}

func (m *Model) removeHeader(row int) {
	if !m.ctrl.RemoveHeader(row) {
		return
	}
	m.syncFromState()
	m.applyLayout()
}

func (m *Model) applyCall(call form.Call) {
	m.ctrl.SetCall(call)
	m.syncFromState()
	m.setFocus(focusSlot{kind: slotSubmit})
	m.applyLayout()
}
