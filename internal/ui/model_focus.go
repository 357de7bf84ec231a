package ui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/unkn0wn-root/livereq/internal/form"
)

type slotKind int

const (
	slotEndpoint slotKind = iota
	slotHeaderKey
	slotHeaderValue
	slotBody
	slotMethod
	slotSubmit
)

// focusSlot names one focusable control. row is only meaningful for
// header slots.
type focusSlot struct {
	kind slotKind
	row  int
}

func (s focusSlot) isHeader() bool {
	return s.kind == slotHeaderKey || s.kind == slotHeaderValue
}

func (m *Model) focusOrder() []focusSlot {
	order := []focusSlot{{kind: slotEndpoint}}
	for i := range m.headers {
		order = append(order,
			focusSlot{kind: slotHeaderKey, row: i},
			focusSlot{kind: slotHeaderValue, row: i},
		)
	}
	return append(order,
		focusSlot{kind: slotBody},
		focusSlot{kind: slotMethod},
		focusSlot{kind: slotSubmit},
	)
}

func (m *Model) moveFocus(step int) {
	order := m.focusOrder()
	idx := 0
	for i, slot := range order {
		if slot == m.focus {
			idx = i
			break
		}
	}
	n := len(order)
	idx = ((idx+step)%n + n) % n
	m.setFocus(order[idx])
}

func (m *Model) setFocus(slot focusSlot) {
	m.focus = m.clampFocus(slot)
	m.applyFocus()
}

// clampFocus keeps header focus on a row that still exists after rows
// were removed.
func (m *Model) clampFocus(slot focusSlot) focusSlot {
	if !slot.isHeader() {
		return slot
	}
	if len(m.headers) == 0 {
		return focusSlot{kind: slotBody}
	}
	if slot.row >= len(m.headers) {
		slot.row = len(m.headers) - 1
	}
	if slot.row < 0 {
		slot.row = 0
	}
	return slot
}

func (m *Model) applyFocus() {
	m.endpoint.Blur()
	m.body.Blur()
	for i := range m.headers {
		m.headers[i].key.Blur()
		m.headers[i].value.Blur()
	}
	switch m.focus.kind {
	case slotEndpoint:
		m.endpoint.Focus()
	case slotBody:
		m.body.Focus()
	case slotHeaderKey:
		m.headers[m.focus.row].key.Focus()
	case slotHeaderValue:
		m.headers[m.focus.row].value.Focus()
	}
}

// syncFromState rebuilds every widget from the controller's state. It runs
// after structural edits so the widgets never drift from the form.
func (m *Model) syncFromState() {
	state := m.ctrl.State()

	m.endpoint.SetValue(state.Endpoint)
	m.endpoint.CursorEnd()
	if m.body.Value() != state.Body {
		m.body.SetValue(state.Body)
	}

	rows := make([]headerRow, len(state.Headers))
	for i, h := range state.Headers {
		rows[i] = newHeaderRow(h)
	}
	m.headers = rows
	m.applyHeaderWidths()

	m.focus = m.clampFocus(m.focus)
	m.applyFocus()
	m.refreshOutput()
}

func newHeaderRow(h form.HeaderEntry) headerRow {
	key := textinput.New()
	key.Prompt = ""
	key.Placeholder = "Header"
	key.CharLimit = 0
	key.SetValue(h.Key)

	value := textinput.New()
	value.Prompt = ""
	value.Placeholder = "Value"
	value.CharLimit = 0
	value.SetValue(h.Value)

	return headerRow{key: key, value: value}
}
