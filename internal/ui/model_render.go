package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/unkn0wn-root/livereq/internal/form"
)

var commandHints = [][2]string{
	{"tab", "focus"},
	{"ctrl+s", "send"},
	{"ctrl+n", "add header"},
	{"ctrl+d", "drop header"},
	{"ctrl+t", "try it"},
	{"ctrl+y", "copy"},
	{"ctrl+c", "quit"},
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var body string
	if m.showCatalog {
		body = m.theme.FormBorder.
			Width(m.innerWidth()).
			Render(m.catalogList.View())
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, m.renderForm(), m.renderOutput())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderStatus(),
		m.renderCommandBar(),
	)
}

func (m Model) renderHeader() string {
	brand := m.theme.HeaderBrand.Render("livereq")
	prefix := m.theme.HeaderValue.Render(m.ctrl.Prefix())
	line := brand + "  " + prefix
	if v := strings.TrimSpace(m.cfg.Version); v != "" {
		line += "  " + m.theme.Label.Render(v)
	}
	return m.theme.Header.Render(ansi.Truncate(line, m.width-2, "…"))
}

func (m Model) renderForm() string {
	state := m.ctrl.State()
	rows := []string{
		m.label("Endpoint", slotEndpoint) + m.theme.Placeholder.Render(m.ctrl.Prefix()) + m.endpoint.View(),
		m.theme.PaneTitle.Render("Headers"),
	}
	if len(m.headers) == 0 {
		rows = append(rows, strings.Repeat(" ", labelWidth)+m.theme.Placeholder.Render("ctrl+n adds a header"))
	}
	for i, row := range m.headers {
		label := m.label("", slotHeaderKey)
		if m.focus.isHeader() && m.focus.row == i {
			label = m.theme.LabelFocused.Render(padLabel(fmt.Sprintf("#%d", i+1)))
		}
		rows = append(rows, label+row.key.View()+m.theme.Label.Render(" : ")+row.value.View())
	}
	rows = append(rows,
		lipgloss.JoinHorizontal(lipgloss.Top, m.label("Body", slotBody), m.body.View()),
		m.label("Method", slotMethod)+m.renderMethod(state.Method)+"  "+m.renderSubmit(),
	)

	return m.theme.FormBorder.
		Width(m.innerWidth()).
		Render(strings.Join(rows, "\n"))
}

func (m Model) renderMethod(current form.Method) string {
	parts := make([]string, 0, len(form.Methods))
	for _, method := range form.Methods {
		text := string(method)
		if method == current {
			style := lipgloss.NewStyle().Bold(true).Foreground(m.theme.MethodColors.For(method))
			if m.focus.kind == slotMethod {
				style = style.Underline(true)
			}
			parts = append(parts, style.Render("["+text+"]"))
			continue
		}
		parts = append(parts, m.theme.Placeholder.Render(" "+text+" "))
	}
	return strings.Join(parts, "")
}

func (m Model) renderSubmit() string {
	label := "Submit"
	if m.sending {
		label = "Sending"
	}
	label = runewidth.FillRight(label, submitWidth-4)
	if m.focus.kind == slotSubmit {
		return m.theme.ButtonFocused.Render(label)
	}
	return m.theme.Button.Render(label)
}

func (m Model) renderOutput() string {
	title := m.theme.PaneTitle.Render("Output")
	if m.lastResponse != nil {
		title += m.theme.Label.Render(fmt.Sprintf("  %d%%", int(m.output.ScrollPercent()*100)))
	}
	return m.theme.ResponseBorder.
		Width(m.innerWidth()).
		Render(title + "\n" + m.output.View())
}

func (m Model) renderStatus() string {
	msg := m.statusMessage
	if strings.TrimSpace(msg.text) == "" {
		return m.theme.StatusBar.Render("")
	}
	var style lipgloss.Style
	switch msg.level {
	case statusError:
		style = m.theme.Error
	case statusSuccess:
		style = m.theme.Success
	case statusWarn:
		style = m.theme.Notification
	default:
		style = m.theme.StatusBar
	}
	text := strings.ReplaceAll(msg.text, "\n", " ")
	return m.theme.StatusBar.Render(style.Render(ansi.Truncate(text, m.width-2, "…")))
}

func (m Model) renderCommandBar() string {
	parts := make([]string, len(commandHints))
	for i, hint := range commandHints {
		parts[i] = m.theme.CommandBarHint.Render(hint[0]) + " " + hint[1]
	}
	return m.theme.CommandBar.Render(ansi.Truncate(strings.Join(parts, "  "), m.width-2, "…"))
}

func (m Model) label(text string, slot slotKind) string {
	style := m.theme.Label
	if m.focus.kind == slot && !m.focus.isHeader() {
		style = m.theme.LabelFocused
	}
	return style.Render(padLabel(text))
}

func padLabel(text string) string {
	return runewidth.FillRight(runewidth.Truncate(text, labelWidth-1, ""), labelWidth)
}
