package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/livereq/internal/catalog"
	"github.com/unkn0wn-root/livereq/internal/form"
)

type catalogItem struct {
	entry catalog.Entry
}

func (i catalogItem) Title() string {
	method := strings.ToUpper(strings.TrimSpace(i.entry.Method))
	if method == "" {
		method = string(form.MethodGet)
	}
	return fmt.Sprintf("%-6s %s", method, i.entry.Name)
}

func (i catalogItem) Description() string {
	if i.entry.Summary != "" {
		return i.entry.Summary
	}
	return i.entry.Endpoint
}

func (i catalogItem) FilterValue() string {
	return i.entry.Name + " " + i.entry.Summary + " " + i.entry.Endpoint
}

func makeCatalogItems(entries []catalog.Entry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, entry := range entries {
		items[i] = catalogItem{entry: entry}
	}
	return items
}

func (m *Model) openCatalog() tea.Cmd {
	if m.catalogCount == 0 {
		m.setStatusMessage(statusMsg{text: "No catalog loaded (use --catalog)", level: statusWarn})
		return nil
	}
	m.showCatalog = true
	m.catalogList.ResetFilter()
	m.applyLayout()
	return nil
}

func (m *Model) closeCatalog() {
	m.showCatalog = false
}

func (m *Model) handleCatalogKey(msg tea.KeyMsg) tea.Cmd {
	if m.catalogList.FilterState() != list.Filtering {
		switch msg.String() {
		case "esc", "ctrl+t":
			m.closeCatalog()
			return nil
		case "ctrl+c":
			m.cancelInFlight()
			return tea.Quit
		case "enter":
			item, ok := m.catalogList.SelectedItem().(catalogItem)
			m.closeCatalog()
			if !ok {
				return nil
			}
			m.applyCall(item.entry.Call)
			m.setStatusMessage(statusMsg{text: "Loaded " + item.entry.Name, level: statusInfo})
			return nil
		}
	}
	var cmd tea.Cmd
	m.catalogList, cmd = m.catalogList.Update(msg)
	return cmd
}
