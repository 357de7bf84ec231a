package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/unkn0wn-root/livereq/internal/form"
)

type MethodColors struct {
	GET     lipgloss.Color
	POST    lipgloss.Color
	PUT     lipgloss.Color
	DELETE  lipgloss.Color
	Default lipgloss.Color
}

func (c MethodColors) For(method form.Method) lipgloss.Color {
	switch method {
	case form.MethodGet:
		return c.GET
	case form.MethodPost:
		return c.POST
	case form.MethodPut:
		return c.PUT
	case form.MethodDelete:
		return c.DELETE
	default:
		return c.Default
	}
}

type Theme struct {
	Header         lipgloss.Style
	HeaderBrand    lipgloss.Style
	HeaderValue    lipgloss.Style
	FormBorder     lipgloss.Style
	ResponseBorder lipgloss.Style
	PaneTitle      lipgloss.Style
	Label          lipgloss.Style
	LabelFocused   lipgloss.Style
	Placeholder    lipgloss.Style
	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	StatusBar      lipgloss.Style
	CommandBar     lipgloss.Style
	CommandBarHint lipgloss.Style
	Error          lipgloss.Style
	Success        lipgloss.Style
	Notification   lipgloss.Style
	MethodColors   MethodColors

	ListItemTitle               lipgloss.Style
	ListItemDescription         lipgloss.Style
	ListItemSelectedTitle       lipgloss.Style
	ListItemSelectedDescription lipgloss.Style
	ListItemDimmedTitle         lipgloss.Style
	ListItemDimmedDescription   lipgloss.Style
	ListItemFilterMatch         lipgloss.Style
}

func DefaultTheme() Theme {
	accent := lipgloss.Color("#7D56F4")
	base := lipgloss.NewStyle().Foreground(lipgloss.Color("#dcd7ff"))

	return Theme{
		Header:      lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E1FF")).Padding(0, 1),
		HeaderBrand: lipgloss.NewStyle().Foreground(accent).Bold(true),
		HeaderValue: lipgloss.NewStyle().Foreground(lipgloss.Color("#D1CFF6")),
		FormBorder: base.BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#A78BFA")),
		ResponseBorder: base.BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5FB3B3")),
		PaneTitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")).Bold(true),
		Label:        lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")),
		LabelFocused: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD46A")).Bold(true),
		Placeholder:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6A86")),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E6E1FF")).
			Background(lipgloss.Color("#403B59")).
			Padding(0, 2),
		ButtonFocused: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0F111A")).
			Background(lipgloss.Color("#FFD46A")).
			Bold(true).
			Padding(0, 2),
		StatusBar:      lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")).Padding(0, 1),
		CommandBar:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6A86")).Padding(0, 1),
		CommandBarHint: lipgloss.NewStyle().Foreground(lipgloss.Color("#B9A5FF")).Bold(true),
		Error:          lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6E6E")),
		Success:        lipgloss.NewStyle().Foreground(lipgloss.Color("#6EF17E")),
		Notification: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD46A")),
		MethodColors: MethodColors{
			GET:     lipgloss.Color("#34d399"),
			POST:    lipgloss.Color("#60a5fa"),
			PUT:     lipgloss.Color("#f59e0b"),
			DELETE:  lipgloss.Color("#f87171"),
			Default: lipgloss.Color("#9ca3af"),
		},
		ListItemTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("#E6E1FF")),
		ListItemDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6A86")),
		ListItemSelectedTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD46A")).
			Bold(true),
		ListItemSelectedDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("#C7C4E0")),
		ListItemDimmedTitle:         lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6A86")),
		ListItemDimmedDescription:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4560")),
		ListItemFilterMatch: lipgloss.NewStyle().
			Underline(true).
			Foreground(lipgloss.Color("#B9A5FF")),
	}
}
