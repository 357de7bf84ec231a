package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/unkn0wn-root/livereq/internal/catalog"
	"github.com/unkn0wn-root/livereq/internal/httpclient"
	"github.com/unkn0wn-root/livereq/internal/liveclient"
	"github.com/unkn0wn-root/livereq/internal/theme"
)

var _ tea.Model = (*Model)(nil)

const (
	noOutputMessage = "Send a request to see the response here."
	bodyHeight      = 6
	minOutputHeight = 3
)

type Config struct {
	Controller  *liveclient.Controller
	Client      liveclient.Doer
	HTTPOptions httpclient.Options
	Catalog     []catalog.Entry
	Theme       *theme.Theme
	Profile     termenv.Profile
	Version     string
}

type headerRow struct {
	key   textinput.Model
	value textinput.Model
}

type Model struct {
	cfg      Config
	theme    theme.Theme
	ctrl     *liveclient.Controller
	client   liveclient.Doer
	httpOpts httpclient.Options
	profile  termenv.Profile

	endpoint textinput.Model
	headers  []headerRow
	body     textarea.Model
	output   viewport.Model
	focus    focusSlot

	catalogList  list.Model
	showCatalog  bool
	catalogCount int

	statusMessage statusMsg
	sending       bool
	sendCancel    context.CancelFunc
	lastResponse  *httpclient.Response
	lastError     error

	width  int
	height int
	ready  bool
}

func New(cfg Config) Model {
	th := theme.DefaultTheme()
	if cfg.Theme != nil {
		th = *cfg.Theme
	}
	ctrl := cfg.Controller
	if ctrl == nil {
		ctrl = liveclient.New("")
		cfg.Controller = ctrl
	}
	client := cfg.Client
	if client == nil {
		client = httpclient.NewClient()
		cfg.Client = client
	}

	endpoint := textinput.New()
	endpoint.Placeholder = "Observation/123"
	endpoint.Prompt = ""
	endpoint.CharLimit = 0

	body := textarea.New()
	body.Placeholder = "Request body"
	body.ShowLineNumbers = false
	body.CharLimit = 0
	body.MaxHeight = 0
	body.Prompt = ""
	body.SetHeight(bodyHeight)

	output := viewport.New(0, 0)

	catalogList := list.New(makeCatalogItems(cfg.Catalog), listDelegateForTheme(th), 0, 0)
	catalogList.Title = "Try it"
	catalogList.SetShowStatusBar(false)
	catalogList.SetShowHelp(false)
	catalogList.SetFilteringEnabled(true)
	catalogList.DisableQuitKeybindings()

	model := Model{
		cfg:          cfg,
		theme:        th,
		ctrl:         ctrl,
		client:       client,
		httpOpts:     cfg.HTTPOptions,
		profile:      cfg.Profile,
		endpoint:     endpoint,
		body:         body,
		output:       output,
		catalogList:  catalogList,
		catalogCount: len(cfg.Catalog),
		focus:        focusSlot{kind: slotEndpoint},
	}
	model.syncFromState()
	model.applyFocus()
	return model
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.applyLayout()
		return nil
	case CallMsg:
		m.applyCall(msg.Call)
		return nil
	case responseMsg:
		m.handleResponse(msg.result)
		return nil
	case statusMsg:
		m.setStatusMessage(msg)
		return nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.forwardToFocused(msg)
}

// forwardToFocused hands non-key messages, such as cursor blinks, to the
// focused widget.
func (m *Model) forwardToFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus.kind {
	case slotEndpoint:
		m.endpoint, cmd = m.endpoint.Update(msg)
	case slotBody:
		m.body, cmd = m.body.Update(msg)
	case slotHeaderKey:
		m.headers[m.focus.row].key, cmd = m.headers[m.focus.row].key.Update(msg)
	case slotHeaderValue:
		m.headers[m.focus.row].value, cmd = m.headers[m.focus.row].value.Update(msg)
	}
	return cmd
}

func (m *Model) setStatusMessage(msg statusMsg) {
	m.statusMessage = msg
}
