package ui

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ghsearch/internal/config"
	"ghsearch/internal/domain"
	"ghsearch/internal/ui/coordinator"
	"ghsearch/internal/ui/handlers"
	"ghsearch/internal/ui/state"
	"ghsearch/internal/ui/viewmodels"
	"ghsearch/internal/ui/views"
)

// chrome is the number of rows used by everything except the user list
const chrome = 12

// Model represents the UI state
type Model struct {
	inputs coordinator.Inputs
	state  *state.AppState // centralized state

	// UI-specific state not in AppState
	width       int
	height      int
	help        help.Model
	keys        keyMap
	textInput   textinput.Model
	spinner     spinner.Model
	inPagerMode bool // tracks if we're currently in pager mode

	// Handlers
	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	viewModel    *viewmodels.ViewModel
	helpRenderer *HelpRenderer

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model feeding inputs
func NewModel(inputs coordinator.Inputs, cfg *config.Config) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	appState := state.NewAppState()

	ti := textinput.New()
	ti.Placeholder = "Search GitHub users"
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	m := &Model{
		inputs:       inputs,
		state:        appState,
		help:         help.New(),
		keys:         newKeyMap(),
		textInput:    ti,
		spinner:      sp,
		renderer:     views.NewRenderer(cfg.UISettings.ShowAvatarURL),
		eventHandler: handlers.NewEventHandler(appState),
		viewModel:    viewmodels.NewViewModel(appState),
		helpRenderer: NewHelpRenderer(),
	}
	m.viewModel.SetHelp(m.help, m.keys)
	m.viewModel.SetHelpContent(m.helpRenderer.RenderHelpContent())
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewModel.SetHelp(m.help, m.keys)
		m.textInput.Width = msg.Width - 12
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m.handleNonKeyboardMsg(msg)
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	m.viewModel.SetDimensions(m.width, m.height)
	m.viewModel.UpdateTextInput(m.textInput)
	m.viewModel.UpdateSpinner(m.spinner)
	return m.renderer.Render(m.viewModel.BuildViewState())
}

// handleKeyMsg routes key presses by popup and focus
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.state.ShowInfo {
		switch msg.String() {
		case "esc", "enter", "q":
			m.state.ShowInfo = false
		}
		return m, nil
	}

	if m.state.ShowHelp {
		switch msg.String() {
		case "esc", "?", "q", "f1":
			m.state.ShowHelp = false
			m.state.HelpScrollOffset = 0
		case "up", "k":
			if m.state.HelpScrollOffset > 0 {
				m.state.HelpScrollOffset--
			}
		case "down", "j":
			m.state.HelpScrollOffset++
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.state.MoveSelection(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.state.MoveSelection(1)
		return m, nil
	case key.Matches(msg, m.keys.Select):
		m.selectCurrent()
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		return m, m.toggleFocus()
	case key.Matches(msg, m.keys.Close):
		return m, tea.Quit
	case msg.String() == "f1":
		return m, m.openHelp()
	}

	if m.state.Focus == state.FocusList {
		switch msg.String() {
		case "?":
			return m, m.openHelp()
		case "q":
			return m, tea.Quit
		case "k":
			m.state.MoveSelection(-1)
		case "j":
			m.state.MoveSelection(1)
		case "/":
			return m, m.toggleFocus()
		}
		return m, nil
	}

	return m, m.updateTextInput(msg)
}

// updateTextInput passes a key to the search box and feeds any change
func (m *Model) updateTextInput(msg tea.Msg) tea.Cmd {
	before := m.textInput.Value()
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	if after := m.textInput.Value(); after != before && m.inputs != nil {
		m.inputs.SearchTextChanged(&after)
	}
	return cmd
}

func (m *Model) selectCurrent() {
	if len(m.state.Users) == 0 || m.inputs == nil {
		return
	}
	m.inputs.ItemSelected(m.state.SelectedIndex)
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.state.Focus == state.FocusInput {
		m.state.Focus = state.FocusList
		m.textInput.Blur()
		return nil
	}
	m.state.Focus = state.FocusInput
	return m.textInput.Focus()
}

// openHelp shows help in the pager, or inline when there is no program
func (m *Model) openHelp() tea.Cmd {
	if m.program == nil {
		m.state.ShowHelp = true
		return nil
	}
	return m.fetchHelpPager(m.helpRenderer.RenderHelpContent())
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := NewHelpOps(m.program).ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		cmd := m.eventHandler.HandleEvent(msg.Event)
		if _, failed := msg.Event.(domain.SearchFailedEvent); failed {
			cmd = tea.Batch(cmd, clearStatusAfter(m.state.StatusMessage, 5*time.Second))
		}
		return m, cmd

	case summaryMsg:
		m.state.Summary = string(msg)
		return m, nil

	case usersMsg:
		m.state.SetUsers([]domain.UserSummary(msg))
		return m, nil

	case selectedMsg:
		m.state.SelectedLogin = string(msg)
		_, found := m.state.SelectedUser()
		m.state.ShowInfo = found
		return m, nil

	case spinner.TickMsg:
		// Don't continue the tick loop while the pager owns the terminal
		if m.inPagerMode {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed, log and fall back to popup
			log.Printf("Help pager failed: %v, falling back to popup", msg.err)
			m.state.ShowHelp = true
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, m.spinner.Tick

	case clearStatusMsg:
		// A newer message stays
		if m.state.StatusMessage == msg.text {
			m.state.SetStatus("", false)
		}
		return m, nil
	}

	// Cursor blink and other text input messages
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// updateViewportHeight sizes the list to the terminal
func (m *Model) updateViewportHeight() {
	h := m.height - chrome
	if h < 3 {
		h = 3
	}
	m.state.ViewportHeight = h
	m.state.EnsureVisible()
}

func clearStatusAfter(text string, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{text: text} })
}
