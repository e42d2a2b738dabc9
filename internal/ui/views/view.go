package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ghsearch/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width            int
	Height           int
	SearchBox        string // rendered text input
	InputFocused     bool
	Summary          string
	Users            []domain.UserSummary
	SelectedIndex    int
	ViewportOffset   int
	ViewportHeight   int
	InFlight         int
	Spinner          string // current spinner frame
	StatusMessage    string
	StatusIsError    bool
	ShowHelp         bool
	HelpScrollOffset int
	HelpContent      string
	ShowInfo         bool
	SelectedUser     *domain.UserSummary
	KeyHelp          string // rendered bubbles help footer
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	userRender  *UserRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showAvatarURL bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		userRender:  NewUserRenderer(styles, showAvatarURL),
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n")

	inputStyle := r.styles.Input
	if state.InputFocused {
		inputStyle = r.styles.InputFocused
	}
	if state.Width > 8 {
		inputStyle = inputStyle.Width(state.Width - 8)
	}
	content.WriteString(inputStyle.Render(state.SearchBox))
	content.WriteString("\n")

	content.WriteString(r.styles.Summary.Render(state.Summary))
	content.WriteString("\n\n")

	if len(state.Users) == 0 {
		content.WriteString(r.styles.Dim.Render("No users. Type to search GitHub."))
	} else {
		content.WriteString(r.renderUserList(state))
	}

	// Push the status line and key help to the bottom
	footer := r.renderFooter(state)
	currentLines := strings.Count(content.String(), "\n") + 1
	availableLines := state.Height - 2 // Main padding
	if availableLines <= 0 {
		availableLines = 22
	}
	paddingNeeded := availableLines - currentLines - lipgloss.Height(footer)
	if paddingNeeded > 0 {
		content.WriteString(strings.Repeat("\n", paddingNeeded))
	}
	content.WriteString("\n")
	content.WriteString(footer)

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	finalContent := mainStyle.Render(content.String())

	// Overlay popups on top of main content
	if state.ShowInfo && state.SelectedUser != nil {
		details := r.userRender.RenderDetails(*state.SelectedUser)
		return r.popupRender.RenderPopupOverlay(finalContent, details, state.Height, state.Width, r.styles.InfoBox)
	}

	if state.ShowHelp {
		helpContent := r.renderHelpContent(state.HelpContent, state.Height, state.HelpScrollOffset)
		return r.popupRender.RenderPopupOverlay(finalContent, helpContent, state.Height, state.Width, r.styles.InfoBox)
	}

	return finalContent
}

// renderTitleLine renders the logo with the in-flight indicator right-aligned
func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("ghsearch")
	if state.InFlight == 0 {
		return logo
	}

	indicator := fmt.Sprintf("%s Searching", state.Spinner)
	if state.InFlight > 1 {
		indicator = fmt.Sprintf("%s Searching (%d)", state.Spinner, state.InFlight)
	}
	right := r.styles.StatusLoading.Render(indicator)

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	paddingWidth := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	return logo + strings.Repeat(" ", paddingWidth) + right
}

// renderUserList renders the visible window of the user list
func (r *Renderer) renderUserList(state ViewState) string {
	var lines []string

	height := state.ViewportHeight
	if height <= 0 {
		height = len(state.Users)
	}
	start := state.ViewportOffset
	if start < 0 || start >= len(state.Users) {
		start = 0
	}
	end := start + height
	if end > len(state.Users) {
		end = len(state.Users)
	}

	if start > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", start)))
	}
	for i := start; i < end; i++ {
		lines = append(lines, r.userRender.RenderUser(state.Users[i], i, i == state.SelectedIndex, state.Width))
	}
	if below := len(state.Users) - end; below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", below)))
	}

	return strings.Join(lines, "\n")
}

// renderFooter renders the status line and key help
func (r *Renderer) renderFooter(state ViewState) string {
	var parts []string
	if state.StatusMessage != "" {
		style := r.styles.Status
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		parts = append(parts, style.Render(state.StatusMessage))
	}
	if !state.ShowHelp && !state.ShowInfo && state.KeyHelp != "" {
		parts = append(parts, r.styles.Help.Render(state.KeyHelp))
	}
	return strings.Join(parts, "\n")
}

// renderHelpContent returns the window of help lines that fits the popup
func (r *Renderer) renderHelpContent(content string, height, scrollOffset int) string {
	lines := strings.Split(content, "\n")
	totalLines := len(lines)

	// Account for popup border and padding
	visibleHeight := height - 6
	if visibleHeight < 5 {
		visibleHeight = 5
	}
	if totalLines <= visibleHeight {
		return content
	}

	maxOffset := totalLines - visibleHeight
	if scrollOffset > maxOffset {
		scrollOffset = maxOffset
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}

	endLine := scrollOffset + visibleHeight
	visibleLines := append([]string(nil), lines[scrollOffset:endLine]...)
	if scrollOffset > 0 {
		visibleLines[0] = r.styles.Scroll.Render("↑ (more above)")
	}
	if endLine < totalLines {
		visibleLines[len(visibleLines)-1] = r.styles.Scroll.Render("↓ (more below)")
	}
	return strings.Join(visibleLines, "\n")
}
