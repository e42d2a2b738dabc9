package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ghsearch/internal/domain"
)

// UserRenderer handles rendering of user rows and details
type UserRenderer struct {
	styles        *Styles
	showAvatarURL bool
}

// NewUserRenderer creates a new user renderer
func NewUserRenderer(styles *Styles, showAvatarURL bool) *UserRenderer {
	return &UserRenderer{
		styles:        styles,
		showAvatarURL: showAvatarURL,
	}
}

// RenderUser renders one list row
func (r *UserRenderer) RenderUser(user domain.UserSummary, index int, isSelected bool, width int) string {
	bgColor := ""
	if isSelected {
		bgColor = "238"
	}

	cursor := "  "
	if isSelected {
		cursor = "> "
	}

	loginStyle := r.styles.Login
	kindStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(GetKindColor(user.Type)))
	if isSelected {
		loginStyle = r.styles.Highlight.Background(lipgloss.Color(bgColor))
		kindStyle = kindStyle.Background(lipgloss.Color(bgColor))
	}

	parts := []string{
		cursor,
		r.styles.Dim.Render(fmt.Sprintf("%3d ", index+1)),
		loginStyle.Render(user.Login),
	}
	if user.Type != "" {
		parts = append(parts, " ", kindStyle.Render(strings.ToLower(user.Type)))
	}

	line := strings.Join(parts, "")
	if isSelected && width > 0 {
		// Extend the selection background to the full row
		pad := width - 4 - lipgloss.Width(line)
		if pad > 0 {
			line += r.styles.SelectionBg.Render(strings.Repeat(" ", pad))
		}
	}
	return line
}

// RenderDetails renders the popup body for a resolved selection
func (r *UserRenderer) RenderDetails(user domain.UserSummary) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render(user.Login))
	b.WriteString("\n\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(fmt.Sprintf("%s %s\n", r.styles.Label.Render(fmt.Sprintf("%-8s", label)), value))
	}

	if user.ID != 0 {
		row("id", fmt.Sprintf("%d", user.ID))
	}
	row("type", user.Type)
	row("profile", user.HTMLURL)
	if r.showAvatarURL {
		row("avatar", user.AvatarURL)
	}
	if user.Score != 0 {
		row("score", fmt.Sprintf("%.2f", user.Score))
	}

	b.WriteString("\n")
	b.WriteString(r.styles.Dim.Render("esc to close"))
	return b.String()
}
