package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/U-Health-Project-WS2026/U-Health-FE/internal/routes"
)

// welcomeModel is the public landing page.
type welcomeModel struct {
	width  int
	height int
}

func newWelcomeModel() welcomeModel {
	return welcomeModel{}
}

func (m welcomeModel) Update(msg tea.Msg) (welcomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "l", "enter":
			return m, navigate(routes.Login)
		case "r":
			return m, navigate(routes.Register)
		}
	}
	return m, nil
}

func (m welcomeModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("   " + selectedStyle.Render("Welcome to the U-Health patient portal.") + "\n\n")
	sb.WriteString("   " + normalStyle.Render("Book appointments, browse your treatment history and") + "\n")
	sb.WriteString("   " + normalStyle.Render("manage your profile, without leaving the terminal.") + "\n\n")
	sb.WriteString("   " + accentStyle.Render("l") + dimStyle.Render("  sign in to your account") + "\n")
	sb.WriteString("   " + accentStyle.Render("r") + dimStyle.Render("  create a new account") + "\n")
	return sb.String()
}
