package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/U-Health-Project-WS2026/U-Health-FE/internal/routes"
	"github.com/U-Health-Project-WS2026/U-Health-FE/pkg/client"
)

// loginDoneMsg carries the result of the sign-in call.
type loginDoneMsg struct{ err error }

type loginModel struct {
	client     *client.Client
	form       form
	submitting bool
	errMsg     string
	width      int
	height     int
}

func newLoginModel(c *client.Client) loginModel {
	return loginModel{
		client: c,
		form: newForm(
			formField{label: "Email", placeholder: "you@example.com"},
			formField{label: "Password", masked: true},
		),
	}
}

func (m loginModel) submit() tea.Cmd {
	c := m.client
	email, password := m.form.value(0), m.form.value(1)
	return func() tea.Msg {
		err := c.Login(context.Background(), email, password)
		return loginDoneMsg{err: err}
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginDoneMsg:
		m.submitting = false
		if msg.err == nil {
			return m, navigate(routes.Dashboard)
		}
		switch {
		case client.IsValidation(msg.err):
			apiErr := client.AsAPIError(msg.err)
			m.form.setErrors(apiErr.FieldError)
			m.errMsg = apiErr.Message
		case client.IsUnauthorized(msg.err):
			m.errMsg = "email or password is incorrect"
		default:
			m.errMsg = "something went wrong, please try again later"
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.form.next()
		case "shift+tab", "up":
			m.form.prev()
		case "enter":
			if m.form.value(0) == "" || m.form.value(1) == "" {
				m.errMsg = "email and password are required"
				return m, nil
			}
			m.errMsg = ""
			m.form.clearErrors()
			m.submitting = true
			return m, m.submit()
		case "esc":
			return m, navigate(routes.Welcome)
		case "ctrl+f":
			return m, navigate(routes.PasswordReset)
		default:
			m.form.edit(msg.String())
		}
	}
	return m, nil
}

func (m loginModel) View() string {
	s := "\n " + sectionHeaderStyle.Render("── SIGN IN ──") + "\n\n"
	s += m.form.render()
	if m.submitting {
		s += "\n   " + dimStyle.Render("signing in...") + "\n"
	}
	if m.errMsg != "" {
		s += "\n   " + errStyle.Render(m.errMsg) + "\n"
	}
	s += "\n   " + metaStyle.Render("forgot your password? press ctrl+f") + "\n"
	return s
}
