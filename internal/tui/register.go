package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/U-Health-Project-WS2026/U-Health-FE/internal/routes"
	"github.com/U-Health-Project-WS2026/U-Health-FE/pkg/client"
)

// registerDoneMsg carries the result of the account creation call.
type registerDoneMsg struct{ err error }

type registerModel struct {
	client     *client.Client
	form       form
	submitting bool
	errMsg     string
	width      int
	height     int
}

func newRegisterModel(c *client.Client) registerModel {
	return registerModel{
		client: c,
		form: newForm(
			formField{label: "First name"},
			formField{label: "Last name"},
			formField{label: "Email", placeholder: "you@example.com"},
			formField{label: "Password", masked: true},
			formField{label: "Confirm password", masked: true},
		),
	}
}

func (m registerModel) submit() tea.Cmd {
	c := m.client
	req := client.RegisterRequest{
		FirstName:            m.form.value(0),
		LastName:             m.form.value(1),
		Email:                m.form.value(2),
		Password:             m.form.value(3),
		PasswordConfirmation: m.form.value(4),
	}
	return func() tea.Msg {
		err := c.Register(context.Background(), req)
		return registerDoneMsg{err: err}
	}
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case registerDoneMsg:
		m.submitting = false
		if msg.err == nil {
			// Registration issues a session token; straight to the
			// dashboard like the login flow.
			return m, navigate(routes.Dashboard)
		}
		if client.IsValidation(msg.err) {
			apiErr := client.AsAPIError(msg.err)
			m.form.setErrors(func(field string) string {
				if field == "confirm_password" {
					field = "password_confirmation"
				}
				return apiErr.FieldError(field)
			})
			m.errMsg = apiErr.Message
		} else {
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
			for i := range m.form.fields {
				if m.form.value(i) == "" {
					m.errMsg = "all fields are required"
					return m, nil
				}
			}
			if m.form.value(3) != m.form.value(4) {
				m.errMsg = "passwords do not match"
				return m, nil
			}
			m.errMsg = ""
			m.form.clearErrors()
			m.submitting = true
			return m, m.submit()
		case "esc":
			return m, navigate(routes.Welcome)
		default:
			m.form.edit(msg.String())
		}
	}
	return m, nil
}

func (m registerModel) View() string {
	s := "\n " + sectionHeaderStyle.Render("── CREATE ACCOUNT ──") + "\n\n"
	s += m.form.render()
	if m.submitting {
		s += "\n   " + dimStyle.Render("creating your account...") + "\n"
	}
	if m.errMsg != "" {
		s += "\n   " + errStyle.Render(m.errMsg) + "\n"
	}
	return s
}
