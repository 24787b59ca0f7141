package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/U-Health-Project-WS2026/U-Health-FE/internal/routes"
	"github.com/U-Health-Project-WS2026/U-Health-FE/pkg/client"
)

// resetStage is the password-reset flow position.
type resetStage int

const (
	resetRequest resetStage = iota // ask the backend to mail a token
	resetConfirm                   // consume the mailed token
)

type forgotDoneMsg struct{ err error }
type resetDoneMsg struct{ err error }

// resetModel covers both halves of the password-reset flow. The mailed
// deep link (/password-reset/:token) lands directly on the confirm
// stage with the token prefilled.
type resetModel struct {
	client     *client.Client
	stage      resetStage
	request    form
	confirm    form
	submitting bool
	errMsg     string
	infoMsg    string
	width      int
	height     int
}

func newResetModel(c *client.Client) resetModel {
	return resetModel{
		client: c,
		request: newForm(
			formField{label: "Email", placeholder: "you@example.com"},
		),
		confirm: newForm(
			formField{label: "Reset token", placeholder: "from the email we sent you"},
			formField{label: "Email", placeholder: "you@example.com"},
			formField{label: "New password", masked: true},
			formField{label: "Confirm password", masked: true},
		),
	}
}

// withToken prefills the mailed token and jumps to the confirm stage.
func (m resetModel) withToken(token string) resetModel {
	m.stage = resetConfirm
	m.confirm.fields[0].value = token
	m.confirm.focus = 1
	return m
}

func (m resetModel) submitRequest() tea.Cmd {
	c := m.client
	email := m.request.value(0)
	return func() tea.Msg {
		err := c.ForgotPassword(context.Background(), email)
		return forgotDoneMsg{err: err}
	}
}

func (m resetModel) submitConfirm() tea.Cmd {
	c := m.client
	token, email := m.confirm.value(0), m.confirm.value(1)
	password, confirmation := m.confirm.value(2), m.confirm.value(3)
	return func() tea.Msg {
		err := c.ResetPassword(context.Background(), token, email, password, confirmation)
		return resetDoneMsg{err: err}
	}
}

func (m resetModel) Update(msg tea.Msg) (resetModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case forgotDoneMsg:
		m.submitting = false
		if msg.err != nil {
			if client.IsValidation(msg.err) {
				m.errMsg = client.AsAPIError(msg.err).Message
			} else {
				m.errMsg = "something went wrong, please try again later"
			}
			return m, nil
		}
		// Move on to the confirm stage; the token arrives by mail.
		m.stage = resetConfirm
		m.confirm.fields[1].value = m.request.value(0)
		m.infoMsg = "check your inbox for the reset token"
		m.errMsg = ""
		return m, nil

	case resetDoneMsg:
		m.submitting = false
		if msg.err != nil {
			if client.IsValidation(msg.err) {
				apiErr := client.AsAPIError(msg.err)
				m.confirm.setErrors(func(field string) string {
					switch field {
					case "reset_token":
						field = "token"
					case "new_password":
						field = "password"
					case "confirm_password":
						field = "password_confirmation"
					}
					return apiErr.FieldError(field)
				})
				m.errMsg = apiErr.Message
			} else {
				m.errMsg = "something went wrong, please try again later"
			}
			return m, nil
		}
		return m, navigate(routes.Login)

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.activeForm().next()
		case "shift+tab", "up":
			m.activeForm().prev()
		case "enter":
			return m.submit()
		case "esc":
			return m, navigate(routes.Login)
		default:
			m.activeForm().edit(msg.String())
		}
	}
	return m, nil
}

func (m *resetModel) activeForm() *form {
	if m.stage == resetRequest {
		return &m.request
	}
	return &m.confirm
}

func (m resetModel) submit() (resetModel, tea.Cmd) {
	if m.stage == resetRequest {
		if m.request.value(0) == "" {
			m.errMsg = "email is required"
			return m, nil
		}
		m.errMsg = ""
		m.submitting = true
		return m, m.submitRequest()
	}
	for i := range m.confirm.fields {
		if m.confirm.value(i) == "" {
			m.errMsg = "all fields are required"
			return m, nil
		}
	}
	if m.confirm.value(2) != m.confirm.value(3) {
		m.errMsg = "passwords do not match"
		return m, nil
	}
	m.errMsg = ""
	m.infoMsg = ""
	m.confirm.clearErrors()
	m.submitting = true
	return m, m.submitConfirm()
}

func (m resetModel) View() string {
	var s string
	if m.stage == resetRequest {
		s = "\n " + sectionHeaderStyle.Render("── RESET PASSWORD ──") + "\n\n"
		s += "   " + normalStyle.Render("We will email you a one-time reset token.") + "\n\n"
		s += m.request.render()
	} else {
		s = "\n " + sectionHeaderStyle.Render("── CHOOSE A NEW PASSWORD ──") + "\n\n"
		s += m.confirm.render()
	}
	if m.submitting {
		s += "\n   " + dimStyle.Render("submitting...") + "\n"
	}
	if m.infoMsg != "" {
		s += "\n   " + okStyle.Render(m.infoMsg) + "\n"
	}
	if m.errMsg != "" {
		s += "\n   " + errStyle.Render(m.errMsg) + "\n"
	}
	return s
}
