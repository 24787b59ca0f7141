package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/U-Health-Project-WS2026/U-Health-FE/pkg/client"
	"github.com/U-Health-Project-WS2026/U-Health-FE/pkg/domain"
)

// profileMode is the state machine for profile interactions.
type profileMode int

const (
	profView     profileMode = iota
	profEditing              // editing contact details
	profPassword             // change-password form
)

// -- messages --

type profileSavedMsg struct {
	me  *domain.Patient
	err error
}

type passwordChangedMsg struct{ err error }

// -- model --

type profileModel struct {
	client     *client.Client
	me         *domain.Patient
	mode       profileMode
	edit       form
	password   form
	submitting bool
	statusMsg  string
	errMsg     string
	width      int
	height     int
}

func newProfileModel(c *client.Client) profileModel {
	return profileModel{
		client: c,
		password: newForm(
			formField{label: "Current password", masked: true},
			formField{label: "New password", masked: true},
			formField{label: "Confirm password", masked: true},
		),
	}
}

func (m profileModel) Init() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		me, err := c.Me(context.Background())
		return meLoadedMsg{me: me, err: err}
	}
}

func (m profileModel) editing() bool {
	return m.mode != profView
}

// startEdit builds the edit form from the current profile.
func (m profileModel) startEdit() profileModel {
	me := m.me
	if me == nil {
		return m
	}
	m.edit = newForm(
		formField{label: "First name", value: me.FirstName},
		formField{label: "Last name", value: me.LastName},
		formField{label: "Phone number", value: me.PhoneNumber},
		formField{label: "Date of birth", value: me.DateOfBirth, placeholder: "1990-05-21"},
		formField{label: "Address", value: me.Address},
		formField{label: "Insurance number", value: me.InsuranceNo},
	)
	m.mode = profEditing
	return m
}

func (m profileModel) submitEdit() tea.Cmd {
	c := m.client
	str := func(i int) *string {
		v := m.edit.value(i)
		return &v
	}
	req := client.UpdateProfileRequest{
		FirstName:   str(0),
		LastName:    str(1),
		PhoneNumber: str(2),
		DateOfBirth: str(3),
		Address:     str(4),
		InsuranceNo: str(5),
	}
	return func() tea.Msg {
		me, err := c.UpdateMe(context.Background(), req)
		return profileSavedMsg{me: me, err: err}
	}
}

func (m profileModel) submitPassword() tea.Cmd {
	c := m.client
	current, next, confirm := m.password.value(0), m.password.value(1), m.password.value(2)
	return func() tea.Msg {
		err := c.ChangePassword(context.Background(), current, next, confirm)
		return passwordChangedMsg{err: err}
	}
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case meLoadedMsg:
		if msg.err == nil && msg.me != nil {
			m.me = msg.me
		}
		return m, nil

	case profileSavedMsg:
		m.submitting = false
		if msg.err != nil {
			if client.IsValidation(msg.err) {
				apiErr := client.AsAPIError(msg.err)
				m.edit.setErrors(apiErr.FieldError)
				m.errMsg = apiErr.Message
			} else {
				m.errMsg = "saving failed, please try again later"
			}
			return m, nil
		}
		m.errMsg = ""
		m.me = msg.me
		m.mode = profView
		m.statusMsg = "profile saved"
		return m, nil

	case passwordChangedMsg:
		m.submitting = false
		if msg.err != nil {
			switch {
			case client.IsValidation(msg.err):
				apiErr := client.AsAPIError(msg.err)
				m.password.setErrors(func(field string) string {
					switch field {
					case "new_password":
						field = "password"
					case "confirm_password":
						field = "password_confirmation"
					}
					return apiErr.FieldError(field)
				})
				m.errMsg = apiErr.Message
			default:
				m.errMsg = "password change failed, please try again later"
			}
			return m, nil
		}
		m.errMsg = ""
		m.mode = profView
		m.password = newProfileModel(m.client).password
		m.statusMsg = "password changed"
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		return m.handleKey(msg)
	}
	return m, nil
}

func (m profileModel) handleKey(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch m.mode {
	case profEditing:
		switch msg.String() {
		case "tab", "down":
			m.edit.next()
		case "shift+tab", "up":
			m.edit.prev()
		case "enter":
			m.errMsg = ""
			m.edit.clearErrors()
			m.submitting = true
			return m, m.submitEdit()
		case "esc":
			m.mode = profView
			m.errMsg = ""
		default:
			m.edit.edit(msg.String())
		}
		return m, nil

	case profPassword:
		switch msg.String() {
		case "tab", "down":
			m.password.next()
		case "shift+tab", "up":
			m.password.prev()
		case "enter":
			for i := range m.password.fields {
				if m.password.value(i) == "" {
					m.errMsg = "all fields are required"
					return m, nil
				}
			}
			if m.password.value(1) != m.password.value(2) {
				m.errMsg = "passwords do not match"
				return m, nil
			}
			m.errMsg = ""
			m.password.clearErrors()
			m.submitting = true
			return m, m.submitPassword()
		case "esc":
			m.mode = profView
			m.errMsg = ""
		default:
			m.password.edit(msg.String())
		}
		return m, nil
	}

	switch msg.String() {
	case "e":
		return m.startEdit(), nil
	case "p":
		m.mode = profPassword
	case "r":
		return m, m.Init()
	}
	return m, nil
}

func (m profileModel) helpKeys() string {
	switch m.mode {
	case profEditing, profPassword:
		return helpEntry("tab", "next") + "  " + helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
	default:
		return helpEntry("e", "edit") + "  " + helpEntry("p", "password") + "  " + helpEntry("l", "logout") + "  " + helpEntry("q", "quit")
	}
}

func (m profileModel) View() string {
	var sb strings.Builder

	switch m.mode {
	case profEditing:
		sb.WriteString("\n " + sectionHeaderStyle.Render("── EDIT PROFILE ──") + "\n\n")
		sb.WriteString(m.edit.render())
	case profPassword:
		sb.WriteString("\n " + sectionHeaderStyle.Render("── CHANGE PASSWORD ──") + "\n\n")
		sb.WriteString(m.password.render())
	default:
		sb.WriteString("\n " + sectionHeaderStyle.Render("── PROFILE ──") + "\n")
		if m.me == nil {
			sb.WriteString("   " + dimStyle.Render("loading profile...") + "\n")
		} else {
			rows := []struct{ label, value string }{
				{"Name", m.me.FullName()},
				{"Email", m.me.Email},
				{"Phone", m.me.PhoneNumber},
				{"Date of birth", m.me.DateOfBirth},
				{"Address", m.me.Address},
				{"Insurance no.", m.me.InsuranceNo},
			}
			for _, row := range rows {
				value := row.value
				if value == "" {
					value = dimStyle.Render("—")
				} else {
					value = normalStyle.Render(value)
				}
				sb.WriteString("   " + metaStyle.Render(padRight(row.label, 14)) + " " + value + "\n")
			}
		}
	}

	if m.submitting {
		sb.WriteString("\n   " + dimStyle.Render("saving...") + "\n")
	}
	if m.statusMsg != "" {
		sb.WriteString("\n   " + okStyle.Render(m.statusMsg) + "\n")
	}
	if m.errMsg != "" {
		sb.WriteString("\n   " + errStyle.Render(m.errMsg) + "\n")
	}
	return sb.String()
}

// padRight pads s with spaces to width n.
func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
