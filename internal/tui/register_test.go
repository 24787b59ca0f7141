package tui

import (
	"net/http"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/U-Health-Project-WS2026/U-Health-FE/internal/routes"
	"github.com/U-Health-Project-WS2026/U-Health-FE/pkg/client"
)

func filledRegisterModel() registerModel {
	m := newRegisterModel(nil)
	values := []string{"Ada", "Nkosi", "ada@example.com", "secret123", "secret123"}
	for i, v := range values {
		m.form.fields[i].value = v
	}
	return m
}

func TestRegisterSuccessNavigatesToDashboard(t *testing.T) {
	m := newRegisterModel(nil)
	_, cmd := m.Update(registerDoneMsg{})
	if cmd == nil {
		t.Fatal("expected a navigation command after registration")
	}
	if msg, ok := cmd().(navigateMsg); !ok || msg.target != routes.Dashboard {
		t.Errorf("expected navigateMsg to Dashboard, got %#v", msg)
	}
}

func TestRegisterRequiresAllFields(t *testing.T) {
	m := filledRegisterModel()
	m.form.fields[2].value = ""

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("expected no submit with a missing field")
	}
	if !strings.Contains(m.View(), "all fields are required") {
		t.Errorf("expected the required-fields message, got:\n%s", m.View())
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	m := filledRegisterModel()
	m.form.fields[4].value = "different"

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("expected no submit on mismatched passwords")
	}
	if !strings.Contains(m.View(), "passwords do not match") {
		t.Errorf("expected the mismatch message, got:\n%s", m.View())
	}
}

func TestRegisterValidSubmit(t *testing.T) {
	m := filledRegisterModel()
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	if !m.submitting {
		t.Error("expected submitting=true")
	}
}

func TestRegisterValidationFieldMapping(t *testing.T) {
	m := newRegisterModel(nil)
	apiErr := &client.APIError{
		StatusCode: http.StatusUnprocessableEntity,
		Message:    "The given data was invalid.",
		Errors: map[string][]string{
			"email":                 {"The email has already been taken."},
			"password_confirmation": {"The password confirmation does not match."},
		},
	}
	m, _ = m.Update(registerDoneMsg{err: apiErr})

	view := m.View()
	if !strings.Contains(view, "The email has already been taken.") {
		t.Errorf("expected the email annotation, got:\n%s", view)
	}
	// The "Confirm password" field maps onto password_confirmation.
	if !strings.Contains(view, "The password confirmation does not match.") {
		t.Errorf("expected the confirmation annotation, got:\n%s", view)
	}
}

func TestRegisterEscReturnsToWelcome(t *testing.T) {
	m := newRegisterModel(nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if msg, ok := cmd().(navigateMsg); !ok || msg.target != routes.Welcome {
		t.Errorf("expected navigateMsg to Welcome, got %#v", msg)
	}
}
