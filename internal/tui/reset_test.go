package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/U-Health-Project-WS2026/U-Health-FE/internal/routes"
)

func TestResetWithTokenJumpsToConfirm(t *testing.T) {
	m := newResetModel(nil).withToken("mailed-token")
	if m.stage != resetConfirm {
		t.Fatalf("expected the confirm stage, got %d", m.stage)
	}
	if got := m.confirm.value(0); got != "mailed-token" {
		t.Errorf("expected the token prefilled, got %q", got)
	}
	if m.confirm.focus != 1 {
		t.Errorf("expected focus past the token field, got %d", m.confirm.focus)
	}
}

func TestResetRequestStage(t *testing.T) {
	m := newResetModel(nil)
	if !strings.Contains(m.View(), "RESET PASSWORD") {
		t.Errorf("expected the request stage first, got:\n%s", m.View())
	}

	// Empty submit
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("expected no command with an empty email")
	}
	if !strings.Contains(m.View(), "email is required") {
		t.Errorf("expected the required message, got:\n%s", m.View())
	}

	m.request.fields[0].value = "ada@example.com"
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	if !m.submitting {
		t.Error("expected submitting=true")
	}
}

func TestResetForgotDoneAdvancesStage(t *testing.T) {
	m := newResetModel(nil)
	m.request.fields[0].value = "ada@example.com"

	m, _ = m.Update(forgotDoneMsg{})
	if m.stage != resetConfirm {
		t.Fatalf("expected the confirm stage, got %d", m.stage)
	}
	if got := m.confirm.value(1); got != "ada@example.com" {
		t.Errorf("expected the email carried over, got %q", got)
	}
	if !strings.Contains(m.View(), "check your inbox") {
		t.Errorf("expected the inbox hint, got:\n%s", m.View())
	}
}

func TestResetConfirmPasswordMismatch(t *testing.T) {
	m := newResetModel(nil).withToken("tok")
	m.confirm.fields[1].value = "ada@example.com"
	m.confirm.fields[2].value = "newpass123"
	m.confirm.fields[3].value = "different"

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("expected no submit on mismatched passwords")
	}
	if !strings.Contains(m.View(), "passwords do not match") {
		t.Errorf("expected the mismatch message, got:\n%s", m.View())
	}
}

func TestResetDoneNavigatesToLogin(t *testing.T) {
	m := newResetModel(nil).withToken("tok")
	_, cmd := m.Update(resetDoneMsg{})
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if msg, ok := cmd().(navigateMsg); !ok || msg.target != routes.Login {
		t.Errorf("expected navigateMsg to Login, got %#v", msg)
	}
}

func TestResetEscReturnsToLogin(t *testing.T) {
	m := newResetModel(nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if msg, ok := cmd().(navigateMsg); !ok || msg.target != routes.Login {
		t.Errorf("expected navigateMsg to Login, got %#v", msg)
	}
}
