package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/U-Health-Project-WS2026/U-Health-FE/internal/routes"
	"github.com/U-Health-Project-WS2026/U-Health-FE/internal/session"
	"github.com/U-Health-Project-WS2026/U-Health-FE/pkg/client"
	"github.com/U-Health-Project-WS2026/U-Health-FE/pkg/domain"
)

// newTestApp builds an app over a temp-dir session store. The client
// points at an unroutable address; tests never execute fetch commands.
func newTestApp(t *testing.T, token string) App {
	t.Helper()
	t.Setenv(session.EnvToken, "")
	store := session.NewStore(filepath.Join(t.TempDir(), "token"))
	if token != "" {
		if err := store.Set(token); err != nil {
			t.Fatal(err)
		}
	}
	c := client.New("http://127.0.0.1:1", store, nil)
	a := NewApp(c, store, routes.NewGuard(store))
	a.width = 80
	a.height = 30
	return a
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppInitialRoute(t *testing.T) {
	a := newTestApp(t, "")
	if a.Route() != routes.Welcome {
		t.Errorf("expected Welcome without a token, got %s", a.Route())
	}

	a = newTestApp(t, "abc123")
	if a.Route() != routes.Dashboard {
		t.Errorf("expected Dashboard with a token, got %s", a.Route())
	}
}

func TestAppStartAtProtectedWithoutToken(t *testing.T) {
	a := newTestApp(t, "").StartAt(routes.Profile, "")
	if a.Route() != routes.Login {
		t.Errorf("expected redirect to Login, got %s", a.Route())
	}
}

func TestAppStartAtLoginWithToken(t *testing.T) {
	a := newTestApp(t, "abc123").StartAt(routes.Login, "")
	if a.Route() != routes.Dashboard {
		t.Errorf("expected redirect to Dashboard, got %s", a.Route())
	}
}

func TestAppStartAtPasswordResetDeepLink(t *testing.T) {
	a := newTestApp(t, "").StartAt(routes.PasswordReset, "mailed-token")
	if a.Route() != routes.PasswordReset {
		t.Fatalf("expected PasswordReset, got %s", a.Route())
	}
	if got := a.reset.confirm.value(0); got != "mailed-token" {
		t.Errorf("expected the token prefilled, got %q", got)
	}
}

func TestAppNavigateMsgRunsGuard(t *testing.T) {
	a := newTestApp(t, "")
	model, _ := a.Update(navigateMsg{target: routes.History})
	a = model.(App)
	if a.Route() != routes.Login {
		t.Errorf("expected guard redirect to Login, got %s", a.Route())
	}

	// Authenticated, the entry form redirects the other way.
	a = newTestApp(t, "abc123")
	model, _ = a.Update(navigateMsg{target: routes.Login})
	a = model.(App)
	if a.Route() != routes.Dashboard {
		t.Errorf("expected guard redirect to Dashboard, got %s", a.Route())
	}
}

func TestAppSessionInvalidatedRedirectsToLogin(t *testing.T) {
	a := newTestApp(t, "abc123")
	a.me = &domain.Patient{FirstName: "Ada"}
	if a.Route() != routes.Dashboard {
		t.Fatalf("expected Dashboard to start, got %s", a.Route())
	}

	model, _ := a.Update(sessionInvalidatedMsg{})
	a = model.(App)
	if a.Route() != routes.Login {
		t.Errorf("expected Login after invalidation, got %s", a.Route())
	}
	if a.me != nil {
		t.Error("expected the cached profile to be dropped")
	}
}

func TestAppSessionInvalidatedWhileOnLogin(t *testing.T) {
	a := newTestApp(t, "").StartAt(routes.Login, "")
	a.login.form.fields[0].value = "typed@example.com"

	model, _ := a.Update(sessionInvalidatedMsg{})
	a = model.(App)
	if a.Route() != routes.Login {
		t.Fatalf("expected to stay on Login, got %s", a.Route())
	}
	// No remount: what the user typed survives.
	if got := a.login.form.value(0); got != "typed@example.com" {
		t.Errorf("expected the form untouched, got %q", got)
	}
}

func TestAppTabSwitching(t *testing.T) {
	tests := []struct {
		key  string
		want routes.Route
	}{
		{"2", routes.Bookings},
		{"3", routes.History},
		{"4", routes.Profile},
		{"1", routes.Dashboard},
	}
	a := newTestApp(t, "abc123")
	for _, tc := range tests {
		model, _ := a.Update(keyRunes(tc.key))
		a = model.(App)
		if a.Route() != tc.want {
			t.Errorf("after key %q: expected %s, got %s", tc.key, tc.want, a.Route())
		}
	}
}

func TestAppNavKeysInactiveOnPublicRoutes(t *testing.T) {
	a := newTestApp(t, "")
	model, _ := a.Update(keyRunes("2"))
	a = model.(App)
	if a.Route() != routes.Welcome {
		t.Errorf("expected Welcome, got %s", a.Route())
	}
}

func TestAppLogout(t *testing.T) {
	a := newTestApp(t, "abc123")
	a.me = &domain.Patient{FirstName: "Ada"}

	model, _ := a.Update(keyRunes("l"))
	a = model.(App)
	if a.Route() != routes.Welcome {
		t.Errorf("expected Welcome after logout, got %s", a.Route())
	}
	if a.store.Present() {
		t.Error("expected the token cleared on logout")
	}
	if a.me != nil {
		t.Error("expected the cached profile dropped on logout")
	}
}

func TestAppWelcomeShortcuts(t *testing.T) {
	a := newTestApp(t, "")
	_, cmd := a.Update(keyRunes("r"))
	if cmd == nil {
		t.Fatal("expected a navigation command on 'r'")
	}
	msg, ok := cmd().(navigateMsg)
	if !ok || msg.target != routes.Register {
		t.Errorf("expected navigateMsg to Register, got %#v", msg)
	}
}

func TestAppHelpOverlay(t *testing.T) {
	a := newTestApp(t, "")
	model, _ := a.Update(keyRunes("h"))
	a = model.(App)
	if !a.helpOpen {
		t.Fatal("expected the help overlay to open on 'h'")
	}

	view := a.View()
	if !strings.Contains(view, "u-health") {
		t.Errorf("expected help links in the overlay, got:\n%s", view)
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)
	if a.helpOpen {
		t.Error("expected Esc to close the overlay")
	}
}

func TestAppQuitKeys(t *testing.T) {
	a := newTestApp(t, "")
	if _, cmd := a.Update(keyRunes("q")); cmd == nil {
		t.Error("expected quit command on 'q'")
	}
	if _, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Error("expected quit command on ctrl+c")
	}
}

func TestAppEditingSuspendsGlobalKeys(t *testing.T) {
	a := newTestApp(t, "").StartAt(routes.Login, "")

	model, cmd := a.Update(keyRunes("q"))
	a = model.(App)
	if cmd != nil {
		t.Fatal("expected 'q' to be typed, not to quit")
	}
	if got := a.login.form.value(0); got != "q" {
		t.Errorf("expected 'q' in the focused field, got %q", got)
	}
}

func TestAppProfileBadge(t *testing.T) {
	a := newTestApp(t, "abc123")
	a.me = &domain.Patient{FirstName: "Ada", LastName: "Nkosi", Email: "ada@example.com"}

	view := a.View()
	if !strings.Contains(view, "Ada Nkosi") {
		t.Errorf("expected the badge to show the name, got:\n%s", view)
	}
	if !strings.Contains(view, "ada@example.com") {
		t.Errorf("expected the badge to show the email, got:\n%s", view)
	}
}

func TestAppWindowSizePropagates(t *testing.T) {
	a := newTestApp(t, "")
	model, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	a = model.(App)
	if a.width != 120 || a.height != 40 {
		t.Errorf("expected 120x40, got %dx%d", a.width, a.height)
	}
	if a.login.width != 120 {
		t.Errorf("expected the size to reach subviews, got %d", a.login.width)
	}
}
