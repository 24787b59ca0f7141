package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/U-Health-Project-WS2026/U-Health-FE/internal/routes"
	"github.com/U-Health-Project-WS2026/U-Health-FE/pkg/domain"
)

func loadedHistoryModel(treatments ...domain.Treatment) historyModel {
	m := newHistoryModel(nil)
	m, _ = m.Update(treatmentsLoadedMsg{treatments: treatments})
	return m
}

func TestHistoryLoaded(t *testing.T) {
	m := loadedHistoryModel(
		makeTreatment("Annual check-up", "consultation", 30),
		makeTreatment("Blood panel", "lab-result", 10),
	)

	view := m.View()
	if !strings.Contains(view, "Annual check-up") || !strings.Contains(view, "Blood panel") {
		t.Errorf("expected both records listed, got:\n%s", view)
	}
	if !strings.Contains(view, "[consultation]") {
		t.Errorf("expected the category badge, got:\n%s", view)
	}
}

func TestHistoryError(t *testing.T) {
	m := newHistoryModel(nil)
	m, _ = m.Update(treatmentsLoadedMsg{err: errors.New("boom")})

	if !strings.Contains(m.View(), "could not load your history") {
		t.Errorf("expected the error state, got:\n%s", m.View())
	}
}

func TestHistorySearch(t *testing.T) {
	m := loadedHistoryModel(
		makeTreatment("Annual check-up", "consultation", 30),
		makeTreatment("Blood panel", "lab-result", 10),
	)

	m, _ = m.Update(keyRunes("/"))
	if !m.editing() {
		t.Fatal("expected search mode to capture keys")
	}
	for _, r := range "blood" {
		m, _ = m.Update(keyRunes(string(r)))
	}

	visible := m.visible()
	if len(visible) != 1 || visible[0].Title != "Blood panel" {
		t.Fatalf("expected only the matching record, got %d", len(visible))
	}

	view := m.View()
	if strings.Contains(view, "Annual check-up") {
		t.Errorf("expected non-matches hidden, got:\n%s", view)
	}

	// Enter leaves search mode but keeps the filter.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.editing() {
		t.Error("expected browse mode after enter")
	}
	if len(m.visible()) != 1 {
		t.Error("expected the filter kept after enter")
	}
}

func TestHistorySearchMatchesDoctorAndCategory(t *testing.T) {
	m := loadedHistoryModel(makeTreatment("Annual check-up", "consultation", 30))
	m.search = "dlamini"
	if len(m.visible()) != 1 {
		t.Error("expected a doctor-name match")
	}
	m.search = "consult"
	if len(m.visible()) != 1 {
		t.Error("expected a category match")
	}
	m.search = "xyz"
	if len(m.visible()) != 0 {
		t.Error("expected no match")
	}
}

func TestHistoryDateRangeForm(t *testing.T) {
	m := loadedHistoryModel()
	m, _ = m.Update(keyRunes("d"))
	if !m.editing() {
		t.Fatal("expected the date form to capture keys")
	}

	// Garbage dates are rejected client-side.
	m.dateForm.fields[0].value = "not-a-date"
	m.dateForm.fields[1].value = "2026-12-31"
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("expected no query for an invalid date")
	}
	if !strings.Contains(m.View(), "dates must look like") {
		t.Errorf("expected the format hint, got:\n%s", m.View())
	}

	m.dateForm.fields[0].value = "2026-01-01"
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a range query command")
	}
	if m.editing() {
		t.Error("expected browse mode while the query runs")
	}
}

func TestHistoryDateFilterTitle(t *testing.T) {
	m := newHistoryModel(nil)
	m, _ = m.Update(treatmentsLoadedMsg{treatments: []domain.Treatment{makeTreatment("Blood panel", "lab-result", 10)}, filtered: true})

	if !strings.Contains(m.View(), "date filter") {
		t.Errorf("expected the filtered title, got:\n%s", m.View())
	}
}

func TestHistoryOpenDetail(t *testing.T) {
	rec := makeTreatment("Annual check-up", "consultation", 30)
	m := loadedHistoryModel(rec)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a navigation command on enter")
	}
	msg, ok := cmd().(navigateMsg)
	if !ok || msg.target != routes.HistoryDetail {
		t.Fatalf("expected navigateMsg to HistoryDetail, got %#v", msg)
	}
	if msg.param != rec.ID.String() {
		t.Errorf("expected the record ID as param, got %q", msg.param)
	}
}

func TestHistoryEmptyStates(t *testing.T) {
	m := loadedHistoryModel()
	if !strings.Contains(m.View(), "no treatment records") {
		t.Errorf("expected the empty hint, got:\n%s", m.View())
	}

	m = loadedHistoryModel(makeTreatment("Annual check-up", "consultation", 30))
	m.search = "nothing-matches-this"
	if !strings.Contains(m.View(), "nothing matches") {
		t.Errorf("expected the no-match hint, got:\n%s", m.View())
	}
}
