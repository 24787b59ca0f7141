package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/U-Health-Project-WS2026/U-Health-FE/internal/routes"
	"github.com/U-Health-Project-WS2026/U-Health-FE/pkg/client"
	"github.com/U-Health-Project-WS2026/U-Health-FE/pkg/domain"
)

// -- messages --

type treatmentLoadedMsg struct {
	treatment *domain.Treatment
	err       error
}

type refCopiedMsg struct{ err error }

// detailModel shows a single treatment record.
type detailModel struct {
	client    *client.Client
	treatment *domain.Treatment
	loading   bool
	statusMsg string
	errMsg    string
	width     int
	height    int
}

func newDetailModel(c *client.Client) detailModel {
	return detailModel{client: c}
}

// load fetches the treatment behind /history/:id.
func (m detailModel) load(id string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return treatmentLoadedMsg{err: err}
		}
		t, err := c.Treatment(context.Background(), parsed)
		return treatmentLoadedMsg{treatment: t, err: err}
	}
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case treatmentLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = "could not load this record, please try again later"
			return m, nil
		}
		m.errMsg = ""
		m.treatment = msg.treatment
		return m, nil

	case refCopiedMsg:
		if msg.err != nil {
			m.statusMsg = "copy failed"
		} else {
			m.statusMsg = "copied!"
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace":
			return m, navigate(routes.History)
		case "c":
			if m.treatment != nil {
				ref := m.treatment.Reference
				if ref == "" {
					ref = m.treatment.ID.String()
				}
				return m, func() tea.Msg {
					return refCopiedMsg{err: clipboard.WriteAll(ref)}
				}
			}
		}
	}
	return m, nil
}

func (m detailModel) View() string {
	var sb strings.Builder

	if m.errMsg != "" {
		sb.WriteString("\n   " + errStyle.Render(m.errMsg) + "\n")
		return sb.String()
	}
	if m.treatment == nil {
		sb.WriteString("\n   " + dimStyle.Render("loading record...") + "\n")
		return sb.String()
	}

	t := m.treatment
	sb.WriteString("\n " + CategoryStyle(t.Category).Render("["+t.Category+"]") + " " + selectedStyle.Render(t.Title) + "\n")

	meta := []string{formatDate(t.TreatedAt), t.DoctorName}
	if t.Department != "" {
		meta = append(meta, t.Department)
	}
	if t.Reference != "" {
		meta = append(meta, t.Reference)
	}
	sb.WriteString("   " + metaStyle.Render(strings.Join(meta, " · ")) + "\n")

	if m.statusMsg != "" {
		sb.WriteString("\n   " + okStyle.Render(m.statusMsg) + "\n")
	}

	if t.Summary != "" {
		sb.WriteString("\n " + sectionHeaderStyle.Render("── SUMMARY ──") + "\n")
		sb.WriteString("   " + normalStyle.Render(t.Summary) + "\n")
	}
	if t.Details != "" {
		sb.WriteString("\n " + sectionHeaderStyle.Render("── DETAILS ──") + "\n")
		for _, line := range strings.Split(t.Details, "\n") {
			sb.WriteString("   " + normalStyle.Render(line) + "\n")
		}
	}
	if len(t.Medications) > 0 {
		sb.WriteString("\n " + sectionHeaderStyle.Render("── MEDICATIONS ──") + "\n")
		for _, med := range t.Medications {
			sb.WriteString("   " + accentStyle.Render("•") + " " + normalStyle.Render(med) + "\n")
		}
	}
	return sb.String()
}
