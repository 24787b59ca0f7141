package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/U-Health-Project-WS2026/U-Health-FE/internal/routes"
	"github.com/U-Health-Project-WS2026/U-Health-FE/pkg/client"
	"github.com/U-Health-Project-WS2026/U-Health-FE/pkg/domain"
)

// historyMode is the input mode of the history view.
type historyMode int

const (
	histBrowse    historyMode = iota
	histSearching             // free-text filter over the loaded list
	histDateRange             // from/to form backed by the date endpoint
)

// -- messages --

type treatmentsLoadedMsg struct {
	treatments []domain.Treatment
	filtered   bool // result of a date-range query, not the full list
	err        error
}

// -- model --

type historyModel struct {
	client     *client.Client
	treatments []domain.Treatment
	loaded     bool
	mode       historyMode
	search     string
	dateForm   form
	cursor     int
	filtered   bool
	errMsg     string
	width      int
	height     int
}

func newHistoryModel(c *client.Client) historyModel {
	return historyModel{
		client: c,
		dateForm: newForm(
			formField{label: "From", placeholder: "2026-01-01"},
			formField{label: "To", placeholder: "2026-12-31"},
		),
	}
}

func (m historyModel) Init() tea.Cmd {
	return m.load()
}

func (m historyModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		treatments, err := c.Treatments(context.Background())
		return treatmentsLoadedMsg{treatments: treatments, err: err}
	}
}

func (m historyModel) loadRange(from, to time.Time) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		treatments, err := c.TreatmentsByDate(context.Background(), from, to)
		return treatmentsLoadedMsg{treatments: treatments, filtered: true, err: err}
	}
}

// editing reports whether the view is consuming printable keys.
func (m historyModel) editing() bool {
	return m.mode == histSearching || m.mode == histDateRange
}

func (m historyModel) Update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case treatmentsLoadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.errMsg = "could not load your history, please try again later"
			return m, nil
		}
		m.errMsg = ""
		m.treatments = msg.treatments
		m.filtered = msg.filtered
		if m.cursor >= len(m.visible()) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m historyModel) handleKey(msg tea.KeyMsg) (historyModel, tea.Cmd) {
	switch m.mode {
	case histSearching:
		switch msg.String() {
		case "enter", "esc":
			m.mode = histBrowse
		default:
			m.search = editRune(m.search, msg.String())
			m.cursor = 0
		}
		return m, nil

	case histDateRange:
		switch msg.String() {
		case "tab", "down":
			m.dateForm.next()
		case "shift+tab", "up":
			m.dateForm.prev()
		case "enter":
			from, errFrom := time.Parse("2006-01-02", m.dateForm.value(0))
			to, errTo := time.Parse("2006-01-02", m.dateForm.value(1))
			if errFrom != nil || errTo != nil {
				m.errMsg = "dates must look like 2026-01-31"
				return m, nil
			}
			m.errMsg = ""
			m.mode = histBrowse
			m.loaded = false
			m.cursor = 0
			return m, m.loadRange(from, to)
		case "esc":
			m.mode = histBrowse
		default:
			m.dateForm.edit(msg.String())
		}
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "/":
		m.mode = histSearching
		m.search = ""
		m.cursor = 0
	case "d":
		m.mode = histDateRange
	case "a":
		// Back to the full, unfiltered list.
		m.search = ""
		m.loaded = false
		m.cursor = 0
		return m, m.load()
	case "r":
		m.loaded = false
		return m, m.load()
	case "enter":
		visible := m.visible()
		if m.cursor < len(visible) {
			return m, navigateTo(routes.HistoryDetail, visible[m.cursor].ID.String())
		}
	}
	return m, nil
}

// visible applies the free-text filter to the loaded list. Matching is
// case-insensitive over title, doctor, category, and summary.
func (m historyModel) visible() []domain.Treatment {
	if m.search == "" {
		return m.treatments
	}
	q := strings.ToLower(m.search)
	var out []domain.Treatment
	for _, t := range m.treatments {
		haystack := strings.ToLower(t.Title + " " + t.DoctorName + " " + t.Category + " " + t.Summary)
		if strings.Contains(haystack, q) {
			out = append(out, t)
		}
	}
	return out
}

func (m historyModel) helpKeys() string {
	switch m.mode {
	case histSearching:
		return helpEntry("enter", "done") + "  " + helpEntry("esc", "cancel")
	case histDateRange:
		return helpEntry("tab", "next") + "  " + helpEntry("enter", "apply") + "  " + helpEntry("esc", "cancel")
	default:
		return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("/", "search") + "  " + helpEntry("d", "dates") + "  " + helpEntry("a", "all") + "  " + helpEntry("q", "quit")
	}
}

func (m historyModel) View() string {
	var sb strings.Builder

	title := "── TREATMENT HISTORY ──"
	if m.filtered {
		title = "── TREATMENT HISTORY (date filter) ──"
	}
	sb.WriteString("\n " + sectionHeaderStyle.Render(title) + "\n")

	if m.mode == histSearching || m.search != "" {
		prompt := inputPromptStyle.Render("/")
		cursor := ""
		if m.mode == histSearching {
			cursor = accentStyle.Render("_")
		}
		sb.WriteString("   " + prompt + " " + m.search + cursor + "\n")
	}

	if m.mode == histDateRange {
		sb.WriteString("\n" + m.dateForm.render())
		if m.errMsg != "" {
			sb.WriteString("\n   " + errStyle.Render(m.errMsg) + "\n")
		}
		return sb.String()
	}

	if !m.loaded {
		sb.WriteString("   " + dimStyle.Render("loading...") + "\n")
		return sb.String()
	}
	if m.errMsg != "" {
		sb.WriteString("   " + errStyle.Render(m.errMsg) + "\n")
		return sb.String()
	}

	visible := m.visible()
	if len(visible) == 0 {
		if m.search != "" {
			sb.WriteString("   " + dimStyle.Render("nothing matches \""+m.search+"\"") + "\n")
		} else {
			sb.WriteString("   " + dimStyle.Render("no treatment records") + "\n")
		}
		return sb.String()
	}

	for i, t := range visible {
		isActive := i == m.cursor
		cursor := "  "
		if isActive {
			cursor = accentStyle.Render("▸") + " "
		}

		titleStr := normalStyle.Render(truncStr(t.Title, 36))
		if isActive {
			titleStr = selectedStyle.Render(truncStr(t.Title, 36))
		}

		sb.WriteString("   " + cursor +
			metaStyle.Render(formatDate(t.TreatedAt)) + "  " +
			CategoryStyle(t.Category).Render(fmt.Sprintf("%-13s", "["+t.Category+"]")) + " " +
			titleStr + dimStyle.Render(" · "+t.DoctorName) + "\n")
	}
	return sb.String()
}
