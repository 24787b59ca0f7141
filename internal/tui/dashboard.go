package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/U-Health-Project-WS2026/U-Health-FE/pkg/client"
	"github.com/U-Health-Project-WS2026/U-Health-FE/pkg/domain"
)

// dashLoadedMsg carries the bookings + treatments overview fetch.
type dashLoadedMsg struct {
	booked     []domain.Slot
	treatments []domain.Treatment
	err        error
}

type dashboardModel struct {
	client     *client.Client
	me         *domain.Patient
	booked     []domain.Slot
	treatments []domain.Treatment
	loaded     bool
	errMsg     string
	width      int
	height     int
}

func newDashboardModel(c *client.Client) dashboardModel {
	return dashboardModel{client: c}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.load()
}

func (m dashboardModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		booked, err := c.BookedSlots(context.Background())
		if err != nil {
			return dashLoadedMsg{err: err}
		}
		treatments, err := c.Treatments(context.Background())
		if err != nil {
			return dashLoadedMsg{booked: booked, err: err}
		}
		return dashLoadedMsg{booked: booked, treatments: treatments}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
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

	case dashLoadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.errMsg = "could not load your overview, please try again later"
			return m, nil
		}
		m.errMsg = ""
		m.booked = msg.booked
		m.treatments = msg.treatments
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loaded = false
			return m, m.load()
		}
	}
	return m, nil
}

// nextAppointment returns the earliest upcoming booked slot, if any.
func (m dashboardModel) nextAppointment() *domain.Slot {
	now := time.Now()
	var next *domain.Slot
	for i := range m.booked {
		s := &m.booked[i]
		if !s.Upcoming(now) || s.Status == domain.SlotStatusCancelled {
			continue
		}
		if next == nil || s.StartsAt.Before(next.StartsAt) {
			next = s
		}
	}
	return next
}

func (m dashboardModel) View() string {
	var sb strings.Builder

	if m.me != nil {
		sb.WriteString("\n " + selectedStyle.Render("Hello, "+m.me.FullName()+".") + "\n")
	} else {
		sb.WriteString("\n")
	}

	if !m.loaded {
		sb.WriteString("\n   " + dimStyle.Render("loading your overview...") + "\n")
		return sb.String()
	}
	if m.errMsg != "" {
		sb.WriteString("\n   " + errStyle.Render(m.errMsg) + "\n")
		return sb.String()
	}

	// Next appointment
	sb.WriteString("\n " + sectionHeaderStyle.Render("── NEXT APPOINTMENT ──") + "\n")
	if next := m.nextAppointment(); next != nil {
		sb.WriteString("   " + accentStyle.Render(formatDay(next.StartsAt)) + " " + selectedStyle.Render(formatClock(next.StartsAt)) + "\n")
		line := "   " + normalStyle.Render(next.DoctorName)
		if next.Specialty != "" {
			line += dimStyle.Render(" · "+next.Specialty)
		}
		if next.Location != "" {
			line += dimStyle.Render(" · "+next.Location)
		}
		sb.WriteString(line + "\n")
	} else {
		sb.WriteString("   " + dimStyle.Render("no upcoming appointments · press 2 to book one") + "\n")
	}

	// Counters
	upcoming := 0
	now := time.Now()
	for _, s := range m.booked {
		if s.Upcoming(now) && s.Status != domain.SlotStatusCancelled {
			upcoming++
		}
	}
	sb.WriteString("\n " + sectionHeaderStyle.Render("── AT A GLANCE ──") + "\n")
	sb.WriteString("   " + metaStyle.Render(fmt.Sprintf("%d upcoming appointments · %d treatment records", upcoming, len(m.treatments))) + "\n")

	// Recent treatments
	sb.WriteString("\n " + sectionHeaderStyle.Render("── RECENT TREATMENTS ──") + "\n")
	if len(m.treatments) == 0 {
		sb.WriteString("   " + dimStyle.Render("no treatment records yet") + "\n")
	} else {
		maxRows := len(m.treatments)
		if maxRows > 3 {
			maxRows = 3
		}
		for i := 0; i < maxRows; i++ {
			t := m.treatments[i]
			sb.WriteString("   " + CategoryStyle(t.Category).Render("["+t.Category+"]") + " " +
				normalStyle.Render(truncStr(t.Title, 40)) + "  " +
				metaStyle.Render(formatDate(t.TreatedAt)) + "\n")
		}
		sb.WriteString("   " + metaStyle.Render("press 3 for the full history") + "\n")
	}

	return sb.String()
}
