package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/U-Health-Project-WS2026/U-Health-FE/pkg/client"
	"github.com/U-Health-Project-WS2026/U-Health-FE/pkg/domain"
)

// bookingState is the state machine for slot interactions.
type bookingState int

const (
	bkNormal     bookingState = iota
	bkConfirming              // booking confirmation on an open slot
	bkCancelling              // cancel confirmation on a booked slot
)

// bookingSection identifies which list the cursor is in.
type bookingSection int

const (
	sectionOpen bookingSection = iota
	sectionMine
)

// -- messages --

type slotsLoadedMsg struct {
	open   []domain.Slot
	booked []domain.Slot
	err    error
}

type bookDoneMsg struct {
	slot *domain.Slot
	err  error
}

type cancelDoneMsg struct {
	id  uuid.UUID
	err error
}

// -- model --

type bookingsModel struct {
	client    *client.Client
	open      []domain.Slot
	booked    []domain.Slot
	loaded    bool
	state     bookingState
	section   bookingSection
	openCur   int
	mineCur   int
	statusMsg string
	errMsg    string
	width     int
	height    int
}

func newBookingsModel(c *client.Client) bookingsModel {
	return bookingsModel{client: c}
}

func (m bookingsModel) Init() tea.Cmd {
	return m.load()
}

func (m bookingsModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		open, err := c.ListSlots(context.Background())
		if err != nil {
			return slotsLoadedMsg{err: err}
		}
		booked, err := c.BookedSlots(context.Background())
		if err != nil {
			return slotsLoadedMsg{open: open, err: err}
		}
		return slotsLoadedMsg{open: open, booked: booked}
	}
}

func (m bookingsModel) Update(msg tea.Msg) (bookingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case slotsLoadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.errMsg = "could not load the calendar, please try again later"
			return m, nil
		}
		m.errMsg = ""
		m.open = sortSlots(msg.open)
		m.booked = sortSlots(msg.booked)
		if m.openCur >= len(m.open) {
			m.openCur = 0
		}
		if m.mineCur >= len(m.booked) {
			m.mineCur = 0
		}
		return m, nil

	case bookDoneMsg:
		m.state = bkNormal
		if msg.err != nil {
			if client.IsValidation(msg.err) {
				m.statusMsg = ""
				m.errMsg = client.AsAPIError(msg.err).Message
			} else {
				m.errMsg = "booking failed, please try again later"
			}
			return m, nil
		}
		m.errMsg = ""
		if msg.slot != nil && msg.slot.Reference != "" {
			m.statusMsg = "booked! reference " + msg.slot.Reference
		} else {
			m.statusMsg = "booked!"
		}
		return m, m.load()

	case cancelDoneMsg:
		m.state = bkNormal
		if msg.err != nil {
			m.errMsg = "cancellation failed, please try again later"
			return m, nil
		}
		m.errMsg = ""
		m.statusMsg = "appointment cancelled"
		// Remove locally; the reload confirms.
		for i, s := range m.booked {
			if s.ID == msg.id {
				m.booked = append(m.booked[:i], m.booked[i+1:]...)
				break
			}
		}
		if m.mineCur >= len(m.booked) && m.mineCur > 0 {
			m.mineCur = len(m.booked) - 1
		}
		return m, m.load()

	case tea.KeyMsg:
		m.statusMsg = ""
		return m.handleKey(msg)
	}
	return m, nil
}

func (m bookingsModel) handleKey(msg tea.KeyMsg) (bookingsModel, tea.Cmd) {
	switch m.state {
	case bkConfirming:
		switch msg.String() {
		case "y", "Y":
			if m.openCur < len(m.open) {
				id := m.open[m.openCur].ID
				c := m.client
				return m, func() tea.Msg {
					slot, err := c.BookSlot(context.Background(), id)
					return bookDoneMsg{slot: slot, err: err}
				}
			}
			m.state = bkNormal
		case "n", "N", "esc":
			m.state = bkNormal
		}
		return m, nil

	case bkCancelling:
		switch msg.String() {
		case "y", "Y":
			if m.mineCur < len(m.booked) {
				id := m.booked[m.mineCur].ID
				c := m.client
				return m, func() tea.Msg {
					err := c.CancelBooking(context.Background(), id)
					return cancelDoneMsg{id: id, err: err}
				}
			}
			m.state = bkNormal
		case "n", "N", "esc":
			m.state = bkNormal
		}
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		m.navDown()
	case "k", "up":
		m.navUp()
	case "enter":
		if m.section == sectionOpen && m.openCur < len(m.open) {
			m.state = bkConfirming
		}
	case "c", "x":
		if m.section == sectionMine && m.mineCur < len(m.booked) {
			m.state = bkCancelling
		}
	case "r":
		m.loaded = false
		return m, m.load()
	}
	return m, nil
}

func (m *bookingsModel) navDown() {
	switch m.section {
	case sectionOpen:
		if m.openCur < len(m.open)-1 {
			m.openCur++
		} else if len(m.booked) > 0 {
			m.section = sectionMine
			m.mineCur = 0
		}
	case sectionMine:
		if m.mineCur < len(m.booked)-1 {
			m.mineCur++
		}
	}
}

func (m *bookingsModel) navUp() {
	switch m.section {
	case sectionOpen:
		if m.openCur > 0 {
			m.openCur--
		}
	case sectionMine:
		if m.mineCur > 0 {
			m.mineCur--
		} else if len(m.open) > 0 {
			m.section = sectionOpen
			m.openCur = len(m.open) - 1
		}
	}
}

func (m bookingsModel) helpKeys() string {
	switch m.state {
	case bkConfirming, bkCancelling:
		return helpEntry("y", "confirm") + "  " + helpEntry("n", "keep")
	default:
		if m.section == sectionMine {
			return helpEntry("j/k", "nav") + "  " + helpEntry("c", "cancel appt") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("q", "quit")
		}
		return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "book") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("q", "quit")
	}
}

// sortSlots orders slots chronologically for the day-grouped listing.
func sortSlots(slots []domain.Slot) []domain.Slot {
	out := make([]domain.Slot, len(slots))
	copy(out, slots)
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out
}

func (m bookingsModel) View() string {
	var sb strings.Builder

	if !m.loaded {
		sb.WriteString("\n   " + dimStyle.Render("loading the calendar...") + "\n")
		return sb.String()
	}

	if m.statusMsg != "" {
		sb.WriteString("\n " + okStyle.Render(m.statusMsg) + "\n")
	}
	if m.errMsg != "" {
		sb.WriteString("\n " + errStyle.Render(m.errMsg) + "\n")
	}

	sb.WriteString(m.viewOpenSection())
	sb.WriteString(m.viewMineSection())
	return sb.String()
}

func (m bookingsModel) viewOpenSection() string {
	var sb strings.Builder
	sb.WriteString("\n " + sectionHeaderStyle.Render(fmt.Sprintf("── OPEN SLOTS %d ──", len(m.open))) + "\n")

	if len(m.open) == 0 {
		sb.WriteString("   " + dimStyle.Render("no open slots right now · press r to refresh") + "\n")
		return sb.String()
	}

	var lastDay string
	for i, slot := range m.open {
		day := formatDay(slot.StartsAt)
		if day != lastDay {
			sb.WriteString("   " + warnStyle.Render(day) + "\n")
			lastDay = day
		}

		isActive := i == m.openCur && m.section == sectionOpen
		cursor := "  "
		if isActive {
			cursor = accentStyle.Render("▸") + " "
		}

		line := normalStyle.Render(formatClock(slot.StartsAt)+"–"+formatClock(slot.EndsAt)) + "  " +
			normalStyle.Render(slot.DoctorName)
		if isActive {
			line = selectedStyle.Render(formatClock(slot.StartsAt)+"–"+formatClock(slot.EndsAt)) + "  " +
				selectedStyle.Render(slot.DoctorName)
		}
		if slot.Specialty != "" {
			line += dimStyle.Render(" · "+slot.Specialty)
		}
		sb.WriteString("   " + cursor + line + "\n")

		if isActive && m.state == bkConfirming {
			sb.WriteString("     " + accentStyle.Render("book this slot? ") +
				accentStyle.Render("y") + dimStyle.Render("/") + dimStyle.Render("n") + "\n")
		}
	}
	return sb.String()
}

func (m bookingsModel) viewMineSection() string {
	var sb strings.Builder
	sb.WriteString("\n " + sectionHeaderStyle.Render(fmt.Sprintf("── MY APPOINTMENTS %d ──", len(m.booked))) + "\n")

	if len(m.booked) == 0 {
		sb.WriteString("   " + dimStyle.Render("nothing booked yet") + "\n")
		return sb.String()
	}

	now := time.Now()
	for i, slot := range m.booked {
		isActive := i == m.mineCur && m.section == sectionMine
		cursor := "  "
		if isActive {
			cursor = accentStyle.Render("▸") + " "
		}

		when := formatDay(slot.StartsAt) + " " + formatClock(slot.StartsAt)
		line := normalStyle.Render(when) + "  " + normalStyle.Render(slot.DoctorName)
		if isActive {
			line = selectedStyle.Render(when) + "  " + selectedStyle.Render(slot.DoctorName)
		}
		if slot.Reference != "" {
			line += metaStyle.Render(" · "+slot.Reference)
		}
		if !slot.Upcoming(now) {
			line += dimStyle.Render(" (past)")
		}
		sb.WriteString("   " + cursor + line + "\n")

		if isActive && m.state == bkCancelling {
			sb.WriteString("     " + errStyle.Render("cancel this appointment? ") +
				accentStyle.Render("y") + dimStyle.Render("/") + dimStyle.Render("n") + "\n")
		}
	}
	return sb.String()
}
