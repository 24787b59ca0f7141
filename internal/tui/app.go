package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/U-Health-Project-WS2026/U-Health-FE/internal/browser"
	"github.com/U-Health-Project-WS2026/U-Health-FE/internal/routes"
	"github.com/U-Health-Project-WS2026/U-Health-FE/internal/session"
	"github.com/U-Health-Project-WS2026/U-Health-FE/pkg/client"
	"github.com/U-Health-Project-WS2026/U-Health-FE/pkg/domain"
)

// navigateMsg requests a route transition. Every transition, whatever
// view it originates from, is evaluated by the navigation guard before
// the destination mounts.
type navigateMsg struct {
	target routes.Route
	param  string // treatment ID or reset token, when the route takes one
}

func navigate(target routes.Route) tea.Cmd {
	return navigateTo(target, "")
}

func navigateTo(target routes.Route, param string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{target: target, param: param} }
}

// sessionInvalidatedMsg arrives when the HTTP wrapper cleared the token
// after a 401. The app subscribes to the session store's signal channel.
type sessionInvalidatedMsg struct{}

// meLoadedMsg carries the profile fetch result for the header badge.
type meLoadedMsg struct {
	me  *domain.Patient
	err error
}

// App is the root Bubbletea model of the patient portal.
type App struct {
	client *client.Client
	store  *session.Store
	guard  *routes.Guard
	route  routes.Route

	welcome  welcomeModel
	login    loginModel
	register registerModel
	reset    resetModel
	dash     dashboardModel
	bookings bookingsModel
	history  historyModel
	detail   detailModel
	profile  profileModel

	helpOpen   bool
	helpCursor int
	me         *domain.Patient
	width      int
	height     int
	frame      int // logo pulse animation frame
}

// NewApp creates the TUI application. The initial route is resolved
// through the guard: authenticated users land on the dashboard,
// everyone else on the welcome page.
func NewApp(c *client.Client, store *session.Store, guard *routes.Guard) App {
	a := App{
		client:   c,
		store:    store,
		guard:    guard,
		route:    routes.Welcome,
		welcome:  newWelcomeModel(),
		login:    newLoginModel(c),
		register: newRegisterModel(c),
		reset:    newResetModel(c),
		dash:     newDashboardModel(c),
		bookings: newBookingsModel(c),
		history:  newHistoryModel(c),
		detail:   newDetailModel(c),
		profile:  newProfileModel(c),
	}
	if store.Present() {
		a.route = guard.Evaluate(routes.Dashboard).Target
	}
	return a
}

// StartAt mounts the app on a specific route, e.g. the password-reset
// deep link. The guard still has the final word.
func (a App) StartAt(target routes.Route, param string) App {
	dec := a.guard.Evaluate(target)
	a.route = dec.Target
	if dec.Allowed && target == routes.PasswordReset {
		a.reset = a.reset.withToken(param)
	}
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.routeInit(a.route, ""), pulseTickCmd(), a.waitInvalidation())
}

// waitInvalidation subscribes to the session store's invalidation
// channel and surfaces the signal as a message. Re-armed after each
// delivery.
func (a App) waitInvalidation() tea.Cmd {
	ch := a.store.Invalidations()
	return func() tea.Msg {
		<-ch
		return sessionInvalidatedMsg{}
	}
}

func (a App) loadMe() tea.Cmd {
	c := a.client
	return func() tea.Msg {
		me, err := c.Me(context.Background())
		return meLoadedMsg{me: me, err: err}
	}
}

// routeInit returns the mount command for a route that was just
// navigated to.
func (a *App) routeInit(r routes.Route, param string) tea.Cmd {
	var cmds []tea.Cmd
	switch r {
	case routes.Login:
		a.login = newLoginModel(a.client)
	case routes.Register:
		a.register = newRegisterModel(a.client)
	case routes.PasswordReset:
		a.reset = newResetModel(a.client)
		if param != "" {
			a.reset = a.reset.withToken(param)
		}
	case routes.Dashboard:
		cmds = append(cmds, a.dash.Init())
	case routes.Bookings:
		cmds = append(cmds, a.bookings.Init())
	case routes.History:
		cmds = append(cmds, a.history.Init())
	case routes.HistoryDetail:
		a.detail = newDetailModel(a.client)
		a.detail.width, a.detail.height = a.width, a.height
		cmds = append(cmds, a.detail.load(param))
	case routes.Profile:
		cmds = append(cmds, a.profile.Init())
	}
	if routes.Describe(r).RequiresAuth && a.me == nil {
		cmds = append(cmds, a.loadMe())
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// goTo runs the guard for target and mounts the resulting route.
func (a App) goTo(target routes.Route, param string) (App, tea.Cmd) {
	dec := a.guard.Evaluate(target)
	if !dec.Allowed {
		param = "" // the requested destination is discarded, params too
	}
	a.route = dec.Target
	return a, a.routeInit(dec.Target, param)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + nav(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.welcome, _ = a.welcome.Update(bodyMsg)
		a.login, _ = a.login.Update(bodyMsg)
		a.register, _ = a.register.Update(bodyMsg)
		a.reset, _ = a.reset.Update(bodyMsg)
		a.dash, _ = a.dash.Update(bodyMsg)
		a.bookings, _ = a.bookings.Update(bodyMsg)
		a.history, _ = a.history.Update(bodyMsg)
		a.detail, _ = a.detail.Update(bodyMsg)
		a.profile, _ = a.profile.Update(bodyMsg)
		return a, nil

	case pulseTickMsg:
		a.frame++
		return a, pulseTickCmd()

	case sessionInvalidatedMsg:
		// The wrapper already cleared the token; this is the navigation
		// half of the 401 handling. No banner, the login view itself is
		// the message.
		a.me = nil
		rearm := a.waitInvalidation()
		if a.route != routes.Login {
			var cmd tea.Cmd
			a, cmd = a.goTo(routes.Login, "")
			return a, tea.Batch(rearm, cmd)
		}
		return a, rearm

	case navigateMsg:
		var cmd tea.Cmd
		a, cmd = a.goTo(msg.target, msg.param)
		return a, cmd

	case meLoadedMsg:
		if msg.err == nil && msg.me != nil {
			a.me = msg.me
		}
		a.profile, _ = a.profile.Update(msg)
		a.dash, _ = a.dash.Update(msg)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Help overlay captures all keys when open
		if a.helpOpen {
			switch msg.String() {
			case "h", "esc":
				a.helpOpen = false
			case "q":
				return a, tea.Quit
			case "j", "down":
				if a.helpCursor < len(helpItems)-1 {
					a.helpCursor++
				}
			case "k", "up":
				if a.helpCursor > 0 {
					a.helpCursor--
				}
			case "enter":
				item := helpItems[a.helpCursor]
				if item.url != "" {
					browser.Open(item.url) //nolint:errcheck // best-effort browser open
				}
			}
			return a, nil
		}

		if !a.isEditing() {
			switch msg.String() {
			case "h":
				a.helpOpen = true
				a.helpCursor = 0
				return a, nil
			case "q":
				return a, tea.Quit
			}
			if routes.Describe(a.route).ShowNav {
				switch msg.String() {
				case "1":
					if a.route != routes.Dashboard {
						return a.goTo(routes.Dashboard, "")
					}
					return a, nil
				case "2":
					if a.route != routes.Bookings {
						return a.goTo(routes.Bookings, "")
					}
					return a, nil
				case "3":
					if a.route != routes.History {
						return a.goTo(routes.History, "")
					}
					return a, nil
				case "4":
					if a.route != routes.Profile {
						return a.goTo(routes.Profile, "")
					}
					return a, nil
				case "l":
					// Logout: the store owner clears, then back to the
					// public landing page.
					a.store.Clear()
					a.me = nil
					return a.goTo(routes.Welcome, "")
				}
			}
		}
	}

	var cmd tea.Cmd
	switch a.route {
	case routes.Welcome:
		a.welcome, cmd = a.welcome.Update(msg)
	case routes.Login:
		a.login, cmd = a.login.Update(msg)
	case routes.Register:
		a.register, cmd = a.register.Update(msg)
	case routes.PasswordReset:
		a.reset, cmd = a.reset.Update(msg)
	case routes.Dashboard:
		a.dash, cmd = a.dash.Update(msg)
	case routes.Bookings:
		a.bookings, cmd = a.bookings.Update(msg)
	case routes.History:
		a.history, cmd = a.history.Update(msg)
	case routes.HistoryDetail:
		a.detail, cmd = a.detail.Update(msg)
	case routes.Profile:
		a.profile, cmd = a.profile.Update(msg)
	}
	return a, cmd
}

// isEditing reports whether the active view is consuming printable keys,
// which suspends global shortcuts.
func (a App) isEditing() bool {
	switch a.route {
	case routes.Login, routes.Register, routes.PasswordReset:
		return true
	case routes.History:
		return a.history.editing()
	case routes.Profile:
		return a.profile.editing()
	}
	return false
}

// Route exposes the mounted route for tests.
func (a App) Route() routes.Route {
	return a.route
}

func (a App) View() string {
	// Header: centered pulse logo
	logo := renderPulseLogo(a.frame)

	desc := routes.Describe(a.route)

	// Profile badge line below the logo on authenticated pages
	badge := ""
	if desc.ShowProfile && a.me != nil {
		parts := []string{selectedStyle.Render(a.me.FullName()), metaStyle.Render(a.me.Email)}
		if exp, ok := session.PeekExpiry(a.store.Token()); ok {
			parts = append(parts, warnStyle.Render("session until "+exp.Format("15:04")))
		}
		badge = strings.Join(parts, dimStyle.Render(" · "))
	}

	logoWidth := lipgloss.Width(logo)
	logoPad := (a.width - logoWidth) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo
	if badge != "" {
		badgeWidth := lipgloss.Width(badge)
		badgePad := (a.width - badgeWidth) / 2
		if badgePad < 0 {
			badgePad = 0
		}
		header += "\n" + strings.Repeat(" ", badgePad) + badge
	} else {
		header += "\n"
	}

	// Nav bar, only on routes that declare it
	navBar := ""
	if desc.ShowNav {
		navBar = a.renderNav()
	}

	// Body + per-view help bar
	var body, help string
	switch a.route {
	case routes.Welcome:
		body = a.welcome.View()
		help = " " + helpEntry("l", "login") + "  " + helpEntry("r", "register") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	case routes.Login:
		body = a.login.View()
		help = " " + helpEntry("tab", "next") + "  " + helpEntry("enter", "sign in") + "  " + helpEntry("ctrl+f", "forgot password") + "  " + helpEntry("esc", "back")
	case routes.Register:
		body = a.register.View()
		help = " " + helpEntry("tab", "next") + "  " + helpEntry("enter", "create account") + "  " + helpEntry("esc", "back")
	case routes.PasswordReset:
		body = a.reset.View()
		help = " " + helpEntry("tab", "next") + "  " + helpEntry("enter", "submit") + "  " + helpEntry("esc", "back")
	case routes.Dashboard:
		body = a.dash.View()
		help = " " + helpEntry("1-4", "pages") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("l", "logout") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	case routes.Bookings:
		body = a.bookings.View()
		help = " " + helpEntry("1-4", "pages") + "  " + a.bookings.helpKeys()
	case routes.History:
		body = a.history.View()
		help = " " + helpEntry("1-4", "pages") + "  " + a.history.helpKeys()
	case routes.HistoryDetail:
		body = a.detail.View()
		help = " " + helpEntry("c", "copy ref") + "  " + helpEntry("esc", "back") + "  " + helpEntry("q", "quit")
	case routes.Profile:
		body = a.profile.View()
		help = " " + helpEntry("1-4", "pages") + "  " + a.profile.helpKeys()
	}

	if a.helpOpen {
		body = helpView(a.helpCursor)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("esc", "close")
	}

	// Chrome: header(2) + nav(1) + help(1) = 4 lines + body
	chrome := 4
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return header + "\n" + navBar + "\n" + body + "\n" + help
}

// renderNav draws the four-column page bar on authenticated routes.
func (a App) renderNav() string {
	type navEntry struct {
		key  string
		name string
		r    routes.Route
	}
	tabs := []navEntry{
		{"1", "Dashboard", routes.Dashboard},
		{"2", "Bookings", routes.Bookings},
		{"3", "History", routes.History},
		{"4", "Profile", routes.Profile},
	}

	active := a.route
	if active == routes.HistoryDetail {
		active = routes.History
	}

	colWidth := a.width / len(tabs)
	var bar strings.Builder
	for _, t := range tabs {
		var label string
		if t.r == active {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		bar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}
	return bar.String()
}
