package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/U-Health-Project-WS2026/U-Health-FE/internal/config"
	"github.com/U-Health-Project-WS2026/U-Health-FE/internal/routes"
	"github.com/U-Health-Project-WS2026/U-Health-FE/internal/session"
	"github.com/U-Health-Project-WS2026/U-Health-FE/internal/tui"
	"github.com/U-Health-Project-WS2026/U-Health-FE/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("uhealth " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "logout":
			return runLogout(cfg)
		case "password-reset":
			if len(os.Args) < 3 {
				return fmt.Errorf("usage: uhealth password-reset <token> [email]")
			}
			return launch(cfg, routes.PasswordReset, os.Args[2])
		}
	}

	return launch(cfg, routes.Welcome, "")
}

// launch wires the session store, client and guard together and starts
// the TUI on the given route. The route table is validated before
// anything mounts, so an incomplete table fails the whole start.
func launch(cfg config.Config, start routes.Route, param string) error {
	if err := routes.ValidateTable(); err != nil {
		return err
	}

	log, closeLog := newLogger(cfg)
	defer closeLog()

	store := session.NewStore(cfg.TokenPath())
	c := client.New(cfg.API.BaseURL, store, log)
	c.SetTimeout(cfg.API.Timeout)
	guard := routes.NewGuard(store)

	log.WithFields(logrus.Fields{"base_url": cfg.API.BaseURL, "route": start.String()}).
		Info("starting patient portal")

	app := tui.NewApp(c, store, guard)
	if start != routes.Welcome {
		app = app.StartAt(start, param)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// newLogger builds a file-backed logger; the TUI owns stdout. Falls
// back to a silent logger when the log file cannot be opened.
func newLogger(cfg config.Config) (*logrus.Logger, func()) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(lvl)
	}

	if err := os.MkdirAll(cfg.State.Dir, 0700); err != nil {
		log.SetOutput(nopWriter{})
		return log, func() {}
	}
	f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		log.SetOutput(nopWriter{})
		return log, func() {}
	}
	log.SetOutput(f)
	return log, func() { f.Close() } //nolint:errcheck // best-effort close
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func runLogout(cfg config.Config) error {
	store := session.NewStore(cfg.TokenPath())
	if !store.Present() {
		fmt.Println("Already logged out.")
		return nil
	}
	store.Clear()
	fmt.Println("Logged out.")
	return nil
}

func printHelp() {
	var b strings.Builder
	b.WriteString("\nU-Health patient portal\n\n")
	commands := []struct{ cmd, desc string }{
		{"uhealth", "Open the patient portal"},
		{"uhealth password-reset <token>", "Finish a mailed password reset"},
		{"uhealth logout", "Clear your session"},
		{"uhealth --version", "Show version"},
	}
	for _, c := range commands {
		fmt.Fprintf(&b, "  %-32s %s\n", c.cmd, c.desc)
	}
	b.WriteString("\nConfiguration (env):\n")
	envs := []struct{ key, desc string }{
		{"UHEALTH_API_BASEURL", "Backend origin (default https://api.u-health.app)"},
		{"UHEALTH_API_TIMEOUT", "Request timeout (default 30s)"},
		{"UHEALTH_STATE_DIR", "Token and log location (default ~/.uhealth)"},
		{"UHEALTH_TOKEN", "Session token override"},
	}
	for _, e := range envs {
		fmt.Fprintf(&b, "  %-32s %s\n", e.key, e.desc)
	}
	fmt.Print(b.String())
}
