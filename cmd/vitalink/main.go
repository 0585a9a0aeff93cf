package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/vitalink-health/vitalink/internal/notify"
	"github.com/vitalink-health/vitalink/internal/session"
	"github.com/vitalink-health/vitalink/internal/store"
	"github.com/vitalink-health/vitalink/internal/tui"
	"github.com/vitalink-health/vitalink/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// resolveAPIURL returns the backend base URL, preferring the environment.
func resolveAPIURL() string {
	if u := os.Getenv("VITALINK_API_URL"); u != "" {
		return u
	}
	return "https://api.vitalink.health"
}

func run() error {
	// A local .env is a developer convenience; missing is fine.
	godotenv.Load() //nolint:errcheck

	apiURL := resolveAPIURL()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("vitalink " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "logout":
			return runLogout(apiURL)
		}
	}

	dir, err := store.DefaultDir()
	if err != nil {
		return err
	}
	st := store.NewFileStore(dir)

	c := client.New(apiURL, "")
	center := notify.NewCenter()
	sess := session.NewManager(c, st, center)

	// Restore a previous session if the stored token is still good. Any
	// failure here simply lands the user on the sign-in form.
	sess.Initialize(context.Background())

	app := tui.NewApp(c, sess, center)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// runLogout ends the session from the command line, without the TUI.
// Clearing local credentials succeeds even when the backend is down.
func runLogout(apiURL string) error {
	dir, err := store.DefaultDir()
	if err != nil {
		return err
	}
	st := store.NewFileStore(dir)
	if st.AccessToken() == "" {
		fmt.Println("Not signed in.")
		return nil
	}

	c := client.New(apiURL, st.AccessToken())
	sess := session.NewManager(c, st, notify.NewCenter())
	sess.Logout(context.Background())
	fmt.Println("Signed out.")
	return nil
}

func printHelp() {
	fmt.Print(`vitalink — patient & doctor portal for your terminal

Usage:
  vitalink            launch the portal
  vitalink logout     sign out and clear stored credentials
  vitalink version    print the version
  vitalink help       show this help

Environment:
  VITALINK_API_URL    backend base URL (default https://api.vitalink.health)

Keys:
  1-6                 switch tabs
  b                   open notifications
  q / ctrl+c          quit
`)
}
