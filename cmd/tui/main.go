package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/updoc-health/updoc/internal/domain"
	"github.com/updoc-health/updoc/internal/tui"
)

func main() {
	server := pflag.String("server", defaultServer(), "updoc API base URL")
	username := pflag.String("username", "", "account username (created on first use)")
	password := pflag.String("password", "", "account password")
	role := pflag.String("role", string(domain.RolePatient), "role for new accounts: patient or doctor")
	pflag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: updoc-tui --username NAME --password SECRET [--role doctor] [--server URL]")
		os.Exit(2)
	}
	if !domain.Role(*role).Valid() {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		os.Exit(2)
	}

	client := tui.NewClient(*server)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	user, err := client.SignupOrLogin(ctx, *username, *password, domain.Role(*role))
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
		os.Exit(1)
	}

	program := tea.NewProgram(tui.NewModel(client, user), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func defaultServer() string {
	if url := os.Getenv("UPDOC_API_URL"); url != "" {
		return url
	}
	return "http://localhost:3001"
}
