// somo - a terminal client for the somo lesson studio.
//
// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amaliw/somo-tui/internal/api"
	"github.com/amaliw/somo-tui/internal/auth"
	"github.com/amaliw/somo-tui/internal/cli"
	"github.com/amaliw/somo-tui/internal/config"
	"github.com/amaliw/somo-tui/internal/draft"
	"github.com/amaliw/somo-tui/internal/ui/app"
	"github.com/amaliw/somo-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.4.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI()
	case cli.CmdLogin:
		cli.HandleLogin(args)
	case cli.CmdLogout:
		cli.HandleLogout(args)
	case cli.CmdStatus:
		cli.HandleStatus(args)
	case cli.CmdList:
		cli.HandleList(args)
	case cli.CmdOpen:
		cli.HandleOpen(args)
	case cli.CmdGenerate:
		cli.HandleGenerate(args)
	case cli.CmdDelete:
		cli.HandleDelete(args)
	case cli.CmdVersion:
		cli.HandleVersion()
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		cli.HandleHelp()
		os.Exit(1)
	}
}

// runTUI wires the session store, API client, and draft store into the
// full-screen application and blocks until the user quits.
func runTUI() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store := auth.NewStore(auth.Config{
		WebAPIKey:       cfg.Auth.WebAPIKey,
		SignInURL:       cfg.Auth.SignInURL,
		TokenURL:        cfg.Auth.TokenURL,
		CredentialsPath: cfg.Auth.CredentialsPath,
	})
	if err := store.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting session store: %v\n", err)
		os.Exit(1)
	}
	defer store.Stop()

	// Session changes flow through a channel so the event loop sees
	// them as messages rather than callbacks.
	sessCh := make(chan *auth.Session, 4)
	unsubscribe := store.Subscribe(func(sess *auth.Session) {
		select {
		case sessCh <- sess:
		default:
		}
	})
	defer unsubscribe()

	drafts, err := draft.Open(draft.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening draft store: %v\n", err)
		os.Exit(1)
	}
	defer drafts.Close()

	client := api.NewClient(cfg.API.URL, store)
	theme := styles.NewTheme()

	p := tea.NewProgram(
		app.New(cfg, theme, store, client, drafts, sessCh),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running somo: %v\n", err)
		os.Exit(1)
	}
}
