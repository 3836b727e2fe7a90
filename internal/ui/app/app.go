// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the top-level Bubble Tea model: it gates pages on
// auth state and routes between them.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amaliw/somo-tui/internal/api"
	"github.com/amaliw/somo-tui/internal/auth"
	"github.com/amaliw/somo-tui/internal/config"
	"github.com/amaliw/somo-tui/internal/draft"
	"github.com/amaliw/somo-tui/internal/ui"
	"github.com/amaliw/somo-tui/internal/ui/components"
	"github.com/amaliw/somo-tui/internal/ui/create"
	"github.com/amaliw/somo-tui/internal/ui/createvideo"
	"github.com/amaliw/somo-tui/internal/ui/lesson"
	"github.com/amaliw/somo-tui/internal/ui/library"
	"github.com/amaliw/somo-tui/internal/ui/styles"
)

// signInDoneMsg reports the interactive sign-in outcome.
type signInDoneMsg struct {
	err error
}

// Model is the application root.
type Model struct {
	cfg    *config.Config
	theme  *styles.Theme
	store  *auth.Store
	client *api.Client
	drafts *draft.Store
	sessCh chan *auth.Session

	session   *auth.Session
	signingIn bool
	signInErr string

	page        ui.Page
	library     library.Model
	create      create.Model
	createVideo createvideo.Model
	lesson      *lesson.Model

	width  int
	height int
}

// New creates the application model. sessCh receives session-change
// notifications from the auth store's subscription.
func New(cfg *config.Config, theme *styles.Theme, store *auth.Store, client *api.Client, drafts *draft.Store, sessCh chan *auth.Session) Model {
	return Model{
		cfg:         cfg,
		theme:       theme,
		store:       store,
		client:      client,
		drafts:      drafts,
		sessCh:      sessCh,
		session:     store.Session(),
		page:        ui.PageLibrary,
		library:     library.New(theme, client),
		create:      create.New(theme, client),
		createVideo: createvideo.New(theme, client),
	}
}

// Init starts the session listener and, when already signed in, the
// initial library load.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.listenForSession()}
	if m.session != nil {
		cmds = append(cmds, m.library.Init())
	}
	return tea.Batch(cmds...)
}

// listenForSession re-arms the session-change pump. Each notification
// from the store becomes one message in the event loop.
func (m Model) listenForSession() tea.Cmd {
	ch := m.sessCh
	return func() tea.Msg {
		return ui.SessionChangedMsg{Session: <-ch}
	}
}

// Update routes messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.library.SetSize(msg.Width, msg.Height)
		m.create.SetSize(msg.Width, msg.Height)
		m.createVideo.SetSize(msg.Width, msg.Height)
		if m.lesson != nil {
			m.lesson.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m.quit()
		}
		if m.session == nil {
			return m.handleGateKey(msg)
		}
		if m.page == ui.PageLibrary && msg.String() == "q" {
			return m.quit()
		}

	case ui.SessionChangedMsg:
		wasSignedIn := m.session != nil
		m.session = msg.Session
		cmds := []tea.Cmd{m.listenForSession()}
		if m.session != nil && !wasSignedIn {
			m.signInErr = ""
			cmds = append(cmds, m.library.Init())
		}
		return m, tea.Batch(cmds...)

	case signInDoneMsg:
		m.signingIn = false
		if msg.err != nil {
			m.signInErr = msg.err.Error()
		}
		return m, nil

	case ui.NavigateMsg:
		return m.navigate(msg)
	}

	return m.updatePage(msg)
}

// handleGateKey handles keys on the sign-in gate.
func (m Model) handleGateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "s":
		if m.signingIn {
			return m, nil
		}
		m.signingIn = true
		m.signInErr = ""
		store := m.store
		return m, func() tea.Msg {
			return signInDoneMsg{err: store.SignIn(context.Background())}
		}
	}
	return m, nil
}

// navigate switches pages, persisting any lesson draft on the way out.
func (m Model) navigate(msg ui.NavigateMsg) (tea.Model, tea.Cmd) {
	if m.lesson != nil && msg.To != ui.PageLesson {
		m.lesson.PersistDraft()
		m.lesson = nil
	}

	m.page = msg.To
	switch msg.To {
	case ui.PageLibrary:
		m.library = library.New(m.theme, m.client)
		m.library.SetSize(m.width, m.height)
		return m, m.library.Init()
	case ui.PageCreate:
		m.create = create.New(m.theme, m.client)
		m.create.SetSize(m.width, m.height)
		return m, m.create.Init()
	case ui.PageCreateVideo:
		m.createVideo = createvideo.New(m.theme, m.client)
		m.createVideo.SetSize(m.width, m.height)
		return m, m.createVideo.Init()
	case ui.PageLesson:
		page := lesson.New(m.theme, m.client, m.drafts, m.cfg.UI.GlamourStyle, msg.LessonID)
		page.SetSize(m.width, m.height)
		m.lesson = &page
		return m, page.Init()
	}
	return m, nil
}

// updatePage forwards a message to the active page.
func (m Model) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}
	var cmd tea.Cmd
	switch m.page {
	case ui.PageLibrary:
		m.library, cmd = m.library.Update(msg)
	case ui.PageCreate:
		m.create, cmd = m.create.Update(msg)
	case ui.PageCreateVideo:
		m.createVideo, cmd = m.createVideo.Update(msg)
	case ui.PageLesson:
		if m.lesson != nil {
			page, c := m.lesson.Update(msg)
			m.lesson = &page
			cmd = c
		}
	}
	return m, cmd
}

// quit persists any unsaved lesson draft before shutting down.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.lesson != nil {
		m.lesson.PersistDraft()
	}
	return m, tea.Quit
}

// View renders the gate or the active page.
func (m Model) View() string {
	if m.store.Loading() {
		return m.theme.Hint.Render("Loading session...")
	}
	if m.session == nil {
		gate := components.SignInPrompt(m.theme, "create and browse lesson plans")
		if m.signingIn {
			gate += "\n" + m.theme.Hint.Render("Waiting for the browser sign-in to finish...")
		}
		if m.signInErr != "" {
			gate += "\n" + m.theme.Error.Render(m.signInErr)
		}
		return gate
	}

	switch m.page {
	case ui.PageCreate:
		return m.create.View()
	case ui.PageCreateVideo:
		return m.createVideo.View()
	case ui.PageLesson:
		if m.lesson != nil {
			return m.lesson.View()
		}
	}
	return m.library.View()
}
