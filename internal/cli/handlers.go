// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/amaliw/somo-tui/internal/api"
	"github.com/amaliw/somo-tui/internal/auth"
	"github.com/amaliw/somo-tui/internal/config"
	"github.com/amaliw/somo-tui/internal/model"
	"github.com/amaliw/somo-tui/internal/render"
	"github.com/amaliw/somo-tui/internal/ui/styles"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(styles.TextMuted)
	valueStyle = lipgloss.NewStyle().Foreground(styles.Text)
	okStyle    = lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
)

// setup loads config and starts the session store for a one-shot
// command. The caller must invoke the returned teardown.
func setup() (*config.Config, *auth.Store, *api.Client, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	store := auth.NewStore(auth.Config{
		WebAPIKey:       cfg.Auth.WebAPIKey,
		SignInURL:       cfg.Auth.SignInURL,
		TokenURL:        cfg.Auth.TokenURL,
		CredentialsPath: cfg.Auth.CredentialsPath,
	})
	if err := store.Start(); err != nil {
		return nil, nil, nil, nil, err
	}
	client := api.NewClient(cfg.API.URL, store)
	return cfg, store, client, store.Stop, nil
}

// signalContext returns a context cancelled on Ctrl-C.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, errStyle.Render("Error:"), err)
	os.Exit(1)
}

// HandleLogin runs the interactive sign-in flow.
func HandleLogin(args []string) {
	_, store, _, teardown, err := setup()
	if err != nil {
		fail(err)
	}
	defer teardown()

	if sess := store.Session(); sess != nil {
		fmt.Println(okStyle.Render("Already signed in"), "as", valueStyle.Render(sess.Email))
		return
	}

	ctx, cancel := signalContext()
	defer cancel()
	fmt.Println("Opening your browser to sign in...")
	if err := store.SignIn(ctx); err != nil {
		fail(err)
	}
	sess := store.Session()
	fmt.Println(okStyle.Render("Signed in"), "as", valueStyle.Render(sess.Email))
}

// HandleLogout clears the stored session.
func HandleLogout(args []string) {
	_, store, _, teardown, err := setup()
	if err != nil {
		fail(err)
	}
	defer teardown()

	ctx, cancel := signalContext()
	defer cancel()
	if err := store.SignOut(ctx); err != nil {
		fail(err)
	}
	fmt.Println(okStyle.Render("Signed out"))
}

// HandleStatus shows backend and session state.
func HandleStatus(args []string) {
	cfg, store, _, teardown, err := setup()
	if err != nil {
		fail(err)
	}
	defer teardown()

	fmt.Println(labelStyle.Render("Backend: ") + valueStyle.Render(cfg.API.URL))
	if sess := store.Session(); sess != nil {
		fmt.Println(labelStyle.Render("Session: ") + valueStyle.Render(sess.DisplayName+" <"+sess.Email+">"))
		ctx, cancel := signalContext()
		defer cancel()
		if _, err := store.Token(ctx); err != nil {
			fmt.Println(labelStyle.Render("Token:   ") + errStyle.Render(err.Error()))
		} else {
			fmt.Println(labelStyle.Render("Token:   ") + okStyle.Render("valid"))
		}
	} else {
		fmt.Println(labelStyle.Render("Session: ") + valueStyle.Render("signed out"))
	}
}

// HandleList prints saved lessons, or videos with --videos.
func HandleList(args []string) {
	_, _, client, teardown, err := setup()
	if err != nil {
		fail(err)
	}
	defer teardown()

	ctx, cancel := signalContext()
	defer cancel()

	if boolFlag(args, "videos") {
		videos, err := client.ListVideos(ctx)
		if err != nil {
			fail(err)
		}
		if len(videos) == 0 {
			fmt.Println("No videos yet.")
			return
		}
		for _, v := range videos {
			fmt.Printf("%s  %s  %s\n",
				valueStyle.Render(v.ID),
				labelStyle.Render("["+v.GradeBand+"]"),
				runewidth.Truncate(v.Title, 60, "…"))
		}
		return
	}

	lessons, err := client.ListLessons(ctx)
	if err != nil {
		fail(err)
	}
	if len(lessons) == 0 {
		fmt.Println("No lesson plans yet. Run: somo generate --topic ...")
		return
	}
	for _, l := range lessons {
		fmt.Printf("%s  %s  %s\n",
			valueStyle.Render(l.ID),
			labelStyle.Render("["+l.GradeBand+" · "+l.Region+"]"),
			runewidth.Truncate(l.Title, 60, "…"))
	}
}

// HandleOpen prints one lesson plan as rendered markdown.
func HandleOpen(args []string) {
	ids := positional(args)
	if len(ids) != 1 {
		fail(errors.New("usage: somo open <lesson-id>"))
	}
	cfg, _, client, teardown, err := setup()
	if err != nil {
		fail(err)
	}
	defer teardown()

	ctx, cancel := signalContext()
	defer cancel()
	doc, err := client.GetLesson(ctx, ids[0])
	if err != nil {
		fail(err)
	}

	md := render.LessonMarkdown(doc.LessonPlan)
	r, err := render.NewRenderer(cfg.UI.GlamourStyle, 100)
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// HandleGenerate creates a lesson plan from flags.
func HandleGenerate(args []string) {
	topic := flagValue(args, "topic")
	if topic == "" {
		fail(errors.New("usage: somo generate --topic T [--region R] [--grade G] [--duration M]"))
	}
	req := model.GenerateRequest{
		Region:          "Kenya",
		GradeBand:       "6-8",
		DurationMinutes: 20,
		TopicPrompt:     topic,
	}
	if v := flagValue(args, "region"); v != "" {
		req.Region = v
	}
	if v := flagValue(args, "grade"); v != "" {
		req.GradeBand = v
	}
	if v := flagValue(args, "duration"); v != "" {
		mins, err := strconv.Atoi(v)
		if err != nil {
			fail(fmt.Errorf("invalid --duration %q", v))
		}
		req.DurationMinutes = mins
	}

	_, _, client, teardown, err := setup()
	if err != nil {
		fail(err)
	}
	defer teardown()

	ctx, cancel := signalContext()
	defer cancel()
	fmt.Println("Generating lesson plan, this can take a minute...")
	resp, err := client.GenerateLesson(ctx, req)
	if err != nil {
		fail(err)
	}
	fmt.Println(okStyle.Render("Created"), valueStyle.Render(resp.LessonID), "-", resp.LessonPlan.Title)
	fmt.Println(labelStyle.Render("View it with: somo open " + resp.LessonID))
}

// HandleDelete removes a lesson, or a video with --video.
func HandleDelete(args []string) {
	ids := positional(args)
	if len(ids) != 1 {
		fail(errors.New("usage: somo delete <id> [--video]"))
	}
	_, _, client, teardown, err := setup()
	if err != nil {
		fail(err)
	}
	defer teardown()

	ctx, cancel := signalContext()
	defer cancel()
	if boolFlag(args, "video") {
		err = client.DeleteVideo(ctx, ids[0])
	} else {
		err = client.DeleteLesson(ctx, ids[0])
	}
	if err != nil {
		fail(err)
	}
	fmt.Println(okStyle.Render("Deleted"), ids[0])
}
