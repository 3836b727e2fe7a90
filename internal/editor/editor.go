// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor reconciles a server-authoritative lesson plan with a
// locally edited draft.
//
// The editor owns two copies of the plan: serverPlan, the last value
// the backend confirmed, and draftPlan, the shadow copy every edit
// control writes to. While viewing, reads come from serverPlan; while
// editing, from draftPlan — never a mix. A save commits the draft
// through the backend and adopts whatever the backend returns as the
// new server plan.
package editor

import (
	"context"
	"errors"
	"sync"

	"github.com/amaliw/somo-tui/internal/model"
)

// Mode is the editor's read-path switch.
type Mode int

const (
	Viewing Mode = iota
	Editing
)

// ErrSaveInFlight indicates Save was called while a previous save had
// not settled. The UI disables the save control while saving; this
// error backs that gate.
var ErrSaveInFlight = errors.New("save already in flight")

// SaveFunc commits a draft plan and returns the value the backend
// stored. Wired to api.Client.UpdateLesson.
type SaveFunc func(ctx context.Context, plan model.LessonPlan) (model.LessonPlan, error)

// Editor is the lesson editing view-model.
type Editor struct {
	mu         sync.Mutex
	mode       Mode
	serverPlan model.LessonPlan
	draftPlan  model.LessonPlan
	hasDraft   bool
	saving     bool
	save       SaveFunc
}

// New creates an editor in viewing mode over the given server plan.
func New(serverPlan model.LessonPlan, save SaveFunc) *Editor {
	return &Editor{
		mode:       Viewing,
		serverPlan: serverPlan.Clone(),
		save:       save,
	}
}

// Mode returns the current mode.
func (e *Editor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Saving reports whether a save is in flight.
func (e *Editor) Saving() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saving
}

// Plan returns the value the renderer should display: the server plan
// while viewing, the draft while editing.
func (e *Editor) Plan() model.LessonPlan {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode == Editing {
		return e.draftPlan
	}
	return e.serverPlan
}

// ServerPlan returns the last backend-confirmed plan.
func (e *Editor) ServerPlan() model.LessonPlan {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.serverPlan
}

// EnterEdit switches to editing mode. A draft left over from a prior
// editing session is resumed rather than reset; a fresh draft is a
// deep copy of the server plan.
func (e *Editor) EnterEdit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.hasDraft {
		e.draftPlan = e.serverPlan.Clone()
		e.hasDraft = true
	}
	e.mode = Editing
}

// ExitEdit returns to viewing mode. The draft is kept so a later
// EnterEdit resumes it.
func (e *Editor) ExitEdit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = Viewing
}

// DiscardDraft drops the draft; the next EnterEdit starts over from
// the server plan.
func (e *Editor) DiscardDraft() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draftPlan = model.LessonPlan{}
	e.hasDraft = false
	e.mode = Viewing
}

// RestoreDraft seeds the draft from a persisted copy, as when resuming
// unsaved edits from a previous run.
func (e *Editor) RestoreDraft(plan model.LessonPlan) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draftPlan = plan.Clone()
	e.hasDraft = true
}

// Draft returns the current draft and whether one exists.
func (e *Editor) Draft() (model.LessonPlan, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.hasDraft {
		return model.LessonPlan{}, false
	}
	return e.draftPlan.Clone(), true
}

// Dirty reports whether the draft differs from the server plan.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hasDraft && !plansEqual(e.draftPlan, e.serverPlan)
}

// Save commits the draft through the save function. On success the
// backend's returned plan becomes the server plan, the draft is
// cleared, and the editor returns to viewing mode. On failure the
// mode and draft are untouched and the error is returned for display.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	if e.saving {
		e.mu.Unlock()
		return ErrSaveInFlight
	}
	e.saving = true
	draft := e.draftPlan.Clone()
	e.mu.Unlock()

	stored, err := e.save(ctx, draft)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.saving = false
	if err != nil {
		return err
	}
	e.serverPlan = stored.Clone()
	e.draftPlan = model.LessonPlan{}
	e.hasDraft = false
	e.mode = Viewing
	return nil
}
