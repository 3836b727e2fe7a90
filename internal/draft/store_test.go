// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

package draft

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/amaliw/somo-tui/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "drafts.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_PutGet(t *testing.T) {
	store := openTestStore(t)
	plan := model.LessonPlan{
		Title:         "Rainfall Patterns",
		GradeBand:     "6-8",
		Region:        "Kenya",
		LearningGoals: []string{"Read a rain gauge"},
	}

	if err := store.Put("lesson-1", plan); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := store.Get("lesson-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() ok = false, want stored draft")
	}
	if !reflect.DeepEqual(got, plan) {
		t.Errorf("Get() = %+v, want %+v", got, plan)
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.Get("never-stored")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() ok = true for a lesson with no draft")
	}
}

func TestStore_PutReplaces(t *testing.T) {
	store := openTestStore(t)

	if err := store.Put("lesson-1", model.LessonPlan{Title: "First"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Put("lesson-1", model.LessonPlan{Title: "Second"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := store.Get("lesson-1")
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v", ok, err)
	}
	if got.Title != "Second" {
		t.Errorf("Title = %q, want the replacing draft", got.Title)
	}
}

func TestStore_Delete(t *testing.T) {
	store := openTestStore(t)

	if err := store.Put("lesson-1", model.LessonPlan{Title: "Doomed"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Delete("lesson-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, ok, err := store.Get("lesson-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("draft still present after Delete()")
	}

	// Deleting a missing draft is not an error.
	if err := store.Delete("lesson-1"); err != nil {
		t.Errorf("Delete() of missing draft error = %v", err)
	}
}

func TestStore_IsolatesLessons(t *testing.T) {
	store := openTestStore(t)

	if err := store.Put("lesson-1", model.LessonPlan{Title: "One"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Put("lesson-2", model.LessonPlan{Title: "Two"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Delete("lesson-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	got, ok, err := store.Get("lesson-2")
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v", ok, err)
	}
	if got.Title != "Two" {
		t.Errorf("Title = %q, want the untouched draft", got.Title)
	}
}
