// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package draft persists unsaved lesson edits between runs.
//
// When the user leaves a lesson with uncommitted edits, the draft is
// written here keyed by lesson ID; returning to the lesson offers to
// resume it. This extends the editor's resume-prior-draft behavior
// across process restarts. The store is local editor state only — the
// API client never reads from it.
package draft

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/amaliw/somo-tui/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS lesson_drafts (
	lesson_id  TEXT PRIMARY KEY,
	plan_json  TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

// Store is the SQLite-backed draft store.
type Store struct {
	db *sql.DB
}

// DefaultPath returns ~/.somo/drafts.db.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".somo", "drafts.db")
	}
	return filepath.Join(home, ".somo", "drafts.db")
}

// Open opens or creates the draft database.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create draft dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open draft db: %w", err)
	}
	// SQLite allows one writer; a single connection avoids lock churn.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure draft db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init draft schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores or replaces the draft for a lesson.
func (s *Store) Put(lessonID string, plan model.LessonPlan) error {
	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO lesson_drafts (lesson_id, plan_json, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(lesson_id) DO UPDATE SET plan_json=excluded.plan_json, updated_at=excluded.updated_at`,
		lessonID, string(raw), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("store draft: %w", err)
	}
	return nil
}

// Get returns the stored draft for a lesson, or ok=false when none
// exists.
func (s *Store) Get(lessonID string) (model.LessonPlan, bool, error) {
	var raw string
	err := s.db.QueryRow(
		"SELECT plan_json FROM lesson_drafts WHERE lesson_id = ?", lessonID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return model.LessonPlan{}, false, nil
	}
	if err != nil {
		return model.LessonPlan{}, false, fmt.Errorf("load draft: %w", err)
	}
	var plan model.LessonPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return model.LessonPlan{}, false, fmt.Errorf("decode draft: %w", err)
	}
	return plan, true, nil
}

// Delete removes the draft for a lesson. Deleting a missing draft is
// not an error.
func (s *Store) Delete(lessonID string) error {
	if _, err := s.db.Exec("DELETE FROM lesson_drafts WHERE lesson_id = ?", lessonID); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}
