// Copyright (c) 2026 FAF Community Wiki contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fafcommunity/fafwiki/internal/store"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *sql.DB, username string, active bool) store.User {
	t.Helper()
	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		IsActive:     active,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func grant(t *testing.T, db *sql.DB, userID int64, pattern, section string, canEdit bool) {
	t.Helper()
	var sec sql.NullString
	if section != "" {
		sec = sql.NullString{String: section, Valid: true}
	}
	_, err := store.New(db).CreatePermission(context.Background(), store.CreatePermissionParams{
		UserID:      userID,
		PagePattern: pattern,
		SectionID:   sec,
		CanEdit:     canEdit,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		t.Fatalf("grant %s on %s: %v", pattern, section, err)
	}
}
