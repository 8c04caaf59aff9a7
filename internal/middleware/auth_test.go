// Copyright (c) 2026 FAF Community Wiki contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
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
		t.Fatalf("create user: %v", err)
	}
	return user
}

// loadUserChain runs LoadUser behind a session primed with userID and
// returns the user the final handler observed.
func loadUserChain(t *testing.T, db *sql.DB, userID int64) *store.User {
	t.Helper()
	sm := scs.New()

	var seen *store.User
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetUser(r)
	})
	prime := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID != 0 {
			sm.Put(r.Context(), SessionKeyUserID, userID)
		}
		LoadUser(sm, db)(final).ServeHTTP(w, r)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sm.LoadAndSave(prime).ServeHTTP(rec, req)
	return seen
}

func TestLoadUser(t *testing.T) {
	db := newTestDB(t)
	active := createUser(t, db, "active", true)
	inactive := createUser(t, db, "inactive", false)

	t.Run("active user lands in context", func(t *testing.T) {
		seen := loadUserChain(t, db, active.ID)
		if seen == nil || seen.ID != active.ID {
			t.Errorf("got %+v, want user %d", seen, active.ID)
		}
	})

	t.Run("no session means anonymous", func(t *testing.T) {
		if seen := loadUserChain(t, db, 0); seen != nil {
			t.Errorf("got %+v, want nil", seen)
		}
	})

	t.Run("deactivated account is anonymous", func(t *testing.T) {
		if seen := loadUserChain(t, db, inactive.ID); seen != nil {
			t.Errorf("got %+v, want nil", seen)
		}
	})

	t.Run("stale session is anonymous", func(t *testing.T) {
		if seen := loadUserChain(t, db, 9999); seen != nil {
			t.Errorf("got %+v, want nil", seen)
		}
	})
}

func TestRequireAuth(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	t.Run("anonymous gets 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireAuth(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
		if called {
			t.Error("handler must not run for anonymous requests")
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q, want application/json", ct)
		}
	})

	t.Run("authenticated passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := context.WithValue(req.Context(), ContextKeyUser, store.User{ID: 1, IsActive: true})
		rec := httptest.NewRecorder()
		RequireAuth(next).ServeHTTP(rec, req.WithContext(ctx))
		if !called {
			t.Error("handler should run for authenticated requests")
		}
	})
}

func TestEditorModeActive(t *testing.T) {
	user := store.User{ID: 1, IsActive: true}

	tests := []struct {
		name   string
		target string
		user   *store.User
		want   bool
	}{
		{"signed in with edit flag", "/page?edit=1", &user, true},
		{"signed in without flag", "/page", &user, false},
		{"signed in with wrong value", "/page?edit=true", &user, false},
		{"anonymous with edit flag", "/page?edit=1", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.user != nil {
				req = req.WithContext(context.WithValue(req.Context(), ContextKeyUser, *tt.user))
			}
			if got := EditorModeActive(req); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
