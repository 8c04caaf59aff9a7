// Copyright (c) 2026 FAF Community Wiki contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/fafcommunity/fafwiki/internal/auth"
	"github.com/fafcommunity/fafwiki/internal/middleware"
	"github.com/fafcommunity/fafwiki/internal/model"
	"github.com/fafcommunity/fafwiki/internal/service"
	"github.com/fafcommunity/fafwiki/internal/store"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	queries        *store.Queries
	sessionManager *scs.SessionManager
	events         *service.EventService
}

func NewAuthHandler(db *sql.DB, sm *scs.SessionManager, events *service.EventService) *AuthHandler {
	return &AuthHandler{
		queries:        store.New(db),
		sessionManager: sm,
		events:         events,
	}
}

type loginRequest struct {
	Identity string `json:"identity"`
	Password string `json:"password"`
}

// Login authenticates by username or email. Failed attempts all answer
// with the same 401 so the endpoint leaks nothing about which accounts
// exist.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Identity == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "identity and password are required")
		return
	}

	clientIP := r.RemoteAddr

	user, err := h.queries.GetUserByUsernameOrEmail(r.Context(), req.Identity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.events.RecordWithIP(r.Context(), model.EventLevelWarning, model.EventCategoryAuth,
				"login failed: unknown account", nil, clientIP)
		} else {
			slog.Error("login lookup failed", "error", err)
		}
		writeJSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	valid, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !valid {
		if err != nil {
			slog.Error("password check failed", "error", err, "user_id", user.ID)
		}
		h.events.RecordWithIP(r.Context(), model.EventLevelWarning, model.EventCategoryAuth,
			"login failed: invalid password", &user.ID, clientIP)
		writeJSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if !user.IsActive {
		h.events.RecordWithIP(r.Context(), model.EventLevelWarning, model.EventCategoryAuth,
			"login rejected: account disabled", &user.ID, clientIP)
		writeJSONError(w, http.StatusForbidden, "account disabled")
		return
	}

	// Old hashes are upgraded in place while we still hold the cleartext.
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, herr := auth.HashPassword(req.Password); herr == nil {
			if uerr := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
				ID:           user.ID,
				PasswordHash: newHash,
			}); uerr != nil {
				slog.Error("password rehash failed", "error", uerr, "user_id", user.ID)
			}
		}
	}

	// New session id on privilege change, against session fixation.
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal failed", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)
	h.events.RecordWithIP(r.Context(), model.EventLevelInfo, model.EventCategoryAuth,
		"user logged in", &user.ID, clientIP)

	writeJSONSuccess(w, map[string]any{
		"username": user.Username,
	})
}

// Logout destroys the session. Logging out while not signed in is fine.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDPtr(r)
	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		logAndInternalError(w, "session destroy failed", "error", err)
		return
	}
	if userID != nil {
		h.events.Record(r.Context(), model.EventLevelInfo, model.EventCategoryAuth,
			"user logged out", userID)
	}
	writeJSONSuccess(w, nil)
}
