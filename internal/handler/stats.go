// Copyright (c) 2026 FAF Community Wiki contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"

	"github.com/fafcommunity/fafwiki/internal/store"
)

// StatsHandler serves site-wide counters for the wiki footer.
type StatsHandler struct {
	queries *store.Queries
}

func NewStatsHandler(db *sql.DB) *StatsHandler {
	return &StatsHandler{queries: store.New(db)}
}

func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	pages, err := h.queries.CountPages(r.Context())
	if err != nil {
		logAndInternalError(w, "page count failed", "error", err)
		return
	}
	users, err := h.queries.CountUsers(r.Context())
	if err != nil {
		logAndInternalError(w, "user count failed", "error", err)
		return
	}
	teams, err := h.queries.CountTeams(r.Context())
	if err != nil {
		logAndInternalError(w, "team count failed", "error", err)
		return
	}
	reviews, err := h.queries.CountReviews(r.Context())
	if err != nil {
		logAndInternalError(w, "review count failed", "error", err)
		return
	}

	writeJSONSuccess(w, map[string]any{
		"pages":   pages,
		"users":   users,
		"teams":   teams,
		"reviews": reviews,
	})
}
