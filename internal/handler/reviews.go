// Copyright (c) 2026 FAF Community Wiki contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/fafcommunity/fafwiki/internal/store"
	"github.com/fafcommunity/fafwiki/internal/util"
)

const (
	defaultReviewLimit = 10
	maxReviewLimit     = 50
)

// ReviewsHandler serves replay reviews, newest first.
type ReviewsHandler struct {
	queries *store.Queries
}

func NewReviewsHandler(db *sql.DB) *ReviewsHandler {
	return &ReviewsHandler{queries: store.New(db)}
}

// List returns recent reviews, optionally filtered by gamemode.
func (h *ReviewsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultReviewLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 {
			writeJSONError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxReviewLimit)
	}

	var (
		reviews []store.ReplayReview
		err     error
	)
	if gamemode := r.URL.Query().Get("gamemode"); gamemode != "" {
		reviews, err = h.queries.ListRecentReviewsByGamemode(r.Context(), store.ListRecentReviewsByGamemodeParams{
			Gamemode: util.NullStringFromValue(gamemode),
			Limit:    limit,
		})
	} else {
		reviews, err = h.queries.ListRecentReviews(r.Context(), limit)
	}
	if err != nil {
		logAndInternalError(w, "review listing failed", "error", err)
		return
	}

	out := make([]map[string]any, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, reviewJSON(rv))
	}
	writeJSONSuccess(w, map[string]any{"reviews": out})
}

func reviewJSON(rv store.ReplayReview) map[string]any {
	return map[string]any{
		"title":        rv.Title,
		"content_html": rv.ContentHtml,
		"gamemode":     nullableString(rv.Gamemode),
		"map_name":     nullableString(rv.MapName),
		"author":       nullableString(rv.Author),
		"published_at": rv.PublishedAt.Format(time.RFC3339),
	}
}
