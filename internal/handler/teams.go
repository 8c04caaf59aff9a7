// Copyright (c) 2026 FAF Community Wiki contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fafcommunity/fafwiki/internal/store"
)

// TeamsHandler serves the community team roster.
type TeamsHandler struct {
	queries *store.Queries
}

func NewTeamsHandler(db *sql.DB) *TeamsHandler {
	return &TeamsHandler{queries: store.New(db)}
}

// List returns all teams in display order.
func (h *TeamsHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.queries.ListTeams(r.Context())
	if err != nil {
		logAndInternalError(w, "team listing failed", "error", err)
		return
	}
	out := make([]map[string]any, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamJSON(t))
	}
	writeJSONSuccess(w, map[string]any{"teams": out})
}

// Get returns one team with its members and radar charts.
func (h *TeamsHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	team, err := h.queries.GetTeamBySlug(r.Context(), slug)
	if errors.Is(err, sql.ErrNoRows) {
		writeJSONError(w, http.StatusNotFound, "team not found")
		return
	}
	if err != nil {
		logAndInternalError(w, "team lookup failed", "slug", slug, "error", err)
		return
	}

	members, err := h.queries.ListTeamMembers(r.Context(), team.ID)
	if err != nil {
		logAndInternalError(w, "team member listing failed", "slug", slug, "error", err)
		return
	}
	charts, err := h.queries.ListRadarChartsForTeam(r.Context(), team.ID)
	if err != nil {
		logAndInternalError(w, "radar chart listing failed", "slug", slug, "error", err)
		return
	}

	memberList := make([]map[string]any, 0, len(members))
	for _, m := range members {
		memberList = append(memberList, map[string]any{
			"name":        m.Name,
			"role":        nullableString(m.Role),
			"avatar_url":  nullableString(m.AvatarUrl),
			"description": nullableString(m.Description),
			"position":    m.Position,
		})
	}
	chartList := make([]map[string]any, 0, len(charts))
	for _, c := range charts {
		chartList = append(chartList, map[string]any{
			"title": c.Title,
			"axes":  json.RawMessage(c.Axes),
			"data":  json.RawMessage(c.Data),
		})
	}

	data := teamJSON(team)
	data["members"] = memberList
	data["radar_charts"] = chartList

	// The trainer team page doubles as the replay review hub.
	if team.Slug == "trainer" {
		reviews, err := h.queries.ListRecentReviews(r.Context(), defaultReviewLimit)
		if err != nil {
			logAndInternalError(w, "review listing failed", "slug", slug, "error", err)
			return
		}
		reviewList := make([]map[string]any, 0, len(reviews))
		for _, rv := range reviews {
			reviewList = append(reviewList, reviewJSON(rv))
		}
		data["recent_reviews"] = reviewList
	}

	writeJSONSuccess(w, map[string]any{"team": data})
}

func teamJSON(t store.Team) map[string]any {
	return map[string]any{
		"slug":        t.Slug,
		"name":        t.Name,
		"icon_url":    nullableString(t.IconUrl),
		"description": nullableString(t.Description),
		"position":    t.Position,
	}
}
