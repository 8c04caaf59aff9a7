// Copyright (c) 2026 FAF Community Wiki contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fafcommunity/fafwiki/internal/service"
)

const (
	defaultEventLimit = 25
	maxEventLimit     = 200
)

// EventsHandler exposes the audit log to signed-in users.
type EventsHandler struct {
	events *service.EventService
}

func NewEventsHandler(events *service.EventService) *EventsHandler {
	return &EventsHandler{events: events}
}

// List returns recent audit events, newest first.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultEventLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 {
			writeJSONError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxEventLimit)
	}

	events, err := h.events.Recent(r.Context(), limit)
	if err != nil {
		logAndInternalError(w, "event listing failed", "error", err)
		return
	}

	out := make([]map[string]any, 0, len(events))
	for _, e := range events {
		entry := map[string]any{
			"level":      e.Level,
			"category":   e.Category,
			"message":    e.Message,
			"created_at": e.CreatedAt.Format(time.RFC3339),
		}
		if e.UserID.Valid {
			entry["user_id"] = e.UserID.Int64
		}
		out = append(out, entry)
	}
	writeJSONSuccess(w, map[string]any{"events": out})
}
