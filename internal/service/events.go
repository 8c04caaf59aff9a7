// Copyright (c) 2026 FAF Community Wiki contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/fafcommunity/fafwiki/internal/store"
	"github.com/fafcommunity/fafwiki/internal/util"
)

// EventService writes audit events into the events table. Event recording
// is best-effort: a failed insert is logged and swallowed so an audit
// hiccup never fails the operation being audited.
type EventService struct {
	queries *store.Queries
}

func NewEventService(db *sql.DB) *EventService {
	return &EventService{queries: store.New(db)}
}

// Record inserts an audit event. userID may be nil for anonymous actions.
func (s *EventService) Record(ctx context.Context, level, category, message string, userID *int64) {
	s.RecordWithIP(ctx, level, category, message, userID, "")
}

// RecordWithIP is Record with the client address attached, for events
// raised directly from the HTTP layer.
func (s *EventService) RecordWithIP(ctx context.Context, level, category, message string, userID *int64, ip string) {
	_, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     level,
		Category:  category,
		Message:   message,
		UserID:    util.NullInt64FromPtr(userID),
		IpAddress: ip,
		Metadata:  "{}",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		slog.Error("record event", "category", category, "err", err)
	}
}

// Recent returns the newest events, most recent first.
func (s *EventService) Recent(ctx context.Context, limit int64) ([]store.Event, error) {
	return s.queries.ListRecentEvents(ctx, limit)
}
