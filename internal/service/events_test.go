// Copyright (c) 2026 FAF Community Wiki contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fafcommunity/fafwiki/internal/model"
)

func TestEventServiceRecord(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)
	ctx := context.Background()

	user := createUser(t, db, "auditor", true)
	svc.Record(ctx, model.EventLevelInfo, model.EventCategoryPage, "page updated", &user.ID)
	svc.RecordWithIP(ctx, model.EventLevelWarning, model.EventCategoryAuth, "login failed", nil, "203.0.113.7")

	events, err := svc.Recent(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, events, 2)

	byMessage := map[string]int{}
	for i, e := range events {
		byMessage[e.Message] = i
	}

	updated := events[byMessage["page updated"]]
	assert.Equal(t, model.EventLevelInfo, updated.Level)
	assert.Equal(t, model.EventCategoryPage, updated.Category)
	assert.True(t, updated.UserID.Valid)
	assert.Equal(t, user.ID, updated.UserID.Int64)

	failed := events[byMessage["login failed"]]
	assert.False(t, failed.UserID.Valid)
	assert.Equal(t, "203.0.113.7", failed.IpAddress)
}

func TestEventServiceRecentLimit(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)
	ctx := context.Background()

	for range 5 {
		svc.Record(ctx, model.EventLevelInfo, model.EventCategorySystem, "tick", nil)
	}

	events, err := svc.Recent(ctx, 3)
	assert.NoError(t, err)
	assert.Len(t, events, 3)
}
