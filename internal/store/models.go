// Copyright (c) 2026 FAF Community Wiki contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides database access: connection setup, embedded
// migrations, row types, and hand-written queries over database/sql.
package store

import (
	"database/sql"
	"time"
)

// User is a wiki account. Accounts are soft-disabled via IsActive, never
// hard-deleted.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}

// EditorPermission is one grant mapping a user to a page pattern (and
// optionally a single section) with an allow/deny outcome. Grants are
// evaluated in insertion (id) order.
type EditorPermission struct {
	ID          int64
	UserID      int64
	PagePattern string
	SectionID   sql.NullString
	CanEdit     bool
	CreatedAt   time.Time
}

// Page is a wiki page identified by a unique, possibly hierarchical slug.
// Content holds the page's serialized JSON document.
type Page struct {
	ID         int64
	Slug       string
	Title      string
	ParentSlug sql.NullString
	Content    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ContentBlock is a positioned block of typed content owned by a page,
// anchored at an optional section id.
type ContentBlock struct {
	ID        int64
	PageID    int64
	BlockType string
	SectionID sql.NullString
	Position  int64
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Button is one entry of a button_grid block.
type Button struct {
	ID             int64
	ContentBlockID int64
	IconUrl        sql.NullString
	Label          string
	Description    sql.NullString
	LinkUrl        string
	LinkType       string
	Position       int64
}

// Team is a community team with an ordered roster.
type Team struct {
	ID          int64
	Name        string
	Slug        string
	IconUrl     sql.NullString
	Description sql.NullString
	Position    int64
}

// TeamMember is one member of a team's ordered roster.
type TeamMember struct {
	ID          int64
	TeamID      int64
	Name        string
	Role        sql.NullString
	AvatarUrl   sql.NullString
	Description sql.NullString
	Position    int64
}

// RadarChart is a chart attached to a team or a content block.
type RadarChart struct {
	ID             int64
	TeamID         sql.NullInt64
	ContentBlockID sql.NullInt64
	Title          string
	Axes           string
	Data           string
}

// ReplayReview is a standalone authored replay analysis document.
type ReplayReview struct {
	ID          int64
	Title       string
	ContentHtml string
	Gamemode    sql.NullString
	MapName     sql.NullString
	Author      sql.NullString
	PublishedAt time.Time
	CreatedAt   time.Time
}

// Event is one audit/event log entry.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	IpAddress string
	Metadata  string
	CreatedAt time.Time
}
