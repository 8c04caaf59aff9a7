// Copyright (c) 2026 FAF Community Wiki contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is the subset of database/sql used by Queries, satisfied by both
// *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries provides typed access to the database.
type Queries struct {
	db DBTX
}

// New creates a Queries instance bound to the given database or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries instance bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// -----------------------------------------------------------------------------
// Users

// CreateUserParams holds the fields for creating a user.
type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}

const createUser = `
INSERT INTO users (username, email, password_hash, is_active, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id, username, email, password_hash, is_active, created_at`

// CreateUser inserts a new user and returns the created row.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, createUser,
		arg.Username, arg.Email, arg.PasswordHash, arg.IsActive, arg.CreatedAt)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &u.CreatedAt)
	return u, err
}

const getUserByID = `
SELECT id, username, email, password_hash, is_active, created_at
FROM users WHERE id = ?`

// GetUserByID returns the user with the given id.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByID, id)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &u.CreatedAt)
	return u, err
}

const getUserByUsernameOrEmail = `
SELECT id, username, email, password_hash, is_active, created_at
FROM users WHERE username = ? OR email = ?`

// GetUserByUsernameOrEmail looks a user up by either identifier, the way the
// login form accepts both.
func (q *Queries) GetUserByUsernameOrEmail(ctx context.Context, identity string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByUsernameOrEmail, identity, identity)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &u.CreatedAt)
	return u, err
}

const countUsers = `SELECT COUNT(*) FROM users`

// CountUsers returns the total number of users.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countUsers).Scan(&n)
	return n, err
}

// SetUserActiveParams holds the fields for toggling a user's active flag.
// UpdateUserPasswordParams holds the fields for replacing a password hash.
type UpdateUserPasswordParams struct {
	ID           int64
	PasswordHash string
}

const updateUserPassword = `UPDATE users SET password_hash = ? WHERE id = ?`

// UpdateUserPassword replaces a user's password hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, arg UpdateUserPasswordParams) error {
	_, err := q.db.ExecContext(ctx, updateUserPassword, arg.PasswordHash, arg.ID)
	return err
}

type SetUserActiveParams struct {
	ID       int64
	IsActive bool
}

const setUserActive = `UPDATE users SET is_active = ? WHERE id = ?`

// SetUserActive soft-enables or soft-disables an account.
func (q *Queries) SetUserActive(ctx context.Context, arg SetUserActiveParams) error {
	_, err := q.db.ExecContext(ctx, setUserActive, arg.IsActive, arg.ID)
	return err
}

// -----------------------------------------------------------------------------
// Editor permissions

// CreatePermissionParams holds the fields for creating a permission grant.
type CreatePermissionParams struct {
	UserID      int64
	PagePattern string
	SectionID   sql.NullString
	CanEdit     bool
	CreatedAt   time.Time
}

const createPermission = `
INSERT INTO editor_permissions (user_id, page_pattern, section_id, can_edit, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id, user_id, page_pattern, section_id, can_edit, created_at`

// CreatePermission inserts a new grant and returns the created row.
func (q *Queries) CreatePermission(ctx context.Context, arg CreatePermissionParams) (EditorPermission, error) {
	row := q.db.QueryRowContext(ctx, createPermission,
		arg.UserID, arg.PagePattern, arg.SectionID, arg.CanEdit, arg.CreatedAt)
	var p EditorPermission
	err := row.Scan(&p.ID, &p.UserID, &p.PagePattern, &p.SectionID, &p.CanEdit, &p.CreatedAt)
	return p, err
}

const listPermissionsForUser = `
SELECT id, user_id, page_pattern, section_id, can_edit, created_at
FROM editor_permissions WHERE user_id = ? ORDER BY id`

// ListPermissionsForUser returns a user's grants in insertion order. The
// order is load-bearing: permission resolution is first-match-wins.
func (q *Queries) ListPermissionsForUser(ctx context.Context, userID int64) ([]EditorPermission, error) {
	rows, err := q.db.QueryContext(ctx, listPermissionsForUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perms []EditorPermission
	for rows.Next() {
		var p EditorPermission
		if err := rows.Scan(&p.ID, &p.UserID, &p.PagePattern, &p.SectionID, &p.CanEdit, &p.CreatedAt); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

// -----------------------------------------------------------------------------
// Pages

// CreatePageParams holds the fields for creating a page.
type CreatePageParams struct {
	Slug       string
	Title      string
	ParentSlug sql.NullString
	Content    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const createPage = `
INSERT INTO pages (slug, title, parent_slug, content, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, slug, title, parent_slug, content, created_at, updated_at`

// CreatePage inserts a new page and returns the created row.
func (q *Queries) CreatePage(ctx context.Context, arg CreatePageParams) (Page, error) {
	row := q.db.QueryRowContext(ctx, createPage,
		arg.Slug, arg.Title, arg.ParentSlug, arg.Content, arg.CreatedAt, arg.UpdatedAt)
	var p Page
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.ParentSlug, &p.Content, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const getPageBySlug = `
SELECT id, slug, title, parent_slug, content, created_at, updated_at
FROM pages WHERE slug = ?`

// GetPageBySlug returns the page with the given slug.
func (q *Queries) GetPageBySlug(ctx context.Context, slug string) (Page, error) {
	row := q.db.QueryRowContext(ctx, getPageBySlug, slug)
	var p Page
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.ParentSlug, &p.Content, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const getPageByID = `
SELECT id, slug, title, parent_slug, content, created_at, updated_at
FROM pages WHERE id = ?`

// GetPageByID returns the page with the given id.
func (q *Queries) GetPageByID(ctx context.Context, id int64) (Page, error) {
	row := q.db.QueryRowContext(ctx, getPageByID, id)
	var p Page
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.ParentSlug, &p.Content, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// UpdatePageContentParams holds the fields for replacing a page's document.
type UpdatePageContentParams struct {
	ID        int64
	Content   string
	UpdatedAt time.Time
}

const updatePageContent = `UPDATE pages SET content = ?, updated_at = ? WHERE id = ?`

// UpdatePageContent replaces a page's stored document and stamps updated_at.
func (q *Queries) UpdatePageContent(ctx context.Context, arg UpdatePageContentParams) error {
	_, err := q.db.ExecContext(ctx, updatePageContent, arg.Content, arg.UpdatedAt, arg.ID)
	return err
}

// SetPageHTMLParams holds the fields for updating a page's html key.
type SetPageHTMLParams struct {
	ID        int64
	Html      string
	UpdatedAt time.Time
}

// The merge happens inside SQLite so concurrent writers to different keys
// of the same document never clobber each other. A row whose content has
// rotted into invalid JSON is reset to an empty document first.
const setPageHTML = `
UPDATE pages
SET content = json_set(CASE WHEN json_valid(content) THEN content ELSE '{}' END, '$.html', ?),
    updated_at = ?
WHERE id = ?`

// SetPageHTML updates only the html key of a page's document, leaving all
// other keys untouched.
func (q *Queries) SetPageHTML(ctx context.Context, arg SetPageHTMLParams) error {
	_, err := q.db.ExecContext(ctx, setPageHTML, arg.Html, arg.UpdatedAt, arg.ID)
	return err
}

const countPages = `SELECT COUNT(*) FROM pages`

// CountPages returns the total number of pages.
func (q *Queries) CountPages(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countPages).Scan(&n)
	return n, err
}

// -----------------------------------------------------------------------------
// Content blocks

// CreateContentBlockParams holds the fields for creating a content block.
type CreateContentBlockParams struct {
	PageID    int64
	BlockType string
	SectionID sql.NullString
	Position  int64
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const createContentBlock = `
INSERT INTO content_blocks (page_id, block_type, section_id, position, content, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, page_id, block_type, section_id, position, content, created_at, updated_at`

// CreateContentBlock inserts a new block and returns the created row.
func (q *Queries) CreateContentBlock(ctx context.Context, arg CreateContentBlockParams) (ContentBlock, error) {
	row := q.db.QueryRowContext(ctx, createContentBlock,
		arg.PageID, arg.BlockType, arg.SectionID, arg.Position, arg.Content, arg.CreatedAt, arg.UpdatedAt)
	var b ContentBlock
	err := row.Scan(&b.ID, &b.PageID, &b.BlockType, &b.SectionID, &b.Position, &b.Content, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// GetBlockForSectionParams identifies a block by its (page, section) pair.
type GetBlockForSectionParams struct {
	PageID    int64
	SectionID sql.NullString
}

const getBlockForSection = `
SELECT id, page_id, block_type, section_id, position, content, created_at, updated_at
FROM content_blocks WHERE page_id = ? AND section_id IS ?
ORDER BY id LIMIT 1`

// GetBlockForSection returns the first block for a (page, section) pair.
// block_type is deliberately not part of the lookup key.
func (q *Queries) GetBlockForSection(ctx context.Context, arg GetBlockForSectionParams) (ContentBlock, error) {
	row := q.db.QueryRowContext(ctx, getBlockForSection, arg.PageID, arg.SectionID)
	var b ContentBlock
	err := row.Scan(&b.ID, &b.PageID, &b.BlockType, &b.SectionID, &b.Position, &b.Content, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

const listBlocksForPage = `
SELECT id, page_id, block_type, section_id, position, content, created_at, updated_at
FROM content_blocks WHERE page_id = ? ORDER BY position, id`

// ListBlocksForPage returns a page's blocks ordered by position.
func (q *Queries) ListBlocksForPage(ctx context.Context, pageID int64) ([]ContentBlock, error) {
	rows, err := q.db.QueryContext(ctx, listBlocksForPage, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []ContentBlock
	for rows.Next() {
		var b ContentBlock
		if err := rows.Scan(&b.ID, &b.PageID, &b.BlockType, &b.SectionID, &b.Position, &b.Content, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// UpdateBlockContentParams holds the fields for replacing a block's document.
type UpdateBlockContentParams struct {
	ID        int64
	Content   string
	UpdatedAt time.Time
}

const updateBlockContent = `UPDATE content_blocks SET content = ?, updated_at = ? WHERE id = ?`

// UpdateBlockContent replaces a block's stored document and stamps updated_at.
func (q *Queries) UpdateBlockContent(ctx context.Context, arg UpdateBlockContentParams) error {
	_, err := q.db.ExecContext(ctx, updateBlockContent, arg.Content, arg.UpdatedAt, arg.ID)
	return err
}

// -----------------------------------------------------------------------------
// Buttons

// CreateButtonParams holds the fields for creating a button.
type CreateButtonParams struct {
	ContentBlockID int64
	IconUrl        sql.NullString
	Label          string
	Description    sql.NullString
	LinkUrl        string
	LinkType       string
	Position       int64
}

const createButton = `
INSERT INTO buttons (content_block_id, icon_url, label, description, link_url, link_type, position)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, content_block_id, icon_url, label, description, link_url, link_type, position`

// CreateButton inserts a new button and returns the created row.
func (q *Queries) CreateButton(ctx context.Context, arg CreateButtonParams) (Button, error) {
	row := q.db.QueryRowContext(ctx, createButton,
		arg.ContentBlockID, arg.IconUrl, arg.Label, arg.Description, arg.LinkUrl, arg.LinkType, arg.Position)
	var b Button
	err := row.Scan(&b.ID, &b.ContentBlockID, &b.IconUrl, &b.Label, &b.Description, &b.LinkUrl, &b.LinkType, &b.Position)
	return b, err
}

const maxButtonPosition = `
SELECT COALESCE(MAX(position), 0) FROM buttons WHERE content_block_id = ?`

// MaxButtonPosition returns the highest button position within a block, or 0
// for an empty block. Appends go at max+1; gaps from deletions are not
// reclaimed.
func (q *Queries) MaxButtonPosition(ctx context.Context, contentBlockID int64) (int64, error) {
	var pos int64
	err := q.db.QueryRowContext(ctx, maxButtonPosition, contentBlockID).Scan(&pos)
	return pos, err
}

const listButtonsForBlock = `
SELECT id, content_block_id, icon_url, label, description, link_url, link_type, position
FROM buttons WHERE content_block_id = ? ORDER BY position, id`

// ListButtonsForBlock returns a block's buttons in stable position order.
func (q *Queries) ListButtonsForBlock(ctx context.Context, contentBlockID int64) ([]Button, error) {
	rows, err := q.db.QueryContext(ctx, listButtonsForBlock, contentBlockID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buttons []Button
	for rows.Next() {
		var b Button
		if err := rows.Scan(&b.ID, &b.ContentBlockID, &b.IconUrl, &b.Label, &b.Description, &b.LinkUrl, &b.LinkType, &b.Position); err != nil {
			return nil, err
		}
		buttons = append(buttons, b)
	}
	return buttons, rows.Err()
}

// -----------------------------------------------------------------------------
// Teams

// CreateTeamParams holds the fields for creating a team.
type CreateTeamParams struct {
	Name        string
	Slug        string
	IconUrl     sql.NullString
	Description sql.NullString
	Position    int64
}

const createTeam = `
INSERT INTO teams (name, slug, icon_url, description, position)
VALUES (?, ?, ?, ?, ?)
RETURNING id, name, slug, icon_url, description, position`

// CreateTeam inserts a new team and returns the created row.
func (q *Queries) CreateTeam(ctx context.Context, arg CreateTeamParams) (Team, error) {
	row := q.db.QueryRowContext(ctx, createTeam,
		arg.Name, arg.Slug, arg.IconUrl, arg.Description, arg.Position)
	var t Team
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.IconUrl, &t.Description, &t.Position)
	return t, err
}

const getTeamBySlug = `
SELECT id, name, slug, icon_url, description, position
FROM teams WHERE slug = ?`

// GetTeamBySlug returns the team with the given slug.
func (q *Queries) GetTeamBySlug(ctx context.Context, slug string) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeamBySlug, slug)
	var t Team
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.IconUrl, &t.Description, &t.Position)
	return t, err
}

const listTeams = `
SELECT id, name, slug, icon_url, description, position
FROM teams ORDER BY position, id`

// ListTeams returns all teams in display order.
func (q *Queries) ListTeams(ctx context.Context) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, listTeams)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.IconUrl, &t.Description, &t.Position); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

const countTeams = `SELECT COUNT(*) FROM teams`

// CountTeams returns the total number of teams.
func (q *Queries) CountTeams(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countTeams).Scan(&n)
	return n, err
}

// CreateTeamMemberParams holds the fields for creating a team member.
type CreateTeamMemberParams struct {
	TeamID      int64
	Name        string
	Role        sql.NullString
	AvatarUrl   sql.NullString
	Description sql.NullString
	Position    int64
}

const createTeamMember = `
INSERT INTO team_members (team_id, name, role, avatar_url, description, position)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, team_id, name, role, avatar_url, description, position`

// CreateTeamMember inserts a new roster entry and returns the created row.
func (q *Queries) CreateTeamMember(ctx context.Context, arg CreateTeamMemberParams) (TeamMember, error) {
	row := q.db.QueryRowContext(ctx, createTeamMember,
		arg.TeamID, arg.Name, arg.Role, arg.AvatarUrl, arg.Description, arg.Position)
	var m TeamMember
	err := row.Scan(&m.ID, &m.TeamID, &m.Name, &m.Role, &m.AvatarUrl, &m.Description, &m.Position)
	return m, err
}

const listTeamMembers = `
SELECT id, team_id, name, role, avatar_url, description, position
FROM team_members WHERE team_id = ? ORDER BY position, id`

// ListTeamMembers returns a team's roster in display order.
func (q *Queries) ListTeamMembers(ctx context.Context, teamID int64) ([]TeamMember, error) {
	rows, err := q.db.QueryContext(ctx, listTeamMembers, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []TeamMember
	for rows.Next() {
		var m TeamMember
		if err := rows.Scan(&m.ID, &m.TeamID, &m.Name, &m.Role, &m.AvatarUrl, &m.Description, &m.Position); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// CreateRadarChartParams holds the fields for creating a radar chart.
type CreateRadarChartParams struct {
	TeamID         sql.NullInt64
	ContentBlockID sql.NullInt64
	Title          string
	Axes           string
	Data           string
}

const createRadarChart = `
INSERT INTO radar_charts (team_id, content_block_id, title, axes, data)
VALUES (?, ?, ?, ?, ?)
RETURNING id, team_id, content_block_id, title, axes, data`

// CreateRadarChart inserts a new chart and returns the created row.
func (q *Queries) CreateRadarChart(ctx context.Context, arg CreateRadarChartParams) (RadarChart, error) {
	row := q.db.QueryRowContext(ctx, createRadarChart,
		arg.TeamID, arg.ContentBlockID, arg.Title, arg.Axes, arg.Data)
	var c RadarChart
	err := row.Scan(&c.ID, &c.TeamID, &c.ContentBlockID, &c.Title, &c.Axes, &c.Data)
	return c, err
}

const listRadarChartsForTeam = `
SELECT id, team_id, content_block_id, title, axes, data
FROM radar_charts WHERE team_id = ? ORDER BY id`

// ListRadarChartsForTeam returns a team's radar charts.
func (q *Queries) ListRadarChartsForTeam(ctx context.Context, teamID int64) ([]RadarChart, error) {
	rows, err := q.db.QueryContext(ctx, listRadarChartsForTeam, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charts []RadarChart
	for rows.Next() {
		var c RadarChart
		if err := rows.Scan(&c.ID, &c.TeamID, &c.ContentBlockID, &c.Title, &c.Axes, &c.Data); err != nil {
			return nil, err
		}
		charts = append(charts, c)
	}
	return charts, rows.Err()
}

// -----------------------------------------------------------------------------
// Replay reviews

// CreateReplayReviewParams holds the fields for creating a replay review.
type CreateReplayReviewParams struct {
	Title       string
	ContentHtml string
	Gamemode    sql.NullString
	MapName     sql.NullString
	Author      sql.NullString
	PublishedAt time.Time
	CreatedAt   time.Time
}

const createReplayReview = `
INSERT INTO replay_reviews (title, content_html, gamemode, map_name, author, published_at, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, title, content_html, gamemode, map_name, author, published_at, created_at`

// CreateReplayReview inserts a new review and returns the created row.
func (q *Queries) CreateReplayReview(ctx context.Context, arg CreateReplayReviewParams) (ReplayReview, error) {
	row := q.db.QueryRowContext(ctx, createReplayReview,
		arg.Title, arg.ContentHtml, arg.Gamemode, arg.MapName, arg.Author, arg.PublishedAt, arg.CreatedAt)
	var r ReplayReview
	err := row.Scan(&r.ID, &r.Title, &r.ContentHtml, &r.Gamemode, &r.MapName, &r.Author, &r.PublishedAt, &r.CreatedAt)
	return r, err
}

const listRecentReviews = `
SELECT id, title, content_html, gamemode, map_name, author, published_at, created_at
FROM replay_reviews ORDER BY published_at DESC LIMIT ?`

// ListRecentReviews returns the newest reviews, newest first.
func (q *Queries) ListRecentReviews(ctx context.Context, limit int64) ([]ReplayReview, error) {
	return q.scanReviews(ctx, listRecentReviews, limit)
}

// ListRecentReviewsByGamemodeParams filters reviews by gamemode.
type ListRecentReviewsByGamemodeParams struct {
	Gamemode sql.NullString
	Limit    int64
}

const listRecentReviewsByGamemode = `
SELECT id, title, content_html, gamemode, map_name, author, published_at, created_at
FROM replay_reviews WHERE gamemode = ? ORDER BY published_at DESC LIMIT ?`

// ListRecentReviewsByGamemode returns the newest reviews for one gamemode.
func (q *Queries) ListRecentReviewsByGamemode(ctx context.Context, arg ListRecentReviewsByGamemodeParams) ([]ReplayReview, error) {
	return q.scanReviews(ctx, listRecentReviewsByGamemode, arg.Gamemode, arg.Limit)
}

func (q *Queries) scanReviews(ctx context.Context, query string, args ...any) ([]ReplayReview, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []ReplayReview
	for rows.Next() {
		var r ReplayReview
		if err := rows.Scan(&r.ID, &r.Title, &r.ContentHtml, &r.Gamemode, &r.MapName, &r.Author, &r.PublishedAt, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

const countReviews = `SELECT COUNT(*) FROM replay_reviews`

// CountReviews returns the total number of replay reviews.
func (q *Queries) CountReviews(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countReviews).Scan(&n)
	return n, err
}

// -----------------------------------------------------------------------------
// Events

// CreateEventParams holds the fields for creating an event log entry.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	IpAddress string
	Metadata  string
	CreatedAt time.Time
}

const createEvent = `
INSERT INTO events (level, category, message, user_id, ip_address, metadata, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, level, category, message, user_id, ip_address, metadata, created_at`

// CreateEvent inserts a new event log entry and returns the created row.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	row := q.db.QueryRowContext(ctx, createEvent,
		arg.Level, arg.Category, arg.Message, arg.UserID, arg.IpAddress, arg.Metadata, arg.CreatedAt)
	var e Event
	err := row.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.UserID, &e.IpAddress, &e.Metadata, &e.CreatedAt)
	return e, err
}

const listRecentEvents = `
SELECT id, level, category, message, user_id, ip_address, metadata, created_at
FROM events ORDER BY created_at DESC, id DESC LIMIT ?`

// ListRecentEvents returns the newest events, most recent first.
func (q *Queries) ListRecentEvents(ctx context.Context, limit int64) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listRecentEvents, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.UserID, &e.IpAddress, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
