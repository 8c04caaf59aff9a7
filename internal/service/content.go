// Copyright (c) 2026 FAF Community Wiki contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fafcommunity/fafwiki/internal/model"
	"github.com/fafcommunity/fafwiki/internal/store"
	"github.com/fafcommunity/fafwiki/internal/util"
)

// ContentService is the authorized write path for page documents and
// content blocks. Every mutation checks the caller's grants before it
// touches the database; reads are open to everyone.
type ContentService struct {
	db      *sql.DB
	queries *store.Queries
	perms   *PermissionService
	events  *EventService
}

func NewContentService(db *sql.DB, perms *PermissionService, events *EventService) *ContentService {
	return &ContentService{
		db:      db,
		queries: store.New(db),
		perms:   perms,
		events:  events,
	}
}

// GetOrCreatePage returns the page with the given slug, creating an empty
// one on first access. All lazy page creation funnels through here so the
// title derivation and empty-document shape stay in one place.
func (s *ContentService) GetOrCreatePage(ctx context.Context, slug string) (store.Page, error) {
	page, err := s.queries.GetPageBySlug(ctx, slug)
	if err == nil {
		return page, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return store.Page{}, fmt.Errorf("get page %q: %w", slug, err)
	}

	now := time.Now().UTC()
	page, err = s.queries.CreatePage(ctx, store.CreatePageParams{
		Slug:       slug,
		Title:      util.Humanize(slug),
		ParentSlug: parentSlug(slug),
		Content:    "{}",
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		// A concurrent request may have created the page between our read
		// and the insert. The slug is unique, so fall back to the read.
		if page, rerr := s.queries.GetPageBySlug(ctx, slug); rerr == nil {
			return page, nil
		}
		return store.Page{}, fmt.Errorf("create page %q: %w", slug, err)
	}
	return page, nil
}

// PageContent returns a page and its parsed document, creating the page
// on first access. Malformed stored content comes back as an empty
// document rather than an error.
func (s *ContentService) PageContent(ctx context.Context, slug string) (store.Page, model.Document, error) {
	page, err := s.GetOrCreatePage(ctx, slug)
	if err != nil {
		return store.Page{}, nil, err
	}
	return page, model.ParseDocument(page.Content), nil
}

// UpdatePageHTML replaces the html key of a page's document on behalf of
// user. It returns ErrNotAuthenticated for anonymous callers and
// ErrNotAuthorized when no grant covers the page. Keys other than html
// survive the update untouched.
func (s *ContentService) UpdatePageHTML(ctx context.Context, user *store.User, slug, html string) (store.Page, error) {
	if user == nil {
		return store.Page{}, ErrNotAuthenticated
	}
	allowed, err := s.perms.Authorize(ctx, user, slug, "")
	if err != nil {
		return store.Page{}, err
	}
	if !allowed {
		s.events.Record(ctx, model.EventLevelWarning, model.EventCategoryPermission,
			fmt.Sprintf("user %q denied edit on page %q", user.Username, slug), &user.ID)
		return store.Page{}, ErrNotAuthorized
	}

	page, err := s.GetOrCreatePage(ctx, slug)
	if err != nil {
		return store.Page{}, err
	}
	err = s.queries.SetPageHTML(ctx, store.SetPageHTMLParams{
		ID:        page.ID,
		Html:      html,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return store.Page{}, fmt.Errorf("update page %q: %w", slug, err)
	}

	s.events.Record(ctx, model.EventLevelInfo, model.EventCategoryPage,
		fmt.Sprintf("user %q updated page %q", user.Username, slug), &user.ID)
	return s.queries.GetPageByID(ctx, page.ID)
}

// ButtonFields carries the caller-supplied attributes of a new button.
// Empty Label and LinkUrl fall back to placeholder values so a freshly
// created button is always renderable.
type ButtonFields struct {
	Label       string
	Description string
	LinkUrl     string
	LinkType    string
	IconUrl     string
}

// CreateButton appends a button to the button grid of (pageSlug,
// sectionID), creating the page and the grid block as needed. The new
// button lands after the block's current last position. Authorization is
// checked at page granularity, so a grant narrowed to a different section
// of the same page still permits the write.
func (s *ContentService) CreateButton(ctx context.Context, user *store.User, pageSlug, sectionID string, fields ButtonFields) (store.Button, error) {
	if user == nil {
		return store.Button{}, ErrNotAuthenticated
	}
	allowed, err := s.perms.Authorize(ctx, user, pageSlug, "")
	if err != nil {
		return store.Button{}, err
	}
	if !allowed {
		s.events.Record(ctx, model.EventLevelWarning, model.EventCategoryPermission,
			fmt.Sprintf("user %q denied button creation on page %q", user.Username, pageSlug), &user.ID)
		return store.Button{}, ErrNotAuthorized
	}

	page, err := s.GetOrCreatePage(ctx, pageSlug)
	if err != nil {
		return store.Button{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Button{}, err
	}
	defer tx.Rollback()
	qtx := s.queries.WithTx(tx)

	block, err := s.getOrCreateBlock(ctx, qtx, page.ID, sectionID, model.BlockKindButtonGrid)
	if err != nil {
		return store.Button{}, err
	}
	maxPos, err := qtx.MaxButtonPosition(ctx, block.ID)
	if err != nil {
		return store.Button{}, err
	}

	if fields.Label == "" {
		fields.Label = "New Button"
	}
	if fields.LinkUrl == "" {
		fields.LinkUrl = "#"
	}
	if fields.LinkType == "" {
		fields.LinkType = model.LinkTypeInternal
	}
	button, err := qtx.CreateButton(ctx, store.CreateButtonParams{
		ContentBlockID: block.ID,
		IconUrl:        util.NullStringFromValue(fields.IconUrl),
		Label:          fields.Label,
		Description:    util.NullStringFromValue(fields.Description),
		LinkUrl:        fields.LinkUrl,
		LinkType:       fields.LinkType,
		Position:       maxPos + 1,
	})
	if err != nil {
		return store.Button{}, fmt.Errorf("create button on %q: %w", pageSlug, err)
	}
	if err := tx.Commit(); err != nil {
		return store.Button{}, err
	}

	s.events.Record(ctx, model.EventLevelInfo, model.EventCategoryPage,
		fmt.Sprintf("user %q added button %q to page %q", user.Username, button.Label, pageSlug), &user.ID)
	return button, nil
}

// PageBlock pairs a content block with its payload decoded per block
// kind and, for button grids, the block's buttons.
type PageBlock struct {
	Block   store.ContentBlock
	Payload any
	Buttons []store.Button
}

// Blocks returns a page's content blocks in display order with decoded
// payloads. A missing page is an empty result, not an error, and does
// not create anything: only writes materialize pages.
func (s *ContentService) Blocks(ctx context.Context, pageSlug string) ([]PageBlock, error) {
	page, err := s.queries.GetPageBySlug(ctx, pageSlug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	blocks, err := s.queries.ListBlocksForPage(ctx, page.ID)
	if err != nil {
		return nil, err
	}

	out := make([]PageBlock, 0, len(blocks))
	for _, b := range blocks {
		doc := model.ParseDocument(b.Content)
		payload, err := model.DecodeBlock(b.BlockType, doc)
		if err != nil {
			// A stored payload that no longer matches its kind degrades
			// to the raw document instead of breaking the whole page.
			payload = doc
		}
		pb := PageBlock{Block: b, Payload: payload}
		if b.BlockType == model.BlockKindButtonGrid {
			buttons, err := s.queries.ListButtonsForBlock(ctx, b.ID)
			if err != nil {
				return nil, err
			}
			pb.Buttons = buttons
		}
		out = append(out, pb)
	}
	return out, nil
}

// UpdateBlock replaces the document of the block at (pageSlug,
// sectionID) on behalf of user, creating the page and block as needed.
// Authorization is checked at page granularity, same as button
// creation. The caller is expected to have validated the document
// against kind.
func (s *ContentService) UpdateBlock(ctx context.Context, user *store.User, pageSlug, sectionID, kind string, doc model.Document) (store.ContentBlock, error) {
	if user == nil {
		return store.ContentBlock{}, ErrNotAuthenticated
	}
	allowed, err := s.perms.Authorize(ctx, user, pageSlug, "")
	if err != nil {
		return store.ContentBlock{}, err
	}
	if !allowed {
		s.events.Record(ctx, model.EventLevelWarning, model.EventCategoryPermission,
			fmt.Sprintf("user %q denied block edit on page %q", user.Username, pageSlug), &user.ID)
		return store.ContentBlock{}, ErrNotAuthorized
	}

	page, err := s.GetOrCreatePage(ctx, pageSlug)
	if err != nil {
		return store.ContentBlock{}, err
	}
	raw, err := doc.Encode()
	if err != nil {
		return store.ContentBlock{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.ContentBlock{}, err
	}
	defer tx.Rollback()
	qtx := s.queries.WithTx(tx)

	block, err := s.getOrCreateBlock(ctx, qtx, page.ID, sectionID, kind)
	if err != nil {
		return store.ContentBlock{}, err
	}
	if err := qtx.UpdateBlockContent(ctx, store.UpdateBlockContentParams{
		ID:        block.ID,
		Content:   raw,
		UpdatedAt: time.Now().UTC(),
	}); err != nil {
		return store.ContentBlock{}, fmt.Errorf("update block on %q: %w", pageSlug, err)
	}
	if err := tx.Commit(); err != nil {
		return store.ContentBlock{}, err
	}

	s.events.Record(ctx, model.EventLevelInfo, model.EventCategoryPage,
		fmt.Sprintf("user %q updated a %s block on page %q", user.Username, block.BlockType, pageSlug), &user.ID)
	block.Content = raw
	return block, nil
}

// Buttons returns the buttons of (pageSlug, sectionID) in display order.
// A missing page or block is an empty result, not an error, and crucially
// does not create anything: only writes materialize pages.
func (s *ContentService) Buttons(ctx context.Context, pageSlug, sectionID string) ([]store.Button, error) {
	page, err := s.queries.GetPageBySlug(ctx, pageSlug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	block, err := s.queries.GetBlockForSection(ctx, store.GetBlockForSectionParams{
		PageID:    page.ID,
		SectionID: util.NullStringFromValue(sectionID),
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.queries.ListButtonsForBlock(ctx, block.ID)
}

// getOrCreateBlock returns the block for (pageID, sectionID), creating an
// empty one of the given kind when none exists. An existing block is
// reused as-is even when its block_type differs from kind; the (page,
// section) pair is the identity, not the type.
func (s *ContentService) getOrCreateBlock(ctx context.Context, q *store.Queries, pageID int64, sectionID, kind string) (store.ContentBlock, error) {
	section := util.NullStringFromValue(sectionID)
	block, err := q.GetBlockForSection(ctx, store.GetBlockForSectionParams{
		PageID:    pageID,
		SectionID: section,
	})
	if err == nil {
		return block, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return store.ContentBlock{}, err
	}
	now := time.Now().UTC()
	return q.CreateContentBlock(ctx, store.CreateContentBlockParams{
		PageID:    pageID,
		BlockType: kind,
		SectionID: section,
		Position:  0,
		Content:   "{}",
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// parentSlug derives the parent of a hierarchical slug, so
// "rules/general-rules" hangs under "rules". Top-level slugs have none.
func parentSlug(slug string) sql.NullString {
	i := strings.LastIndex(slug, "/")
	if i < 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: slug[:i], Valid: true}
}
