// Copyright (c) 2026 FAF Community Wiki contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fafcommunity/fafwiki/internal/middleware"
	"github.com/fafcommunity/fafwiki/internal/model"
	"github.com/fafcommunity/fafwiki/internal/service"
	"github.com/fafcommunity/fafwiki/internal/store"
	"github.com/fafcommunity/fafwiki/internal/util"
)

// ContentHandler exposes page documents, buttons, and the authorization
// probe used by the frontend to decide whether to show edit controls.
type ContentHandler struct {
	content *service.ContentService
	perms   *service.PermissionService
}

func NewContentHandler(content *service.ContentService, perms *service.PermissionService) *ContentHandler {
	return &ContentHandler{content: content, perms: perms}
}

// pageSlug extracts the slug from a catch-all route shaped like
// /api/page/{slug}/content, where the slug itself may contain slashes.
func pageSlug(r *http.Request) (string, bool) {
	rest := chi.URLParam(r, "*")
	slug, ok := strings.CutSuffix(rest, "/content")
	if !ok || slug == "" {
		return "", false
	}
	return slug, util.IsValidSlug(slug)
}

// GetContent returns a page's document, creating the page on first
// access. Unknown slugs are therefore never 404s: every valid slug is a
// page waiting to be written.
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	slug, ok := pageSlug(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid page slug")
		return
	}

	page, doc, err := h.content.PageContent(r.Context(), slug)
	if err != nil {
		logAndInternalError(w, "page content read failed", "slug", slug, "error", err)
		return
	}
	if _, ok := doc.HTML(); !ok {
		doc.SetHTML(DefaultHTML(slug))
	}

	blocks, err := h.content.Blocks(r.Context(), slug)
	if err != nil {
		logAndInternalError(w, "block listing failed", "slug", slug, "error", err)
		return
	}
	blockList := make([]map[string]any, 0, len(blocks))
	for _, pb := range blocks {
		entry := map[string]any{
			"kind":     pb.Block.BlockType,
			"section":  nullableString(pb.Block.SectionID),
			"position": pb.Block.Position,
			"content":  pb.Payload,
		}
		if pb.Block.BlockType == model.BlockKindButtonGrid {
			buttons := make([]map[string]any, 0, len(pb.Buttons))
			for _, b := range pb.Buttons {
				buttons = append(buttons, buttonJSON(b))
			}
			entry["buttons"] = buttons
		}
		blockList = append(blockList, entry)
	}

	writeJSONSuccess(w, map[string]any{
		"slug":    page.Slug,
		"title":   page.Title,
		"content": doc,
		"blocks":  blockList,
	})
}

type updateContentRequest struct {
	Html string `json:"html"`
}

// UpdateContent replaces the html key of a page's document. Any other
// keys the document carries are preserved. Anonymous callers get a 401,
// signed-in callers without a matching grant a 403.
func (h *ContentHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	slug, ok := pageSlug(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid page slug")
		return
	}

	var req updateContentRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	page, err := h.content.UpdatePageHTML(r.Context(), middleware.GetUser(r), slug, req.Html)
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		writeJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	case errors.Is(err, service.ErrNotAuthorized):
		writeJSONError(w, http.StatusForbidden, "you do not have permission to edit this page")
		return
	case err != nil:
		logAndInternalError(w, "page content update failed", "slug", slug, "error", err)
		return
	}

	writeJSONSuccess(w, map[string]any{
		"slug":    page.Slug,
		"content": model.ParseDocument(page.Content),
	})
}

type createButtonRequest struct {
	PageSlug    string `json:"page_slug"`
	SectionID   string `json:"section_id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	LinkUrl     string `json:"link_url"`
	LinkType    string `json:"link_type"`
	IconUrl     string `json:"icon_url"`
}

// CreateButton appends a button to a page's button grid.
func (h *ContentHandler) CreateButton(w http.ResponseWriter, r *http.Request) {
	var req createButtonRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PageSlug == "" || !util.IsValidSlug(req.PageSlug) {
		writeJSONError(w, http.StatusBadRequest, "invalid page slug")
		return
	}
	if req.LinkType != "" && req.LinkType != model.LinkTypeInternal && req.LinkType != model.LinkTypeExternal {
		writeJSONError(w, http.StatusBadRequest, "link_type must be internal or external")
		return
	}

	button, err := h.content.CreateButton(r.Context(), middleware.GetUser(r), req.PageSlug, req.SectionID, service.ButtonFields{
		Label:       req.Label,
		Description: req.Description,
		LinkUrl:     req.LinkUrl,
		LinkType:    req.LinkType,
		IconUrl:     req.IconUrl,
	})
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		writeJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	case errors.Is(err, service.ErrNotAuthorized):
		writeJSONError(w, http.StatusForbidden, "you do not have permission to edit this page")
		return
	case err != nil:
		logAndInternalError(w, "button creation failed", "page", req.PageSlug, "error", err)
		return
	}

	writeJSONSuccessStatus(w, http.StatusCreated, map[string]any{
		"button": buttonJSON(button),
	})
}

type updateBlockRequest struct {
	PageSlug  string         `json:"page_slug"`
	SectionID string         `json:"section_id"`
	BlockType string         `json:"block_type"`
	Content   model.Document `json:"content"`
}

// UpdateBlock replaces the document of a page section's block. The
// payload must decode as the stated block type; unknown types are
// accepted as opaque documents.
func (h *ContentHandler) UpdateBlock(w http.ResponseWriter, r *http.Request) {
	var req updateBlockRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PageSlug == "" || !util.IsValidSlug(req.PageSlug) {
		writeJSONError(w, http.StatusBadRequest, "invalid page slug")
		return
	}
	if req.BlockType == "" {
		req.BlockType = model.BlockKindHTML
	}
	if _, err := model.DecodeBlock(req.BlockType, req.Content); err != nil {
		writeJSONError(w, http.StatusBadRequest, "content does not match block_type")
		return
	}

	block, err := h.content.UpdateBlock(r.Context(), middleware.GetUser(r), req.PageSlug, req.SectionID, req.BlockType, req.Content)
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		writeJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	case errors.Is(err, service.ErrNotAuthorized):
		writeJSONError(w, http.StatusForbidden, "you do not have permission to edit this page")
		return
	case err != nil:
		logAndInternalError(w, "block update failed", "page", req.PageSlug, "error", err)
		return
	}

	writeJSONSuccess(w, map[string]any{
		"block": map[string]any{
			"kind":    block.BlockType,
			"section": nullableString(block.SectionID),
			"content": model.ParseDocument(block.Content),
		},
	})
}

// ListButtons returns the buttons of a page section in display order.
func (h *ContentHandler) ListButtons(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("page")
	if slug == "" || !util.IsValidSlug(slug) {
		writeJSONError(w, http.StatusBadRequest, "invalid page slug")
		return
	}

	buttons, err := h.content.Buttons(r.Context(), slug, r.URL.Query().Get("section"))
	if err != nil {
		logAndInternalError(w, "button listing failed", "page", slug, "error", err)
		return
	}
	out := make([]map[string]any, 0, len(buttons))
	for _, b := range buttons {
		out = append(out, buttonJSON(b))
	}
	writeJSONSuccess(w, map[string]any{"buttons": out})
}

// Authorize answers whether the current caller may edit a page or
// section. The frontend calls this before rendering edit controls; the
// write endpoints re-check on their own, so lying to this endpoint
// gains nothing.
func (h *ContentHandler) Authorize(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	if slug == "" || !util.IsValidSlug(slug) {
		writeJSONError(w, http.StatusBadRequest, "invalid page slug")
		return
	}

	user := middleware.GetUser(r)
	allowed, err := h.perms.Authorize(r.Context(), user, slug, r.URL.Query().Get("section"))
	if err != nil {
		logAndInternalError(w, "authorization check failed", "slug", slug, "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{
		"authenticated": user != nil,
		"authorized":    allowed,
		"editor_mode":   middleware.EditorModeActive(r) && allowed,
	})
}

func buttonJSON(b store.Button) map[string]any {
	return map[string]any{
		"id":          b.ID,
		"label":       b.Label,
		"description": nullableString(b.Description),
		"link_url":    b.LinkUrl,
		"link_type":   b.LinkType,
		"icon_url":    nullableString(b.IconUrl),
		"position":    b.Position,
	}
}

func nullableString(s sql.NullString) any {
	if !s.Valid {
		return nil
	}
	return s.String
}
