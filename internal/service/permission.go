// Copyright (c) 2026 FAF Community Wiki contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fafcommunity/fafwiki/internal/store"
)

// PermissionService answers the single question at the heart of the editor:
// may this user edit this page (or this section of it)?
type PermissionService struct {
	queries *store.Queries
}

func NewPermissionService(db *sql.DB) *PermissionService {
	return &PermissionService{queries: store.New(db)}
}

// Authorize reports whether user may edit the page identified by pageSlug,
// optionally narrowed to sectionID. An empty sectionID means page-level
// access. The decision is fail-closed: a nil or inactive user, a user with
// no grants, or any lookup error all yield false.
//
// Grants are evaluated in creation order and the first grant whose page
// pattern and section both match decides the outcome, even when a later
// grant would have answered differently.
func (s *PermissionService) Authorize(ctx context.Context, user *store.User, pageSlug, sectionID string) (bool, error) {
	if user == nil || !user.IsActive {
		return false, nil
	}
	perms, err := s.queries.ListPermissionsForUser(ctx, user.ID)
	if err != nil {
		return false, err
	}
	for _, p := range perms {
		if !patternMatches(p.PagePattern, pageSlug) {
			continue
		}
		if !sectionMatches(p.SectionID, sectionID) {
			continue
		}
		return p.CanEdit, nil
	}
	return false, nil
}

// patternMatches implements the three grant pattern forms: the global
// wildcard "*", a prefix wildcard such as "teams/*", and an exact slug.
// A prefix pattern keeps its trailing slash when matching, so "teams/*"
// covers "teams/crucible" but not "teams" itself and not "teamsters".
func patternMatches(pattern, slug string) bool {
	if pattern == "*" {
		return true
	}
	if strings.HasSuffix(pattern, "/*") {
		return strings.HasPrefix(slug, pattern[:len(pattern)-1])
	}
	return pattern == slug
}

// sectionMatches follows the grant's scope: a grant with no section covers
// every section of its pages, and a page-level query (empty sectionID) is
// satisfied by any grant that matched the page.
func sectionMatches(grant sql.NullString, sectionID string) bool {
	if !grant.Valid || sectionID == "" {
		return true
	}
	return grant.String == sectionID
}
