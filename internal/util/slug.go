// Copyright (c) 2026 FAF Community Wiki contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions including
// URL slug generation, validation, and title humanization.
package util

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// slugRegex matches non-alphanumeric characters (except hyphens)
	slugRegex = regexp.MustCompile(`[^a-z0-9-]+`)
	// multipleHyphens matches multiple consecutive hyphens
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a string to a URL-friendly slug. Non-ASCII characters are
// transliterated, the result is lowercased, spaces become hyphens, and
// everything outside [a-z0-9-] is dropped.
func Slugify(s string) string {
	result := unidecode.Unidecode(s)

	result = strings.ToLower(result)
	result = strings.ReplaceAll(result, " ", "-")
	result = slugRegex.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	return result
}

// IsValidSlug checks if a string is a valid page slug. Page slugs may be
// hierarchical: one or more non-empty segments of [a-z0-9-] joined by "/",
// with no leading, trailing, or doubled hyphens within a segment.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	for _, segment := range strings.Split(s, "/") {
		if !isValidSegment(segment) {
			return false
		}
	}
	return true
}

func isValidSegment(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}

	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	return !strings.Contains(s, "--")
}

// Humanize turns a slug into a display title: hyphens become spaces and each
// word is title-cased. Path separators are kept, so humanizing a full
// hierarchical slug yields e.g. "Rules/General Rules"; callers that want only
// the final segment pass path.Base(slug).
func Humanize(slug string) string {
	// cases.Caser carries transform state and is not safe for concurrent
	// use, so build one per call.
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}
