// Copyright (c) 2026 FAF Community Wiki contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"sync"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Trainer Team", "trainer-team"},
		{"FAF Live Team", "faf-live-team"},
		{"  Setons  Clutch  ", "setons-clutch"},
		{"Éco Guide", "eco-guide"},
		{"Rules & Regulations!", "rules-regulations"},
		{"---already-sluggy---", "already-sluggy"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{
		"home",
		"general-rules",
		"rules/general-rules",
		"teams/faf-live",
		"a/b/c",
		"1v1-guide",
	}
	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}

	invalid := []string{
		"",
		"/",
		"/home",
		"rules/",
		"rules//general",
		"UPPER",
		"has space",
		"-leading",
		"trailing-",
		"double--hyphen",
		"rules/-bad",
	}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"general-rules", "General Rules"},
		{"getting-started", "Getting Started"},
		{"home", "Home"},
		// Whole hierarchical slugs keep their separator; this matches the
		// generic page route convention.
		{"rules/general-rules", "Rules/General Rules"},
	}

	for _, tt := range tests {
		if got := Humanize(tt.in); got != tt.want {
			t.Errorf("Humanize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// Humanize runs on every lazy page create, so concurrent requests hit it in
// parallel. Run under -race.
func TestHumanizeConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := Humanize("rules/general-rules"); got != "Rules/General Rules" {
					t.Errorf("Humanize = %q, want %q", got, "Rules/General Rules")
					return
				}
			}
		}()
	}
	wg.Wait()
}
