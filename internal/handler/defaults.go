// Copyright (c) 2026 FAF Community Wiki contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"strings"

	"github.com/fafcommunity/fafwiki/internal/util"
)

// defaultPageHTML holds starter content served for well-known pages that
// nobody has edited yet. Once an editor saves html for the page, the
// stored document wins and the default is never consulted again.
var defaultPageHTML = map[string]string{
	"home": `<h1>FAF Community Wiki</h1><p>Welcome, commander. Pick a section to get started.</p>`,
}

// defaultRulesHTML is keyed by the segment after "rules/".
var defaultRulesHTML = map[string]string{
	"general-rules": `<h2>General Rules</h2><p>Be respectful. No smurfing, no rating manipulation, no harassment.</p>`,
	"vault-rules":   `<h2>Vault Rules</h2><p>Uploads must be your own work or properly credited. No malicious or broken content.</p>`,
	"chat-rules":    `<h2>Chat Rules</h2><p>Keep #aeolus friendly. Moderators have the final word.</p>`,
}

// DefaultHTML returns the starter html for a slug. Every slug gets
// something: slugs outside the lookup tables fall back to a generic
// placeholder built from the humanized slug, so unwritten pages never
// render empty.
func DefaultHTML(slug string) string {
	if html, ok := defaultPageHTML[slug]; ok {
		return html
	}
	if rest, ok := strings.CutPrefix(slug, "rules/"); ok {
		if html, found := defaultRulesHTML[rest]; found {
			return html
		}
		return fmt.Sprintf(`<h2>%s</h2><p>This page is under construction.</p>`, util.Humanize(rest))
	}
	return fmt.Sprintf(`<h2>%s</h2><p>Content coming soon. Log in with an editor account to add content.</p>`, util.Humanize(slug))
}
