// Copyright (c) 2026 FAF Community Wiki contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain types shared across the application:
// content documents, content block kinds, and event log constants.
package model

import (
	"encoding/json"
	"fmt"
)

// Content block kinds. The block_type column is free-form text for forward
// compatibility; these are the kinds the application understands.
const (
	BlockKindHTML       = "html_block"
	BlockKindButtonGrid = "button_grid"
	BlockKindFAQList    = "faq_list"
	BlockKindRadarChart = "radar_chart"
)

// Button link types.
const (
	LinkTypeInternal = "internal"
	LinkTypeExternal = "external"
)

// DocumentKeyHTML is the recognized page document key holding serialized markup.
const DocumentKeyHTML = "html"

// Document is the JSON-shaped bag of fields stored with a page or content
// block. Unrecognized keys are preserved across partial updates.
type Document map[string]any

// ParseDocument decodes a stored JSON document. A malformed or empty payload
// is recovered as an empty document, never an error: pages must keep
// rendering with defaults even if their stored content is corrupt.
func ParseDocument(raw string) Document {
	if raw == "" {
		return Document{}
	}
	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil || doc == nil {
		return Document{}
	}
	return doc
}

// Encode serializes the document for storage.
func (d Document) Encode() (string, error) {
	if d == nil {
		return "{}", nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encoding document: %w", err)
	}
	return string(b), nil
}

// HTML returns the document's html key, if present.
func (d Document) HTML() (string, bool) {
	v, ok := d[DocumentKeyHTML]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// SetHTML replaces the html key, leaving all other keys untouched.
func (d Document) SetHTML(html string) {
	d[DocumentKeyHTML] = html
}

// HTMLBlockContent is the typed payload of an html_block.
type HTMLBlockContent struct {
	HTML string `json:"html"`
}

// FAQItem is a single question/answer entry in a faq_list block.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQListContent is the typed payload of a faq_list block.
type FAQListContent struct {
	Items []FAQItem `json:"items"`
}

// RadarChartContent is the typed payload of a radar_chart block.
type RadarChartContent struct {
	Title  string      `json:"title"`
	Axes   []string    `json:"axes"`
	Series [][]float64 `json:"series"`
}

// DecodeBlock decodes a block document into the typed payload for the given
// block kind. Unknown kinds return the document itself as an opaque escape
// hatch rather than an error.
func DecodeBlock(kind string, doc Document) (any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding block document: %w", err)
	}

	switch kind {
	case BlockKindHTML:
		var c HTMLBlockContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decoding %s content: %w", kind, err)
		}
		return c, nil
	case BlockKindFAQList:
		var c FAQListContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decoding %s content: %w", kind, err)
		}
		return c, nil
	case BlockKindRadarChart:
		var c RadarChartContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decoding %s content: %w", kind, err)
		}
		return c, nil
	default:
		return doc, nil
	}
}
