// Copyright (c) 2026 FAF Community Wiki contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/fafcommunity/fafwiki/internal/model"
	"github.com/fafcommunity/fafwiki/internal/store"
)

func newContentService(t *testing.T) (*ContentService, *sql.DB) {
	t.Helper()
	db := newTestDB(t)
	perms := NewPermissionService(db)
	events := NewEventService(db)
	return NewContentService(db, perms, events), db
}

func TestPageContentLazyCreate(t *testing.T) {
	svc, db := newContentService(t)
	ctx := context.Background()

	page, doc, err := svc.PageContent(ctx, "rules/general-rules")
	if err != nil {
		t.Fatalf("page content: %v", err)
	}
	if page.Title != "Rules/General Rules" {
		t.Errorf("title = %q, want %q", page.Title, "Rules/General Rules")
	}
	if !page.ParentSlug.Valid || page.ParentSlug.String != "rules" {
		t.Errorf("parent slug = %+v, want rules", page.ParentSlug)
	}
	if len(doc) != 0 {
		t.Errorf("new page document = %v, want empty", doc)
	}

	count, err := store.New(db).CountPages(ctx)
	if err != nil {
		t.Fatalf("count pages: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d pages, want 1", count)
	}

	// A second read must reuse the row, not create a sibling.
	again, _, err := svc.PageContent(ctx, "rules/general-rules")
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if again.ID != page.ID {
		t.Errorf("second read got page %d, want %d", again.ID, page.ID)
	}
}

func TestUpdatePageHTML(t *testing.T) {
	svc, db := newContentService(t)
	ctx := context.Background()

	editor := createUser(t, db, "editor", true)
	grant(t, db, editor.ID, "*", "", true)

	page, err := svc.UpdatePageHTML(ctx, &editor, "home", "<h1>Welcome</h1>")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	doc := model.ParseDocument(page.Content)
	if html, ok := doc.HTML(); !ok || html != "<h1>Welcome</h1>" {
		t.Errorf("html = %q (ok=%v), want <h1>Welcome</h1>", html, ok)
	}
}

func TestUpdatePageHTMLPreservesOtherKeys(t *testing.T) {
	svc, db := newContentService(t)
	ctx := context.Background()

	editor := createUser(t, db, "editor", true)
	grant(t, db, editor.ID, "*", "", true)

	queries := store.New(db)
	seeded, err := svc.GetOrCreatePage(ctx, "faq")
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	if err := queries.UpdatePageContent(ctx, store.UpdatePageContentParams{
		ID:      seeded.ID,
		Content: `{"sidebar":"keep me","html":"<p>old</p>"}`,
	}); err != nil {
		t.Fatalf("prime content: %v", err)
	}

	page, err := svc.UpdatePageHTML(ctx, &editor, "faq", "<p>new</p>")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	doc := model.ParseDocument(page.Content)
	if html, _ := doc.HTML(); html != "<p>new</p>" {
		t.Errorf("html = %q, want <p>new</p>", html)
	}
	if doc["sidebar"] != "keep me" {
		t.Errorf("sidebar = %v, want it preserved", doc["sidebar"])
	}
}

func TestUpdatePageHTMLAuthz(t *testing.T) {
	svc, db := newContentService(t)
	ctx := context.Background()

	t.Run("anonymous", func(t *testing.T) {
		_, err := svc.UpdatePageHTML(ctx, nil, "home", "<p>x</p>")
		if !errors.Is(err, ErrNotAuthenticated) {
			t.Errorf("got %v, want ErrNotAuthenticated", err)
		}
	})

	t.Run("no grant", func(t *testing.T) {
		user := createUser(t, db, "reader", true)
		_, err := svc.UpdatePageHTML(ctx, &user, "home", "<p>x</p>")
		if !errors.Is(err, ErrNotAuthorized) {
			t.Errorf("got %v, want ErrNotAuthorized", err)
		}
	})

	t.Run("grant on other subtree", func(t *testing.T) {
		user := createUser(t, db, "teamed", true)
		grant(t, db, user.ID, "teams/*", "", true)
		_, err := svc.UpdatePageHTML(ctx, &user, "rules/general-rules", "<p>x</p>")
		if !errors.Is(err, ErrNotAuthorized) {
			t.Errorf("got %v, want ErrNotAuthorized", err)
		}
	})

	t.Run("denied write creates nothing", func(t *testing.T) {
		count, err := store.New(db).CountPages(ctx)
		if err != nil {
			t.Fatalf("count pages: %v", err)
		}
		if count != 0 {
			t.Errorf("got %d pages after denied writes, want 0", count)
		}
	})
}

func TestCreateButtonPositions(t *testing.T) {
	svc, db := newContentService(t)
	ctx := context.Background()

	editor := createUser(t, db, "editor", true)
	grant(t, db, editor.ID, "*", "", true)

	first, err := svc.CreateButton(ctx, &editor, "home", "main-nav", ButtonFields{Label: "Play"})
	if err != nil {
		t.Fatalf("first button: %v", err)
	}
	if first.Position != 1 {
		t.Errorf("first position = %d, want 1", first.Position)
	}

	second, err := svc.CreateButton(ctx, &editor, "home", "main-nav", ButtonFields{Label: "Forums"})
	if err != nil {
		t.Fatalf("second button: %v", err)
	}
	if second.Position != 2 {
		t.Errorf("second position = %d, want 2", second.Position)
	}
	if second.ContentBlockID != first.ContentBlockID {
		t.Error("buttons in the same section should share a block")
	}
}

func TestCreateButtonAppendsAfterGap(t *testing.T) {
	svc, db := newContentService(t)
	ctx := context.Background()

	editor := createUser(t, db, "editor", true)
	grant(t, db, editor.ID, "*", "", true)

	queries := store.New(db)
	seeded, err := svc.CreateButton(ctx, &editor, "home", "", ButtonFields{Label: "First"})
	if err != nil {
		t.Fatalf("seed button: %v", err)
	}
	// Simulate deletions having left a gap below the highest position.
	if _, err := queries.CreateButton(ctx, store.CreateButtonParams{
		ContentBlockID: seeded.ContentBlockID,
		Label:          "High",
		LinkUrl:        "#",
		LinkType:       model.LinkTypeInternal,
		Position:       5,
	}); err != nil {
		t.Fatalf("create high button: %v", err)
	}

	next, err := svc.CreateButton(ctx, &editor, "home", "", ButtonFields{Label: "Next"})
	if err != nil {
		t.Fatalf("next button: %v", err)
	}
	if next.Position != 6 {
		t.Errorf("position = %d, want 6 (one past the current max)", next.Position)
	}
}

func TestCreateButtonDefaults(t *testing.T) {
	svc, db := newContentService(t)
	ctx := context.Background()

	editor := createUser(t, db, "editor", true)
	grant(t, db, editor.ID, "*", "", true)

	button, err := svc.CreateButton(ctx, &editor, "home", "", ButtonFields{})
	if err != nil {
		t.Fatalf("create button: %v", err)
	}
	if button.Label != "New Button" {
		t.Errorf("label = %q, want New Button", button.Label)
	}
	if button.LinkUrl != "#" {
		t.Errorf("link url = %q, want #", button.LinkUrl)
	}
	if button.LinkType != model.LinkTypeInternal {
		t.Errorf("link type = %q, want %q", button.LinkType, model.LinkTypeInternal)
	}
}

func TestCreateButtonReusesExistingBlockOfAnyType(t *testing.T) {
	svc, db := newContentService(t)
	ctx := context.Background()

	editor := createUser(t, db, "editor", true)
	grant(t, db, editor.ID, "*", "", true)

	page, err := svc.GetOrCreatePage(ctx, "home")
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	queries := store.New(db)
	htmlBlock, err := queries.CreateContentBlock(ctx, store.CreateContentBlockParams{
		PageID:    page.ID,
		BlockType: model.BlockKindHTML,
		Content:   "{}",
	})
	if err != nil {
		t.Fatalf("create html block: %v", err)
	}

	button, err := svc.CreateButton(ctx, &editor, "home", "", ButtonFields{Label: "Intro"})
	if err != nil {
		t.Fatalf("create button: %v", err)
	}
	if button.ContentBlockID != htmlBlock.ID {
		t.Errorf("button landed in block %d, want existing block %d", button.ContentBlockID, htmlBlock.ID)
	}

	// The reused block keeps its original type.
	got, err := queries.GetBlockForSection(ctx, store.GetBlockForSectionParams{PageID: page.ID})
	if err != nil {
		t.Fatalf("get block: %v", err)
	}
	if got.BlockType != model.BlockKindHTML {
		t.Errorf("block type = %q, want %q", got.BlockType, model.BlockKindHTML)
	}
}

func TestCreateButtonAuthzIsPageGranular(t *testing.T) {
	svc, db := newContentService(t)
	ctx := context.Background()

	// A grant narrowed to one section still authorizes button creation in
	// another section of the same page, because the write check is keyed
	// on the page alone.
	user := createUser(t, db, "navonly", true)
	grant(t, db, user.ID, "home", "main-nav", true)

	button, err := svc.CreateButton(ctx, &user, "home", "sidebar", ButtonFields{Label: "Sneaky"})
	if err != nil {
		t.Fatalf("create button: %v", err)
	}
	if button.ID == 0 {
		t.Error("expected a created button")
	}
}

func TestButtonsReadDoesNotCreate(t *testing.T) {
	svc, db := newContentService(t)
	ctx := context.Background()

	buttons, err := svc.Buttons(ctx, "ghost", "")
	if err != nil {
		t.Fatalf("buttons: %v", err)
	}
	if len(buttons) != 0 {
		t.Errorf("got %d buttons, want 0", len(buttons))
	}

	count, err := store.New(db).CountPages(ctx)
	if err != nil {
		t.Fatalf("count pages: %v", err)
	}
	if count != 0 {
		t.Errorf("read created %d pages, want 0", count)
	}
}

func TestBlocksReadDoesNotCreate(t *testing.T) {
	svc, db := newContentService(t)
	ctx := context.Background()

	blocks, err := svc.Blocks(ctx, "ghost")
	if err != nil {
		t.Fatalf("blocks: %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("got %d blocks, want 0", len(blocks))
	}

	count, err := store.New(db).CountPages(ctx)
	if err != nil {
		t.Fatalf("count pages: %v", err)
	}
	if count != 0 {
		t.Errorf("read created %d pages, want 0", count)
	}
}

func TestUpdateBlockAndDecode(t *testing.T) {
	svc, db := newContentService(t)
	ctx := context.Background()

	editor := createUser(t, db, "editor", true)
	grant(t, db, editor.ID, "*", "", true)

	doc := model.Document{
		"items": []any{
			map[string]any{"question": "What is FAF?", "answer": "The community project."},
		},
	}
	block, err := svc.UpdateBlock(ctx, &editor, "faq", "main", model.BlockKindFAQList, doc)
	if err != nil {
		t.Fatalf("update block: %v", err)
	}
	if block.BlockType != model.BlockKindFAQList {
		t.Errorf("block type = %q, want %q", block.BlockType, model.BlockKindFAQList)
	}

	blocks, err := svc.Blocks(ctx, "faq")
	if err != nil {
		t.Fatalf("blocks: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	faq, ok := blocks[0].Payload.(model.FAQListContent)
	if !ok {
		t.Fatalf("payload = %T, want FAQListContent", blocks[0].Payload)
	}
	if len(faq.Items) != 1 || faq.Items[0].Question != "What is FAF?" {
		t.Errorf("items = %+v, want the stored question", faq.Items)
	}
}

func TestUpdateBlockAuthz(t *testing.T) {
	svc, db := newContentService(t)
	ctx := context.Background()

	if _, err := svc.UpdateBlock(ctx, nil, "faq", "", model.BlockKindHTML, nil); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("anonymous err = %v, want ErrNotAuthenticated", err)
	}

	reader := createUser(t, db, "reader", true)
	if _, err := svc.UpdateBlock(ctx, &reader, "faq", "", model.BlockKindHTML, nil); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("ungranted err = %v, want ErrNotAuthorized", err)
	}
}

func TestBlocksIncludeGridButtons(t *testing.T) {
	svc, db := newContentService(t)
	ctx := context.Background()

	editor := createUser(t, db, "editor", true)
	grant(t, db, editor.ID, "*", "", true)

	if _, err := svc.CreateButton(ctx, &editor, "home", "main-nav", ButtonFields{Label: "Play"}); err != nil {
		t.Fatalf("create button: %v", err)
	}

	blocks, err := svc.Blocks(ctx, "home")
	if err != nil {
		t.Fatalf("blocks: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if blocks[0].Block.BlockType != model.BlockKindButtonGrid {
		t.Errorf("block type = %q, want %q", blocks[0].Block.BlockType, model.BlockKindButtonGrid)
	}
	if len(blocks[0].Buttons) != 1 || blocks[0].Buttons[0].Label != "Play" {
		t.Errorf("buttons = %+v, want the created button", blocks[0].Buttons)
	}
}
