package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fafcommunity/fafwiki/internal/auth"
)

// Default admin credentials
const (
	DefaultAdminUsername = "admin"
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "admin123"
)

// Seed creates the default admin account with a wildcard edit grant if no
// users exist yet.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	count, err := queries.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		slog.Info("users already exist, skipping seed")
		return nil
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Username:     DefaultAdminUsername,
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	// Wildcard grant: admin can edit every page and section
	if _, err := queries.CreatePermission(ctx, CreatePermissionParams{
		UserID:      user.ID,
		PagePattern: "*",
		CanEdit:     true,
		CreatedAt:   now,
	}); err != nil {
		return fmt.Errorf("creating admin permission: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"username", user.Username,
		"password", DefaultAdminPassword,
	)

	return nil
}

// seedUser creates a user with a password hash and a single permission grant.
func seedUser(ctx context.Context, queries *Queries, username, email, password, pagePattern string) error {
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password for %s: %w", username, err)
	}

	now := time.Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating user %s: %w", username, err)
	}

	_, err = queries.CreatePermission(ctx, CreatePermissionParams{
		UserID:      user.ID,
		PagePattern: pagePattern,
		CanEdit:     true,
		CreatedAt:   now,
	})
	if err != nil {
		return fmt.Errorf("creating permission for %s: %w", username, err)
	}

	return nil
}

// ensurePage creates a page if it does not exist yet.
func ensurePage(ctx context.Context, queries *Queries, slug, title string) (Page, error) {
	page, err := queries.GetPageBySlug(ctx, slug)
	if err == nil {
		return page, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Page{}, fmt.Errorf("looking up page %s: %w", slug, err)
	}

	now := time.Now()
	page, err = queries.CreatePage(ctx, CreatePageParams{
		Slug:      slug,
		Title:     title,
		Content:   "{}",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Page{}, fmt.Errorf("creating page %s: %w", slug, err)
	}
	return page, nil
}
