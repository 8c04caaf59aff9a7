// Copyright (c) 2026 FAF Community Wiki contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import "errors"

var (
	// ErrNotAuthenticated is returned when an operation that requires a
	// signed-in user is attempted without one.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotAuthorized is returned when the caller is signed in but holds
	// no grant covering the requested page and section.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
