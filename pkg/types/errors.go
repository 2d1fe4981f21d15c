// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "errors"

// Source errors shared by the checkout and metadata providers. The public
// readme package re-exports them.
var (
	ErrInvalidRepoRef    = errors.New("invalid repository reference")
	ErrRepoNotFound      = errors.New("repository not found")
	ErrAuthRequired      = errors.New("authentication required")
	ErrSourceUnavailable = errors.New("repository source unavailable")
)
