// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package readme

import "errors"

// User-facing messages for fatal errors.
const (
	MsgInvalidURL         = "Error: Invalid GitHub repository URL"
	MsgNotFound           = "Error: Repository not found. Please check the URL."
	MsgAuthRequired       = "Error: This is a private repository. Authentication is required."
	MsgCredentialRequired = "Error: API Key is required for AI generation."
	MsgAINotConfigured    = "Error: AI generation is not available on this server."
	msgUnexpected         = "An unexpected error occurred: "
)

// UserMessage maps an error from Generate to the single short message
// shown to users in place of a document.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidRepoRef):
		return MsgInvalidURL
	case errors.Is(err, ErrRepoNotFound):
		return MsgNotFound
	case errors.Is(err, ErrAuthRequired):
		return MsgAuthRequired
	case errors.Is(err, ErrCredentialRequired):
		return MsgCredentialRequired
	case errors.Is(err, ErrAINotConfigured):
		return MsgAINotConfigured
	default:
		return msgUnexpected + err.Error()
	}
}

// IsInputError reports whether err was caused by the request rather than
// by a collaborator.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidRepoRef) ||
		errors.Is(err, ErrCredentialRequired) ||
		errors.Is(err, ErrAINotConfigured) ||
		errors.Is(err, ErrInvalidConfig)
}
