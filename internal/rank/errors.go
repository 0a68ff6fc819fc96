// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import "errors"

// Errors surfaced by the ranking engine. Callers map these onto their own
// transport-level conditions.
var (
	// ErrInvalidQuery means the query was empty after trimming. Retrieval
	// never runs on empty input.
	ErrInvalidQuery = errors.New("query is empty")

	// ErrUnsupportedMode means the requested mode is neither semantic nor
	// lexical. There is no silent fallback.
	ErrUnsupportedMode = errors.New("unsupported ranking mode")

	// ErrNotReady means a corpus artifact the requested mode depends on is
	// missing. The request fails; retrying is the caller's policy.
	ErrNotReady = errors.New("ranking engine not ready")
)
