// Package source fetches the short text blocks that padfeed types into the
// editor.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrFetch is wrapped by every fetch failure.
	ErrFetch = errors.New("source: fetch failed")
	// ErrMissingAPIKey means no API key was configured; no request is made.
	ErrMissingAPIKey = fmt.Errorf("%w: missing API key", ErrFetch)
)

// ContentItem is one fetched text block and when it was requested.
type ContentItem struct {
	Text        string
	RequestedAt time.Time
}

// Source produces content on demand.
type Source interface {
	Fetch(ctx context.Context) (ContentItem, error)
}
