// repositories/sync.go
package repositories

import (
	"context"

	"github.com/gestioncomercial/gestion_backend/models"
)

// DefaultPageSize matches the remote row cap the sync loop exists to defeat:
// a single query never returns more than this many rows, so a full table
// read has to walk pages by a monotonic key.
const DefaultPageSize = 1000

// DefaultMaxPages bounds the sync loop against a misbehaving backend.
const DefaultMaxPages = 100

// PageFunc fetches one page: records with key strictly greater than
// afterKey, ordered ascending by that key, at most limit of them.
type PageFunc[T any] func(ctx context.Context, afterKey int64, limit int64) ([]T, error)

// KeyFunc extracts the pagination key from a record.
type KeyFunc[T any] func(record T) int64

// FetchAllPages repeatedly requests fixed-size pages until a short page
// signals the end of the data, accumulating everything in memory. The
// cursor starts at 0 (before all records) and advances to the last key of
// each page. When maxPages is reached before a short page arrives, the
// accumulated records are returned with incomplete=true instead of an
// error; the caller decides whether a possibly truncated result is usable.
// Any page failure aborts the whole fetch with a TransportError - there is
// no partial-result recovery.
func FetchAllPages[T any](ctx context.Context, pageSize, maxPages int, fetch PageFunc[T], key KeyFunc[T]) ([]T, int, bool, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	var all []T
	var cursor int64
	pages := 0

	for pages < maxPages {
		page, err := fetch(ctx, cursor, int64(pageSize))
		if err != nil {
			return nil, pages, false, models.NewTransportError("fetch page", err)
		}
		pages++
		all = append(all, page...)

		if len(page) < pageSize {
			return all, pages, false, nil
		}
		cursor = key(page[len(page)-1])
	}

	return all, pages, true, nil
}
