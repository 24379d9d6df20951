package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestioncomercial/gestion_backend/models"
)

type syncRow struct {
	Seq int64
}

// fakeStore serves pages from an in-memory dataset the way the row-capped
// backend does: rows with key strictly greater than the cursor, ascending,
// at most limit of them.
type fakeStore struct {
	rows    []syncRow
	calls   []int64 // cursors received, in order
	failOn  int     // 1-based call number that fails, 0 = never
	callNum int
}

func newFakeStore(n int) *fakeStore {
	rows := make([]syncRow, n)
	for i := range rows {
		rows[i].Seq = int64(i + 1)
	}
	return &fakeStore{rows: rows}
}

func (s *fakeStore) fetch(_ context.Context, afterKey, limit int64) ([]syncRow, error) {
	s.callNum++
	if s.failOn > 0 && s.callNum == s.failOn {
		return nil, errors.New("connection reset")
	}
	s.calls = append(s.calls, afterKey)

	var page []syncRow
	for _, r := range s.rows {
		if r.Seq > afterKey {
			page = append(page, r)
			if int64(len(page)) == limit {
				break
			}
		}
	}
	return page, nil
}

func rowKey(r syncRow) int64 { return r.Seq }

func TestFetchAllPagesWalksToShortPage(t *testing.T) {
	store := newFakeStore(237)

	all, pages, incomplete, err := FetchAllPages(context.Background(), 100, 10, store.fetch, rowKey)

	require.NoError(t, err)
	assert.False(t, incomplete)
	assert.Equal(t, 3, pages)
	require.Len(t, all, 237)
	assert.Equal(t, int64(1), all[0].Seq)
	assert.Equal(t, int64(237), all[236].Seq)
	// cursor starts before all rows and advances to the last key of each page
	assert.Equal(t, []int64{0, 100, 200}, store.calls)
}

func TestFetchAllPagesExactMultipleNeedsOneMoreRequest(t *testing.T) {
	store := newFakeStore(200)

	all, pages, incomplete, err := FetchAllPages(context.Background(), 100, 10, store.fetch, rowKey)

	require.NoError(t, err)
	assert.False(t, incomplete)
	// two full pages plus the empty one that signals the end
	assert.Equal(t, 3, pages)
	assert.Len(t, all, 200)
}

func TestFetchAllPagesEmptyDataset(t *testing.T) {
	store := newFakeStore(0)

	all, pages, incomplete, err := FetchAllPages(context.Background(), 100, 10, store.fetch, rowKey)

	require.NoError(t, err)
	assert.False(t, incomplete)
	assert.Equal(t, 1, pages)
	assert.Empty(t, all)
}

func TestFetchAllPagesMaxPagesReturnsIncomplete(t *testing.T) {
	store := newFakeStore(300)

	all, pages, incomplete, err := FetchAllPages(context.Background(), 100, 2, store.fetch, rowKey)

	// hitting the page budget is not an error, the caller gets what was
	// accumulated plus the incomplete flag
	require.NoError(t, err)
	assert.True(t, incomplete)
	assert.Equal(t, 2, pages)
	assert.Len(t, all, 200)
}

func TestFetchAllPagesPageFailureAborts(t *testing.T) {
	store := newFakeStore(300)
	store.failOn = 2

	all, pages, _, err := FetchAllPages(context.Background(), 100, 10, store.fetch, rowKey)

	require.Error(t, err)
	assert.Nil(t, all)
	assert.Equal(t, 1, pages)

	var transportErr *models.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "fetch page", transportErr.Op)
}

func TestFetchAllPagesDefaults(t *testing.T) {
	store := newFakeStore(5)

	all, pages, incomplete, err := FetchAllPages(context.Background(), 0, 0, store.fetch, rowKey)

	require.NoError(t, err)
	assert.False(t, incomplete)
	assert.Equal(t, 1, pages)
	assert.Len(t, all, 5)
}
