package auction

import (
	"errors"
	"testing"

	"auction_house/internal/auctionerrors"

	"github.com/stretchr/testify/require"
)

// Tests Add/Remove idempotency and the badge count
func TestWatchlist_AddRemove(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	watchlist := NewWatchlist(f.store)

	watching, err := watchlist.IsWatching(f.bidderA.ID, f.listing.ID)
	require.NoError(t, err)
	require.False(t, watching)

	// adding twice is idempotent: the count goes up by exactly one
	require.NoError(t, watchlist.Add(f.bidderA.ID, f.listing.ID))
	require.NoError(t, watchlist.Add(f.bidderA.ID, f.listing.ID))

	count, err := watchlist.CountForUser(f.bidderA.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	watching, err = watchlist.IsWatching(f.bidderA.ID, f.listing.ID)
	require.NoError(t, err)
	require.True(t, watching)

	listings, err := watchlist.ListForUser(f.bidderA.ID)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	require.Equal(t, f.listing.ID, listings[0].ID)

	// removing twice is idempotent too
	require.NoError(t, watchlist.Remove(f.bidderA.ID, f.listing.ID))
	require.NoError(t, watchlist.Remove(f.bidderA.ID, f.listing.ID))

	count, err = watchlist.CountForUser(f.bidderA.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)

	// removing an entry that never existed is a no-op, not an error
	require.NoError(t, watchlist.Remove(f.bidderB.ID, f.listing.ID))

	// re-adding un-deletes the soft-deleted row
	require.NoError(t, watchlist.Add(f.bidderA.ID, f.listing.ID))
	watching, err = watchlist.IsWatching(f.bidderA.ID, f.listing.ID)
	require.NoError(t, err)
	require.True(t, watching)

	// watching an unknown listing is an error
	err = watchlist.Add(f.bidderA.ID, 999)
	require.True(t, errors.Is(err, auctionerrors.ErrNotFound))
}

// Tests Toggle against the desired-state semantics
func TestWatchlist_Toggle(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	watchlist := NewWatchlist(f.store)

	tests := []struct {
		name          string
		desired       bool
		expectedCount int64
	}{
		{name: "toggle_on", desired: true, expectedCount: 1},
		{name: "toggle_on_again", desired: true, expectedCount: 1},
		{name: "toggle_off", desired: false, expectedCount: 0},
		{name: "toggle_off_again", desired: false, expectedCount: 0},
		{name: "toggle_back_on", desired: true, expectedCount: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, watchlist.Toggle(f.bidderA.ID, f.listing.ID, tc.desired))

			count, err := watchlist.CountForUser(f.bidderA.ID)
			require.NoError(t, err)
			require.Equal(t, tc.expectedCount, count)

			watching, err := watchlist.IsWatching(f.bidderA.ID, f.listing.ID)
			require.NoError(t, err)
			require.Equal(t, tc.desired, watching)
		})
	}
}
