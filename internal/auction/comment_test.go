package auction

import (
	"errors"
	"testing"

	"auction_house/internal/auctionerrors"

	"github.com/stretchr/testify/require"
)

// Tests Add validation and ordering
func TestComments_Add(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	comments := NewComments(f.store)

	tests := []struct {
		name          string
		body          string
		expectedError error
	}{
		{name: "valid_comment", body: "Looks great"},
		{name: "empty_body", body: "", expectedError: auctionerrors.ErrInvalidInput},
		{name: "whitespace_body", body: "   \t", expectedError: auctionerrors.ErrInvalidInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			comment, err := comments.Add(f.listing.ID, f.bidderA.ID, tc.body)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
			} else {
				require.NoError(t, err)
				require.NotZero(t, comment.ID)
				require.Equal(t, tc.body, comment.Body)
			}
		})
	}

	t.Run("unknown_listing", func(t *testing.T) {
		_, err := comments.Add(999, f.bidderA.ID, "hello")
		require.True(t, errors.Is(err, auctionerrors.ErrNotFound))
	})

	t.Run("comments_are_listed_oldest_first", func(t *testing.T) {
		_, err := comments.Add(f.listing.ID, f.bidderB.ID, "Second comment")
		require.NoError(t, err)

		list, err := comments.ListForListing(f.listing.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, "Looks great", list[0].Body)
		require.Equal(t, "Second comment", list[1].Body)
	})

	// comments survive listing close
	t.Run("commenting_allowed_after_close", func(t *testing.T) {
		require.NoError(t, f.engine.CloseListing(f.listing.ID, f.owner.ID))
		_, err := comments.Add(f.listing.ID, f.bidderA.ID, "Congrats to the winner")
		require.NoError(t, err)
	})
}
