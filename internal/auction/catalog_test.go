package auction

import (
	"errors"
	"testing"

	"auction_house/internal/auctionerrors"
	"auction_house/internal/domain"
	"auction_house/internal/repository"

	"github.com/stretchr/testify/require"
)

// Tests CreateListing validation
func TestEngine_CreateListing(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	tests := []struct {
		name          string
		title         string
		description   string
		categoryID    uint
		startingBid   float64
		expectedError error
	}{
		{name: "valid", title: "Old clock", description: "Ticks", categoryID: 1, startingBid: 5.00},
		{name: "zero_starting_bid", title: "Freebie", description: "Gratis", categoryID: 1, startingBid: 0},
		{name: "blank_title", title: "   ", description: "Ticks", categoryID: 1, startingBid: 5.00, expectedError: auctionerrors.ErrInvalidInput},
		{name: "blank_description", title: "Old clock", description: "", categoryID: 1, startingBid: 5.00, expectedError: auctionerrors.ErrInvalidInput},
		{name: "negative_starting_bid", title: "Old clock", description: "Ticks", categoryID: 1, startingBid: -1.00, expectedError: auctionerrors.ErrInvalidInput},
		{name: "unknown_category", title: "Old clock", description: "Ticks", categoryID: 999, startingBid: 5.00, expectedError: auctionerrors.ErrNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			listing, err := f.engine.CreateListing(f.owner.ID, tc.categoryID, tc.title, tc.description, nil, tc.startingBid)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
			} else {
				require.NoError(t, err)
				require.NotZero(t, listing.ID)
				require.False(t, listing.Closed)
				require.Equal(t, f.owner.ID, listing.UserID)
			}
		})
	}
}

// Tests the browse projections
func TestEngine_Projections(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryStore()
	engine := NewEngine(store)

	owner := domain.User{Username: "owner", Email: "owner@example.com", Password: "hash"}
	require.NoError(t, store.CreateUser(&owner))

	books, err := engine.CreateCategory("Books")
	require.NoError(t, err)
	toys, err := engine.CreateCategory("Toys")
	require.NoError(t, err)
	empty, err := engine.CreateCategory("Antiques")
	require.NoError(t, err)

	novel, err := engine.CreateListing(owner.ID, books.ID, "Novel", "A novel", nil, 5.00)
	require.NoError(t, err)
	train, err := engine.CreateListing(owner.ID, toys.ID, "Train set", "Complete", nil, 25.00)
	require.NoError(t, err)

	open, err := engine.ListOpenListings()
	require.NoError(t, err)
	require.Len(t, open, 2)

	inBooks, err := engine.ListByCategory(books.ID)
	require.NoError(t, err)
	require.Len(t, inBooks, 1)
	require.Equal(t, novel.ID, inBooks[0].ID)

	_, err = engine.ListByCategory(999)
	require.True(t, errors.Is(err, auctionerrors.ErrNotFound))

	withOpen, err := engine.ListCategoriesWithOpenListings()
	require.NoError(t, err)
	require.Len(t, withOpen, 2)
	for _, c := range withOpen {
		require.NotEqual(t, empty.ID, c.ID)
	}

	all, err := engine.ListCategories()
	require.NoError(t, err)
	require.Len(t, all, 3)

	// closing the only listing in a category removes the category from the
	// open projection
	require.NoError(t, engine.CloseListing(train.ID, owner.ID))
	withOpen, err = engine.ListCategoriesWithOpenListings()
	require.NoError(t, err)
	require.Len(t, withOpen, 1)
	require.Equal(t, books.ID, withOpen[0].ID)

	_, err = engine.CreateCategory("  ")
	require.True(t, errors.Is(err, auctionerrors.ErrInvalidInput))
}

// Tests the listing detail projection
func TestEngine_ViewListing(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	comments := NewComments(f.store)
	watchlist := NewWatchlist(f.store)

	// anonymous viewer: no forms, no watchlist state
	view, err := f.engine.ViewListing(f.listing.ID, 0)
	require.NoError(t, err)
	require.Equal(t, "owner", view.OwnerUsername)
	require.Equal(t, 10.00, view.CurrentPrice)
	require.Empty(t, view.HighBidder)
	require.Equal(t, int64(0), view.BidCount)
	require.Equal(t, "There are 0 bids on this listing", view.BidMessage)
	require.False(t, view.CanBid)
	require.False(t, view.CanClose)
	require.False(t, view.CanComment)
	require.False(t, view.Watching)
	require.Empty(t, view.Winner)

	// owner sees the close form but no bid form
	view, err = f.engine.ViewListing(f.listing.ID, f.owner.ID)
	require.NoError(t, err)
	require.False(t, view.CanBid)
	require.True(t, view.CanClose)
	require.True(t, view.CanComment)

	_, err = f.engine.PlaceBid(f.listing.ID, f.bidderA.ID, 12.00)
	require.NoError(t, err)
	_, err = comments.Add(f.listing.ID, f.bidderA.ID, "Is shipping included?")
	require.NoError(t, err)
	require.NoError(t, watchlist.Add(f.bidderA.ID, f.listing.ID))

	// the high bidder sees their status in the bid message
	view, err = f.engine.ViewListing(f.listing.ID, f.bidderA.ID)
	require.NoError(t, err)
	require.True(t, view.CanBid)
	require.False(t, view.CanClose)
	require.True(t, view.Watching)
	require.Equal(t, 12.00, view.CurrentPrice)
	require.Equal(t, "bidder_a", view.HighBidder)
	require.Equal(t, "There is 1 bid on this listing (You have the highest bid)", view.BidMessage)
	require.Len(t, view.Comments, 1)
	require.Equal(t, "bidder_a", view.Comments[0].Author)
	require.Equal(t, "Is shipping included?", view.Comments[0].Body)

	// another bidder sees the same count without the suffix
	view, err = f.engine.ViewListing(f.listing.ID, f.bidderB.ID)
	require.NoError(t, err)
	require.Equal(t, "There is 1 bid on this listing", view.BidMessage)
	require.False(t, view.Watching)

	// after close the winner is surfaced and all forms disappear
	require.NoError(t, f.engine.CloseListing(f.listing.ID, f.owner.ID))
	view, err = f.engine.ViewListing(f.listing.ID, f.bidderA.ID)
	require.NoError(t, err)
	require.True(t, view.Listing.Closed)
	require.False(t, view.CanBid)
	require.False(t, view.CanClose)
	require.Equal(t, "bidder_a", view.Winner)

	_, err = f.engine.ViewListing(999, 0)
	require.True(t, errors.Is(err, auctionerrors.ErrNotFound))
}
