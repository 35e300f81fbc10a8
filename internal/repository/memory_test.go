package repository

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"auction_house/internal/auctionerrors"
	"auction_house/internal/domain"

	"github.com/stretchr/testify/require"
)

// Helper to seed a user
func seedUser(t *testing.T, store *MemoryStore, username string) domain.User {
	t.Helper()
	user := domain.User{Username: username, Email: username + "@example.com", Password: "hash"}
	require.NoError(t, store.CreateUser(&user))
	return user
}

// Helper to seed a category
func seedCategory(t *testing.T, store *MemoryStore, title string) domain.Category {
	t.Helper()
	category := domain.Category{Title: title}
	require.NoError(t, store.CreateCategory(&category))
	return category
}

// Helper to seed a listing
func seedListing(t *testing.T, store *MemoryStore, ownerID, categoryID uint, startingBid float64) domain.Listing {
	t.Helper()
	listing := domain.Listing{
		Title:       "listing",
		Description: "listing description",
		UserID:      ownerID,
		CategoryID:  categoryID,
		StartingBid: startingBid,
	}
	require.NoError(t, store.CreateListing(&listing))
	return listing
}

// Test CreateUser uniqueness
func TestMemoryStore_CreateUser(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	seedUser(t, store, "alice")

	dup := domain.User{Username: "alice", Email: "other@example.com", Password: "hash"}
	err := store.CreateUser(&dup)
	require.Error(t, err)
	require.True(t, errors.Is(err, auctionerrors.ErrUsernameTaken))

	found, err := store.GetUserByUsername("alice")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", found.Email)

	_, err = store.GetUserByUsername("nobody")
	require.True(t, errors.Is(err, auctionerrors.ErrNotFound))
}

// Test HighestBid ordering and tie-break
func TestMemoryStore_HighestBid(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	owner := seedUser(t, store, "owner")
	bidderA := seedUser(t, store, "bidderA")
	bidderB := seedUser(t, store, "bidderB")
	category := seedCategory(t, store, "Electronics")
	listing := seedListing(t, store, owner.ID, category.ID, 10)
	empty := seedListing(t, store, owner.ID, category.ID, 10)

	_, err := store.HighestBid(listing.ID)
	require.True(t, errors.Is(err, auctionerrors.ErrNoBids))

	bidA := domain.Bid{Amount: 12, ListingID: listing.ID, UserID: bidderA.ID}
	require.NoError(t, store.CreateBid(&bidA))
	bidB := domain.Bid{Amount: 15, ListingID: listing.ID, UserID: bidderB.ID}
	require.NoError(t, store.CreateBid(&bidB))

	highest, err := store.HighestBid(listing.ID)
	require.NoError(t, err)
	require.Equal(t, bidB.ID, highest.ID)

	// equal amounts: the earliest-created bid wins
	tie := domain.Bid{Amount: 15, ListingID: listing.ID, UserID: bidderA.ID}
	require.NoError(t, store.CreateBid(&tie))
	highest, err = store.HighestBid(listing.ID)
	require.NoError(t, err)
	require.Equal(t, bidB.ID, highest.ID)

	count, err := store.CountBids(listing.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)

	count, err = store.CountBids(empty.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)

	// bids on unknown listings are rejected
	orphan := domain.Bid{Amount: 5, ListingID: 999, UserID: bidderA.ID}
	err = store.CreateBid(&orphan)
	require.True(t, errors.Is(err, auctionerrors.ErrNotFound))
}

// Test open-listing projections
func TestMemoryStore_ListOpenListings(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	owner := seedUser(t, store, "owner")
	electronics := seedCategory(t, store, "Electronics")
	books := seedCategory(t, store, "Books")

	first := seedListing(t, store, owner.ID, electronics.ID, 10)
	second := seedListing(t, store, owner.ID, books.ID, 20)
	closed := seedListing(t, store, owner.ID, electronics.ID, 30)
	require.NoError(t, store.SetListingClosed(closed.ID))

	open, err := store.ListOpenListings()
	require.NoError(t, err)
	require.Len(t, open, 2)
	// newest first
	require.Equal(t, second.ID, open[0].ID)
	require.Equal(t, first.ID, open[1].ID)

	byCategory, err := store.ListListingsByCategory(electronics.ID)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	require.Equal(t, first.ID, byCategory[0].ID)

	categories, err := store.ListCategoriesWithOpenListings()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	// ordered by title
	require.Equal(t, "Books", categories[0].Title)
	require.Equal(t, "Electronics", categories[1].Title)

	require.True(t, errors.Is(store.SetListingClosed(999), auctionerrors.ErrNotFound))
}

// Test watchlist persistence semantics
func TestMemoryStore_Watchlist(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	owner := seedUser(t, store, "owner")
	watcher := seedUser(t, store, "watcher")
	category := seedCategory(t, store, "Books")
	listing := seedListing(t, store, owner.ID, category.ID, 10)

	_, err := store.GetWatchlistEntry(watcher.ID, listing.ID)
	require.True(t, errors.Is(err, auctionerrors.ErrNotFound))

	entry := domain.WatchlistEntry{UserID: watcher.ID, ListingID: listing.ID}
	require.NoError(t, store.SaveWatchlistEntry(&entry))
	require.NotZero(t, entry.ID)

	count, err := store.CountWatchlist(watcher.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	// soft delete keeps the row but drops it from counts and lists
	entry.Deleted = true
	require.NoError(t, store.SaveWatchlistEntry(&entry))

	count, err = store.CountWatchlist(watcher.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)

	kept, err := store.GetWatchlistEntry(watcher.ID, listing.ID)
	require.NoError(t, err)
	require.True(t, kept.Deleted)
	require.Equal(t, entry.ID, kept.ID)

	listings, err := store.ListWatchedListings(watcher.ID)
	require.NoError(t, err)
	require.Empty(t, listings)

	// un-delete restores the same row
	kept.Deleted = false
	require.NoError(t, store.SaveWatchlistEntry(&kept))
	listings, err = store.ListWatchedListings(watcher.ID)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	require.Equal(t, listing.ID, listings[0].ID)
}

// Concurrency test: transactions serialize concurrent bid writers
func TestMemoryStore_ConcurrentTransactions(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	owner := seedUser(t, store, "owner")
	category := seedCategory(t, store, "Toys")
	listing := seedListing(t, store, owner.ID, category.ID, 10)

	var wg sync.WaitGroup
	concurrentCount := 50

	for i := 0; i < concurrentCount; i++ {
		wg.Add(1)
		i := i
		go func() {
			defer wg.Done()
			bidder := domain.User{Username: fmt.Sprintf("user-%d", i), Email: "u@example.com", Password: "hash"}
			require.NoError(t, store.CreateUser(&bidder))
			err := store.Transaction(func(tx Store) error {
				bid := domain.Bid{Amount: float64(100 + i), ListingID: listing.ID, UserID: bidder.ID}
				return tx.CreateBid(&bid)
			})
			require.NoError(t, err)
		}()
	}

	wg.Wait()

	count, err := store.CountBids(listing.ID)
	require.NoError(t, err)
	require.Equal(t, int64(concurrentCount), count)
}
