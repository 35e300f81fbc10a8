package auction

import (
	"errors"
	"fmt"

	"auction_house/internal/auctionerrors"
	"auction_house/internal/domain"
	"auction_house/internal/repository"
)

// Watchlist manages each user's saved set of listings. Add and Remove are
// both idempotent; removal is a soft delete so the (user, listing) pair stays
// unique across re-adds.
type Watchlist struct {
	store repository.Store
}

// NewWatchlist creates a Watchlist manager over a Store
func NewWatchlist(store repository.Store) *Watchlist {
	return &Watchlist{store: store}
}

// IsWatching reports whether a non-deleted entry exists for the pair
func (w *Watchlist) IsWatching(userID, listingID uint) (bool, error) {
	entry, err := w.store.GetWatchlistEntry(userID, listingID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("is watching: %w", err)
	}
	return !entry.Deleted, nil
}

// Add puts the listing on the user's watchlist, creating the entry or
// un-deleting a previously removed one. Adding an already-watched listing is
// a no-op.
func (w *Watchlist) Add(userID, listingID uint) error {
	entry, err := w.store.GetWatchlistEntry(userID, listingID)
	if err != nil {
		if !errors.Is(err, auctionerrors.ErrNotFound) {
			return fmt.Errorf("watchlist add: %w", err)
		}
		if _, err := w.store.GetListing(listingID); err != nil {
			return fmt.Errorf("watchlist add: %w", err)
		}
		entry = domain.WatchlistEntry{UserID: userID, ListingID: listingID}
		if err := w.store.SaveWatchlistEntry(&entry); err != nil {
			return fmt.Errorf("watchlist add: %w", err)
		}
		return nil
	}
	if !entry.Deleted {
		return nil
	}
	entry.Deleted = false
	if err := w.store.SaveWatchlistEntry(&entry); err != nil {
		return fmt.Errorf("watchlist add: %w", err)
	}
	return nil
}

// Remove takes the listing off the user's watchlist. Removing an entry that
// does not exist is a no-op, not an error.
func (w *Watchlist) Remove(userID, listingID uint) error {
	entry, err := w.store.GetWatchlistEntry(userID, listingID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("watchlist remove: %w", err)
	}
	if entry.Deleted {
		return nil
	}
	entry.Deleted = true
	if err := w.store.SaveWatchlistEntry(&entry); err != nil {
		return fmt.Errorf("watchlist remove: %w", err)
	}
	return nil
}

// Toggle drives the watchlist to the desired state for the pair
func (w *Watchlist) Toggle(userID, listingID uint, watching bool) error {
	if watching {
		return w.Add(userID, listingID)
	}
	return w.Remove(userID, listingID)
}

// CountForUser returns the number of listings the user is watching, shown as
// the navbar badge on every page
func (w *Watchlist) CountForUser(userID uint) (int64, error) {
	return w.store.CountWatchlist(userID)
}

// ListForUser returns the watched listings, most recently added first
func (w *Watchlist) ListForUser(userID uint) ([]domain.Listing, error) {
	return w.store.ListWatchedListings(userID)
}
