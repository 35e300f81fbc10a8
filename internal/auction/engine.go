package auction

import (
	"errors"
	"fmt"

	"auction_house/internal/auctionerrors"
	"auction_house/internal/domain"
	"auction_house/internal/repository"
)

// Engine implements the auction bidding rules: which bid is winning, who may
// bid what, and when a listing closes. All rules are evaluated against the
// latest persisted state; the write paths run inside store transactions.
type Engine struct {
	store repository.Store
}

// NewEngine creates an Engine over a Store
func NewEngine(store repository.Store) *Engine {
	return &Engine{store: store}
}

// CurrentHighBid returns the bid with the maximum amount for the listing,
// ties broken by earliest creation. ErrNoBids when the listing has no bids —
// callers must treat that as a distinct case, never as a default amount.
func (e *Engine) CurrentHighBid(listingID uint) (domain.Bid, error) {
	if _, err := e.store.GetListing(listingID); err != nil {
		return domain.Bid{}, fmt.Errorf("current high bid: %w", err)
	}
	return e.store.HighestBid(listingID)
}

// CurrentPrice returns the high bid amount, or the starting bid when no bids
// have been placed
func (e *Engine) CurrentPrice(listingID uint) (float64, error) {
	listing, err := e.store.GetListing(listingID)
	if err != nil {
		return 0, fmt.Errorf("current price: %w", err)
	}
	return currentPrice(e.store, listing)
}

// currentPrice evaluates the price of a listing against the given store
// view, so PlaceBid can reuse it inside its transaction
func currentPrice(tx repository.Store, listing domain.Listing) (float64, error) {
	bid, err := tx.HighestBid(listing.ID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrNoBids) {
			return listing.StartingBid, nil
		}
		return 0, err
	}
	return bid.Amount, nil
}

// HighBidder returns the user holding the current high bid. ErrNoBids when
// the listing has no bids.
func (e *Engine) HighBidder(listingID uint) (domain.User, error) {
	bid, err := e.CurrentHighBid(listingID)
	if err != nil {
		return domain.User{}, err
	}
	return e.store.GetUserByID(bid.UserID)
}

// BidCount returns the number of bids on the listing
func (e *Engine) BidCount(listingID uint) (int64, error) {
	return e.store.CountBids(listingID)
}

// PlaceBid validates and records a bid. It fails with ErrInvalidBid when the
// listing is closed, the bidder owns the listing, or the amount does not
// strictly exceed the current price read at write time. The read-validate-
// write sequence runs in one store transaction with the listing row locked;
// a transient (non-business) failure is retried exactly once.
func (e *Engine) PlaceBid(listingID, bidderID uint, amount float64) (domain.Bid, error) {
	bid, err := e.placeBidOnce(listingID, bidderID, amount)
	if err != nil && !isBusinessError(err) {
		bid, err = e.placeBidOnce(listingID, bidderID, amount)
	}
	return bid, err
}

func (e *Engine) placeBidOnce(listingID, bidderID uint, amount float64) (domain.Bid, error) {
	var bid domain.Bid
	err := e.store.Transaction(func(tx repository.Store) error {
		listing, err := tx.GetListingForUpdate(listingID)
		if err != nil {
			return err
		}
		if listing.Closed {
			return fmt.Errorf("listing %d is closed: %w", listingID, auctionerrors.ErrInvalidBid)
		}
		if listing.UserID == bidderID {
			return fmt.Errorf("owner may not bid on own listing %d: %w", listingID, auctionerrors.ErrInvalidBid)
		}
		price, err := currentPrice(tx, listing)
		if err != nil {
			return err
		}
		if amount <= price {
			return fmt.Errorf("bid %.2f on listing %d at price %.2f: %w", amount, listingID, price, auctionerrors.ErrBidTooLow)
		}
		bid = domain.Bid{Amount: amount, ListingID: listingID, UserID: bidderID}
		return tx.CreateBid(&bid)
	})
	if err != nil {
		return domain.Bid{}, fmt.Errorf("place bid: %w", err)
	}
	return bid, nil
}

// CloseListing transitions a listing from open to closed. Only the owner may
// close; the transition is terminal.
func (e *Engine) CloseListing(listingID, actorID uint) error {
	err := e.store.Transaction(func(tx repository.Store) error {
		listing, err := tx.GetListingForUpdate(listingID)
		if err != nil {
			return err
		}
		if listing.UserID != actorID {
			return fmt.Errorf("user %d does not own listing %d: %w", actorID, listingID, auctionerrors.ErrForbidden)
		}
		if listing.Closed {
			return fmt.Errorf("listing %d: %w", listingID, auctionerrors.ErrAlreadyClosed)
		}
		return tx.SetListingClosed(listingID)
	})
	if err != nil {
		return fmt.Errorf("close listing: %w", err)
	}
	return nil
}

// Winner returns the user who held the high bid when the listing closed.
// ErrListingOpen while bidding is still open, ErrNoBids when the listing
// closed without any bids.
func (e *Engine) Winner(listingID uint) (domain.User, error) {
	listing, err := e.store.GetListing(listingID)
	if err != nil {
		return domain.User{}, fmt.Errorf("winner: %w", err)
	}
	if !listing.Closed {
		return domain.User{}, fmt.Errorf("winner of listing %d: %w", listingID, auctionerrors.ErrListingOpen)
	}
	return e.HighBidder(listingID)
}

// isBusinessError reports whether err is a rule violation rather than a
// transient store failure; business errors are never retried
func isBusinessError(err error) bool {
	for _, sentinel := range []error{
		auctionerrors.ErrInvalidBid,
		auctionerrors.ErrForbidden,
		auctionerrors.ErrAlreadyClosed,
		auctionerrors.ErrInvalidInput,
		auctionerrors.ErrNotFound,
		auctionerrors.ErrNoBids,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
