package auction

import (
	"errors"
	"fmt"
	"strings"

	"auction_house/internal/auctionerrors"
	"auction_house/internal/domain"
)

// CommentView is a comment joined with its author's username
type CommentView struct {
	Author    string `json:"author"`
	Body      string `json:"body"`
	CreatedAt int64  `json:"created_at"`
}

// ListingView is the full read projection of a listing detail page: the
// listing itself, the live price and bidding state, and what the viewer is
// allowed to do with it
type ListingView struct {
	Listing       domain.Listing `json:"listing"`
	OwnerUsername string         `json:"owner_username"`
	CurrentPrice  float64        `json:"current_price"`
	HighBidder    string         `json:"high_bidder,omitempty"` // empty when no bids
	BidCount      int64          `json:"bid_count"`
	BidMessage    string         `json:"bid_message"`
	CanBid        bool           `json:"can_bid"`
	CanClose      bool           `json:"can_close"`
	CanComment    bool           `json:"can_comment"`
	Watching      bool           `json:"watching"`
	Winner        string         `json:"winner,omitempty"` // set once closed, when bids exist
	Comments      []CommentView  `json:"comments"`
}

// CreateListing validates and persists a new listing owned by ownerID
func (e *Engine) CreateListing(ownerID, categoryID uint, title, description string, imageURL *string, startingBid float64) (domain.Listing, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return domain.Listing{}, fmt.Errorf("create listing: title and description are required: %w", auctionerrors.ErrInvalidInput)
	}
	if startingBid < 0 {
		return domain.Listing{}, fmt.Errorf("create listing: negative starting bid: %w", auctionerrors.ErrInvalidInput)
	}
	if _, err := e.store.GetCategory(categoryID); err != nil {
		return domain.Listing{}, fmt.Errorf("create listing: %w", err)
	}
	if _, err := e.store.GetUserByID(ownerID); err != nil {
		return domain.Listing{}, fmt.Errorf("create listing: %w", err)
	}
	listing := domain.Listing{
		Title:       strings.TrimSpace(title),
		Description: description,
		UserID:      ownerID,
		CategoryID:  categoryID,
		ImageURL:    imageURL,
		StartingBid: startingBid,
	}
	if err := e.store.CreateListing(&listing); err != nil {
		return domain.Listing{}, fmt.Errorf("create listing: %w", err)
	}
	return listing, nil
}

// GetListing returns a listing by ID
func (e *Engine) GetListing(listingID uint) (domain.Listing, error) {
	return e.store.GetListing(listingID)
}

// ListOpenListings returns all open listings, newest first
func (e *Engine) ListOpenListings() ([]domain.Listing, error) {
	return e.store.ListOpenListings()
}

// ListByCategory returns the open listings in a category, newest first
func (e *Engine) ListByCategory(categoryID uint) ([]domain.Listing, error) {
	if _, err := e.store.GetCategory(categoryID); err != nil {
		return nil, fmt.Errorf("list by category: %w", err)
	}
	return e.store.ListListingsByCategory(categoryID)
}

// ListCategories returns every category
func (e *Engine) ListCategories() ([]domain.Category, error) {
	return e.store.ListCategories()
}

// ListCategoriesWithOpenListings returns the categories that currently have
// at least one open listing
func (e *Engine) ListCategoriesWithOpenListings() ([]domain.Category, error) {
	return e.store.ListCategoriesWithOpenListings()
}

// CreateCategory adds a new category title (admin operation)
func (e *Engine) CreateCategory(title string) (domain.Category, error) {
	if strings.TrimSpace(title) == "" {
		return domain.Category{}, fmt.Errorf("create category: title is required: %w", auctionerrors.ErrInvalidInput)
	}
	category := domain.Category{Title: strings.TrimSpace(title)}
	if err := e.store.CreateCategory(&category); err != nil {
		return domain.Category{}, err
	}
	return category, nil
}

// ViewListing assembles the listing detail projection for a viewer.
// viewerID zero means anonymous: no forms are offered and watchlist state is
// always false.
func (e *Engine) ViewListing(listingID, viewerID uint) (ListingView, error) {
	listing, err := e.store.GetListing(listingID)
	if err != nil {
		return ListingView{}, fmt.Errorf("view listing: %w", err)
	}
	owner, err := e.store.GetUserByID(listing.UserID)
	if err != nil {
		return ListingView{}, fmt.Errorf("view listing: %w", err)
	}

	view := ListingView{
		Listing:       listing,
		OwnerUsername: owner.Username,
		CanBid:        viewerID != 0 && viewerID != listing.UserID && !listing.Closed,
		CanClose:      viewerID == listing.UserID && !listing.Closed,
		CanComment:    viewerID != 0,
	}

	view.CurrentPrice, err = currentPrice(e.store, listing)
	if err != nil {
		return ListingView{}, fmt.Errorf("view listing: %w", err)
	}
	view.BidCount, err = e.store.CountBids(listingID)
	if err != nil {
		return ListingView{}, fmt.Errorf("view listing: %w", err)
	}

	// "no bids" is an explicit case, never a defaulted amount or username
	var highBidderID uint
	highBid, err := e.store.HighestBid(listingID)
	switch {
	case err == nil:
		bidder, err := e.store.GetUserByID(highBid.UserID)
		if err != nil {
			return ListingView{}, fmt.Errorf("view listing: %w", err)
		}
		view.HighBidder = bidder.Username
		highBidderID = bidder.ID
	case errors.Is(err, auctionerrors.ErrNoBids):
		// leave HighBidder empty
	default:
		return ListingView{}, fmt.Errorf("view listing: %w", err)
	}

	view.BidMessage = bidMessage(view.BidCount, viewerID != 0 && viewerID == highBidderID && viewerID != listing.UserID)
	if listing.Closed {
		view.Winner = view.HighBidder
	}

	if viewerID != 0 {
		entry, err := e.store.GetWatchlistEntry(viewerID, listingID)
		switch {
		case err == nil:
			view.Watching = !entry.Deleted
		case errors.Is(err, auctionerrors.ErrNotFound):
			// not watching
		default:
			return ListingView{}, fmt.Errorf("view listing: %w", err)
		}
	}

	comments, err := e.store.ListComments(listingID)
	if err != nil {
		return ListingView{}, fmt.Errorf("view listing: %w", err)
	}
	view.Comments = make([]CommentView, 0, len(comments))
	authors := make(map[uint]string)
	for _, comment := range comments {
		name, ok := authors[comment.UserID]
		if !ok {
			author, err := e.store.GetUserByID(comment.UserID)
			if err != nil {
				return ListingView{}, fmt.Errorf("view listing: %w", err)
			}
			name = author.Username
			authors[comment.UserID] = name
		}
		view.Comments = append(view.Comments, CommentView{
			Author:    name,
			Body:      comment.Body,
			CreatedAt: comment.CreatedAt,
		})
	}

	return view, nil
}

// bidMessage renders the bid-count banner shown on the listing page
func bidMessage(count int64, viewerHasHighBid bool) string {
	msg := fmt.Sprintf("There are %d bids on this listing", count)
	if count == 1 {
		msg = "There is 1 bid on this listing"
	}
	if viewerHasHighBid {
		msg += " (You have the highest bid)"
	}
	return msg
}
