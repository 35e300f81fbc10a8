package auction

import (
	"fmt"
	"strings"

	"auction_house/internal/auctionerrors"
	"auction_house/internal/domain"
	"auction_house/internal/repository"
)

// Comments manages listing comments. Comments are append-only: there are no
// edit or delete operations.
type Comments struct {
	store repository.Store
}

// NewComments creates a Comments manager over a Store
func NewComments(store repository.Store) *Comments {
	return &Comments{store: store}
}

// Add validates and records a comment by authorID on a listing
func (c *Comments) Add(listingID, authorID uint, body string) (domain.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return domain.Comment{}, fmt.Errorf("add comment: empty body: %w", auctionerrors.ErrInvalidInput)
	}
	if _, err := c.store.GetListing(listingID); err != nil {
		return domain.Comment{}, fmt.Errorf("add comment: %w", err)
	}
	comment := domain.Comment{Body: body, ListingID: listingID, UserID: authorID}
	if err := c.store.CreateComment(&comment); err != nil {
		return domain.Comment{}, fmt.Errorf("add comment: %w", err)
	}
	return comment, nil
}

// ListForListing returns a listing's comments, oldest first
func (c *Comments) ListForListing(listingID uint) ([]domain.Comment, error) {
	if _, err := c.store.GetListing(listingID); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return c.store.ListComments(listingID)
}
