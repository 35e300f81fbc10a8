package repository

import (
	"errors"
	"fmt"

	"auction_house/internal/auctionerrors"
	"auction_house/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store defines the persistence operations the auction services run against.
// Transaction executes fn against a transactional view of the same store so
// read-validate-write sequences (bid placement, listing close) are atomic.
type Store interface {
	// Users
	CreateUser(user *domain.User) error
	GetUserByID(id uint) (domain.User, error)
	GetUserByUsername(username string) (domain.User, error)

	// Categories
	CreateCategory(category *domain.Category) error
	GetCategory(id uint) (domain.Category, error)
	ListCategories() ([]domain.Category, error)
	ListCategoriesWithOpenListings() ([]domain.Category, error)

	// Listings
	CreateListing(listing *domain.Listing) error
	GetListing(id uint) (domain.Listing, error)
	GetListingForUpdate(id uint) (domain.Listing, error)
	SetListingClosed(id uint) error
	ListOpenListings() ([]domain.Listing, error)
	ListListingsByCategory(categoryID uint) ([]domain.Listing, error)

	// Bids
	CreateBid(bid *domain.Bid) error
	HighestBid(listingID uint) (domain.Bid, error)
	CountBids(listingID uint) (int64, error)

	// Comments
	CreateComment(comment *domain.Comment) error
	ListComments(listingID uint) ([]domain.Comment, error)

	// Watchlist
	GetWatchlistEntry(userID, listingID uint) (domain.WatchlistEntry, error)
	SaveWatchlistEntry(entry *domain.WatchlistEntry) error
	CountWatchlist(userID uint) (int64, error)
	ListWatchedListings(userID uint) ([]domain.Listing, error)

	Transaction(fn func(tx Store) error) error
}

// GormStore is the MySQL-backed Store implementation
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store over an open GORM connection
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// translate maps GORM errors onto the store sentinels
func translate(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, auctionerrors.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// CreateUser inserts a new user; a duplicate username maps to ErrUsernameTaken
func (s *GormStore) CreateUser(user *domain.User) error {
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create user %q: %w", user.Username, auctionerrors.ErrUsernameTaken)
		}
		return fmt.Errorf("create user %q: %w", user.Username, err)
	}
	return nil
}

// GetUserByID returns the user with the given ID
func (s *GormStore) GetUserByID(id uint) (domain.User, error) {
	var user domain.User
	if err := s.db.First(&user, id).Error; err != nil {
		return domain.User{}, translate(err, fmt.Sprintf("get user %d", id))
	}
	return user, nil
}

// GetUserByUsername returns the user with the given username
func (s *GormStore) GetUserByUsername(username string) (domain.User, error) {
	var user domain.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return domain.User{}, translate(err, fmt.Sprintf("get user %q", username))
	}
	return user, nil
}

// CreateCategory inserts a new category
func (s *GormStore) CreateCategory(category *domain.Category) error {
	if err := s.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create category %q: %w", category.Title, auctionerrors.ErrInvalidInput)
		}
		return fmt.Errorf("create category %q: %w", category.Title, err)
	}
	return nil
}

// GetCategory returns the category with the given ID
func (s *GormStore) GetCategory(id uint) (domain.Category, error) {
	var category domain.Category
	if err := s.db.First(&category, id).Error; err != nil {
		return domain.Category{}, translate(err, fmt.Sprintf("get category %d", id))
	}
	return category, nil
}

// ListCategories returns all categories ordered by title
func (s *GormStore) ListCategories() ([]domain.Category, error) {
	var categories []domain.Category
	if err := s.db.Order("title asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// ListCategoriesWithOpenListings returns categories that have at least one
// open listing, ordered by title
func (s *GormStore) ListCategoriesWithOpenListings() ([]domain.Category, error) {
	var categories []domain.Category
	err := s.db.Model(&domain.Category{}).
		Distinct("categories.*").
		Joins("JOIN listings ON listings.category_id = categories.id AND listings.closed = ?", false).
		Order("categories.title asc").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("list categories with open listings: %w", err)
	}
	return categories, nil
}

// CreateListing inserts a new listing
func (s *GormStore) CreateListing(listing *domain.Listing) error {
	if err := s.db.Create(listing).Error; err != nil {
		return fmt.Errorf("create listing %q: %w", listing.Title, err)
	}
	return nil
}

// GetListing returns the listing with the given ID
func (s *GormStore) GetListing(id uint) (domain.Listing, error) {
	var listing domain.Listing
	if err := s.db.First(&listing, id).Error; err != nil {
		return domain.Listing{}, translate(err, fmt.Sprintf("get listing %d", id))
	}
	return listing, nil
}

// GetListingForUpdate returns the listing with its row locked for the
// duration of the surrounding transaction, serializing concurrent bids on
// the same listing
func (s *GormStore) GetListingForUpdate(id uint) (domain.Listing, error) {
	var listing domain.Listing
	if err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&listing, id).Error; err != nil {
		return domain.Listing{}, translate(err, fmt.Sprintf("lock listing %d", id))
	}
	return listing, nil
}

// SetListingClosed marks the listing closed
func (s *GormStore) SetListingClosed(id uint) error {
	res := s.db.Model(&domain.Listing{}).Where("id = ?", id).Update("closed", true)
	if res.Error != nil {
		return fmt.Errorf("close listing %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("close listing %d: %w", id, auctionerrors.ErrNotFound)
	}
	return nil
}

// ListOpenListings returns open listings, newest first
func (s *GormStore) ListOpenListings() ([]domain.Listing, error) {
	var listings []domain.Listing
	if err := s.db.Where("closed = ?", false).Order("created_at desc, id desc").Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("list open listings: %w", err)
	}
	return listings, nil
}

// ListListingsByCategory returns open listings in a category, newest first
func (s *GormStore) ListListingsByCategory(categoryID uint) ([]domain.Listing, error) {
	var listings []domain.Listing
	err := s.db.Where("category_id = ? AND closed = ?", categoryID, false).
		Order("created_at desc, id desc").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("list listings for category %d: %w", categoryID, err)
	}
	return listings, nil
}

// CreateBid inserts a new bid
func (s *GormStore) CreateBid(bid *domain.Bid) error {
	if err := s.db.Create(bid).Error; err != nil {
		return fmt.Errorf("create bid on listing %d: %w", bid.ListingID, err)
	}
	return nil
}

// HighestBid returns the current high bid for a listing: highest amount
// first, ties broken by earliest creation. ErrNoBids when none exist.
func (s *GormStore) HighestBid(listingID uint) (domain.Bid, error) {
	var bid domain.Bid
	err := s.db.Where("listing_id = ?", listingID).
		Order("amount desc, created_at asc, id asc").
		First(&bid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Bid{}, fmt.Errorf("highest bid for listing %d: %w", listingID, auctionerrors.ErrNoBids)
		}
		return domain.Bid{}, fmt.Errorf("highest bid for listing %d: %w", listingID, err)
	}
	return bid, nil
}

// CountBids returns the number of bids on a listing
func (s *GormStore) CountBids(listingID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&domain.Bid{}).Where("listing_id = ?", listingID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count bids for listing %d: %w", listingID, err)
	}
	return count, nil
}

// CreateComment inserts a new comment
func (s *GormStore) CreateComment(comment *domain.Comment) error {
	if err := s.db.Create(comment).Error; err != nil {
		return fmt.Errorf("create comment on listing %d: %w", comment.ListingID, err)
	}
	return nil
}

// ListComments returns the comments on a listing, oldest first
func (s *GormStore) ListComments(listingID uint) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := s.db.Where("listing_id = ?", listingID).
		Order("created_at asc, id asc").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments for listing %d: %w", listingID, err)
	}
	return comments, nil
}

// GetWatchlistEntry returns the watchlist row for a (user, listing) pair,
// deleted or not. ErrNotFound when no row exists.
func (s *GormStore) GetWatchlistEntry(userID, listingID uint) (domain.WatchlistEntry, error) {
	var entry domain.WatchlistEntry
	err := s.db.Where("user_id = ? AND listing_id = ?", userID, listingID).First(&entry).Error
	if err != nil {
		return domain.WatchlistEntry{}, translate(err, fmt.Sprintf("get watchlist entry user %d listing %d", userID, listingID))
	}
	return entry, nil
}

// SaveWatchlistEntry inserts the entry when new, otherwise updates it
func (s *GormStore) SaveWatchlistEntry(entry *domain.WatchlistEntry) error {
	if err := s.db.Save(entry).Error; err != nil {
		return fmt.Errorf("save watchlist entry user %d listing %d: %w", entry.UserID, entry.ListingID, err)
	}
	return nil
}

// CountWatchlist returns the number of non-deleted watchlist entries for a user
func (s *GormStore) CountWatchlist(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&domain.WatchlistEntry{}).
		Where("user_id = ? AND deleted = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count watchlist for user %d: %w", userID, err)
	}
	return count, nil
}

// ListWatchedListings returns the listings on a user's watchlist, most
// recently added first
func (s *GormStore) ListWatchedListings(userID uint) ([]domain.Listing, error) {
	var listings []domain.Listing
	err := s.db.Model(&domain.Listing{}).
		Joins("JOIN watchlist_entries ON watchlist_entries.listing_id = listings.id").
		Where("watchlist_entries.user_id = ? AND watchlist_entries.deleted = ?", userID, false).
		Order("watchlist_entries.created_at desc").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("list watchlist for user %d: %w", userID, err)
	}
	return listings, nil
}

// Transaction runs fn inside a database transaction; fn sees a Store bound
// to the transaction and any error rolls the whole sequence back
func (s *GormStore) Transaction(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}
