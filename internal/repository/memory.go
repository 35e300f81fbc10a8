package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"auction_house/internal/auctionerrors"
	"auction_house/internal/domain"
)

// MemoryStore is a concurrency-safe in-memory Store implementation. It backs
// the service and handler tests so they run without a MySQL instance.
type MemoryStore struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	userSeq     uint
	categorySeq uint
	listingSeq  uint
	bidSeq      uint
	commentSeq  uint
	watchSeq    uint

	users      map[uint]domain.User
	categories map[uint]domain.Category
	listings   map[uint]domain.Listing
	bids       map[uint][]domain.Bid                   // key: listingID
	comments   map[uint][]domain.Comment               // key: listingID
	watchlist  map[uint]map[uint]domain.WatchlistEntry // key: userID -> listingID
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[uint]domain.User),
		categories: make(map[uint]domain.Category),
		listings:   make(map[uint]domain.Listing),
		bids:       make(map[uint][]domain.Bid),
		comments:   make(map[uint][]domain.Comment),
		watchlist:  make(map[uint]map[uint]domain.WatchlistEntry),
	}
}

func nowMilli() int64 {
	return time.Now().UnixMilli()
}

// CreateUser inserts a new user; duplicate usernames map to ErrUsernameTaken
func (s *MemoryStore) CreateUser(user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return fmt.Errorf("create user %q: %w", user.Username, auctionerrors.ErrUsernameTaken)
		}
	}
	s.userSeq++
	user.ID = s.userSeq
	user.CreatedAt = nowMilli()
	if user.Role == "" {
		user.Role = "user"
	}
	s.users[user.ID] = *user
	return nil
}

// GetUserByID returns the user with the given ID
func (s *MemoryStore) GetUserByID(id uint) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return domain.User{}, fmt.Errorf("get user %d: %w", id, auctionerrors.ErrNotFound)
	}
	return user, nil
}

// GetUserByUsername returns the user with the given username
func (s *MemoryStore) GetUserByUsername(username string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("get user %q: %w", username, auctionerrors.ErrNotFound)
}

// CreateCategory inserts a new category; duplicate titles are rejected
func (s *MemoryStore) CreateCategory(category *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if c.Title == category.Title {
			return fmt.Errorf("create category %q: %w", category.Title, auctionerrors.ErrInvalidInput)
		}
	}
	s.categorySeq++
	category.ID = s.categorySeq
	s.categories[category.ID] = *category
	return nil
}

// GetCategory returns the category with the given ID
func (s *MemoryStore) GetCategory(id uint) (domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categories[id]
	if !ok {
		return domain.Category{}, fmt.Errorf("get category %d: %w", id, auctionerrors.ErrNotFound)
	}
	return category, nil
}

// ListCategories returns all categories ordered by title
func (s *MemoryStore) ListCategories() ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Title < categories[j].Title })
	return categories, nil
}

// ListCategoriesWithOpenListings returns categories with at least one open
// listing, ordered by title
func (s *MemoryStore) ListCategoriesWithOpenListings() ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	open := make(map[uint]bool)
	for _, l := range s.listings {
		if !l.Closed {
			open[l.CategoryID] = true
		}
	}
	categories := make([]domain.Category, 0, len(open))
	for id := range open {
		if c, ok := s.categories[id]; ok {
			categories = append(categories, c)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Title < categories[j].Title })
	return categories, nil
}

// CreateListing inserts a new listing
func (s *MemoryStore) CreateListing(listing *domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listingSeq++
	listing.ID = s.listingSeq
	listing.CreatedAt = nowMilli()
	s.listings[listing.ID] = *listing
	return nil
}

// GetListing returns the listing with the given ID
func (s *MemoryStore) GetListing(id uint) (domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listing, ok := s.listings[id]
	if !ok {
		return domain.Listing{}, fmt.Errorf("get listing %d: %w", id, auctionerrors.ErrNotFound)
	}
	return listing, nil
}

// GetListingForUpdate behaves like GetListing; transactions on the memory
// store are serialized by a store-wide lock rather than row locks
func (s *MemoryStore) GetListingForUpdate(id uint) (domain.Listing, error) {
	return s.GetListing(id)
}

// SetListingClosed marks the listing closed
func (s *MemoryStore) SetListingClosed(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing, ok := s.listings[id]
	if !ok {
		return fmt.Errorf("close listing %d: %w", id, auctionerrors.ErrNotFound)
	}
	listing.Closed = true
	s.listings[id] = listing
	return nil
}

// ListOpenListings returns open listings, newest first
func (s *MemoryStore) ListOpenListings() ([]domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listings := make([]domain.Listing, 0)
	for _, l := range s.listings {
		if !l.Closed {
			listings = append(listings, l)
		}
	}
	sortListingsNewestFirst(listings)
	return listings, nil
}

// ListListingsByCategory returns open listings in a category, newest first
func (s *MemoryStore) ListListingsByCategory(categoryID uint) ([]domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listings := make([]domain.Listing, 0)
	for _, l := range s.listings {
		if l.CategoryID == categoryID && !l.Closed {
			listings = append(listings, l)
		}
	}
	sortListingsNewestFirst(listings)
	return listings, nil
}

func sortListingsNewestFirst(listings []domain.Listing) {
	sort.Slice(listings, func(i, j int) bool {
		if listings[i].CreatedAt != listings[j].CreatedAt {
			return listings[i].CreatedAt > listings[j].CreatedAt
		}
		return listings[i].ID > listings[j].ID
	})
}

// CreateBid inserts a new bid
func (s *MemoryStore) CreateBid(bid *domain.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[bid.ListingID]; !ok {
		return fmt.Errorf("create bid on listing %d: %w", bid.ListingID, auctionerrors.ErrNotFound)
	}
	s.bidSeq++
	bid.ID = s.bidSeq
	bid.CreatedAt = nowMilli()
	s.bids[bid.ListingID] = append(s.bids[bid.ListingID], *bid)
	return nil
}

// HighestBid returns the current high bid for a listing: highest amount
// first, ties broken by earliest creation. ErrNoBids when none exist.
func (s *MemoryStore) HighestBid(listingID uint) (domain.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bids := s.bids[listingID]
	if len(bids) == 0 {
		return domain.Bid{}, fmt.Errorf("highest bid for listing %d: %w", listingID, auctionerrors.ErrNoBids)
	}
	highest := bids[0]
	for _, b := range bids[1:] {
		if b.Amount > highest.Amount {
			highest = b
			continue
		}
		if b.Amount == highest.Amount &&
			(b.CreatedAt < highest.CreatedAt || (b.CreatedAt == highest.CreatedAt && b.ID < highest.ID)) {
			highest = b
		}
	}
	return highest, nil
}

// CountBids returns the number of bids on a listing
func (s *MemoryStore) CountBids(listingID uint) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.bids[listingID])), nil
}

// CreateComment inserts a new comment
func (s *MemoryStore) CreateComment(comment *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[comment.ListingID]; !ok {
		return fmt.Errorf("create comment on listing %d: %w", comment.ListingID, auctionerrors.ErrNotFound)
	}
	s.commentSeq++
	comment.ID = s.commentSeq
	comment.CreatedAt = nowMilli()
	s.comments[comment.ListingID] = append(s.comments[comment.ListingID], *comment)
	return nil
}

// ListComments returns the comments on a listing, oldest first
func (s *MemoryStore) ListComments(listingID uint) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// comments are appended in creation order
	return append([]domain.Comment(nil), s.comments[listingID]...), nil
}

// GetWatchlistEntry returns the watchlist row for a (user, listing) pair,
// deleted or not. ErrNotFound when no row exists.
func (s *MemoryStore) GetWatchlistEntry(userID, listingID uint) (domain.WatchlistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if entries, ok := s.watchlist[userID]; ok {
		if entry, ok := entries[listingID]; ok {
			return entry, nil
		}
	}
	return domain.WatchlistEntry{}, fmt.Errorf("get watchlist entry user %d listing %d: %w", userID, listingID, auctionerrors.ErrNotFound)
}

// SaveWatchlistEntry inserts the entry when new, otherwise updates it
func (s *MemoryStore) SaveWatchlistEntry(entry *domain.WatchlistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == 0 {
		s.watchSeq++
		entry.ID = s.watchSeq
		entry.CreatedAt = nowMilli()
	}
	entry.UpdatedAt = nowMilli()
	if s.watchlist[entry.UserID] == nil {
		s.watchlist[entry.UserID] = make(map[uint]domain.WatchlistEntry)
	}
	s.watchlist[entry.UserID][entry.ListingID] = *entry
	return nil
}

// CountWatchlist returns the number of non-deleted watchlist entries for a user
func (s *MemoryStore) CountWatchlist(userID uint) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, entry := range s.watchlist[userID] {
		if !entry.Deleted {
			count++
		}
	}
	return count, nil
}

// ListWatchedListings returns the listings on a user's watchlist, most
// recently added first
func (s *MemoryStore) ListWatchedListings(userID uint) ([]domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]domain.WatchlistEntry, 0)
	for _, entry := range s.watchlist[userID] {
		if !entry.Deleted {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt != entries[j].CreatedAt {
			return entries[i].CreatedAt > entries[j].CreatedAt
		}
		return entries[i].ID > entries[j].ID
	})
	listings := make([]domain.Listing, 0, len(entries))
	for _, entry := range entries {
		if l, ok := s.listings[entry.ListingID]; ok {
			listings = append(listings, l)
		}
	}
	return listings, nil
}

// Transaction serializes fn against other transactions on this store.
// Individual operations stay internally consistent via the store lock;
// rollback is not simulated.
func (s *MemoryStore) Transaction(fn func(tx Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s)
}
