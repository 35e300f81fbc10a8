package domain

// WatchlistEntry Model. One row per (user, listing) pair; removal is a soft
// delete so re-adding the same listing un-deletes the existing row.
type WatchlistEntry struct {
	ID        uint    `gorm:"primaryKey"`                                      // Primary key
	UserID    uint    `gorm:"not null;uniqueIndex:idx_watchlist_user_listing"` // Foreign key to User
	User      User    `gorm:"constraint:OnDelete:CASCADE" json:"-"`            // User relation
	ListingID uint    `gorm:"not null;uniqueIndex:idx_watchlist_user_listing"` // Foreign key to Listing
	Listing   Listing `gorm:"constraint:OnDelete:CASCADE" json:"-"`            // Listing relation
	Deleted   bool    `gorm:"not null;default:false"`                          // Soft-delete flag
	CreatedAt int64   `gorm:"autoCreateTime:milli"`                            // Timestamp of creation in milliseconds
	UpdatedAt int64   `gorm:"autoUpdateTime:milli"`                            // Timestamp of last modification in milliseconds
}
