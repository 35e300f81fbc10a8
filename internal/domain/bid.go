package domain

// Bid Model. Bids are immutable once created; the current high bid is the
// first bid ordered by (amount desc, created_at asc, id asc).
type Bid struct {
	ID        uint    `gorm:"primaryKey"`                           // Primary key
	Amount    float64 `gorm:"type:decimal(10,2);not null"`          // Bid amount
	ListingID uint    `gorm:"not null;index"`                       // Foreign key to Listing
	Listing   Listing `gorm:"constraint:OnDelete:CASCADE" json:"-"` // Listing relation
	UserID    uint    `gorm:"not null;index"`                       // Foreign key to the bidding User
	User      User    `gorm:"constraint:OnDelete:CASCADE" json:"-"` // Bidder relation
	CreatedAt int64   `gorm:"autoCreateTime:milli"`                 // Timestamp of creation in milliseconds
}
