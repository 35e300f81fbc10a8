package domain

// Comment Model. Comments are immutable once created.
type Comment struct {
	ID        uint    `gorm:"primaryKey"`                           // Primary key
	Body      string  `gorm:"type:text;not null"`                   // Comment body
	ListingID uint    `gorm:"not null;index"`                       // Foreign key to Listing
	Listing   Listing `gorm:"constraint:OnDelete:CASCADE" json:"-"` // Listing relation
	UserID    uint    `gorm:"not null;index"`                       // Foreign key to the authoring User
	User      User    `gorm:"constraint:OnDelete:CASCADE" json:"-"` // Author relation
	CreatedAt int64   `gorm:"autoCreateTime:milli"`                 // Timestamp of creation in milliseconds
}
