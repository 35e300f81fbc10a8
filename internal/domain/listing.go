package domain

// Listing Model
type Listing struct {
	ID          uint     `gorm:"primaryKey"`                           // Primary key
	Title       string   `gorm:"not null"`                             // Listing title
	Description string   `gorm:"type:text;not null"`                   // Listing description
	UserID      uint     `gorm:"not null;index"`                       // Foreign key to the owning User
	User        User     `gorm:"constraint:OnDelete:CASCADE" json:"-"` // Owner relation
	CategoryID  uint     `gorm:"not null;index"`                       // Foreign key to Category
	Category    Category `gorm:"constraint:OnDelete:CASCADE" json:"-"` // Category relation
	ImageURL    *string  // Optional image URL
	StartingBid float64  `gorm:"type:decimal(10,2);not null;default:0"` // Starting bid amount
	Closed      bool     `gorm:"not null;default:false"`                // Once true, no further bids are accepted
	CreatedAt   int64    `gorm:"autoCreateTime:milli"`                  // Timestamp of creation in milliseconds
}
