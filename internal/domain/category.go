package domain

// Category Model
type Category struct {
	ID    uint   `gorm:"primaryKey"`      // Primary key
	Title string `gorm:"unique;not null"` // Category title
}
