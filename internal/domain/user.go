package domain

// User Model
type User struct {
	ID        uint   `gorm:"primaryKey"`           // Primary key
	Username  string `gorm:"unique;not null"`      // Unique username
	Email     string `gorm:"not null"`             // Email address
	Password  string `gorm:"not null" json:"-"`    // Hashed password, never serialized
	Role      string `gorm:"default:user"`         // Role: user or admin
	CreatedAt int64  `gorm:"autoCreateTime:milli"` // Timestamp of creation in milliseconds
}
