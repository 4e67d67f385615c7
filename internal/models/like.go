package models

import "time"

// Like represents a user's like on a list.
// The combination of UserID and ListID must be unique; the database
// constraint closes the race between two concurrent likes from the same
// user.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_list" json:"user_id"`
	ListID    uint      `gorm:"not null;uniqueIndex:idx_user_list" json:"list_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user"`
	List List `gorm:"foreignKey:ListID" json:"list"`
}
