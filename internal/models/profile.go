package models

import "time"

// MaxBioLength caps the profile bio.
const MaxBioLength = 500

// UserProfile holds the per-user profile record. Exactly one profile
// exists per user; it is created by the registration operation in the same
// transaction as the user row.
type UserProfile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Bio       string    `gorm:"size:500" json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// ProfileStats aggregates list statistics shown on the profile page.
// ForkedLists is derived from the canonical fork relationship (lists whose
// OriginalListID is set), not kept as a separate stored set.
type ProfileStats struct {
	TotalLists  int64 `json:"total_lists"`
	PublicLists int64 `json:"public_lists"`
	ForkedLists int64 `json:"forked_lists"`
}
