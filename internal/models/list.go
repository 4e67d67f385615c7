package models

import (
	"strings"
	"time"
)

// MaxContentItems caps the number of newline-delimited items a list may
// hold. Every write path that persists content runs it through
// LimitContent first.
const MaxContentItems = 10

// List represents a curated list. Lists are created manually, saved from
// an AI-generated draft, or forked from another list.
type List struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Content     string `gorm:"type:text" json:"content"`
	// Tags is stored as comma-separated values.
	Tags string `gorm:"size:500" json:"tags"`
	// Prompt is the generation prompt this list originated from. Empty
	// for manually created lists.
	Prompt   string `gorm:"type:text" json:"prompt"`
	OwnerID  uint   `gorm:"not null;index" json:"owner_id"`
	Owner    User   `gorm:"foreignKey:OwnerID" json:"owner"`
	// IsPublic has no column default on purpose: GORM would fold an
	// explicit false into the default on insert. The API layer decides
	// the default visibility.
	IsPublic bool `gorm:"not null" json:"is_public"`
	// OriginalListID points at the immediate fork source. It is nulled,
	// not cascaded, when the source list is deleted.
	OriginalListID *uint `gorm:"index" json:"original_list_id,omitempty"`
	OriginalList   *List `gorm:"foreignKey:OriginalListID" json:"original_list,omitempty"`

	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->;-:migration" json:"likes_count"`
	// ForkCount is not persisted; computed at query time
	ForkCount int `gorm:"->;-:migration" json:"fork_count"`
	// Liked indicates whether the current requesting user liked this list (computed)
	Liked bool `gorm:"->;-:migration" json:"liked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LimitContent trims content to at most MaxContentItems newline-delimited
// items.
func LimitContent(content string) string {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) > MaxContentItems {
		lines = lines[:MaxContentItems]
	}
	return strings.Join(lines, "\n")
}

// ContentItems returns the list content split into its individual items.
func (l *List) ContentItems() []string {
	trimmed := strings.TrimSpace(l.Content)
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
