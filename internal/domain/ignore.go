package domain

import "time"

// MemberIgnore represents an ignore record (angple_member_ignore table).
// Unlike mutes, ignores are time-bounded: a nil ExpiresAt never expires,
// and a row whose ExpiresAt has passed must be treated as absent.
type MemberIgnore struct {
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index" json:"expires_at"`
	IgnorerID string     `gorm:"column:ignorer_id;size:64;index;uniqueIndex:idx_ignorer_ignored" json:"ignorer_id"`
	IgnoredID string     `gorm:"column:ignored_id;size:64;index;uniqueIndex:idx_ignorer_ignored" json:"ignored_id"`
	ID        int        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
}

func (MemberIgnore) TableName() string {
	return "angple_member_ignore"
}

// Active reports whether the ignore is still in effect at the given time
func (i *MemberIgnore) Active(now time.Time) bool {
	return i.ExpiresAt == nil || i.ExpiresAt.After(now)
}

// IgnoreResponse represents an ignore item in API responses
type IgnoreResponse struct {
	UserID    string `json:"user_id"`
	Nickname  string `json:"nickname"`
	IgnoredAt string `json:"ignored_at"`
	ExpiresAt string `json:"expires_at,omitempty"`
	IgnoreID  int    `json:"ignore_id"`
}

// IgnoreRequest creates an ignore with an optional expiry
type IgnoreRequest struct {
	ExpiresAt *time.Time `json:"expires_at"`
}
