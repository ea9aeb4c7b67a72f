package domain

import "time"

// AllowedPMUser represents an allow-list entry (angple_member_pm_allow table).
// Entries are consulted only while the owner's enable_allowed_pm_users flag is on.
type AllowedPMUser struct {
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	OwnerID   string    `gorm:"column:owner_id;size:64;index;uniqueIndex:idx_owner_allowed" json:"owner_id"`
	AllowedID string    `gorm:"column:allowed_id;size:64;index;uniqueIndex:idx_owner_allowed" json:"allowed_id"`
	ID        int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
}

func (AllowedPMUser) TableName() string {
	return "angple_member_pm_allow"
}

// AllowedPMUserResponse represents an allow-list item in API responses
type AllowedPMUserResponse struct {
	UserID    string `json:"user_id"`
	Nickname  string `json:"nickname"`
	AllowedAt string `json:"allowed_at"`
	EntryID   int    `json:"entry_id"`
}
