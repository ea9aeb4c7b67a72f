package domain

import "time"

// MemberMute represents a mute record (angple_member_mute table).
// Mutes do not expire; removing the row is the only way to lift one.
type MemberMute struct {
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	MuterID   string    `gorm:"column:muter_id;size:64;index;uniqueIndex:idx_muter_muted" json:"muter_id"`
	MutedID   string    `gorm:"column:muted_id;size:64;index;uniqueIndex:idx_muter_muted" json:"muted_id"`
	ID        int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
}

func (MemberMute) TableName() string {
	return "angple_member_mute"
}

// MuteResponse represents a mute item in API responses
type MuteResponse struct {
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname"`
	MutedAt  string `json:"muted_at"`
	MuteID   int    `json:"mute_id"`
}
