package domain

import "time"

// Member domain model (angple_member table)
type Member struct {
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
	UserID               string    `gorm:"column:user_id;uniqueIndex;size:64" json:"user_id"`
	Nickname             string    `gorm:"column:nickname;size:64" json:"nickname"`
	Email                string    `gorm:"column:email;size:255" json:"email,omitempty"`
	ID                   int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Level                int       `gorm:"column:level;default:1" json:"level"`
	AllowPrivateMessages bool      `gorm:"column:allow_private_messages;default:true" json:"allow_private_messages"`
	EnableAllowedPMUsers bool      `gorm:"column:enable_allowed_pm_users;default:false" json:"enable_allowed_pm_users"`
}

func (Member) TableName() string {
	return "angple_member"
}

// MemberOptions is the per-member preference snapshot the screener loads in bulk.
// Absent rows default to the most permissive settings.
type MemberOptions struct {
	AllowPrivateMessages bool
	EnableAllowedPMUsers bool
}

// DefaultMemberOptions returns options for a member with no stored row
func DefaultMemberOptions() MemberOptions {
	return MemberOptions{
		AllowPrivateMessages: true,
		EnableAllowedPMUsers: false,
	}
}

// Options returns the member's preference flags
func (m *Member) Options() MemberOptions {
	return MemberOptions{
		AllowPrivateMessages: m.AllowPrivateMessages,
		EnableAllowedPMUsers: m.EnableAllowedPMUsers,
	}
}

// MemberResponse represents a member in API responses
type MemberResponse struct {
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname"`
	ID       int    `json:"id"`
	Level    int    `json:"level"`
}

func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:       m.ID,
		UserID:   m.UserID,
		Nickname: m.Nickname,
		Level:    m.Level,
	}
}

// PMOptionsResponse represents a member's own PM preference flags
type PMOptionsResponse struct {
	AllowPrivateMessages bool `json:"allow_private_messages"`
	EnableAllowedPMUsers bool `json:"enable_allowed_pm_users"`
}

// UpdatePMOptionsRequest updates a member's PM preference flags.
// Pointers distinguish "not sent" from "set to false".
type UpdatePMOptionsRequest struct {
	AllowPrivateMessages *bool `json:"allow_private_messages"`
	EnableAllowedPMUsers *bool `json:"enable_allowed_pm_users"`
}
