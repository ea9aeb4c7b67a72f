package repository

import (
	"errors"

	"github.com/damoang/angple-comms/internal/common"
	"github.com/damoang/angple-comms/internal/domain"
	"gorm.io/gorm"
)

// MemberRepository member data access interface
type MemberRepository interface {
	FindByUserID(userID string) (*domain.Member, error)
	// FindOptionsByUserIDs bulk-loads PM option flags for a set of members.
	// Members without a row are simply absent from the result; callers treat
	// them as having default (permissive) options.
	FindOptionsByUserIDs(userIDs []string) (map[string]domain.MemberOptions, error)
	FindNicknames(userIDs []string) (map[string]string, error)
	UpdateOptions(userID string, allowPMs, allowListOnly *bool) error
	Create(member *domain.Member) error
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// FindByUserID finds a member by user ID
func (r *memberRepository) FindByUserID(userID string) (*domain.Member, error) {
	var member domain.Member
	err := r.db.Where("user_id = ?", userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	return &member, nil
}

// FindOptionsByUserIDs bulk-loads PM option flags keyed by user ID
func (r *memberRepository) FindOptionsByUserIDs(userIDs []string) (map[string]domain.MemberOptions, error) {
	result := make(map[string]domain.MemberOptions, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	var rows []domain.Member
	err := r.db.Select("user_id", "allow_private_messages", "enable_allowed_pm_users").
		Where("user_id IN ?", userIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		result[rows[i].UserID] = rows[i].Options()
	}
	return result, nil
}

// FindNicknames bulk-loads nicknames keyed by user ID
func (r *memberRepository) FindNicknames(userIDs []string) (map[string]string, error) {
	result := make(map[string]string, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	var rows []domain.Member
	err := r.db.Select("user_id", "nickname").
		Where("user_id IN ?", userIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		result[rows[i].UserID] = rows[i].Nickname
	}
	return result, nil
}

// UpdateOptions updates a member's PM option flags (nil fields untouched)
func (r *memberRepository) UpdateOptions(userID string, allowPMs, allowListOnly *bool) error {
	updates := map[string]interface{}{}
	if allowPMs != nil {
		updates["allow_private_messages"] = *allowPMs
	}
	if allowListOnly != nil {
		updates["enable_allowed_pm_users"] = *allowListOnly
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.Model(&domain.Member{}).Where("user_id = ?", userID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrUserNotFound
	}
	return nil
}

// Create inserts a new member
func (r *memberRepository) Create(member *domain.Member) error {
	return r.db.Create(member).Error
}
