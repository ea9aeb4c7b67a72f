package repository

import (
	"github.com/damoang/angple-comms/internal/domain"
	"gorm.io/gorm"
)

// MuteRepository mute data access interface.
// The Find*Among methods are bulk queries keyed by a candidate id set so the
// screener can load one direction of the relation in a single round trip.
type MuteRepository interface {
	Create(muterID, mutedID string) (*domain.MemberMute, error)
	Delete(muterID, mutedID string) error
	Exists(muterID, mutedID string) (bool, error)
	ListByMuter(muterID string) ([]*domain.MemberMute, error)
	// FindMutersOf returns the subset of candidateIDs that mute mutedID
	FindMutersOf(mutedID string, candidateIDs []string) ([]string, error)
	// FindMutedBy returns the subset of candidateIDs that muterID mutes
	FindMutedBy(muterID string, candidateIDs []string) ([]string, error)
}

type muteRepository struct {
	db *gorm.DB
}

// NewMuteRepository creates a new MuteRepository
func NewMuteRepository(db *gorm.DB) MuteRepository {
	return &muteRepository{db: db}
}

// Create adds a mute
func (r *muteRepository) Create(muterID, mutedID string) (*domain.MemberMute, error) {
	mute := &domain.MemberMute{
		MuterID: muterID,
		MutedID: mutedID,
	}
	if err := r.db.Create(mute).Error; err != nil {
		return nil, err
	}
	return mute, nil
}

// Delete removes a mute
func (r *muteRepository) Delete(muterID, mutedID string) error {
	result := r.db.Where("muter_id = ? AND muted_id = ?", muterID, mutedID).
		Delete(&domain.MemberMute{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Exists checks if a mute exists
func (r *muteRepository) Exists(muterID, mutedID string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.MemberMute{}).
		Where("muter_id = ? AND muted_id = ?", muterID, mutedID).
		Count(&count).Error
	return count > 0, err
}

// ListByMuter returns all mutes recorded by a member
func (r *muteRepository) ListByMuter(muterID string) ([]*domain.MemberMute, error) {
	var mutes []*domain.MemberMute
	err := r.db.Where("muter_id = ?", muterID).Order("id DESC").Find(&mutes).Error
	return mutes, err
}

// FindMutersOf returns the subset of candidateIDs that mute mutedID
func (r *muteRepository) FindMutersOf(mutedID string, candidateIDs []string) ([]string, error) {
	if len(candidateIDs) == 0 {
		return nil, nil
	}
	var ids []string
	err := r.db.Model(&domain.MemberMute{}).
		Where("muted_id = ? AND muter_id IN ?", mutedID, candidateIDs).
		Pluck("muter_id", &ids).Error
	return ids, err
}

// FindMutedBy returns the subset of candidateIDs that muterID mutes
func (r *muteRepository) FindMutedBy(muterID string, candidateIDs []string) ([]string, error) {
	if len(candidateIDs) == 0 {
		return nil, nil
	}
	var ids []string
	err := r.db.Model(&domain.MemberMute{}).
		Where("muter_id = ? AND muted_id IN ?", muterID, candidateIDs).
		Pluck("muted_id", &ids).Error
	return ids, err
}
