package repository

import (
	"github.com/damoang/angple-comms/internal/domain"
	"gorm.io/gorm"
)

// AllowListRepository PM allow-list data access interface
type AllowListRepository interface {
	Create(ownerID, allowedID string) (*domain.AllowedPMUser, error)
	Delete(ownerID, allowedID string) error
	Exists(ownerID, allowedID string) (bool, error)
	ListByOwner(ownerID string) ([]*domain.AllowedPMUser, error)
	// FindAllowedAmong returns the subset of candidateIDs on ownerID's allow-list
	FindAllowedAmong(ownerID string, candidateIDs []string) ([]string, error)
	// FindOwnersAllowing returns the subset of ownerIDs whose allow-list contains allowedID
	FindOwnersAllowing(ownerIDs []string, allowedID string) ([]string, error)
}

type allowListRepository struct {
	db *gorm.DB
}

// NewAllowListRepository creates a new AllowListRepository
func NewAllowListRepository(db *gorm.DB) AllowListRepository {
	return &allowListRepository{db: db}
}

// Create adds an allow-list entry
func (r *allowListRepository) Create(ownerID, allowedID string) (*domain.AllowedPMUser, error) {
	entry := &domain.AllowedPMUser{
		OwnerID:   ownerID,
		AllowedID: allowedID,
	}
	if err := r.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes an allow-list entry
func (r *allowListRepository) Delete(ownerID, allowedID string) error {
	result := r.db.Where("owner_id = ? AND allowed_id = ?", ownerID, allowedID).
		Delete(&domain.AllowedPMUser{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Exists checks if an allow-list entry exists
func (r *allowListRepository) Exists(ownerID, allowedID string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.AllowedPMUser{}).
		Where("owner_id = ? AND allowed_id = ?", ownerID, allowedID).
		Count(&count).Error
	return count > 0, err
}

// ListByOwner returns all allow-list entries of a member
func (r *allowListRepository) ListByOwner(ownerID string) ([]*domain.AllowedPMUser, error) {
	var entries []*domain.AllowedPMUser
	err := r.db.Where("owner_id = ?", ownerID).Order("id DESC").Find(&entries).Error
	return entries, err
}

// FindAllowedAmong returns the subset of candidateIDs on ownerID's allow-list
func (r *allowListRepository) FindAllowedAmong(ownerID string, candidateIDs []string) ([]string, error) {
	if len(candidateIDs) == 0 {
		return nil, nil
	}
	var ids []string
	err := r.db.Model(&domain.AllowedPMUser{}).
		Where("owner_id = ? AND allowed_id IN ?", ownerID, candidateIDs).
		Pluck("allowed_id", &ids).Error
	return ids, err
}

// FindOwnersAllowing returns the subset of ownerIDs whose allow-list contains allowedID
func (r *allowListRepository) FindOwnersAllowing(ownerIDs []string, allowedID string) ([]string, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}
	var ids []string
	err := r.db.Model(&domain.AllowedPMUser{}).
		Where("owner_id IN ? AND allowed_id = ?", ownerIDs, allowedID).
		Pluck("owner_id", &ids).Error
	return ids, err
}
