package repository

import (
	"time"

	"github.com/damoang/angple-comms/internal/domain"
	"gorm.io/gorm"
)

// IgnoreRepository ignore data access interface.
// Ignores expire: every query takes "now" and excludes rows whose
// expires_at has passed, so expired ignores behave exactly like absent rows.
type IgnoreRepository interface {
	Create(ignorerID, ignoredID string, expiresAt *time.Time) (*domain.MemberIgnore, error)
	Delete(ignorerID, ignoredID string) error
	Exists(ignorerID, ignoredID string, now time.Time) (bool, error)
	ListByIgnorer(ignorerID string, now time.Time) ([]*domain.MemberIgnore, error)
	// FindIgnorersOf returns the subset of candidateIDs with an active ignore against ignoredID
	FindIgnorersOf(ignoredID string, candidateIDs []string, now time.Time) ([]string, error)
	// FindIgnoredBy returns the subset of candidateIDs that ignorerID actively ignores
	FindIgnoredBy(ignorerID string, candidateIDs []string, now time.Time) ([]string, error)
}

type ignoreRepository struct {
	db *gorm.DB
}

// NewIgnoreRepository creates a new IgnoreRepository
func NewIgnoreRepository(db *gorm.DB) IgnoreRepository {
	return &ignoreRepository{db: db}
}

// activeScope filters out expired rows
func activeScope(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("expires_at IS NULL OR expires_at > ?", now)
	}
}

// Create adds an ignore with an optional expiry
func (r *ignoreRepository) Create(ignorerID, ignoredID string, expiresAt *time.Time) (*domain.MemberIgnore, error) {
	ignore := &domain.MemberIgnore{
		IgnorerID: ignorerID,
		IgnoredID: ignoredID,
		ExpiresAt: expiresAt,
	}
	if err := r.db.Create(ignore).Error; err != nil {
		return nil, err
	}
	return ignore, nil
}

// Delete removes an ignore regardless of expiry state
func (r *ignoreRepository) Delete(ignorerID, ignoredID string) error {
	result := r.db.Where("ignorer_id = ? AND ignored_id = ?", ignorerID, ignoredID).
		Delete(&domain.MemberIgnore{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Exists checks for an active ignore
func (r *ignoreRepository) Exists(ignorerID, ignoredID string, now time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&domain.MemberIgnore{}).
		Scopes(activeScope(now)).
		Where("ignorer_id = ? AND ignored_id = ?", ignorerID, ignoredID).
		Count(&count).Error
	return count > 0, err
}

// ListByIgnorer returns all active ignores recorded by a member
func (r *ignoreRepository) ListByIgnorer(ignorerID string, now time.Time) ([]*domain.MemberIgnore, error) {
	var ignores []*domain.MemberIgnore
	err := r.db.Scopes(activeScope(now)).
		Where("ignorer_id = ?", ignorerID).
		Order("id DESC").
		Find(&ignores).Error
	return ignores, err
}

// FindIgnorersOf returns the subset of candidateIDs with an active ignore against ignoredID
func (r *ignoreRepository) FindIgnorersOf(ignoredID string, candidateIDs []string, now time.Time) ([]string, error) {
	if len(candidateIDs) == 0 {
		return nil, nil
	}
	var ids []string
	err := r.db.Model(&domain.MemberIgnore{}).
		Scopes(activeScope(now)).
		Where("ignored_id = ? AND ignorer_id IN ?", ignoredID, candidateIDs).
		Pluck("ignorer_id", &ids).Error
	return ids, err
}

// FindIgnoredBy returns the subset of candidateIDs that ignorerID actively ignores
func (r *ignoreRepository) FindIgnoredBy(ignorerID string, candidateIDs []string, now time.Time) ([]string, error) {
	if len(candidateIDs) == 0 {
		return nil, nil
	}
	var ids []string
	err := r.db.Model(&domain.MemberIgnore{}).
		Scopes(activeScope(now)).
		Where("ignorer_id = ? AND ignored_id IN ?", ignorerID, candidateIDs).
		Pluck("ignored_id", &ids).Error
	return ids, err
}
