package repository

import (
	"testing"

	"github.com/damoang/angple-comms/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.Member{},
		&domain.MemberMute{},
		&domain.MemberIgnore{},
		&domain.AllowedPMUser{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return db
}

// seedMember inserts a member with default PM options
func seedMember(t *testing.T, db *gorm.DB, userID string) *domain.Member {
	t.Helper()

	member := &domain.Member{
		UserID:               userID,
		Nickname:             userID,
		Level:                1,
		AllowPrivateMessages: true,
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to seed member %s: %v", userID, err)
	}
	return member
}
