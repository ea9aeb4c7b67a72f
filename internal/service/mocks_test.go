package service

import (
	"context"
	"time"

	"github.com/damoang/angple-comms/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockMemberRepository is a mock implementation of MemberRepository
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) FindByUserID(userID string) (*domain.Member, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) FindOptionsByUserIDs(userIDs []string) (map[string]domain.MemberOptions, error) {
	args := m.Called(userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.MemberOptions), args.Error(1)
}

func (m *MockMemberRepository) FindNicknames(userIDs []string) (map[string]string, error) {
	args := m.Called(userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockMemberRepository) UpdateOptions(userID string, allowPMs, allowListOnly *bool) error {
	args := m.Called(userID, allowPMs, allowListOnly)
	return args.Error(0)
}

func (m *MockMemberRepository) Create(member *domain.Member) error {
	args := m.Called(member)
	return args.Error(0)
}

// MockMuteRepository is a mock implementation of MuteRepository
type MockMuteRepository struct {
	mock.Mock
}

func (m *MockMuteRepository) Create(muterID, mutedID string) (*domain.MemberMute, error) {
	args := m.Called(muterID, mutedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MemberMute), args.Error(1)
}

func (m *MockMuteRepository) Delete(muterID, mutedID string) error {
	args := m.Called(muterID, mutedID)
	return args.Error(0)
}

func (m *MockMuteRepository) Exists(muterID, mutedID string) (bool, error) {
	args := m.Called(muterID, mutedID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMuteRepository) ListByMuter(muterID string) ([]*domain.MemberMute, error) {
	args := m.Called(muterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MemberMute), args.Error(1)
}

func (m *MockMuteRepository) FindMutersOf(mutedID string, candidateIDs []string) ([]string, error) {
	args := m.Called(mutedID, candidateIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMuteRepository) FindMutedBy(muterID string, candidateIDs []string) ([]string, error) {
	args := m.Called(muterID, candidateIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockIgnoreRepository is a mock implementation of IgnoreRepository
type MockIgnoreRepository struct {
	mock.Mock
}

func (m *MockIgnoreRepository) Create(ignorerID, ignoredID string, expiresAt *time.Time) (*domain.MemberIgnore, error) {
	args := m.Called(ignorerID, ignoredID, expiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MemberIgnore), args.Error(1)
}

func (m *MockIgnoreRepository) Delete(ignorerID, ignoredID string) error {
	args := m.Called(ignorerID, ignoredID)
	return args.Error(0)
}

func (m *MockIgnoreRepository) Exists(ignorerID, ignoredID string, now time.Time) (bool, error) {
	args := m.Called(ignorerID, ignoredID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockIgnoreRepository) ListByIgnorer(ignorerID string, now time.Time) ([]*domain.MemberIgnore, error) {
	args := m.Called(ignorerID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MemberIgnore), args.Error(1)
}

func (m *MockIgnoreRepository) FindIgnorersOf(ignoredID string, candidateIDs []string, now time.Time) ([]string, error) {
	args := m.Called(ignoredID, candidateIDs, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockIgnoreRepository) FindIgnoredBy(ignorerID string, candidateIDs []string, now time.Time) ([]string, error) {
	args := m.Called(ignorerID, candidateIDs, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockAllowListRepository is a mock implementation of AllowListRepository
type MockAllowListRepository struct {
	mock.Mock
}

func (m *MockAllowListRepository) Create(ownerID, allowedID string) (*domain.AllowedPMUser, error) {
	args := m.Called(ownerID, allowedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AllowedPMUser), args.Error(1)
}

func (m *MockAllowListRepository) Delete(ownerID, allowedID string) error {
	args := m.Called(ownerID, allowedID)
	return args.Error(0)
}

func (m *MockAllowListRepository) Exists(ownerID, allowedID string) (bool, error) {
	args := m.Called(ownerID, allowedID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAllowListRepository) ListByOwner(ownerID string) ([]*domain.AllowedPMUser, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AllowedPMUser), args.Error(1)
}

func (m *MockAllowListRepository) FindAllowedAmong(ownerID string, candidateIDs []string) ([]string, error) {
	args := m.Called(ownerID, candidateIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAllowListRepository) FindOwnersAllowing(ownerIDs []string, allowedID string) ([]string, error) {
	args := m.Called(ownerIDs, allowedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockCacheService is a mock implementation of cache.Service
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) Delete(ctx context.Context, keys ...string) error {
	callArgs := make([]interface{}, 0, len(keys)+1)
	callArgs = append(callArgs, ctx)
	for _, k := range keys {
		callArgs = append(callArgs, k)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateMemberPrefs(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
