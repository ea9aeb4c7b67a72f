package service

import (
	"testing"
	"time"

	"github.com/damoang/angple-comms/internal/common"
	"github.com/damoang/angple-comms/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type prefMocks struct {
	memberRepo    *MockMemberRepository
	muteRepo      *MockMuteRepository
	ignoreRepo    *MockIgnoreRepository
	allowListRepo *MockAllowListRepository
	cache         *MockCacheService
}

func newPreferenceService(withCache bool) (PreferenceService, *prefMocks) {
	m := &prefMocks{
		memberRepo:    new(MockMemberRepository),
		muteRepo:      new(MockMuteRepository),
		ignoreRepo:    new(MockIgnoreRepository),
		allowListRepo: new(MockAllowListRepository),
	}
	if withCache {
		m.cache = new(MockCacheService)
		return NewPreferenceService(m.memberRepo, m.muteRepo, m.ignoreRepo, m.allowListRepo, m.cache), m
	}
	return NewPreferenceService(m.memberRepo, m.muteRepo, m.ignoreRepo, m.allowListRepo, nil), m
}

func TestPreferenceService_MuteMember(t *testing.T) {
	svc, m := newPreferenceService(false)

	m.memberRepo.On("FindByUserID", "bob").Return(regularMember("bob"), nil)
	m.muteRepo.On("Exists", "alice", "bob").Return(false, nil)
	m.muteRepo.On("Create", "alice", "bob").Return(&domain.MemberMute{
		ID:      1,
		MuterID: "alice",
		MutedID: "bob",
	}, nil)

	result, err := svc.MuteMember("alice", "bob")
	assert.NoError(t, err)
	assert.Equal(t, "bob", result.UserID)
	m.muteRepo.AssertExpectations(t)
}

func TestPreferenceService_MuteMember_Self(t *testing.T) {
	svc, _ := newPreferenceService(false)

	_, err := svc.MuteMember("alice", "alice")
	assert.ErrorIs(t, err, common.ErrSelfTarget)
}

func TestPreferenceService_MuteMember_TargetNotFound(t *testing.T) {
	svc, m := newPreferenceService(false)

	m.memberRepo.On("FindByUserID", "ghost").Return(nil, common.ErrUserNotFound)

	_, err := svc.MuteMember("alice", "ghost")
	assert.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestPreferenceService_MuteMember_Duplicate(t *testing.T) {
	svc, m := newPreferenceService(false)

	m.memberRepo.On("FindByUserID", "bob").Return(regularMember("bob"), nil)
	m.muteRepo.On("Exists", "alice", "bob").Return(true, nil)

	_, err := svc.MuteMember("alice", "bob")
	assert.ErrorIs(t, err, common.ErrAlreadyMuted)
}

func TestPreferenceService_MuteMember_InvalidatesCache(t *testing.T) {
	svc, m := newPreferenceService(true)

	m.memberRepo.On("FindByUserID", "bob").Return(regularMember("bob"), nil)
	m.muteRepo.On("Exists", "alice", "bob").Return(false, nil)
	m.muteRepo.On("Create", "alice", "bob").Return(&domain.MemberMute{ID: 1, MuterID: "alice", MutedID: "bob"}, nil)
	m.cache.On("InvalidateMemberPrefs", mock.Anything, "alice").Return(nil).Once()

	_, err := svc.MuteMember("alice", "bob")
	assert.NoError(t, err)
	m.cache.AssertExpectations(t)
}

func TestPreferenceService_IgnoreMember_PastExpiry(t *testing.T) {
	svc, m := newPreferenceService(false)

	m.memberRepo.On("FindByUserID", "bob").Return(regularMember("bob"), nil)

	past := time.Now().Add(-time.Hour)
	_, err := svc.IgnoreMember("alice", "bob", &past)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestPreferenceService_IgnoreMember_WithExpiry(t *testing.T) {
	svc, m := newPreferenceService(false)

	future := time.Now().Add(24 * time.Hour)
	m.memberRepo.On("FindByUserID", "bob").Return(regularMember("bob"), nil)
	m.ignoreRepo.On("Exists", "alice", "bob", mock.AnythingOfType("time.Time")).Return(false, nil)
	m.ignoreRepo.On("Delete", "alice", "bob").Return(nil)
	m.ignoreRepo.On("Create", "alice", "bob", &future).Return(&domain.MemberIgnore{
		ID:        2,
		IgnorerID: "alice",
		IgnoredID: "bob",
		ExpiresAt: &future,
	}, nil)

	result, err := svc.IgnoreMember("alice", "bob", &future)
	assert.NoError(t, err)
	assert.Equal(t, "bob", result.UserID)
	assert.NotEmpty(t, result.ExpiresAt)
}

func TestPreferenceService_IgnoreMember_AlreadyIgnored(t *testing.T) {
	svc, m := newPreferenceService(false)

	m.memberRepo.On("FindByUserID", "bob").Return(regularMember("bob"), nil)
	m.ignoreRepo.On("Exists", "alice", "bob", mock.AnythingOfType("time.Time")).Return(true, nil)

	_, err := svc.IgnoreMember("alice", "bob", nil)
	assert.ErrorIs(t, err, common.ErrAlreadyIgnored)
}

func TestPreferenceService_UnmuteMember_NotFound(t *testing.T) {
	svc, m := newPreferenceService(false)

	m.muteRepo.On("Delete", "alice", "bob").Return(assert.AnError)

	err := svc.UnmuteMember("alice", "bob")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPreferenceService_ListMutes(t *testing.T) {
	svc, m := newPreferenceService(false)

	m.muteRepo.On("ListByMuter", "alice").Return([]*domain.MemberMute{
		{ID: 2, MuterID: "alice", MutedID: "carol"},
		{ID: 1, MuterID: "alice", MutedID: "bob"},
	}, nil)
	m.memberRepo.On("FindNicknames", []string{"carol", "bob"}).Return(map[string]string{
		"carol": "Carol",
		"bob":   "Bob",
	}, nil)

	mutes, err := svc.ListMutes("alice")
	assert.NoError(t, err)
	assert.Len(t, mutes, 2)
	assert.Equal(t, "Carol", mutes[0].Nickname)
}

func TestPreferenceService_ListMutes_CacheHit(t *testing.T) {
	svc, m := newPreferenceService(true)

	m.cache.On("Get", mock.Anything, "prefs:mutes:alice", mock.Anything).Return(nil).Once()

	_, err := svc.ListMutes("alice")
	assert.NoError(t, err)
	// No repository call on a cache hit
	m.muteRepo.AssertNotCalled(t, "ListByMuter", "alice")
}

func TestPreferenceService_AllowMember_Duplicate(t *testing.T) {
	svc, m := newPreferenceService(false)

	m.memberRepo.On("FindByUserID", "bob").Return(regularMember("bob"), nil)
	m.allowListRepo.On("Exists", "alice", "bob").Return(true, nil)

	_, err := svc.AllowMember("alice", "bob")
	assert.ErrorIs(t, err, common.ErrAlreadyAllowed)
}

func TestPreferenceService_UpdatePMOptions(t *testing.T) {
	svc, m := newPreferenceService(false)

	enable := true
	disable := false
	member := regularMember("alice")
	member.AllowPrivateMessages = false
	member.EnableAllowedPMUsers = true

	m.memberRepo.On("UpdateOptions", "alice", &disable, &enable).Return(nil)
	m.memberRepo.On("FindByUserID", "alice").Return(member, nil)

	opts, err := svc.UpdatePMOptions("alice", &domain.UpdatePMOptionsRequest{
		AllowPrivateMessages: &disable,
		EnableAllowedPMUsers: &enable,
	})
	assert.NoError(t, err)
	assert.False(t, opts.AllowPrivateMessages)
	assert.True(t, opts.EnableAllowedPMUsers)
	m.memberRepo.AssertExpectations(t)
}
