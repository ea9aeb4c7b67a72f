package service

import (
	"context"
	"time"

	"github.com/damoang/angple-comms/internal/common"
	"github.com/damoang/angple-comms/internal/domain"
	"github.com/damoang/angple-comms/internal/repository"
	"github.com/damoang/angple-comms/pkg/cache"
)

// PreferenceService business logic for communication preferences:
// mutes, ignores, PM allow-list entries, and the member's own PM option flags.
type PreferenceService interface {
	MuteMember(userID, targetID string) (*domain.MuteResponse, error)
	UnmuteMember(userID, targetID string) error
	ListMutes(userID string) ([]*domain.MuteResponse, error)

	IgnoreMember(userID, targetID string, expiresAt *time.Time) (*domain.IgnoreResponse, error)
	UnignoreMember(userID, targetID string) error
	ListIgnores(userID string) ([]*domain.IgnoreResponse, error)

	AllowMember(userID, targetID string) (*domain.AllowedPMUserResponse, error)
	DisallowMember(userID, targetID string) error
	ListAllowed(userID string) ([]*domain.AllowedPMUserResponse, error)

	GetPMOptions(userID string) (*domain.PMOptionsResponse, error)
	UpdatePMOptions(userID string, req *domain.UpdatePMOptionsRequest) (*domain.PMOptionsResponse, error)
}

type preferenceService struct {
	memberRepo    repository.MemberRepository
	muteRepo      repository.MuteRepository
	ignoreRepo    repository.IgnoreRepository
	allowListRepo repository.AllowListRepository
	cache         cache.Service
	now           func() time.Time
}

// NewPreferenceService creates a new PreferenceService.
// cacheService may be nil; caching is then skipped entirely.
func NewPreferenceService(
	memberRepo repository.MemberRepository,
	muteRepo repository.MuteRepository,
	ignoreRepo repository.IgnoreRepository,
	allowListRepo repository.AllowListRepository,
	cacheService cache.Service,
) PreferenceService {
	return &preferenceService{
		memberRepo:    memberRepo,
		muteRepo:      muteRepo,
		ignoreRepo:    ignoreRepo,
		allowListRepo: allowListRepo,
		cache:         cacheService,
		now:           time.Now,
	}
}

// resolveTarget validates a preference target: not the member themself, and
// an existing member
func (s *preferenceService) resolveTarget(userID, targetID string) (*domain.Member, error) {
	if userID == targetID {
		return nil, common.ErrSelfTarget
	}
	return s.memberRepo.FindByUserID(targetID)
}

// invalidate drops the member's cached preference entries after a write
func (s *preferenceService) invalidate(userID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.InvalidateMemberPrefs(context.Background(), userID)
}

// MuteMember mutes a member
func (s *preferenceService) MuteMember(userID, targetID string) (*domain.MuteResponse, error) {
	target, err := s.resolveTarget(userID, targetID)
	if err != nil {
		return nil, err
	}

	exists, err := s.muteRepo.Exists(userID, targetID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrAlreadyMuted
	}

	mute, err := s.muteRepo.Create(userID, targetID)
	if err != nil {
		return nil, err
	}
	s.invalidate(userID)

	return &domain.MuteResponse{
		MuteID:   mute.ID,
		UserID:   targetID,
		Nickname: target.Nickname,
		MutedAt:  mute.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// UnmuteMember removes a mute
func (s *preferenceService) UnmuteMember(userID, targetID string) error {
	if err := s.muteRepo.Delete(userID, targetID); err != nil {
		return common.ErrNotFound
	}
	s.invalidate(userID)
	return nil
}

// ListMutes returns all members muted by userID
func (s *preferenceService) ListMutes(userID string) ([]*domain.MuteResponse, error) {
	if s.cache != nil {
		var cached []*domain.MuteResponse
		if err := s.cache.Get(context.Background(), cache.PrefixMutes+userID, &cached); err == nil {
			return cached, nil
		}
	}

	mutes, err := s.muteRepo.ListByMuter(userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(mutes))
	for i, m := range mutes {
		ids[i] = m.MutedID
	}
	nicknames, err := s.memberRepo.FindNicknames(ids)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.MuteResponse, len(mutes))
	for i, m := range mutes {
		responses[i] = &domain.MuteResponse{
			MuteID:   m.ID,
			UserID:   m.MutedID,
			Nickname: nicknames[m.MutedID],
			MutedAt:  m.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	if s.cache != nil {
		_ = s.cache.Set(context.Background(), cache.PrefixMutes+userID, responses, cache.TTLPrefs)
	}
	return responses, nil
}

// IgnoreMember ignores a member until expiresAt (nil = no expiry)
func (s *preferenceService) IgnoreMember(userID, targetID string, expiresAt *time.Time) (*domain.IgnoreResponse, error) {
	target, err := s.resolveTarget(userID, targetID)
	if err != nil {
		return nil, err
	}

	if expiresAt != nil && !expiresAt.After(s.now()) {
		return nil, common.ErrInvalidInput
	}

	exists, err := s.ignoreRepo.Exists(userID, targetID, s.now())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrAlreadyIgnored
	}

	// An expired row may still occupy the unique index; clear it first
	_ = s.ignoreRepo.Delete(userID, targetID)

	ignore, err := s.ignoreRepo.Create(userID, targetID, expiresAt)
	if err != nil {
		return nil, err
	}
	s.invalidate(userID)

	resp := &domain.IgnoreResponse{
		IgnoreID:  ignore.ID,
		UserID:    targetID,
		Nickname:  target.Nickname,
		IgnoredAt: ignore.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if ignore.ExpiresAt != nil {
		resp.ExpiresAt = ignore.ExpiresAt.Format("2006-01-02 15:04:05")
	}
	return resp, nil
}

// UnignoreMember removes an ignore
func (s *preferenceService) UnignoreMember(userID, targetID string) error {
	if err := s.ignoreRepo.Delete(userID, targetID); err != nil {
		return common.ErrNotFound
	}
	s.invalidate(userID)
	return nil
}

// ListIgnores returns all active ignores of userID
func (s *preferenceService) ListIgnores(userID string) ([]*domain.IgnoreResponse, error) {
	ignores, err := s.ignoreRepo.ListByIgnorer(userID, s.now())
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(ignores))
	for i, ig := range ignores {
		ids[i] = ig.IgnoredID
	}
	nicknames, err := s.memberRepo.FindNicknames(ids)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.IgnoreResponse, len(ignores))
	for i, ig := range ignores {
		responses[i] = &domain.IgnoreResponse{
			IgnoreID:  ig.ID,
			UserID:    ig.IgnoredID,
			Nickname:  nicknames[ig.IgnoredID],
			IgnoredAt: ig.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if ig.ExpiresAt != nil {
			responses[i].ExpiresAt = ig.ExpiresAt.Format("2006-01-02 15:04:05")
		}
	}
	return responses, nil
}

// AllowMember adds a member to userID's PM allow-list
func (s *preferenceService) AllowMember(userID, targetID string) (*domain.AllowedPMUserResponse, error) {
	target, err := s.resolveTarget(userID, targetID)
	if err != nil {
		return nil, err
	}

	exists, err := s.allowListRepo.Exists(userID, targetID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrAlreadyAllowed
	}

	entry, err := s.allowListRepo.Create(userID, targetID)
	if err != nil {
		return nil, err
	}
	s.invalidate(userID)

	return &domain.AllowedPMUserResponse{
		EntryID:   entry.ID,
		UserID:    targetID,
		Nickname:  target.Nickname,
		AllowedAt: entry.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// DisallowMember removes a member from userID's PM allow-list
func (s *preferenceService) DisallowMember(userID, targetID string) error {
	if err := s.allowListRepo.Delete(userID, targetID); err != nil {
		return common.ErrNotFound
	}
	s.invalidate(userID)
	return nil
}

// ListAllowed returns userID's PM allow-list
func (s *preferenceService) ListAllowed(userID string) ([]*domain.AllowedPMUserResponse, error) {
	if s.cache != nil {
		var cached []*domain.AllowedPMUserResponse
		if err := s.cache.Get(context.Background(), cache.PrefixAllowList+userID, &cached); err == nil {
			return cached, nil
		}
	}

	entries, err := s.allowListRepo.ListByOwner(userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.AllowedID
	}
	nicknames, err := s.memberRepo.FindNicknames(ids)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.AllowedPMUserResponse, len(entries))
	for i, e := range entries {
		responses[i] = &domain.AllowedPMUserResponse{
			EntryID:   e.ID,
			UserID:    e.AllowedID,
			Nickname:  nicknames[e.AllowedID],
			AllowedAt: e.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	if s.cache != nil {
		_ = s.cache.Set(context.Background(), cache.PrefixAllowList+userID, responses, cache.TTLPrefs)
	}
	return responses, nil
}

// GetPMOptions returns the member's own PM option flags
func (s *preferenceService) GetPMOptions(userID string) (*domain.PMOptionsResponse, error) {
	if s.cache != nil {
		var cached domain.PMOptionsResponse
		if err := s.cache.Get(context.Background(), cache.PrefixOptions+userID, &cached); err == nil {
			return &cached, nil
		}
	}

	member, err := s.memberRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	resp := &domain.PMOptionsResponse{
		AllowPrivateMessages: member.AllowPrivateMessages,
		EnableAllowedPMUsers: member.EnableAllowedPMUsers,
	}
	if s.cache != nil {
		_ = s.cache.Set(context.Background(), cache.PrefixOptions+userID, resp, cache.TTLOptions)
	}
	return resp, nil
}

// UpdatePMOptions updates the member's own PM option flags
func (s *preferenceService) UpdatePMOptions(userID string, req *domain.UpdatePMOptionsRequest) (*domain.PMOptionsResponse, error) {
	if err := s.memberRepo.UpdateOptions(userID, req.AllowPrivateMessages, req.EnableAllowedPMUsers); err != nil {
		return nil, err
	}
	s.invalidate(userID)
	return s.GetPMOptions(userID)
}
