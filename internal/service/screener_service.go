package service

import (
	"fmt"
	"time"

	"github.com/damoang/angple-comms/internal/common"
	"github.com/damoang/angple-comms/internal/domain"
	"github.com/damoang/angple-comms/internal/repository"
)

// ScreenerService builds communication screeners
type ScreenerService interface {
	// Screen loads a preference snapshot for one actor against a target set.
	// Duplicate target ids and the actor's own id are dropped.
	Screen(actorID string, targetIDs []string) (*Screener, error)
}

type screenerService struct {
	memberRepo    repository.MemberRepository
	muteRepo      repository.MuteRepository
	ignoreRepo    repository.IgnoreRepository
	allowListRepo repository.AllowListRepository
	staffLevel    int
	now           func() time.Time
}

// NewScreenerService creates a new ScreenerService.
// Members at or above staffLevel bypass incoming restrictions.
func NewScreenerService(
	memberRepo repository.MemberRepository,
	muteRepo repository.MuteRepository,
	ignoreRepo repository.IgnoreRepository,
	allowListRepo repository.AllowListRepository,
	staffLevel int,
) ScreenerService {
	return &screenerService{
		memberRepo:    memberRepo,
		muteRepo:      muteRepo,
		ignoreRepo:    ignoreRepo,
		allowListRepo: allowListRepo,
		staffLevel:    staffLevel,
		now:           time.Now,
	}
}

// Screener answers pairwise PM-permission questions between one actor and a
// fixed target set. All preference state is loaded once at construction;
// every method afterwards is a pure in-memory lookup, so a Screener is safe
// to share across goroutines.
type Screener struct {
	actorID string
	staff   bool

	// deduped, self-excluded, in first-appearance order
	targets   []string
	targetSet map[string]struct{}

	// incoming direction: what targets hold against the actor
	targetOptions  map[string]domain.MemberOptions
	mutingActor    map[string]struct{}
	ignoringActor  map[string]struct{}
	allowListActor map[string]struct{} // targets with the actor on their allow-list

	// outgoing direction: the actor's own preferences
	actorOptions   domain.MemberOptions
	actorMuted     map[string]struct{}
	actorIgnored   map[string]struct{}
	actorAllowList map[string]struct{}
}

// Screen resolves the actor and bulk-loads all preference state for the
// target set. No storage access happens after this returns.
func (s *screenerService) Screen(actorID string, targetIDs []string) (*Screener, error) {
	actor, err := s.memberRepo.FindByUserID(actorID)
	if err != nil {
		return nil, err
	}

	targets, targetSet := normalizeTargets(actorID, targetIDs)
	now := s.now()

	targetOptions, err := s.memberRepo.FindOptionsByUserIDs(targets)
	if err != nil {
		return nil, fmt.Errorf("failed to load target options: %w", err)
	}
	mutingActor, err := s.muteRepo.FindMutersOf(actorID, targets)
	if err != nil {
		return nil, fmt.Errorf("failed to load mutes against actor: %w", err)
	}
	ignoringActor, err := s.ignoreRepo.FindIgnorersOf(actorID, targets, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load ignores against actor: %w", err)
	}
	allowListActor, err := s.allowListRepo.FindOwnersAllowing(targets, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load allow-lists containing actor: %w", err)
	}
	actorMuted, err := s.muteRepo.FindMutedBy(actorID, targets)
	if err != nil {
		return nil, fmt.Errorf("failed to load actor mutes: %w", err)
	}
	actorIgnored, err := s.ignoreRepo.FindIgnoredBy(actorID, targets, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load actor ignores: %w", err)
	}
	actorAllowList, err := s.allowListRepo.FindAllowedAmong(actorID, targets)
	if err != nil {
		return nil, fmt.Errorf("failed to load actor allow-list: %w", err)
	}

	return &Screener{
		actorID:        actorID,
		staff:          actor.Level >= s.staffLevel,
		targets:        targets,
		targetSet:      targetSet,
		targetOptions:  targetOptions,
		mutingActor:    toSet(mutingActor),
		ignoringActor:  toSet(ignoringActor),
		allowListActor: toSet(allowListActor),
		actorOptions:   actor.Options(),
		actorMuted:     toSet(actorMuted),
		actorIgnored:   toSet(actorIgnored),
		actorAllowList: toSet(actorAllowList),
	}, nil
}

// normalizeTargets dedupes target ids preserving first-appearance order and
// drops the actor's own id and empty strings
func normalizeTargets(actorID string, targetIDs []string) ([]string, map[string]struct{}) {
	targets := make([]string, 0, len(targetIDs))
	targetSet := make(map[string]struct{}, len(targetIDs))
	for _, id := range targetIDs {
		if id == "" || id == actorID {
			continue
		}
		if _, seen := targetSet[id]; seen {
			continue
		}
		targetSet[id] = struct{}{}
		targets = append(targets, id)
	}
	return targets, targetSet
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// ActorID returns the screened actor's user id
func (sc *Screener) ActorID() string {
	return sc.actorID
}

// Targets returns the normalized target set in first-appearance order
func (sc *Screener) Targets() []string {
	out := make([]string, len(sc.targets))
	copy(out, sc.targets)
	return out
}

// checkTarget rejects ids outside the constructed target set
func (sc *Screener) checkTarget(targetID string) error {
	if _, ok := sc.targetSet[targetID]; !ok {
		return fmt.Errorf("%w: %s", common.ErrUnknownTarget, targetID)
	}
	return nil
}

// targetOpts returns the target's option flags, defaulting permissively for
// members without a stored row
func (sc *Screener) targetOpts(targetID string) domain.MemberOptions {
	if opts, ok := sc.targetOptions[targetID]; ok {
		return opts
	}
	return domain.DefaultMemberOptions()
}

// IgnoringOrMutingActor reports whether the target mutes the actor or holds
// an active ignore against them. Always false for staff actors.
func (sc *Screener) IgnoringOrMutingActor(targetID string) (bool, error) {
	if err := sc.checkTarget(targetID); err != nil {
		return false, err
	}
	if sc.staff {
		return false, nil
	}
	if _, ok := sc.mutingActor[targetID]; ok {
		return true, nil
	}
	_, ok := sc.ignoringActor[targetID]
	return ok, nil
}

// DisallowingPMsFromActor reports whether the target blocks PMs from the
// actor for any reason: mute, active ignore, global PM opt-out, or allow-list
// mode without the actor on the list. Always false for staff actors.
func (sc *Screener) DisallowingPMsFromActor(targetID string) (bool, error) {
	blocked, err := sc.IgnoringOrMutingActor(targetID)
	if err != nil {
		return false, err
	}
	if sc.staff {
		return false, nil
	}
	if blocked {
		return true, nil
	}

	opts := sc.targetOpts(targetID)
	if !opts.AllowPrivateMessages {
		return true, nil
	}
	if opts.EnableAllowedPMUsers {
		if _, ok := sc.allowListActor[targetID]; !ok {
			return true, nil
		}
	}
	return false, nil
}

// ActorIgnoring reports whether the actor holds an active ignore against the
// target. Staff status is irrelevant here: privilege only bypasses what
// others hold against the actor, never the actor's own preferences.
func (sc *Screener) ActorIgnoring(targetID string) (bool, error) {
	if err := sc.checkTarget(targetID); err != nil {
		return false, err
	}
	_, ok := sc.actorIgnored[targetID]
	return ok, nil
}

// ActorMuting reports whether the actor mutes the target
func (sc *Screener) ActorMuting(targetID string) (bool, error) {
	if err := sc.checkTarget(targetID); err != nil {
		return false, err
	}
	_, ok := sc.actorMuted[targetID]
	return ok, nil
}

// ActorDisallowingPMs reports whether the actor's allow-list mode shuts the
// target out: allow-list mode on and the target not on the list. Independent
// of ActorMuting/ActorIgnoring; the three only combine in the partition.
func (sc *Screener) ActorDisallowingPMs(targetID string) (bool, error) {
	if err := sc.checkTarget(targetID); err != nil {
		return false, err
	}
	if !sc.actorOptions.EnableAllowedPMUsers {
		return false, nil
	}
	_, ok := sc.actorAllowList[targetID]
	return !ok, nil
}

// ActorDisallowingAllPMs reports whether the actor has PMs globally disabled
func (sc *Screener) ActorDisallowingAllPMs() bool {
	return !sc.actorOptions.AllowPrivateMessages
}

// AllowingActorCommunication returns the targets that do not block the actor
func (sc *Screener) AllowingActorCommunication() []string {
	return sc.partition(sc.disallowingPMsFromActor, false)
}

// PreventingActorCommunication returns the targets that block the actor
func (sc *Screener) PreventingActorCommunication() []string {
	return sc.partition(sc.disallowingPMsFromActor, true)
}

// ActorAllowingCommunication returns the targets the actor does not restrict
func (sc *Screener) ActorAllowingCommunication() []string {
	return sc.partition(sc.actorRestricting, false)
}

// ActorPreventingCommunication returns the targets the actor restricts by
// mute, active ignore, or allow-list exclusion
func (sc *Screener) ActorPreventingCommunication() []string {
	return sc.partition(sc.actorRestricting, true)
}

// partition splits the target set by a predicate, preserving target order.
// Predicates never fail for members of the target set.
func (sc *Screener) partition(pred func(string) bool, want bool) []string {
	out := make([]string, 0, len(sc.targets))
	for _, id := range sc.targets {
		if pred(id) == want {
			out = append(out, id)
		}
	}
	return out
}

func (sc *Screener) disallowingPMsFromActor(targetID string) bool {
	blocked, _ := sc.DisallowingPMsFromActor(targetID)
	return blocked
}

func (sc *Screener) actorRestricting(targetID string) bool {
	muting, _ := sc.ActorMuting(targetID)
	ignoring, _ := sc.ActorIgnoring(targetID)
	disallowing, _ := sc.ActorDisallowingPMs(targetID)
	return muting || ignoring || disallowing
}
