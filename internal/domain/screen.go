package domain

// ScreenRequest asks for a full screening of the actor against a target set
type ScreenRequest struct {
	TargetIDs []string `json:"target_ids" binding:"required"`
}

// ScreenResponse carries both partitions in both directions
type ScreenResponse struct {
	AllowingActor        []string `json:"allowing_actor"`
	PreventingActor      []string `json:"preventing_actor"`
	ActorAllowing        []string `json:"actor_allowing"`
	ActorPreventing      []string `json:"actor_preventing"`
	ActorDisallowsAllPMs bool     `json:"actor_disallowing_all_pms"`
}

// ScreenCheckRequest asks for individual predicate results against one target
type ScreenCheckRequest struct {
	TargetID  string   `json:"target_id" binding:"required"`
	TargetIDs []string `json:"target_ids" binding:"required"`
}

// ScreenCheckResponse carries per-predicate results for a single target
type ScreenCheckResponse struct {
	TargetID                string `json:"target_id"`
	IgnoringOrMutingActor   bool   `json:"ignoring_or_muting_actor"`
	DisallowingPMsFromActor bool   `json:"disallowing_pms_from_actor"`
	ActorIgnoring           bool   `json:"actor_ignoring"`
	ActorMuting             bool   `json:"actor_muting"`
	ActorDisallowingPMs     bool   `json:"actor_disallowing_pms"`
}
