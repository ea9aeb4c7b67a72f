package handler

import (
	"errors"
	"net/http"

	"github.com/damoang/angple-comms/internal/common"
	"github.com/damoang/angple-comms/internal/domain"
	"github.com/damoang/angple-comms/internal/middleware"
	"github.com/damoang/angple-comms/internal/service"
	"github.com/gin-gonic/gin"
)

// ScreenerHandler handles communication screening HTTP requests
type ScreenerHandler struct {
	service    service.ScreenerService
	maxTargets int
}

// NewScreenerHandler creates a new ScreenerHandler
func NewScreenerHandler(svc service.ScreenerService, maxTargets int) *ScreenerHandler {
	if maxTargets <= 0 {
		maxTargets = 500
	}
	return &ScreenerHandler{service: svc, maxTargets: maxTargets}
}

// Screen handles POST /screen
// @Summary Screen the authenticated member against a batch of targets
// @Tags screen
// @Accept json
// @Produce json
// @Param request body domain.ScreenRequest true "target ids"
// @Success 200 {object} common.APIResponse{data=domain.ScreenResponse}
// @Router /screen [post]
func (h *ScreenerHandler) Screen(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	var req domain.ScreenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "target_ids is required", err)
		return
	}
	if len(req.TargetIDs) > h.maxTargets {
		common.ErrorResponse(c, http.StatusBadRequest, "too many target ids", common.ErrInvalidInput)
		return
	}

	screener, err := h.service.Screen(userID, req.TargetIDs)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "member not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to screen targets", err)
		return
	}

	middleware.CountScreenedTargets(len(screener.Targets()))

	resp := &domain.ScreenResponse{
		AllowingActor:        screener.AllowingActorCommunication(),
		PreventingActor:      screener.PreventingActorCommunication(),
		ActorAllowing:        screener.ActorAllowingCommunication(),
		ActorPreventing:      screener.ActorPreventingCommunication(),
		ActorDisallowsAllPMs: screener.ActorDisallowingAllPMs(),
	}
	common.SuccessResponse(c, resp, nil)
}

// Check handles POST /screen/check
// @Summary Evaluate individual predicates against one target of a screened set
// @Tags screen
// @Accept json
// @Produce json
// @Param request body domain.ScreenCheckRequest true "target set and the id to check"
// @Success 200 {object} common.APIResponse{data=domain.ScreenCheckResponse}
// @Failure 404 {object} common.APIResponse "target id outside the screened set"
// @Router /screen/check [post]
func (h *ScreenerHandler) Check(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	var req domain.ScreenCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "target_id and target_ids are required", err)
		return
	}
	if len(req.TargetIDs) > h.maxTargets {
		common.ErrorResponse(c, http.StatusBadRequest, "too many target ids", common.ErrInvalidInput)
		return
	}

	screener, err := h.service.Screen(userID, req.TargetIDs)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "member not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to screen targets", err)
		return
	}

	resp := &domain.ScreenCheckResponse{TargetID: req.TargetID}
	checks := []struct {
		dest *bool
		fn   func(string) (bool, error)
	}{
		{&resp.IgnoringOrMutingActor, screener.IgnoringOrMutingActor},
		{&resp.DisallowingPMsFromActor, screener.DisallowingPMsFromActor},
		{&resp.ActorIgnoring, screener.ActorIgnoring},
		{&resp.ActorMuting, screener.ActorMuting},
		{&resp.ActorDisallowingPMs, screener.ActorDisallowingPMs},
	}
	for _, check := range checks {
		v, err := check.fn(req.TargetID)
		if err != nil {
			// Every predicate fails the same way: the id is outside the set
			common.ErrorResponse(c, http.StatusNotFound, "target is not part of the screened set", err)
			return
		}
		*check.dest = v
	}

	common.SuccessResponse(c, resp, nil)
}
