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

// PreferenceHandler handles communication preference HTTP requests
type PreferenceHandler struct {
	service service.PreferenceService
}

// NewPreferenceHandler creates a new PreferenceHandler
func NewPreferenceHandler(svc service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{service: svc}
}

// authedTarget extracts the authenticated user and the :user_id path param
func authedTarget(c *gin.Context) (userID, targetID string, ok bool) {
	userID = middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required", nil)
		return "", "", false
	}
	targetID = c.Param("user_id")
	if targetID == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "target member id is required", nil)
		return "", "", false
	}
	return userID, targetID, true
}

// prefErrorStatus maps preference service errors to HTTP statuses
func prefErrorStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrUserNotFound), errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrAlreadyMuted),
		errors.Is(err, common.ErrAlreadyIgnored),
		errors.Is(err, common.ErrAlreadyAllowed):
		return http.StatusConflict
	case errors.Is(err, common.ErrSelfTarget), errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// MuteMember handles POST /members/:user_id/mute
// @Summary Mute a member
// @Tags preferences
// @Produce json
// @Param user_id path string true "member id to mute"
// @Success 200 {object} common.APIResponse{data=domain.MuteResponse}
// @Router /members/{user_id}/mute [post]
func (h *PreferenceHandler) MuteMember(c *gin.Context) {
	userID, targetID, ok := authedTarget(c)
	if !ok {
		return
	}

	result, err := h.service.MuteMember(userID, targetID)
	if err != nil {
		common.ErrorResponse(c, prefErrorStatus(err), err.Error(), err)
		return
	}
	common.SuccessResponse(c, result, nil)
}

// UnmuteMember handles DELETE /members/:user_id/mute
// @Summary Unmute a member
// @Tags preferences
// @Produce json
// @Param user_id path string true "member id to unmute"
// @Success 204
// @Router /members/{user_id}/mute [delete]
func (h *PreferenceHandler) UnmuteMember(c *gin.Context) {
	userID, targetID, ok := authedTarget(c)
	if !ok {
		return
	}

	if err := h.service.UnmuteMember(userID, targetID); err != nil {
		common.ErrorResponse(c, prefErrorStatus(err), err.Error(), err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMutes handles GET /members/me/mutes
// @Summary List muted members
// @Tags preferences
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]domain.MuteResponse}
// @Router /members/me/mutes [get]
func (h *PreferenceHandler) ListMutes(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	mutes, err := h.service.ListMutes(userID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list mutes", err)
		return
	}
	common.SuccessResponse(c, mutes, nil)
}

// IgnoreMember handles POST /members/:user_id/ignore
// @Summary Ignore a member, optionally until a timestamp
// @Tags preferences
// @Accept json
// @Produce json
// @Param user_id path string true "member id to ignore"
// @Param request body domain.IgnoreRequest false "optional expiry"
// @Success 200 {object} common.APIResponse{data=domain.IgnoreResponse}
// @Router /members/{user_id}/ignore [post]
func (h *PreferenceHandler) IgnoreMember(c *gin.Context) {
	userID, targetID, ok := authedTarget(c)
	if !ok {
		return
	}

	// Body is optional; an empty body means no expiry
	var req domain.IgnoreRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "invalid expires_at", err)
			return
		}
	}

	result, err := h.service.IgnoreMember(userID, targetID, req.ExpiresAt)
	if err != nil {
		common.ErrorResponse(c, prefErrorStatus(err), err.Error(), err)
		return
	}
	common.SuccessResponse(c, result, nil)
}

// UnignoreMember handles DELETE /members/:user_id/ignore
// @Summary Stop ignoring a member
// @Tags preferences
// @Produce json
// @Param user_id path string true "member id to stop ignoring"
// @Success 204
// @Router /members/{user_id}/ignore [delete]
func (h *PreferenceHandler) UnignoreMember(c *gin.Context) {
	userID, targetID, ok := authedTarget(c)
	if !ok {
		return
	}

	if err := h.service.UnignoreMember(userID, targetID); err != nil {
		common.ErrorResponse(c, prefErrorStatus(err), err.Error(), err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListIgnores handles GET /members/me/ignores
// @Summary List ignored members (active ignores only)
// @Tags preferences
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]domain.IgnoreResponse}
// @Router /members/me/ignores [get]
func (h *PreferenceHandler) ListIgnores(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	ignores, err := h.service.ListIgnores(userID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list ignores", err)
		return
	}
	common.SuccessResponse(c, ignores, nil)
}

// AllowMember handles POST /members/:user_id/allow
// @Summary Add a member to the PM allow-list
// @Tags preferences
// @Produce json
// @Param user_id path string true "member id to allow"
// @Success 200 {object} common.APIResponse{data=domain.AllowedPMUserResponse}
// @Router /members/{user_id}/allow [post]
func (h *PreferenceHandler) AllowMember(c *gin.Context) {
	userID, targetID, ok := authedTarget(c)
	if !ok {
		return
	}

	result, err := h.service.AllowMember(userID, targetID)
	if err != nil {
		common.ErrorResponse(c, prefErrorStatus(err), err.Error(), err)
		return
	}
	common.SuccessResponse(c, result, nil)
}

// DisallowMember handles DELETE /members/:user_id/allow
// @Summary Remove a member from the PM allow-list
// @Tags preferences
// @Produce json
// @Param user_id path string true "member id to remove"
// @Success 204
// @Router /members/{user_id}/allow [delete]
func (h *PreferenceHandler) DisallowMember(c *gin.Context) {
	userID, targetID, ok := authedTarget(c)
	if !ok {
		return
	}

	if err := h.service.DisallowMember(userID, targetID); err != nil {
		common.ErrorResponse(c, prefErrorStatus(err), err.Error(), err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAllowed handles GET /members/me/allowed
// @Summary List the PM allow-list
// @Tags preferences
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]domain.AllowedPMUserResponse}
// @Router /members/me/allowed [get]
func (h *PreferenceHandler) ListAllowed(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	allowed, err := h.service.ListAllowed(userID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list allow-list", err)
		return
	}
	common.SuccessResponse(c, allowed, nil)
}

// GetPMOptions handles GET /members/me/pm-options
// @Summary Get own PM option flags
// @Tags preferences
// @Produce json
// @Success 200 {object} common.APIResponse{data=domain.PMOptionsResponse}
// @Router /members/me/pm-options [get]
func (h *PreferenceHandler) GetPMOptions(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	opts, err := h.service.GetPMOptions(userID)
	if err != nil {
		common.ErrorResponse(c, prefErrorStatus(err), err.Error(), err)
		return
	}
	common.SuccessResponse(c, opts, nil)
}

// UpdatePMOptions handles PUT /members/me/pm-options
// @Summary Update own PM option flags
// @Tags preferences
// @Accept json
// @Produce json
// @Param request body domain.UpdatePMOptionsRequest true "flags to change"
// @Success 200 {object} common.APIResponse{data=domain.PMOptionsResponse}
// @Router /members/me/pm-options [put]
func (h *PreferenceHandler) UpdatePMOptions(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	var req domain.UpdatePMOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	opts, err := h.service.UpdatePMOptions(userID, &req)
	if err != nil {
		common.ErrorResponse(c, prefErrorStatus(err), err.Error(), err)
		return
	}
	common.SuccessResponse(c, opts, nil)
}
