package handlers

import (
	"net/http"

	dom "storefront/internal/domain"
	"storefront/internal/dto"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	svc SubscriptionService
}

func NewSubscriptionHandler(svc SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

// Create godoc
// @Summary      Register a shared streaming account
// @Tags         admin-subscriptions
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateSubscriptionRequest  true  "Subscription"
// @Success      201   {object}  dto.SubscriptionResponse
// @Failure      400   {object}  map[string]string
// @Router       /admin/subscriptions [post]
func (h *SubscriptionHandler) Create(c *gin.Context) {
	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sub, err := h.svc.Create(c.Request.Context(), dom.Subscription{
		Platform:     req.Platform,
		AccountEmail: req.AccountEmail,
		MaxProfiles:  req.MaxProfiles,
		ExpiresAt:    req.ExpiresAt.Time(),
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subscriptionToResponse(sub))
}

// List godoc
// @Summary      List subscriptions
// @Tags         admin-subscriptions
// @Produce      json
// @Security     CookieAuth
// @Param        status  query     string  false  "active, expired or cancelled"
// @Success      200  {object}  dto.ListSubscriptionsResponse
// @Router       /admin/subscriptions [get]
func (h *SubscriptionHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), dom.SubscriptionStatus(c.Query("status")))
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]dto.SubscriptionResponse, len(list))
	for i, s := range list {
		items[i] = subscriptionToResponse(s)
	}
	c.JSON(http.StatusOK, dto.ListSubscriptionsResponse{Items: items})
}

// Get godoc
// @Summary      Get a subscription with its profiles
// @Tags         admin-subscriptions
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Subscription ID"
// @Success      200  {object}  dto.SubscriptionResponse
// @Failure      404  {object}  map[string]string
// @Router       /admin/subscriptions/{id} [get]
func (h *SubscriptionHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	sub, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, subscriptionToResponse(sub))
}

// Renew godoc
// @Summary      Extend a subscription
// @Tags         admin-subscriptions
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int                           true  "Subscription ID"
// @Param        body  body      dto.RenewSubscriptionRequest  true  "New expiry"
// @Success      200   {object}  dto.SubscriptionResponse
// @Failure      400   {object}  map[string]string
// @Router       /admin/subscriptions/{id}/renew [post]
func (h *SubscriptionHandler) Renew(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.RenewSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sub, err := h.svc.Renew(c.Request.Context(), id, req.ExpiresAt.Time())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, subscriptionToResponse(sub))
}

// Cancel godoc
// @Summary      Cancel a subscription
// @Tags         admin-subscriptions
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Subscription ID"
// @Success      200  {object}  dto.SubscriptionResponse
// @Failure      404  {object}  map[string]string
// @Router       /admin/subscriptions/{id}/cancel [post]
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	sub, err := h.svc.Cancel(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, subscriptionToResponse(sub))
}

// AssignProfile godoc
// @Summary      Give a customer a profile on a subscription
// @Tags         admin-subscriptions
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int                       true  "Subscription ID"
// @Param        body  body      dto.AssignProfileRequest  true  "Profile"
// @Success      201   {object}  dto.ProfileResponse
// @Failure      409   {object}  map[string]string
// @Router       /admin/subscriptions/{id}/profiles [post]
func (h *SubscriptionHandler) AssignProfile(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AssignProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.svc.AssignProfile(c.Request.Context(), id, req.CustomerID, req.Name, req.PIN)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profileToResponse(p))
}

// RemoveProfile godoc
// @Summary      Free a profile seat
// @Tags         admin-subscriptions
// @Security     CookieAuth
// @Param        id         path  int  true  "Subscription ID"
// @Param        profileId  path  int  true  "Profile ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /admin/subscriptions/{id}/profiles/{profileId} [delete]
func (h *SubscriptionHandler) RemoveProfile(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	profileID, ok := parseID(c, "profileId")
	if !ok {
		return
	}
	if err := h.svc.RemoveProfile(c.Request.Context(), id, profileID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MyProfiles godoc
// @Summary      List my streaming profiles
// @Tags         subscriptions
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListProfilesResponse
// @Router       /profile/subscriptions [get]
func (h *SubscriptionHandler) MyProfiles(c *gin.Context) {
	list, err := h.svc.CustomerProfiles(c.Request.Context(), currentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]dto.ProfileResponse, len(list))
	for i, p := range list {
		items[i] = profileToResponse(p)
	}
	c.JSON(http.StatusOK, dto.ListProfilesResponse{Items: items})
}
