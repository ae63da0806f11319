package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/auth"
	dom "storefront/internal/domain"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// conflictErrors are business rule violations reported as 409.
var conflictErrors = []error{
	service.ErrConflict,
	service.ErrEmailTaken,
	dom.ErrOverpayment,
	dom.ErrOrderClosed,
	dom.ErrInvalidTransition,
	dom.ErrEmptyCart,
	dom.ErrInsufficientStock,
	dom.ErrProductUnavailable,
	dom.ErrAuctionClosed,
	dom.ErrAuctionNotStarted,
	dom.ErrBidTooLow,
	dom.ErrAlreadyHighest,
	dom.ErrNoBids,
	dom.ErrSubscriptionFull,
	dom.ErrSubscriptionClosed,
	dom.ErrOfferExpired,
	dom.ErrReturnNotAllowed,
}

var badRequestErrors = []error{
	service.ErrInvalidInput,
	dom.ErrInvalidAmount,
	dom.ErrAmountTooLarge,
	dom.ErrInvalidQuantity,
	dom.ErrUnknownCurrency,
	dom.ErrInvalidImport,
}

// statusFor maps service and domain errors to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}

// writeError responds {"error": msg}. Unknown errors are attached to the gin
// context for the request logger and hidden behind a generic message.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func parseQueryID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// parsePage reads limit and offset query params; bad values fall back to defaults.
func parsePage(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return dom.ClampPage(limit, offset)
}

func currentUser(c *gin.Context) int64 {
	return auth.UserIDFromContext(c)
}

func isAdmin(c *gin.Context) bool {
	return auth.RoleFromContext(c) == dom.RoleAdmin
}
