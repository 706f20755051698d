package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/inventory-dashboard/services"
	"github.com/kendall-kelly/inventory-dashboard/viewmodels"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondFailure maps an operation error to a status and the error envelope.
// Upstream rejections keep the upstream status and message.
func respondFailure(c *gin.Context, err error) {
	status, code, message := classify(err)
	respondError(c, status, code, message)
}

func classify(err error) (status int, code, message string) {
	var (
		reqErr     *services.RequestFailedError
		netErr     *services.NetworkUnreachableError
		badBody    *services.MalformedResponseError
		stockErr   *viewmodels.InsufficientStockError
		productErr *viewmodels.UnknownProductError
		stockIDErr *viewmodels.UnknownStockError
		qtyErr     *viewmodels.InvalidQuantityError
		statusErr  *viewmodels.InvalidStatusError
	)

	switch {
	case errors.As(err, &reqErr):
		return reqErr.Status, reqErr.Code(), reqErr.Message
	case errors.As(err, &netErr):
		return http.StatusBadGateway, netErr.Code(), "Inventory API is unreachable"
	case errors.As(err, &badBody):
		return http.StatusBadGateway, badBody.Code(), "Inventory API returned an unreadable response"
	case errors.As(err, &stockErr):
		return http.StatusConflict, stockErr.Code(), stockErr.Error()
	case errors.As(err, &productErr):
		return http.StatusNotFound, productErr.Code(), productErr.Error()
	case errors.As(err, &stockIDErr):
		return http.StatusNotFound, stockIDErr.Code(), stockIDErr.Error()
	case errors.As(err, &qtyErr):
		return http.StatusBadRequest, qtyErr.Code(), qtyErr.Error()
	case errors.As(err, &statusErr):
		return http.StatusBadRequest, statusErr.Code(), statusErr.Error()
	case errors.Is(err, viewmodels.ErrConfirmationDeclined):
		return http.StatusConflict, "CONFIRMATION_REQUIRED", "Pass confirm=true to confirm the delete"
	case errors.Is(err, viewmodels.ErrRoleUnresolved):
		return http.StatusForbidden, "ROLE_UNRESOLVED", "Your account has no role; contact an administrator"
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized, "UNAUTHENTICATED", "Please log in first"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout, "TIMEOUT", "The request did not complete in time"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"
	}
}

// errorBody renders a recorded view error for list responses; nil stays nil
func errorBody(err error) gin.H {
	if err == nil {
		return nil
	}
	_, code, message := classify(err)
	return gin.H{"code": code, "message": message}
}
