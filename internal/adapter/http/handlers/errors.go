package handlers

import (
	"errors"
	"net/http"

	"car_marketplace/internal/usecase"
	"car_marketplace/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated), errors.Is(err, usecase.ErrInvalidOwnerID):
		return pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Authentication required", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrInvalidListingDraft):
		return pkg.NewDomainError("INVALID_LISTING", "Listing details are incomplete or invalid", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidMembershipPlan):
		return pkg.NewDomainErrorSimple("INVALID_PLAN", "Unknown membership plan", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidCarID), errors.Is(err, usecase.ErrInvalidPaymentID), errors.Is(err, usecase.ErrInvalidDraftID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrCarForbidden), errors.Is(err, usecase.ErrPaymentForbidden), errors.Is(err, usecase.ErrDraftForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "You do not have access to this resource", http.StatusForbidden)
	case errors.Is(err, usecase.ErrCarNotFound):
		return pkg.NewDomainErrorSimple("CAR_NOT_FOUND", "Car not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrDraftNotFound):
		return pkg.NewDomainErrorSimple("LISTING_DRAFT_NOT_FOUND", "Listing draft not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrSubmissionInProgress):
		return pkg.NewDomainErrorSimple("SUBMISSION_IN_PROGRESS", "An identical submission is being processed, retry shortly", http.StatusConflict)
	case errors.Is(err, usecase.ErrDraftNotCancelable):
		return pkg.NewDomainErrorSimple("LISTING_DRAFT_NOT_CANCELABLE", "Listing draft can no longer be cancelled", http.StatusConflict)
	case errors.Is(err, usecase.ErrGatewayUnavailable):
		return pkg.NewDomainError("PAYMENT_GATEWAY_ERROR", "Could not start the payment, please try again", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	if appErr.Err != nil {
		_ = c.Error(appErr)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
