package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	request "car_marketplace/internal/adapter/http/dto/request"
	response "car_marketplace/internal/adapter/http/dto/response"
	"car_marketplace/internal/adapter/http/middleware"
	"car_marketplace/internal/usecase"

	"github.com/gin-gonic/gin"
)

// PaymentHandler serves the authenticated payment routes.
type PaymentHandler struct {
	checkout usecase.IPaymentCheckoutUseCase
	pricing  usecase.IPricingUseCase
	query    usecase.IPaymentQueryUseCase
}

func NewPaymentHandler(checkout usecase.IPaymentCheckoutUseCase, pricing usecase.IPricingUseCase, query usecase.IPaymentQueryUseCase) *PaymentHandler {
	return &PaymentHandler{checkout: checkout, pricing: pricing, query: query}
}

// GetListingPrice godoc
// @Summary      Quote the price of a new listing
// @Tags         payments
// @Produce      json
// @Param        feature  query  bool  false  "Include the feature add-on"
// @Success      200  {object}  entities.PricingQuote
// @Failure      401  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /payments/listing-price [get]
func (h *PaymentHandler) GetListingPrice(c *gin.Context) {
	userID := middleware.UserID(c)
	feature, _ := strconv.ParseBool(c.DefaultQuery("feature", "false"))

	quote, err := h.pricing.Calculate(c.Request.Context(), userID, feature)
	if err != nil {
		log.Printf("[payment][handler] listing-price failed user_id=%s err=%v", userID, err)
		writeError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, quote)
}

// CreateListingPayment godoc
// @Summary      Price a listing and open a checkout, or publish it free
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body  request.ListingPaymentRequest  true  "Listing draft"
// @Success      200  {object}  response.ListingPaymentResponse
// @Success      201  {object}  response.ListingPaymentResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      401  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /payments/create-listing-payment [post]
func (h *PaymentHandler) CreateListingPayment(c *gin.Context) {
	userID := middleware.UserID(c)

	var payload request.ListingPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil || payload.ListingDraft == nil {
		log.Printf("[payment][handler] create-listing invalid payload user_id=%s err=%v", userID, err)
		writeError(c, errInvalidRequest)
		return
	}

	result, err := h.checkout.CreateListingPayment(c.Request.Context(), userID, *payload.ListingDraft, payload.ResolveFeature())
	if err != nil {
		log.Printf("[payment][handler] create-listing failed user_id=%s err=%v", userID, err)
		writeError(c, mapPaymentError(err))
		return
	}

	status := http.StatusCreated
	if result.Existing {
		status = http.StatusOK
	}
	log.Printf("[payment][handler] create-listing success user_id=%s free=%t payment_id=%s existing=%t", userID, result.FreeListing, result.PaymentID, result.Existing)
	c.JSON(status, response.FromListingPaymentResult(result))
}

// CreateMembershipPayment godoc
// @Summary      Open a checkout for a membership plan
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body  request.MembershipPaymentRequest  true  "Plan (basic or premium)"
// @Success      201  {object}  response.CheckoutResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      401  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /payments/create-membership-payment [post]
func (h *PaymentHandler) CreateMembershipPayment(c *gin.Context) {
	userID := middleware.UserID(c)

	var payload request.MembershipPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, mapPaymentError(usecase.ErrInvalidMembershipPlan))
		return
	}

	result, err := h.checkout.CreateMembershipPayment(c.Request.Context(), userID, payload.ResolvePlan())
	if err != nil {
		log.Printf("[payment][handler] create-membership failed user_id=%s plan=%s err=%v", userID, payload.Plan, err)
		writeError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromCheckoutResult(result))
}

// CreateAdPayment godoc
// @Summary      Open a checkout to feature an existing car
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body  request.AdPaymentRequest  true  "Car to feature"
// @Success      201  {object}  response.CheckoutResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      403  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /payments/create-ad-payment [post]
func (h *PaymentHandler) CreateAdPayment(c *gin.Context) {
	userID := middleware.UserID(c)

	var payload request.AdPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	result, err := h.checkout.CreateAdPayment(c.Request.Context(), userID, payload.ResolveCarID())
	if err != nil {
		log.Printf("[payment][handler] create-ad failed user_id=%s car_id=%s err=%v", userID, payload.CarID, err)
		writeError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromCheckoutResult(result))
}

// VerifyPayment godoc
// @Summary      Payment and listing status for the payment owner
// @Tags         payments
// @Produce      json
// @Param        paymentId  query  string  true  "Payment id or order id"
// @Success      200  {object}  response.PaymentStatusResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      403  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /payments/verify [get]
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	userID := middleware.UserID(c)
	paymentID := strings.TrimSpace(c.Query("paymentId"))

	snapshot, err := h.query.VerifyPayment(c.Request.Context(), userID, paymentID)
	if err != nil {
		log.Printf("[payment][handler] verify failed user_id=%s payment_id=%s err=%v", userID, paymentID, err)
		writeError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentStatus(snapshot))
}

// ListPendingListings godoc
// @Summary      The caller's drafts whose payment is unresolved
// @Tags         payments
// @Produce      json
// @Success      200  {array}  response.ListingDraftResponse
// @Failure      401  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /payments/pending-listings [get]
func (h *PaymentHandler) ListPendingListings(c *gin.Context) {
	userID := middleware.UserID(c)

	drafts, err := h.query.ListPendingListings(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[payment][handler] pending-listings failed user_id=%s err=%v", userID, err)
		writeError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromListingDrafts(drafts))
}

// CancelPendingListing godoc
// @Summary      Cancel a draft that is awaiting or failed payment
// @Tags         payments
// @Produce      json
// @Param        id  path  string  true  "Listing draft id"
// @Success      200  {object}  response.ListingDraftResponse
// @Failure      403  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /payments/pending-listings/{id}/cancel [post]
func (h *PaymentHandler) CancelPendingListing(c *gin.Context) {
	userID := middleware.UserID(c)
	draftID := c.Param("id")

	draft, err := h.query.CancelPendingListing(c.Request.Context(), userID, draftID)
	if err != nil {
		log.Printf("[payment][handler] cancel-draft failed user_id=%s draft_id=%s err=%v", userID, draftID, err)
		writeError(c, mapPaymentError(err))
		return
	}
	log.Printf("[payment][handler] cancel-draft success user_id=%s draft_id=%s", userID, draftID)
	c.JSON(http.StatusOK, response.FromListingDraft(draft))
}
