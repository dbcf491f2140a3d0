package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"car_marketplace/internal/adapter/http/handlers/mocks"
	"car_marketplace/internal/adapter/http/middleware"
	"car_marketplace/internal/domain/entities"
	"car_marketplace/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

const listingBody = `{"listingDraft":{"brand":"Toyota","model":"Corolla","year":2021,"category":"sedan","pricePerDayInPaise":500000,"location":"DHA","city":"Lahore"},"feature":true}`

func withUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.ContextUserID, userID)
		}
		c.Next()
	}
}

type paymentMocks struct {
	checkout *mocks.MockIPaymentCheckoutUseCase
	pricing  *mocks.MockIPricingUseCase
	query    *mocks.MockIPaymentQueryUseCase
}

func newPaymentRouter(t *testing.T, userID string) (*gin.Engine, paymentMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := paymentMocks{
		checkout: mocks.NewMockIPaymentCheckoutUseCase(ctrl),
		pricing:  mocks.NewMockIPricingUseCase(ctrl),
		query:    mocks.NewMockIPaymentQueryUseCase(ctrl),
	}
	h := NewPaymentHandler(m.checkout, m.pricing, m.query)

	r := gin.New()
	g := r.Group("/api/payments", withUser(userID))
	g.GET("/listing-price", h.GetListingPrice)
	g.POST("/create-listing-payment", h.CreateListingPayment)
	g.POST("/create-membership-payment", h.CreateMembershipPayment)
	g.POST("/create-ad-payment", h.CreateAdPayment)
	g.GET("/verify", h.VerifyPayment)
	g.GET("/pending-listings", h.ListPendingListings)
	g.POST("/pending-listings/:id/cancel", h.CancelPendingListing)
	return r, m
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPaymentHandler_GetListingPrice(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r, m := newPaymentRouter(t, "user-1")

	m.pricing.EXPECT().Calculate(gomock.Any(), "user-1", true).
		Return(entities.PricingQuote{BaseCost: 100, FeatureCost: 200, TotalCost: 300, TotalInPaise: 30000}, nil)

	w := doJSON(r, http.MethodGet, "/api/payments/listing-price?feature=true", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["totalCost"] != float64(300) || body["amountInPaise"] != float64(30000) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestPaymentHandler_CreateListingPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid payload", func(t *testing.T) {
		r, _ := newPaymentRouter(t, "user-1")
		w := doJSON(r, http.MethodPost, "/api/payments/create-listing-payment", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing listing draft", func(t *testing.T) {
		r, _ := newPaymentRouter(t, "user-1")
		w := doJSON(r, http.MethodPost, "/api/payments/create-listing-payment", `{"feature":true}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("creates checkout", func(t *testing.T) {
		r, m := newPaymentRouter(t, "user-1")
		m.checkout.EXPECT().CreateListingPayment(gomock.Any(), "user-1", gomock.Any(), true).
			DoAndReturn(func(_ any, _ string, listing entities.ListingDetails, _ bool) (usecase.ListingPaymentResult, error) {
				if listing.Brand != "Toyota" || listing.PricePerDayInPaise != 500000 {
					t.Errorf("listing not bound: %+v", listing)
				}
				return usecase.ListingPaymentResult{
					CheckoutResult: usecase.CheckoutResult{PaymentID: "pay-1", OrderID: "LST-1", CheckoutURL: "https://pay/1", AmountInPaise: 30000},
					ListingDraftID: "draft-1",
					Pricing:        entities.PricingQuote{BaseCost: 100, FeatureCost: 200, TotalCost: 300, TotalInPaise: 30000},
				}, nil
			})

		w := doJSON(r, http.MethodPost, "/api/payments/create-listing-payment", listingBody)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["paymentId"] != "pay-1" || body["checkout_url"] != "https://pay/1" || body["amount_in_paise"] != float64(30000) {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("existing payment answers 200", func(t *testing.T) {
		r, m := newPaymentRouter(t, "user-1")
		m.checkout.EXPECT().CreateListingPayment(gomock.Any(), "user-1", gomock.Any(), true).
			Return(usecase.ListingPaymentResult{CheckoutResult: usecase.CheckoutResult{PaymentID: "pay-1"}, Existing: true}, nil)

		w := doJSON(r, http.MethodPost, "/api/payments/create-listing-payment", listingBody)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("free listing", func(t *testing.T) {
		r, m := newPaymentRouter(t, "user-1")
		m.checkout.EXPECT().CreateListingPayment(gomock.Any(), "user-1", gomock.Any(), true).
			Return(usecase.ListingPaymentResult{FreeListing: true, CarID: "car-1"}, nil)

		w := doJSON(r, http.MethodPost, "/api/payments/create-listing-payment", listingBody)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		if strings.TrimSpace(w.Body.String()) != `{"freeListing":true,"carId":"car-1"}` {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	errorCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "unauthenticated", err: usecase.ErrUnauthenticated, want: http.StatusUnauthorized},
		{name: "invalid listing", err: usecase.ErrInvalidListingDraft, want: http.StatusBadRequest},
		{name: "in progress", err: usecase.ErrSubmissionInProgress, want: http.StatusConflict},
		{name: "gateway down", err: usecase.ErrGatewayUnavailable, want: http.StatusInternalServerError},
		{name: "unexpected", err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			r, m := newPaymentRouter(t, "user-1")
			m.checkout.EXPECT().CreateListingPayment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(usecase.ListingPaymentResult{}, tt.err)

			w := doJSON(r, http.MethodPost, "/api/payments/create-listing-payment", listingBody)
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, w.Code)
			}
			if strings.Contains(w.Body.String(), "boom") {
				t.Fatalf("internal cause leaked: %s", w.Body.String())
			}
		})
	}
}

func TestPaymentHandler_CreateMembershipPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("normalizes plan", func(t *testing.T) {
		r, m := newPaymentRouter(t, "user-1")
		m.checkout.EXPECT().CreateMembershipPayment(gomock.Any(), "user-1", entities.MembershipPlanPremium).
			Return(usecase.CheckoutResult{PaymentID: "pay-9", OrderID: "MEM-9", AmountInPaise: 1000000, Status: entities.PaymentStatusPending}, nil)

		w := doJSON(r, http.MethodPost, "/api/payments/create-membership-payment", `{"plan":"Premium"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})

	t.Run("missing plan", func(t *testing.T) {
		r, _ := newPaymentRouter(t, "user-1")
		w := doJSON(r, http.MethodPost, "/api/payments/create-membership-payment", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_CreateAdPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "created", want: http.StatusCreated},
		{name: "not owner", err: usecase.ErrCarForbidden, want: http.StatusForbidden},
		{name: "no car", err: usecase.ErrCarNotFound, want: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, m := newPaymentRouter(t, "user-1")
			m.checkout.EXPECT().CreateAdPayment(gomock.Any(), "user-1", "car-1").Return(usecase.CheckoutResult{PaymentID: "pay-2"}, tt.err)

			w := doJSON(r, http.MethodPost, "/api/payments/create-ad-payment", `{"carId":" car-1 "}`)
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

// P6: another user's payment yields 403 and no payment fields.
func TestPaymentHandler_VerifyPaymentOwnership(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r, m := newPaymentRouter(t, "user-b")

	m.query.EXPECT().VerifyPayment(gomock.Any(), "user-b", "pay-1").
		Return(usecase.PaymentStatusSnapshot{}, usecase.ErrPaymentForbidden)

	w := doJSON(r, http.MethodGet, "/api/payments/verify?paymentId=pay-1", "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	body := w.Body.String()
	for _, leak := range []string{"pay-1", "amount", "orderId", "status\":\"PENDING"} {
		if strings.Contains(body, leak) {
			t.Fatalf("response leaked %q: %s", leak, body)
		}
	}
}

func TestPaymentHandler_VerifyPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r, m := newPaymentRouter(t, "user-1")

	draft := entities.ListingDraft{ID: "draft-1", Status: entities.ListingDraftStatusPublished, PublishedListingID: "car-1"}
	m.query.EXPECT().VerifyPayment(gomock.Any(), "user-1", "pay-1").Return(usecase.PaymentStatusSnapshot{
		Payment: entities.Payment{ID: "pay-1", OrderID: "LST-1", Status: entities.PaymentStatusSucceeded},
		Draft:   &draft,
		CarID:   "car-1",
	}, nil)

	w := doJSON(r, http.MethodGet, "/api/payments/verify?paymentId=pay-1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["status"] != "SUCCEEDED" || body["carId"] != "car-1" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestPaymentHandler_PendingListings(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("list", func(t *testing.T) {
		r, m := newPaymentRouter(t, "user-1")
		m.query.EXPECT().ListPendingListings(gomock.Any(), "user-1").Return([]entities.ListingDraft{
			{ID: "draft-1", OwnerID: "user-1", Status: entities.ListingDraftStatusPaymentPending},
		}, nil)

		w := doJSON(r, http.MethodGet, "/api/payments/pending-listings", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body) != 1 || body[0]["status"] != "payment_pending" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("empty list is an array", func(t *testing.T) {
		r, m := newPaymentRouter(t, "user-1")
		m.query.EXPECT().ListPendingListings(gomock.Any(), "user-1").Return(nil, nil)

		w := doJSON(r, http.MethodGet, "/api/payments/pending-listings", "")
		if strings.TrimSpace(w.Body.String()) != "[]" {
			t.Fatalf("expected [], got %s", w.Body.String())
		}
	})

	t.Run("cancel not cancelable", func(t *testing.T) {
		r, m := newPaymentRouter(t, "user-1")
		m.query.EXPECT().CancelPendingListing(gomock.Any(), "user-1", "draft-1").Return(entities.ListingDraft{}, usecase.ErrDraftNotCancelable)

		w := doJSON(r, http.MethodPost, "/api/payments/pending-listings/draft-1/cancel", "")
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("cancel", func(t *testing.T) {
		r, m := newPaymentRouter(t, "user-1")
		m.query.EXPECT().CancelPendingListing(gomock.Any(), "user-1", "draft-1").
			Return(entities.ListingDraft{ID: "draft-1", Status: entities.ListingDraftStatusCancelled}, nil)

		w := doJSON(r, http.MethodPost, "/api/payments/pending-listings/draft-1/cancel", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
