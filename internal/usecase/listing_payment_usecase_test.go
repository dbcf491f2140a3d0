package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"car_marketplace/internal/domain/entities"
	"car_marketplace/internal/usecase/interfaces"
	mock_interfaces "car_marketplace/internal/usecase/interfaces/mocks"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type checkoutMocks struct {
	payments *mock_interfaces.MockIPaymentRepository
	drafts   *mock_interfaces.MockIListingDraftRepository
	cars     *mock_interfaces.MockICarRepository
	users    *mock_interfaces.MockIUserRepository
	gateway  *mock_interfaces.MockIPaymentGateway
	lock     *mock_interfaces.MockISubmissionLock
}

func newCheckoutUseCase(t *testing.T, withLock bool) (*PaymentCheckoutUseCase, checkoutMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := checkoutMocks{
		payments: mock_interfaces.NewMockIPaymentRepository(ctrl),
		drafts:   mock_interfaces.NewMockIListingDraftRepository(ctrl),
		cars:     mock_interfaces.NewMockICarRepository(ctrl),
		users:    mock_interfaces.NewMockIUserRepository(ctrl),
		gateway:  mock_interfaces.NewMockIPaymentGateway(ctrl),
		lock:     mock_interfaces.NewMockISubmissionLock(ctrl),
	}
	m.gateway.EXPECT().Name().Return("safepay").AnyTimes()

	deps := PaymentCheckoutDeps{
		Payments: m.payments,
		Drafts:   m.drafts,
		Cars:     m.cars,
		Users:    m.users,
		Gateway:  m.gateway,
		Pricing:  NewPricingUseCase(m.cars, DefaultPricingPolicy()),
		Policy:   DefaultPricingPolicy(),
		Currency: "PKR",
	}
	if withLock {
		deps.Lock = m.lock
	}
	uc := NewPaymentCheckoutUseCase(deps)
	uc.submissionWait = func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 2)
	}
	n := 0
	uc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	uc.now = func() time.Time { return fixedNow }
	return uc, m
}

func TestPaymentCheckoutUseCase_CreateListingPayment_Validations(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		uc, _ := newCheckoutUseCase(t, false)
		if _, err := uc.CreateListingPayment(context.Background(), " ", sampleListing(), false); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		uc, _ := newCheckoutUseCase(t, false)
		l := sampleListing()
		l.Brand = ""
		l.PricePerDayInPaise = 0
		if _, err := uc.CreateListingPayment(context.Background(), "user-1", l, false); !errors.Is(err, ErrInvalidListingDraft) {
			t.Fatalf("expected ErrInvalidListingDraft, got %v", err)
		}
	})

	t.Run("bad image url", func(t *testing.T) {
		uc, _ := newCheckoutUseCase(t, false)
		l := sampleListing()
		l.Images = []string{"not a url"}
		if _, err := uc.CreateListingPayment(context.Background(), "user-1", l, false); !errors.Is(err, ErrInvalidListingDraft) {
			t.Fatalf("expected ErrInvalidListingDraft, got %v", err)
		}
	})
}

func TestPaymentCheckoutUseCase_CreateListingPayment_FreeFirstListing(t *testing.T) {
	uc, m := newCheckoutUseCase(t, true)
	m.cars.EXPECT().CountActiveApprovedByOwner(gomock.Any(), "user-1").Return(0, nil)
	m.cars.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c entities.Car) (entities.Car, error) {
		if c.OwnerID != "user-1" || c.PaymentStatus != entities.CarPaymentStatusFree || !c.IsActive || !c.IsApproved {
			t.Fatalf("unexpected free car: %+v", c)
		}
		return c, nil
	})

	res, err := uc.CreateListingPayment(context.Background(), "user-1", sampleListing(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.FreeListing || res.CarID == "" || res.PaymentID != "" || res.ListingDraftID != "" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Pricing.TotalCost != 0 || !res.Pricing.IsFirstListing {
		t.Fatalf("unexpected pricing: %+v", res.Pricing)
	}
}

func TestPaymentCheckoutUseCase_CreateListingPayment_CreatesCheckout(t *testing.T) {
	uc, m := newCheckoutUseCase(t, true)
	listing := sampleListing()
	key := DeriveIdempotencyKey("user-1", listing, true)

	m.cars.EXPECT().CountActiveApprovedByOwner(gomock.Any(), "user-1").Return(3, nil)
	m.lock.EXPECT().Acquire(gomock.Any(), "listing-payment:"+key, submissionLockTTL).Return(true, nil)
	m.lock.EXPECT().Release(gomock.Any(), "listing-payment:"+key).Return(nil)
	m.payments.EXPECT().GetByIdempotencyKey(gomock.Any(), key).Return(entities.Payment{}, nil)

	var draft entities.ListingDraft
	m.drafts.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, d entities.ListingDraft) (entities.ListingDraft, error) {
		if d.Status != entities.ListingDraftStatusPaymentPending || d.RequestedAmountInPaise != 30000 || !d.FeatureAddon {
			t.Fatalf("unexpected draft: %+v", d)
		}
		if !strings.HasPrefix(d.PaymentRef, "LST-") {
			t.Fatalf("unexpected payment ref %q", d.PaymentRef)
		}
		draft = d
		return d, nil
	})
	m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Payment) (entities.Payment, error) {
		if p.OrderID != draft.PaymentRef || p.ListingDraftID != draft.ID || p.IdempotencyKey != key {
			t.Fatalf("payment not linked to draft: %+v", p)
		}
		if p.Type != entities.PaymentTypeListing || p.Status != entities.PaymentStatusPending || p.RequestedAmountInPaise != 30000 || p.Currency != "PKR" {
			t.Fatalf("unexpected payment: %+v", p)
		}
		return p, nil
	})
	m.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(entities.User{ID: "user-1", Name: "Ali", Email: "ali@example.com"}, nil)
	m.gateway.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, req entities.CheckoutRequest) (entities.CheckoutSession, error) {
		if _, ok := ctx.Deadline(); !ok {
			t.Fatalf("expected gateway call to carry a deadline")
		}
		if req.AmountInPaise != 30000 || req.OrderID != draft.PaymentRef || req.CustomerEmail != "ali@example.com" || !req.Feature {
			t.Fatalf("unexpected checkout request: %+v", req)
		}
		return entities.CheckoutSession{CheckoutURL: "https://pay.example.com/c/abc", ProviderRef: "trk_1"}, nil
	})
	m.payments.EXPECT().SetCheckoutURL(gomock.Any(), gomock.Any(), "https://pay.example.com/c/abc", "trk_1").Return(nil)

	res, err := uc.CreateListingPayment(context.Background(), "user-1", listing, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.FreeListing || res.Existing {
		t.Fatalf("unexpected flags: %+v", res)
	}
	if res.CheckoutURL != "https://pay.example.com/c/abc" || res.AmountInPaise != 30000 || res.ListingDraftID != draft.ID || res.OrderID != draft.PaymentRef {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Status != entities.PaymentStatusPending {
		t.Fatalf("expected PENDING, got %s", res.Status)
	}
}

// Two identical submissions must leave exactly one payment behind.
func TestPaymentCheckoutUseCase_CreateListingPayment_RepeatedSubmission(t *testing.T) {
	uc, m := newCheckoutUseCase(t, false)
	listing := sampleListing()
	byKey := map[string]entities.Payment{}
	created := 0

	m.cars.EXPECT().CountActiveApprovedByOwner(gomock.Any(), "user-1").Return(1, nil).Times(2)
	m.payments.EXPECT().GetByIdempotencyKey(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, key string) (entities.Payment, error) {
		return byKey[key], nil
	}).Times(2)
	m.drafts.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, d entities.ListingDraft) (entities.ListingDraft, error) {
		return d, nil
	}).Times(1)
	m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Payment) (entities.Payment, error) {
		created++
		byKey[p.IdempotencyKey] = p
		return p, nil
	}).Times(1)
	m.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(entities.User{}, nil)
	m.gateway.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).Return(entities.CheckoutSession{CheckoutURL: "https://pay.example.com/c/1"}, nil)
	m.payments.EXPECT().SetCheckoutURL(gomock.Any(), gomock.Any(), "https://pay.example.com/c/1", "").DoAndReturn(func(_ context.Context, id, url, _ string) error {
		for k, p := range byKey {
			if p.ID == id {
				p.CheckoutURL = url
				byKey[k] = p
			}
		}
		return nil
	})

	first, err := uc.CreateListingPayment(context.Background(), "user-1", listing, false)
	if err != nil {
		t.Fatalf("first submission: %v", err)
	}
	second, err := uc.CreateListingPayment(context.Background(), "user-1", sampleListing(), false)
	if err != nil {
		t.Fatalf("second submission: %v", err)
	}

	if created != 1 {
		t.Fatalf("expected exactly one payment, got %d", created)
	}
	if !second.Existing || second.PaymentID != first.PaymentID || second.OrderID != first.OrderID || second.ListingDraftID != first.ListingDraftID {
		t.Fatalf("second call must return the first's identifiers: first=%+v second=%+v", first, second)
	}
	if second.CheckoutURL != first.CheckoutURL {
		t.Fatalf("expected same checkout url, got %q and %q", first.CheckoutURL, second.CheckoutURL)
	}
}

func TestPaymentCheckoutUseCase_CreateListingPayment_LostRace(t *testing.T) {
	uc, m := newCheckoutUseCase(t, false)
	winner := entities.Payment{ID: "pay-w", OrderID: "LST-W", ListingDraftID: "draft-w", RequestedAmountInPaise: 10000, Status: entities.PaymentStatusPending, CheckoutURL: "https://pay.example.com/c/w"}

	m.cars.EXPECT().CountActiveApprovedByOwner(gomock.Any(), "user-1").Return(1, nil)
	gomock.InOrder(
		m.payments.EXPECT().GetByIdempotencyKey(gomock.Any(), gomock.Any()).Return(entities.Payment{}, nil),
		m.payments.EXPECT().GetByIdempotencyKey(gomock.Any(), gomock.Any()).Return(winner, nil),
	)
	m.drafts.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, d entities.ListingDraft) (entities.ListingDraft, error) {
		return d, nil
	})
	m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Payment{}, interfaces.ErrDuplicateIdempotencyKey)
	m.drafts.EXPECT().TransitionStatus(gomock.Any(), "id-1", []entities.ListingDraftStatus{entities.ListingDraftStatusPaymentPending}, entities.ListingDraftStatusCancelled).Return(true, nil)

	res, err := uc.CreateListingPayment(context.Background(), "user-1", sampleListing(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Existing || res.PaymentID != "pay-w" || res.ListingDraftID != "draft-w" || res.CheckoutURL != winner.CheckoutURL {
		t.Fatalf("expected winner identifiers, got %+v", res)
	}
}

func TestPaymentCheckoutUseCase_CreateListingPayment_Lock(t *testing.T) {
	t.Run("held by another request returns its payment", func(t *testing.T) {
		uc, m := newCheckoutUseCase(t, true)
		winner := entities.Payment{ID: "pay-1", OrderID: "LST-1", ListingDraftID: "draft-1", RequestedAmountInPaise: 10000, Status: entities.PaymentStatusPending}
		m.cars.EXPECT().CountActiveApprovedByOwner(gomock.Any(), "user-1").Return(1, nil)
		m.lock.EXPECT().Acquire(gomock.Any(), gomock.Any(), submissionLockTTL).Return(false, nil)
		gomock.InOrder(
			m.payments.EXPECT().GetByIdempotencyKey(gomock.Any(), gomock.Any()).Return(entities.Payment{}, nil),
			m.payments.EXPECT().GetByIdempotencyKey(gomock.Any(), gomock.Any()).Return(winner, nil),
		)

		res, err := uc.CreateListingPayment(context.Background(), "user-1", sampleListing(), false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.PaymentID != "pay-1" || res.OrderID != "LST-1" || !res.Existing {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("holder never writes", func(t *testing.T) {
		uc, m := newCheckoutUseCase(t, true)
		m.cars.EXPECT().CountActiveApprovedByOwner(gomock.Any(), "user-1").Return(1, nil)
		m.lock.EXPECT().Acquire(gomock.Any(), gomock.Any(), submissionLockTTL).Return(false, nil)
		m.payments.EXPECT().GetByIdempotencyKey(gomock.Any(), gomock.Any()).Return(entities.Payment{}, nil).Times(3)

		if _, err := uc.CreateListingPayment(context.Background(), "user-1", sampleListing(), false); !errors.Is(err, ErrSubmissionInProgress) {
			t.Fatalf("expected ErrSubmissionInProgress, got %v", err)
		}
	})

	t.Run("lock backend down falls through to the store", func(t *testing.T) {
		uc, m := newCheckoutUseCase(t, true)
		existing := entities.Payment{ID: "pay-1", OrderID: "LST-1", Status: entities.PaymentStatusPending}
		m.cars.EXPECT().CountActiveApprovedByOwner(gomock.Any(), "user-1").Return(1, nil)
		m.lock.EXPECT().Acquire(gomock.Any(), gomock.Any(), submissionLockTTL).Return(false, errors.New("redis down"))
		m.payments.EXPECT().GetByIdempotencyKey(gomock.Any(), gomock.Any()).Return(existing, nil)

		res, err := uc.CreateListingPayment(context.Background(), "user-1", sampleListing(), false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.PaymentID != "pay-1" || !res.Existing {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}

func TestPaymentCheckoutUseCase_CreateListingPayment_GatewayFailure(t *testing.T) {
	uc, m := newCheckoutUseCase(t, false)
	m.cars.EXPECT().CountActiveApprovedByOwner(gomock.Any(), "user-1").Return(1, nil)
	m.payments.EXPECT().GetByIdempotencyKey(gomock.Any(), gomock.Any()).Return(entities.Payment{}, nil)
	m.drafts.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, d entities.ListingDraft) (entities.ListingDraft, error) {
		return d, nil
	})
	m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Payment) (entities.Payment, error) {
		return p, nil
	})
	m.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(entities.User{}, errors.New("users down"))
	m.gateway.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).Return(entities.CheckoutSession{}, errors.New("503 from gateway"))
	m.payments.EXPECT().MarkFailed(gomock.Any(), "id-3", gomock.Any(), fixedNow).DoAndReturn(func(_ context.Context, _ string, reason string, _ time.Time) (bool, error) {
		if !strings.Contains(reason, "503 from gateway") {
			t.Fatalf("unexpected failure reason %q", reason)
		}
		return true, nil
	})
	m.drafts.EXPECT().TransitionStatus(gomock.Any(), "id-1", []entities.ListingDraftStatus{entities.ListingDraftStatusPaymentPending}, entities.ListingDraftStatusPaymentFailed).Return(true, nil)

	_, err := uc.CreateListingPayment(context.Background(), "user-1", sampleListing(), false)
	if !errors.Is(err, ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
}

func TestPaymentCheckoutUseCase_CreateMembershipPayment(t *testing.T) {
	t.Run("unknown plan", func(t *testing.T) {
		uc, _ := newCheckoutUseCase(t, false)
		if _, err := uc.CreateMembershipPayment(context.Background(), "user-1", "gold"); !errors.Is(err, ErrInvalidMembershipPlan) {
			t.Fatalf("expected ErrInvalidMembershipPlan, got %v", err)
		}
	})

	t.Run("opens checkout for the plan price", func(t *testing.T) {
		uc, m := newCheckoutUseCase(t, false)
		m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Payment) (entities.Payment, error) {
			if p.Type != entities.PaymentTypeMembership || p.Plan != entities.MembershipPlanBasic || p.RequestedAmountInPaise != 100000 {
				t.Fatalf("unexpected membership payment: %+v", p)
			}
			if !strings.HasPrefix(p.OrderID, "MEM-") || p.IdempotencyKey != "" {
				t.Fatalf("unexpected references: %+v", p)
			}
			return p, nil
		})
		m.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(entities.User{ID: "user-1"}, nil)
		m.gateway.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).Return(entities.CheckoutSession{CheckoutURL: "https://pay.example.com/m"}, nil)
		m.payments.EXPECT().SetCheckoutURL(gomock.Any(), gomock.Any(), "https://pay.example.com/m", "").Return(nil)

		res, err := uc.CreateMembershipPayment(context.Background(), "user-1", " Basic ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.CheckoutURL != "https://pay.example.com/m" || res.AmountInPaise != 100000 {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}

func TestPaymentCheckoutUseCase_CreateAdPayment(t *testing.T) {
	t.Run("car not found", func(t *testing.T) {
		uc, m := newCheckoutUseCase(t, false)
		m.cars.EXPECT().GetByID(gomock.Any(), "car-1").Return(entities.Car{}, nil)
		if _, err := uc.CreateAdPayment(context.Background(), "user-1", "car-1"); !errors.Is(err, ErrCarNotFound) {
			t.Fatalf("expected ErrCarNotFound, got %v", err)
		}
	})

	t.Run("foreign car", func(t *testing.T) {
		uc, m := newCheckoutUseCase(t, false)
		m.cars.EXPECT().GetByID(gomock.Any(), "car-1").Return(entities.Car{ID: "car-1", OwnerID: "user-2"}, nil)
		if _, err := uc.CreateAdPayment(context.Background(), "user-1", "car-1"); !errors.Is(err, ErrCarForbidden) {
			t.Fatalf("expected ErrCarForbidden, got %v", err)
		}
	})

	t.Run("empty car id", func(t *testing.T) {
		uc, _ := newCheckoutUseCase(t, false)
		if _, err := uc.CreateAdPayment(context.Background(), "user-1", ""); !errors.Is(err, ErrInvalidCarID) {
			t.Fatalf("expected ErrInvalidCarID, got %v", err)
		}
	})

	t.Run("opens checkout for the ad fee", func(t *testing.T) {
		uc, m := newCheckoutUseCase(t, false)
		m.cars.EXPECT().GetByID(gomock.Any(), "car-1").Return(entities.Car{ID: "car-1", OwnerID: "user-1"}, nil)
		m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Payment) (entities.Payment, error) {
			if p.Type != entities.PaymentTypeAd || p.CarID != "car-1" || p.RequestedAmountInPaise != 20000 || !strings.HasPrefix(p.OrderID, "ADV-") {
				t.Fatalf("unexpected ad payment: %+v", p)
			}
			return p, nil
		})
		m.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(entities.User{}, nil)
		m.gateway.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).Return(entities.CheckoutSession{CheckoutURL: "https://pay.example.com/a"}, nil)
		m.payments.EXPECT().SetCheckoutURL(gomock.Any(), gomock.Any(), "https://pay.example.com/a", "").Return(nil)

		res, err := uc.CreateAdPayment(context.Background(), "user-1", "car-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.AmountInPaise != 20000 {
			t.Fatalf("unexpected amount %d", res.AmountInPaise)
		}
	})
}
