package entities

import "time"

type MembershipPlan string

const (
	MembershipPlanBasic   MembershipPlan = "basic"
	MembershipPlanPremium MembershipPlan = "premium"
)

var membershipDurations = map[MembershipPlan]time.Duration{
	MembershipPlanBasic:   30 * 24 * time.Hour,
	MembershipPlanPremium: 365 * 24 * time.Hour,
}

// Duration returns how long the plan stays active and whether the plan is known.
func (p MembershipPlan) Duration() (time.Duration, bool) {
	d, ok := membershipDurations[p]
	return d, ok
}

func (p MembershipPlan) Valid() bool {
	_, ok := membershipDurations[p]
	return ok
}

// Membership is the owner subscription activated by a membership payment.
// PaymentID records which payment activated it, so a redelivered webhook
// cannot extend the same membership twice.
type Membership struct {
	Plan      MembershipPlan `json:"plan"`
	Active    bool           `json:"active"`
	ExpiresAt *time.Time     `json:"expiresAt,omitempty"`
	PaymentID string         `json:"paymentId,omitempty"`
}

type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Membership Membership `json:"membership"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
