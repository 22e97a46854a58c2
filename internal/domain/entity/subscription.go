package entity

import "time"

// Estados y planes de suscripción.
const (
	SubscriptionTrial     = "trial"
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"

	PlanTrial = "trial"
)

// Subscription plan contratado por un supermercado (cero o una por tenant).
type Subscription struct {
	ID        string
	CompanyID string
	Plan      string
	Status    string
	StartsAt  time.Time
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveAt informa si la suscripción permite operar en el instante dado.
func (s *Subscription) ActiveAt(t time.Time) bool {
	if s == nil || s.Status == SubscriptionCancelled {
		return false
	}
	return t.Before(s.ExpiresAt)
}
