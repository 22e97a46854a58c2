package dto

import "time"

// SupermarketResponse salida de un supermercado.
type SupermarketResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LegalName string    `json:"legal_name"`
	TaxID     string    `json:"tax_id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupermarketListResponse lista paginada de supermercados.
type SupermarketListResponse struct {
	Items []SupermarketResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// SubscriptionResponse salida de la suscripción.
type SubscriptionResponse struct {
	Plan      string    `json:"plan"`
	Status    string    `json:"status"`
	StartsAt  time.Time `json:"starts_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Active    bool      `json:"active"`
}
