package entity

import "time"

// Supplier proveedor del supermercado.
type Supplier struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
