package entity

import "time"

// Estados de un supermercado.
const (
	SupermarketActive    = "active"
	SupermarketSuspended = "suspended"
)

// Supermarket representa un tenant del sistema. TaxID se guarda normalizado (solo letras y dígitos).
type Supermarket struct {
	ID        string
	Name      string // nombre comercial
	LegalName string // razón social
	TaxID     string
	Email     string
	Phone     string
	Address   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
