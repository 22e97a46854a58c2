package entity

import "time"

// Client cliente del supermercado (CPF/CNPJ en Document, normalizado).
type Client struct {
	ID        string
	CompanyID string
	Name      string
	Document  string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
