package dto

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Document string `json:"document" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"omitempty,email,max=254"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Document  string `json:"document"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	TaxID string `json:"tax_id" validate:"required,min=3,max=32"`
	Email string `json:"email" validate:"omitempty,email,max=254"`
	Phone string `json:"phone" validate:"omitempty,max=32"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	TaxID     string `json:"tax_id"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}
