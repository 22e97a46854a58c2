package dto

// RegisterRequest alta de supermercado + primer administrador.
type RegisterRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`        // nombre comercial
	LegalName  string `json:"legal_name" validate:"required,min=1,max=200"`  // razón social
	TaxID      string `json:"tax_id" validate:"required,min=3,max=32"`       // CNPJ con o sin puntuación
	AdminName  string `json:"admin_name" validate:"required,min=1,max=200"`
	AdminEmail string `json:"admin_email" validate:"required,email,max=254"`
	Phone      string `json:"phone" validate:"omitempty,max=32"`
	Address    string `json:"address" validate:"omitempty,max=300"`
}

// MagicLinkRequest solicitud de enlace de acceso.
type MagicLinkRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

// MeResponse claims del token actual.
type MeResponse struct {
	UserID      string   `json:"user_id"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	GlobalAdmin bool     `json:"global_admin"`
	CompanyID   string   `json:"company_id,omitempty"`
	Areas       []string `json:"areas"`
}
