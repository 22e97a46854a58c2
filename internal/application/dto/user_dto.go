package dto

import "time"

// InviteUserRequest alta de un usuario dentro del supermercado del token.
type InviteUserRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Role  string `json:"role" validate:"required,oneof=Administrator Manager Cashier Financial"`
}

// UpdateRoleRequest cambio de rol.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=Administrator Manager Cashier Financial"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id,omitempty"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	GlobalAdmin bool      `json:"global_admin"`
	Confirmed   bool      `json:"confirmed"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
