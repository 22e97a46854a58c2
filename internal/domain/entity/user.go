package entity

import "time"

// Estados de usuario.
const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// User representa un usuario. CompanyID vacío solo para administradores globales.
// Email siempre en minúsculas; Confirmed pasa a true en el primer login por magic link.
type User struct {
	ID            string
	CompanyID     string
	Email         string
	Name          string
	Role          Role
	IsGlobalAdmin bool
	Confirmed     bool
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
