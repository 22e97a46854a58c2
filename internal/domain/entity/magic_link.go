package entity

import "time"

// MagicLinkToken token de login de un solo uso. Solo se persiste el hash SHA-256 del valor
// enviado por correo; la fila se elimina al expirar o tras usarse.
type MagicLinkToken struct {
	ID        string
	Email     string
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}
