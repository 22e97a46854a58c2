package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrValidation            = errors.New("entrada inválida")
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = fmt.Errorf("usuario no encontrado: %w", ErrNotFound)
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrDuplicateTaxID        = fmt.Errorf("el documento fiscal ya está registrado: %w", ErrDuplicate)
	ErrDuplicateEmail        = fmt.Errorf("el email ya está registrado: %w", ErrDuplicate)
	ErrRegistrationFailed    = errors.New("no fue posible completar el registro")
	ErrInvalidOrExpiredToken = errors.New("enlace inválido o expirado")
	ErrUnauthorized          = errors.New("no autenticado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrInsufficientStock     = errors.New("stock insuficiente")
)

// RegistrationError colapsa los fallos de registro en ErrRegistrationFailed conservando
// un motivo legible para el usuario y la causa interna para el log.
type RegistrationError struct {
	Reason string
	Cause  error
}

func (e *RegistrationError) Error() string { return e.Reason }

// Is permite errors.Is(err, ErrRegistrationFailed).
func (e *RegistrationError) Is(target error) bool { return target == ErrRegistrationFailed }

// Unwrap expone la causa (ErrDuplicateTaxID, ErrDuplicateEmail, ...).
func (e *RegistrationError) Unwrap() error { return e.Cause }
