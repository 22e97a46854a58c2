package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator envuelve go-playground/validator usando los nombres JSON en los mensajes.
type Validator struct {
	validate *validator.Validate
}

// New crea el validador. Es seguro para uso concurrente.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct valida la estructura y devuelve *ValidationError con un mensaje por campo.
func (v *Validator) Struct(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return newValidationError(verrs)
	}
	return err
}

// Var valida un valor suelto con un tag (ej. "required,email").
func (v *Validator) Var(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

// ValidationError errores por campo (field -> mensaje).
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

// Error implementa error con los campos ordenados para que el mensaje sea estable.
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return "validación: " + strings.Join(parts, "; ")
}

func newValidationError(errs validator.ValidationErrors) *ValidationError {
	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			fields[field] = fmt.Sprintf("%s es requerido", field)
		case "email":
			fields[field] = fmt.Sprintf("%s debe ser un email válido", field)
		case "min":
			fields[field] = fmt.Sprintf("%s debe tener al menos %s", field, fe.Param())
		case "max":
			fields[field] = fmt.Sprintf("%s debe tener como máximo %s", field, fe.Param())
		case "oneof":
			fields[field] = fmt.Sprintf("%s debe ser uno de: %s", field, fe.Param())
		case "uuid":
			fields[field] = fmt.Sprintf("%s debe ser un UUID", field)
		default:
			fields[field] = fmt.Sprintf("%s es inválido (%s)", field, fe.Tag())
		}
	}
	return &ValidationError{Fields: fields}
}
