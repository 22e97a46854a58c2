package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Supermercado-api/pkg/normalize"
)

func TestEmail(t *testing.T) {
	cases := map[string]string{
		"User@Example.com":       "user@example.com",
		"  GERENTE@Mercado.COM ": "gerente@mercado.com",
		"caja@mercado.com":       "caja@mercado.com",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalize.Email(in), in)
	}
}

func TestEmail_MismoUsuario(t *testing.T) {
	assert.Equal(t, normalize.Email("User@Example.com"), normalize.Email("user@example.com"))
}

func TestTaxID(t *testing.T) {
	cases := map[string]string{
		"12.345.678/0001-90": "12345678000190",
		"900.123.456-7":      "9001234567",
		" 12 345 678 ":       "12345678",
		"12.abc.345/0001-90": "12ABC345000190",
		"１２３":                "123", // dígitos de ancho completo
	}
	for in, want := range cases {
		assert.Equal(t, want, normalize.TaxID(in), in)
	}
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "5511987654321", normalize.Digits("+55 (11) 98765-4321"))
}
