// Package normalize centraliza la canonicalización de identificadores antes de persistir:
// emails en minúsculas y documentos fiscales (CNPJ/NIT) sin puntuación.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Email recorta espacios y pasa a minúsculas. La unicidad de usuarios se compara sobre este valor.
func Email(email string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(email))
}

// TaxID elimina todo lo que no sea letra o dígito ("12.345.678/0001-90" -> "12345678000190").
// Las letras se pasan a mayúsculas para aceptar documentos alfanuméricos.
func TaxID(taxID string) string {
	var b strings.Builder
	for _, r := range norm.NFKC.String(taxID) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return cases.Upper(language.Und).String(b.String())
}

// Digits devuelve solo los dígitos ASCII del texto.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
