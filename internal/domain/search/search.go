// Package search implementa la búsqueda de texto libre sobre clientes:
// coincidencia por prefijo de palabra, sin distinguir mayúsculas.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Query es una búsqueda ya normalizada: términos en minúsculas, solo letras y dígitos.
// El valor cero no filtra nada.
type Query struct {
	Terms []string
}

// Parse normaliza el texto recibido del usuario. Blancos y signos de puntuación separan términos.
func Parse(raw string) Query {
	return Query{Terms: Tokenize(raw)}
}

// IsEmpty indica que la búsqueda no filtra.
func (q Query) IsEmpty() bool {
	return len(q.Terms) == 0
}

// String reconstruye la búsqueda normalizada (útil para logs).
func (q Query) String() string {
	return strings.Join(q.Terms, " ")
}

// Tokenize parte s en secuencias máximas de letras/dígitos, en minúsculas.
func Tokenize(s string) []string {
	lower := cases.Lower(language.Und).String(s)
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Matches devuelve true si cada término es prefijo de al menos una palabra de alguno de los campos.
func (q Query) Matches(fields ...string) bool {
	if q.IsEmpty() {
		return true
	}
	var tokens []string
	for _, f := range fields {
		tokens = append(tokens, Tokenize(f)...)
	}
	for _, term := range q.Terms {
		if !anyHasPrefix(tokens, term) {
			return false
		}
	}
	return true
}

func anyHasPrefix(tokens []string, prefix string) bool {
	for _, t := range tokens {
		if strings.HasPrefix(t, prefix) {
			return true
		}
	}
	return false
}

// TSQuery arma la expresión para to_tsquery('simple', ...) de PostgreSQL: "t1:* & t2:*".
// Los términos ya son alfanuméricos, no necesitan escape.
func (q Query) TSQuery() string {
	parts := make([]string, 0, len(q.Terms))
	for _, t := range q.Terms {
		parts = append(parts, t+":*")
	}
	return strings.Join(parts, " & ")
}
