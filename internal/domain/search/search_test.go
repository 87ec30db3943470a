package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/gestion-clients/internal/domain/search"
)

func TestParse_NormalizaTerminos(t *testing.T) {
	q := search.Parse("  Dupont,   JEAN-Marc ")
	assert.Equal(t, []string{"dupont", "jean", "marc"}, q.Terms)
	assert.Equal(t, "dupont jean marc", q.String())
}

func TestParse_VacioNoFiltra(t *testing.T) {
	for _, raw := range []string{"", "   ", "--- ..."} {
		q := search.Parse(raw)
		assert.True(t, q.IsEmpty(), "la búsqueda %q no debe filtrar", raw)
		assert.True(t, q.Matches("cualquier", "cosa"))
	}
}

func TestMatches_PrefijoDePalabra(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  bool
	}{
		{"prefijo del nom", "dup", true},
		{"nom completo sin distinguir mayúsculas", "DUPONT", true},
		{"prefijo del prenom", "je", true},
		{"parte local del email", "martin", true},
		{"dominio del email", "exam", true},
		{"subcadena interna no coincide", "pont", false},
		{"dos términos en campos distintos", "dup jea", true},
		{"un término sin coincidencia anula", "dup zzz", false},
		{"acentos", "élo", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := search.Parse(tc.query)
			got := q.Matches("DUPONT", "Jean Éloïse", "martin.luc@example.com")
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTSQuery_FormatoPrefijo(t *testing.T) {
	assert.Equal(t, "dup:* & jea:*", search.Parse("Dup jea").TSQuery())
	assert.Equal(t, "", search.Parse("").TSQuery())
}
