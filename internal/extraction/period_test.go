package extraction_test

import (
	"testing"
	"time"

	"github.com/davidvasconcellos/PayrollDataExtractor/internal/extraction"

	"github.com/stretchr/testify/assert"
)

func TestResolvePeriodERP(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "data de referencia label",
			text: "CONTRACHEQUE Data de Referência: 05/2023 Banco 0001",
			want: "05/2023",
		},
		{
			name: "accentless label",
			text: "contracheque data de referencia 11/2022",
			want: "11/2022",
		},
		{
			name: "competencia label",
			text: "Competência: 03/2021 Matrícula 12345",
			want: "03/2021",
		},
		{
			name: "periodo label",
			text: "Período 12/2020",
			want: "12/2020",
		},
		{
			name: "bare date fallback",
			text: "Folha de pagamento 07/2023",
			want: "07/2023",
		},
		{
			name: "label beats earlier unrelated date",
			// Admission date appears first; the label-anchored rule
			// still wins because rule priority is strict.
			text: "Admissão: 01/2010 Competência: 09/2023",
			want: "09/2023",
		},
		{
			name: "invalid month skipped within rule",
			text: "valores 13/2023 e 02/2023",
			want: "02/2023",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := extraction.ResolvePeriod(tt.text, extraction.SourceERP)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestResolvePeriodRH(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "month name with accent",
			text: "Demonstrativo de Pagamento Março de 2023",
			want: "03/2023",
		},
		{
			name: "month name without accent",
			text: "demonstrativo marco 2023",
			want: "03/2023",
		},
		{
			name: "uppercase month name",
			text: "FOLHA MENSAL DEZEMBRO/2022",
			want: "12/2022",
		},
		{
			name: "numeric fallback",
			text: "Demonstrativo 08/2021 sem nome de mês",
			want: "08/2021",
		},
		{
			name: "mes ano label",
			text: "Mês/Ano: 04/2020",
			want: "04/2020",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := extraction.ResolvePeriod(tt.text, extraction.SourceRH)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestResolvePeriodNotFound(t *testing.T) {
	_, err := extraction.ResolvePeriod("página sem qualquer data útil", extraction.SourceERP)
	assert.ErrorIs(t, err, extraction.ErrPeriodNotFound)

	_, err = extraction.ResolvePeriod("", extraction.SourceRH)
	assert.ErrorIs(t, err, extraction.ErrPeriodNotFound)
}

func TestPeriodSortability(t *testing.T) {
	older := extraction.Period{Month: 12, Year: 2022}
	newer := extraction.Period{Month: 1, Year: 2023}

	// MM/YYYY strings sort the wrong way across year boundaries; the
	// typed value must not.
	assert.True(t, older.String() > newer.String())
	assert.True(t, older.Before(newer))
}

func TestParsePeriodRoundTrip(t *testing.T) {
	p, err := extraction.ParsePeriod("02/2024")
	assert.NoError(t, err)
	assert.Equal(t, extraction.Period{Month: 2, Year: 2024}, p)
	assert.Equal(t, "02/2024", p.String())

	for _, invalid := range []string{"", "2024", "13/2024", "0a/2024", "02-2024"} {
		_, err := extraction.ParsePeriod(invalid)
		assert.Error(t, err, invalid)
	}
}

func TestCurrentPeriod(t *testing.T) {
	now := time.Date(2023, time.July, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "07/2023", extraction.CurrentPeriod(now).String())
}
