package extraction_test

import (
	"testing"

	"github.com/davidvasconcellos/PayrollDataExtractor/internal/extraction"

	"github.com/stretchr/testify/assert"
)

func TestParseSource(t *testing.T) {
	s, ok := extraction.ParseSource("erp")
	assert.True(t, ok)
	assert.Equal(t, extraction.SourceERP, s)

	s, ok = extraction.ParseSource(" RH ")
	assert.True(t, ok)
	assert.Equal(t, extraction.SourceRH, s)

	_, ok = extraction.ParseSource("sap")
	assert.False(t, ok)

	_, ok = extraction.ParseSource("")
	assert.False(t, ok)
}

func TestParseCodeList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"0002 0010", []string{"0002", "0010"}},
		{"0002,0010", []string{"0002", "0010"}},
		{"0002, 0010 ,0048", []string{"0002", "0010", "0048"}},
		{"  0002\n0010\t0048  ", []string{"0002", "0010", "0048"}},
		{",, ,", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := extraction.ParseCodeList(tt.in)
		if tt.want == nil {
			assert.Empty(t, got, tt.in)
			continue
		}
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "0002", extraction.NormalizeCode("2", extraction.SourceRH))
	assert.Equal(t, "0002", extraction.NormalizeCode("02", extraction.SourceRH))
	assert.Equal(t, "0002", extraction.NormalizeCode("0002", extraction.SourceRH))
	assert.Equal(t, "1234", extraction.NormalizeCode("1234", extraction.SourceRH))

	// ERP codes are used verbatim.
	assert.Equal(t, "2", extraction.NormalizeCode("2", extraction.SourceERP))

	// Non-numeric codes pass through untouched.
	assert.Equal(t, "AB1", extraction.NormalizeCode("AB1", extraction.SourceRH))
}
