package extraction_test

import (
	"testing"
	"time"

	"github.com/davidvasconcellos/PayrollDataExtractor/internal/extraction"

	"github.com/stretchr/testify/assert"
)

func fixedClock() time.Time {
	return time.Date(2023, time.September, 10, 12, 0, 0, 0, time.UTC)
}

func TestAssembleERPDocument(t *testing.T) {
	doc := buildTestPDF(
		[]string{"CONTRACHEQUE", "Data de Referencia: 05/2023", "0002 VENCIMENTO R$ 2.500,00"},
		[]string{"CONTRACHEQUE", "Data de Referencia: 06/2023", "0002 VENCIMENTO R$ 2.600,00", "0010 ADICIONAL 100,00"},
	)

	assembler := extraction.NewAssembler(extraction.NewExtractor())
	payslips, err := assembler.Assemble(doc, []string{"0002", "0010"}, extraction.SourceERP)
	assert.NoError(t, err)
	assert.Len(t, payslips, 2)

	assert.Equal(t, "05/2023", payslips[0].Date)
	assert.Equal(t, extraction.SourceERP, payslips[0].Source)
	assert.Len(t, payslips[0].Items, 1)
	assert.Equal(t, "0002", payslips[0].Items[0].Code)
	assert.Equal(t, "VENCIMENTO", payslips[0].Items[0].Description)
	requireValue(t, "2500.00", payslips[0].Items[0].Value)

	assert.Equal(t, "06/2023", payslips[1].Date)
	assert.Len(t, payslips[1].Items, 2)
}

func TestAssembleRHDocumentWithShortCodes(t *testing.T) {
	doc := buildTestPDF(
		[]string{"DEMONSTRATIVO DE PAGAMENTO", "Marco 2023", "2 INSS 30,00 350,00"},
	)

	assembler := extraction.NewAssembler(extraction.NewExtractor())
	payslips, err := assembler.Assemble(doc, []string{"0002"}, extraction.SourceRH)
	assert.NoError(t, err)
	assert.Len(t, payslips, 1)

	assert.Equal(t, "03/2023", payslips[0].Date)
	assert.Len(t, payslips[0].Items, 1)
	assert.Equal(t, "0002", payslips[0].Items[0].Code)
	requireValue(t, "350.00", payslips[0].Items[0].Value)
}

func TestAssemblePagesWithoutItemsDropped(t *testing.T) {
	doc := buildTestPDF(
		[]string{"Data de Referencia: 05/2023", "0002 VENCIMENTO R$ 2.500,00"},
		// Resolvable period but none of the wanted codes.
		[]string{"Data de Referencia: 06/2023", "0099 OUTRA VERBA 10,00"},
	)

	assembler := extraction.NewAssembler(extraction.NewExtractor())
	payslips, err := assembler.Assemble(doc, []string{"0002"}, extraction.SourceERP)
	assert.NoError(t, err)
	assert.Len(t, payslips, 1)
	assert.Equal(t, "05/2023", payslips[0].Date)
}

func TestAssembleEmptyDocumentYieldsPlaceholder(t *testing.T) {
	doc := buildTestPDF([]string{"pagina sem verbas e sem datas"})

	assembler := extraction.NewAssemblerWithClock(extraction.NewExtractor(), fixedClock)
	payslips, err := assembler.Assemble(doc, []string{"0002"}, extraction.SourceERP)
	assert.NoError(t, err)

	// Never an empty slice: exactly one placeholder dated "now".
	assert.Len(t, payslips, 1)
	assert.Equal(t, "09/2023", payslips[0].Date)
	assert.Equal(t, extraction.SourceERP, payslips[0].Source)
	assert.Empty(t, payslips[0].Items)
	assert.NotNil(t, payslips[0].Items)
}

func TestAssembleCorruptDocument(t *testing.T) {
	assembler := extraction.NewAssembler(extraction.NewExtractor())
	_, err := assembler.Assemble([]byte("corrupted bytes"), []string{"0002"}, extraction.SourceERP)
	assert.ErrorIs(t, err, extraction.ErrExtraction)
}
