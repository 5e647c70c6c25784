package consolidation

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"sync"

	"github.com/davidvasconcellos/PayrollDataExtractor/internal/extraction"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
)

// ExportCSV renders the wide table as semicolon-separated CSV, the layout
// Brazilian Excel expects when values carry comma decimals. Header row is
// Data followed by the display codes; each body row carries the period and
// the formatted value per column.
func ExportCSV(res Result) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	header := append([]string{"Data"}, res.DisplayCodes...)
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range res.Rows {
		record := make([]string, 0, len(res.DisplayCodes)+1)
		record = append(record, row.Date)
		for _, code := range res.DisplayCodes {
			record = append(record, FormatBRValue(row.Values[code]))
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// csvLineItem is the flat long-format row: one line per extracted item.
type csvLineItem struct {
	Date        string `csv:"data"`
	Source      string `csv:"origem"`
	Code        string `csv:"codigo"`
	Description string `csv:"descricao"`
	Value       string `csv:"valor"`
}

// ExportLineItemsCSV renders every stored line item in long format, the
// shape ERP re-imports consume.
func ExportLineItemsCSV(payslips []extraction.Payslip) ([]byte, error) {
	rows := make([]csvLineItem, 0, len(payslips))
	for _, p := range payslips {
		for _, item := range p.Items {
			rows = append(rows, csvLineItem{
				Date:        p.Date,
				Source:      string(p.Source),
				Code:        item.Code,
				Description: item.Description,
				Value:       FormatBRValue(item.Value),
			})
		}
	}

	var buf bytes.Buffer
	configureCSVWriter()
	if err := gocsv.Marshal(rows, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// configureCSVWriter installs the semicolon writer exactly once; gocsv
// holds the writer factory in package-global state, so per-call mutation
// would race between concurrent exports.
var configureCSVWriter = sync.OnceFunc(func() {
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		w := gocsv.DefaultCSVWriter(out)
		w.Comma = ';'
		return w
	})
})

// ExportXLSX renders the wide table as a spreadsheet. The header row pairs
// each display code with its description so the sheet is readable without
// the alias directory.
func ExportXLSX(res Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Consolidado"
	f.SetSheetName("Sheet1", sheet)

	descByCode := make(map[string]string, len(res.CodeInfo))
	for _, info := range res.CodeInfo {
		descByCode[info.Code] = info.Description
	}

	setCell := func(col, row int, value interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, value)
	}

	if err := setCell(1, 1, "Data"); err != nil {
		return nil, err
	}
	for i, code := range res.DisplayCodes {
		header := code
		if desc := descByCode[code]; desc != "" {
			header = code + " - " + desc
		}
		if err := setCell(i+2, 1, header); err != nil {
			return nil, err
		}
	}

	for r, row := range res.Rows {
		if err := setCell(1, r+2, row.Date); err != nil {
			return nil, err
		}
		for c, code := range res.DisplayCodes {
			value, _ := row.Values[code].Float64()
			if err := setCell(c+2, r+2, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// jsonRow mirrors Row with locale-formatted values for the download
// endpoint; the API response keeps raw decimals.
type jsonRow struct {
	Date   string            `json:"date"`
	Values map[string]string `json:"values"`
}

func ExportJSON(res Result) ([]byte, error) {
	rows := make([]jsonRow, 0, len(res.Rows))
	for _, row := range res.Rows {
		values := make(map[string]string, len(row.Values))
		for code, v := range row.Values {
			values[code] = FormatBRValue(v)
		}
		rows = append(rows, jsonRow{Date: row.Date, Values: values})
	}

	return json.Marshal(struct {
		Rows         []jsonRow  `json:"rows"`
		DisplayCodes []string   `json:"displayCodes"`
		CodeInfo     []CodeInfo `json:"codeInfo"`
	}{
		Rows:         rows,
		DisplayCodes: res.DisplayCodes,
		CodeInfo:     res.CodeInfo,
	})
}
