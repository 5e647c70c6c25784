package consolidation

import (
	"sort"
	"strings"

	"github.com/davidvasconcellos/PayrollDataExtractor/internal/extraction"

	"github.com/shopspring/decimal"
)

// AliasGroup merges a set of raw codes into one reporting column. A raw
// code belongs to at most one group; ungrouped codes report as themselves.
type AliasGroup struct {
	DisplayCode string
	DisplayName string
	Codes       []string
}

// Row is one consolidated period: the MM/YYYY key plus a dense mapping from
// every known display code to its summed value (zero when absent).
type Row struct {
	Date   string                     `json:"date"`
	Values map[string]decimal.Decimal `json:"values"`
}

type CodeInfo struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Result is the wide table driving both the grid and the exports.
type Result struct {
	Rows         []Row      `json:"rows"`
	DisplayCodes []string   `json:"displayCodes"`
	CodeInfo     []CodeInfo `json:"codeInfo"`
}

// Consolidate regroups stored payslips by date, re-keys raw codes through
// the alias directory and sums values per (date, display code). It is a
// pure projection: alias edits retroactively reshape every historical
// export without touching stored payslips. Row order is the insertion
// order of distinct dates; use SortRowsChronologically for calendar order.
func Consolidate(payslips []extraction.Payslip, groups []AliasGroup) Result {
	displayByRaw := make(map[string]string)
	nameByDisplay := make(map[string]string)
	for _, g := range groups {
		for _, raw := range g.Codes {
			displayByRaw[raw] = g.DisplayCode
		}
		if g.DisplayName != "" {
			nameByDisplay[g.DisplayCode] = g.DisplayName
		}
	}

	var dateOrder []string
	sums := make(map[string]map[string]decimal.Decimal)

	var codeOrder []string
	descByDisplay := make(map[string]string)

	for _, payslip := range payslips {
		for _, item := range payslip.Items {
			display, ok := displayByRaw[item.Code]
			if !ok {
				display = item.Code
			}

			if _, ok := descByDisplay[display]; !ok {
				codeOrder = append(codeOrder, display)
				if name, aliased := nameByDisplay[display]; aliased {
					descByDisplay[display] = name
				} else {
					descByDisplay[display] = item.Description
				}
			}

			byCode, ok := sums[payslip.Date]
			if !ok {
				byCode = make(map[string]decimal.Decimal)
				sums[payslip.Date] = byCode
				dateOrder = append(dateOrder, payslip.Date)
			}
			byCode[display] = byCode[display].Add(item.Value)
		}
	}

	rows := make([]Row, 0, len(dateOrder))
	for _, date := range dateOrder {
		values := make(map[string]decimal.Decimal, len(codeOrder))
		for _, code := range codeOrder {
			// Dense output: absent codes report an explicit zero.
			values[code] = sums[date][code]
		}
		rows = append(rows, Row{Date: date, Values: values})
	}

	codeInfo := make([]CodeInfo, 0, len(codeOrder))
	for _, code := range codeOrder {
		codeInfo = append(codeInfo, CodeInfo{Code: code, Description: descByDisplay[code]})
	}

	return Result{
		Rows:         rows,
		DisplayCodes: codeOrder,
		CodeInfo:     codeInfo,
	}
}

// SortRowsChronologically orders rows by their period value. MM/YYYY keys
// do not sort correctly as strings across year boundaries. Unparseable
// dates sink to the end, keeping their relative order.
func SortRowsChronologically(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		pi, errI := extraction.ParsePeriod(rows[i].Date)
		pj, errJ := extraction.ParsePeriod(rows[j].Date)
		if errI != nil || errJ != nil {
			return errI == nil && errJ != nil
		}
		return pi.Before(pj)
	})
}

// FormatBRValue renders a value the way the observed locale prints
// currency: two decimals, comma separator.
func FormatBRValue(v decimal.Decimal) string {
	return strings.Replace(v.StringFixed(2), ".", ",", 1)
}
