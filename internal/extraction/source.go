package extraction

import (
	"strings"
)

// Source identifies which institutional system printed the payslip. The two
// systems use different page layouts, so every stage of the pipeline is
// dialect-aware.
type Source string

const (
	SourceERP Source = "ERP"
	SourceRH  Source = "RH"
)

func ParseSource(v string) (Source, bool) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case string(SourceERP):
		return SourceERP, true
	case string(SourceRH):
		return SourceRH, true
	}
	return "", false
}

func (s Source) Valid() bool {
	return s == SourceERP || s == SourceRH
}

// ParseCodeList splits a caller-supplied list of wanted codes on whitespace
// and/or commas, dropping empty tokens.
func ParseCodeList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ';'
	})

	codes := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			codes = append(codes, f)
		}
	}
	return codes
}

// NormalizeCode left-pads numeric RH codes to four digits so short forms
// ("2", "02") compare equal to the canonical code ("0002"). Non-numeric
// codes are returned unchanged.
func NormalizeCode(code string, source Source) string {
	if source != SourceRH {
		return code
	}
	if code == "" || !isDigits(code) {
		return code
	}
	for len(code) < 4 {
		code = "0" + code
	}
	return code
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
