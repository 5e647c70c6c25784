package extraction

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// LineItem is one earning or deduction extracted from a page. Code is the
// source system's canonical code and is unique within one page's result
// set: recurring occurrences are summed before being returned.
type LineItem struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

// itemAccumulator collects matches during a scan, preserving first-seen
// order and summing values for recurring codes. State is threaded through
// the scan explicitly so concurrent extractions never share anything.
type itemAccumulator struct {
	order []string
	items map[string]*LineItem
}

func newItemAccumulator() *itemAccumulator {
	return &itemAccumulator{items: make(map[string]*LineItem)}
}

func (a *itemAccumulator) add(code, description string, value decimal.Decimal) {
	if existing, ok := a.items[code]; ok {
		existing.Value = existing.Value.Add(value)
		return
	}
	a.order = append(a.order, code)
	a.items[code] = &LineItem{Code: code, Description: description, Value: value}
}

func (a *itemAccumulator) result() []LineItem {
	out := make([]LineItem, 0, len(a.order))
	for _, code := range a.order {
		out = append(out, *a.items[code])
	}
	return out
}

// ExtractItems scans one page's text for the wanted codes and returns their
// summed line items. Codes outside the wanted list never leak into the
// result; lines whose value does not parse are skipped, not surfaced.
func ExtractItems(pageText string, source Source, wantedCodes []string) []LineItem {
	acc := newItemAccumulator()

	wanted := make(map[string]bool, len(wantedCodes))
	order := make([]string, 0, len(wantedCodes))
	for _, code := range wantedCodes {
		code = NormalizeCode(strings.TrimSpace(code), source)
		if code == "" || wanted[code] {
			continue
		}
		wanted[code] = true
		order = append(order, code)
	}

	for _, code := range order {
		switch source {
		case SourceRH:
			scanRHCode(pageText, code, acc)
		default:
			scanERPCode(pageText, code, wanted, acc)
		}
	}

	return acc.result()
}

// valuePattern is a Brazilian-formatted currency token: dot thousands
// separator, comma decimals.
const valuePattern = `\d{1,3}(?:\.\d{3})*,\d{2}|\d+,\d{2}`

// scanERPCode matches the ERP layout: the code as a standalone 4-digit
// token, a description run, then the value with or without an explicit R$
// marker. The trailing token boundary is verified by hand instead of being
// part of the pattern, so back-to-back occurrences of the same code are not
// lost to boundary consumption.
func scanERPCode(pageText, code string, wanted map[string]bool, acc *itemAccumulator) {
	re := regexp.MustCompile(
		`(?:^| )` + regexp.QuoteMeta(code) + ` (.+?) (?:R\$ ?)?(` + valuePattern + `)`,
	)

	for _, m := range re.FindAllStringSubmatchIndex(pageText, -1) {
		if m[1] < len(pageText) && pageText[m[1]] != ' ' {
			continue
		}

		description := cleanDescription(pageText[m[2]:m[3]])
		if description == "" {
			continue
		}
		if descriptionBleeds(description, wanted) {
			continue
		}
		value, err := ParseBRDecimal(pageText[m[4]:m[5]])
		if err != nil {
			continue
		}
		acc.add(code, description, value)
	}
}

// descriptionBleeds reports whether a matched description ran past the end
// of its own line item into the next one (that happens when the first
// item's value fails to parse as a number). The bleed signature is a
// standalone 4-digit token inside the description that is either another
// wanted code or starts a code-description pair of its own. A trailing
// number with no descriptive text after it, like a statute reference in
// "ADICIONAL LEI 1234", is part of the description.
func descriptionBleeds(description string, wanted map[string]bool) bool {
	fields := strings.Fields(description)
	for i, f := range fields {
		if len(f) != 4 || !isDigits(f) {
			continue
		}
		if wanted[f] {
			return true
		}
		if i+1 < len(fields) && hasLetter(fields[i+1]) {
			return true
		}
	}
	return false
}

// scanRHCode walks the page tokens looking for the code (including its
// unpadded short forms), a run of descriptive tokens, then a run of numeric
// columns. RH pages interleave day counts and DD.YYYY-shaped columns
// between the description and the value, so the value is the last
// currency-shaped token of the numeric run, not the first. A short digit
// token followed by a descriptive token ends the run: that shape is the
// next line item's code.
func scanRHCode(pageText, code string, acc *itemAccumulator) {
	tokens := strings.Fields(pageText)

	i := 0
	for i < len(tokens) {
		if !rhCodeMatches(tokens[i], code) {
			i++
			continue
		}

		j := i + 1
		for j < len(tokens) && hasLetter(tokens[j]) {
			j++
		}
		if j == i+1 {
			// Bare code with no description is not a line item.
			i++
			continue
		}
		description := cleanDescription(strings.Join(tokens[i+1:j], " "))

		k := j
		valueToken := ""
		for k < len(tokens) && isNumericToken(tokens[k]) {
			if looksLikeNextItemCode(tokens, k, j) {
				break
			}
			if currencyTokenRe.MatchString(tokens[k]) {
				valueToken = tokens[k]
			}
			k++
		}

		i = k
		if description == "" || valueToken == "" {
			continue
		}
		value, err := ParseBRDecimal(valueToken)
		if err != nil {
			continue
		}
		acc.add(code, description, value)
	}
}

// rhCodeMatches compares a page token against a wanted code, tolerating the
// short forms RH prints: "0002" may appear as "2", "02" or "002".
func rhCodeMatches(token, code string) bool {
	if token == code {
		return true
	}
	if !isDigits(token) || !isDigits(code) || len(token) > len(code) {
		return false
	}
	return strings.TrimLeft(token, "0") == strings.TrimLeft(code, "0")
}

// looksLikeNextItemCode reports whether the numeric token at position k
// starts the following line item: a short plain-digit token directly
// followed by descriptive text.
func looksLikeNextItemCode(tokens []string, k, runStart int) bool {
	if k == runStart {
		return false
	}
	if !isDigits(tokens[k]) || len(tokens[k]) > 4 {
		return false
	}
	return k+1 < len(tokens) && hasLetter(tokens[k+1])
}

var currencyTokenRe = regexp.MustCompile(`^(?:` + valuePattern + `)$`)

func isNumericToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != ',' {
			return false
		}
	}
	return true
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func cleanDescription(s string) string {
	s = strings.TrimSpace(s)
	// The description run must never swallow a currency marker.
	if i := strings.Index(s, "R$"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}

// ParseBRDecimal converts a Brazilian-formatted number ("1.234,56") into a
// decimal. Every dot is a thousands separator and only the final comma is
// the decimal mark; stripping dots first is what keeps multi-thousand
// values intact.
func ParseBRDecimal(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	if i := strings.LastIndex(s, ","); i >= 0 {
		s = s[:i] + "." + s[i+1:]
	}
	if strings.Contains(s, ",") {
		return decimal.Zero, fmt.Errorf("malformed number %q", s)
	}
	return decimal.NewFromString(s)
}
