package extraction

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrPeriodNotFound reports that no rule in the cascade matched the page.
// The assembler drops such pages instead of guessing a date for them.
var ErrPeriodNotFound = errors.New("reference period not found on page")

// Period is the reference month a payslip page describes. It is kept as a
// proper value internally so consolidations can be ordered chronologically,
// while String() yields the canonical MM/YYYY key used for storage and
// display.
type Period struct {
	Month int
	Year  int
}

func (p Period) String() string {
	return fmt.Sprintf("%02d/%04d", p.Month, p.Year)
}

func (p Period) IsZero() bool {
	return p.Month == 0 && p.Year == 0
}

func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Month < o.Month
}

// ParsePeriod parses a MM/YYYY key back into a Period.
func ParsePeriod(s string) (Period, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return Period{}, fmt.Errorf("invalid period %q, expected MM/YYYY", s)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return Period{}, fmt.Errorf("invalid period month %q", s)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil || year < 1000 || year > 9999 {
		return Period{}, fmt.Errorf("invalid period year %q", s)
	}
	return Period{Month: month, Year: year}, nil
}

func CurrentPeriod(now time.Time) Period {
	return Period{Month: int(now.Month()), Year: now.Year()}
}

// periodRule pairs a pattern with a converter. Rules are tried in slice
// order and the first rule whose converter accepts a match wins, so
// label-anchored rules must stay ahead of context-free date-shaped ones:
// a bare MM/YYYY fallback would otherwise latch onto an unrelated date on
// the page, such as an admission date.
type periodRule struct {
	re      *regexp.Regexp
	convert func(match []string) (Period, bool)
}

func numericConvert(match []string) (Period, bool) {
	month, err := strconv.Atoi(match[1])
	if err != nil || month < 1 || month > 12 {
		return Period{}, false
	}
	year, err := strconv.Atoi(match[2])
	if err != nil || year < 1900 || year > 2199 {
		return Period{}, false
	}
	return Period{Month: month, Year: year}, true
}

// monthsPT maps the twelve Portuguese month names to their number. The
// accentless variants cover OCR output and print engines that drop
// diacritics.
var monthsPT = map[string]int{
	"janeiro":   1,
	"fevereiro": 2,
	"março":     3,
	"marco":     3,
	"abril":     4,
	"maio":      5,
	"junho":     6,
	"julho":     7,
	"agosto":    8,
	"setembro":  9,
	"outubro":   10,
	"novembro":  11,
	"dezembro":  12,
}

func monthNameConvert(match []string) (Period, bool) {
	month, ok := monthsPT[strings.ToLower(match[1])]
	if !ok {
		return Period{}, false
	}
	year, err := strconv.Atoi(match[2])
	if err != nil || year < 1900 || year > 2199 {
		return Period{}, false
	}
	return Period{Month: month, Year: year}, true
}

var erpPeriodRules = []periodRule{
	{regexp.MustCompile(`(?i)data\s+de\s+refer[êe]ncia\W{0,5}(\d{2})/(\d{4})`), numericConvert},
	{regexp.MustCompile(`(?i)compet[êe]ncia\W{0,5}(\d{2})/(\d{4})`), numericConvert},
	{regexp.MustCompile(`(?i)per[íi]odo\W{0,5}(\d{2})/(\d{4})`), numericConvert},
	{regexp.MustCompile(`(\d{2})/(\d{4})`), numericConvert},
}

var rhPeriodRules = []periodRule{
	{regexp.MustCompile(`(?i)(janeiro|fevereiro|mar[çc]o|abril|maio|junho|julho|agosto|setembro|outubro|novembro|dezembro)\s*(?:de\s*|/\s*)?(\d{4})`), monthNameConvert},
	{regexp.MustCompile(`(?i)compet[êe]ncia\W{0,5}(\d{2})/(\d{4})`), numericConvert},
	{regexp.MustCompile(`(?i)m[êe]s/ano\W{0,5}(\d{2})/(\d{4})`), numericConvert},
	{regexp.MustCompile(`(\d{2})/(\d{4})`), numericConvert},
}

// ResolvePeriod extracts the reference month/year of a page. Within one
// rule, matches are scanned left to right and the first one the converter
// accepts wins; across rules, priority order is strict.
func ResolvePeriod(pageText string, source Source) (Period, error) {
	rules := erpPeriodRules
	if source == SourceRH {
		rules = rhPeriodRules
	}

	for _, rule := range rules {
		for _, match := range rule.re.FindAllStringSubmatch(pageText, -1) {
			if p, ok := rule.convert(match); ok {
				return p, nil
			}
		}
	}

	return Period{}, ErrPeriodNotFound
}
