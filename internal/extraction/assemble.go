package extraction

import (
	"errors"
	"time"
)

// Payslip is the structured result of one contributing page: its reference
// period key, the source system and the line items found, in first-seen
// order.
type Payslip struct {
	Date   string     `json:"date"`
	Source Source     `json:"source"`
	Items  []LineItem `json:"items"`
}

// Assembler drives the extractor, period resolver and line-item scanner
// over a whole document, page by page.
type Assembler struct {
	extractor *Extractor
	now       func() time.Time
}

func NewAssembler(extractor *Extractor) *Assembler {
	return &Assembler{
		extractor: extractor,
		now:       time.Now,
	}
}

// NewAssemblerWithClock pins the clock used for the empty-document
// placeholder date.
func NewAssemblerWithClock(extractor *Extractor, now func() time.Time) *Assembler {
	return &Assembler{extractor: extractor, now: now}
}

// Assemble processes a document end to end. Pages without a resolvable
// period or without any wanted line item are dropped; a document where no
// page contributes yields exactly one placeholder payslip dated with the
// current month, never an empty slice. Only a malformed container aborts
// the call.
func (a *Assembler) Assemble(doc []byte, wantedCodes []string, source Source) ([]Payslip, error) {
	pages, err := a.extractor.Extract(doc)
	if err != nil {
		return nil, err
	}

	payslips := make([]Payslip, 0, len(pages))
	for _, page := range pages {
		period, err := ResolvePeriod(page.Text, source)
		if errors.Is(err, ErrPeriodNotFound) {
			continue
		}

		items := ExtractItems(page.Text, source, wantedCodes)
		if len(items) == 0 {
			continue
		}

		payslips = append(payslips, Payslip{
			Date:   period.String(),
			Source: source,
			Items:  items,
		})
	}

	if len(payslips) == 0 {
		payslips = append(payslips, Payslip{
			Date:   CurrentPeriod(a.now()).String(),
			Source: source,
			Items:  []LineItem{},
		})
	}

	return payslips, nil
}
