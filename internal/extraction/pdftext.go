package extraction

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ErrExtraction reports that the document container itself could not be
// opened. It is the only failure that aborts a whole processing run.
var ErrExtraction = errors.New("document could not be read")

// RawPage is one page of normalized plain text. Pages are ephemeral: they
// live for a single processing run and are never persisted.
type RawPage struct {
	PageNumber int
	Text       string
}

type ExtractorOption func(*Extractor)

// WithFallbackScan enables the degraded byte-pattern scanner for documents
// the PDF reader cannot open. Fallback output is lower fidelity (it guesses
// page boundaries) and is never used while the reader succeeds.
func WithFallbackScan() ExtractorOption {
	return func(e *Extractor) {
		e.fallbackScan = true
	}
}

// Extractor turns raw PDF bytes into per-page text. It is a pure function
// over its input: no I/O, no shared state, safe for concurrent use.
type Extractor struct {
	fallbackScan bool
}

func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Extractor) Extract(doc []byte) (pages []RawPage, err error) {
	// The pdf package panics on some malformed cross-reference tables;
	// surface those as a regular extraction failure.
	defer func() {
		if r := recover(); r != nil {
			pages, err = e.recoverFallback(doc, fmt.Errorf("%v", r))
		}
	}()

	reader, openErr := pdf.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if openErr != nil {
		return e.recoverFallback(doc, openErr)
	}

	pages = []RawPage{}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single undecodable page must not abort the document.
			continue
		}

		pages = append(pages, RawPage{
			PageNumber: len(pages) + 1,
			Text:       normalizeText(text),
		})
	}

	return pages, nil
}

func (e *Extractor) recoverFallback(doc []byte, cause error) ([]RawPage, error) {
	if !e.fallbackScan {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, cause)
	}
	pages := fallbackScanPages(doc)
	if pages == nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, cause)
	}
	return pages, nil
}

// normalizeText collapses all whitespace runs to single spaces and strips
// control and other non-printable runes.
func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			pendingSpace = true
			continue
		}
		if !unicode.IsPrint(r) || r == unicode.ReplacementChar {
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
	}

	return b.String()
}

var (
	pdfPageMarkerRe  = regexp.MustCompile(`/Type\s*/Page[^s]`)
	pdfTextLiteralRe = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)\s*Tj`)
)

// fallbackScanPages is the degraded path: it pulls literal text strings out
// of uncompressed content streams and splits them across an estimated page
// count. Positioning and stream compression are ignored entirely, so this
// exists only to salvage something from files the reader rejects.
func fallbackScanPages(doc []byte) []RawPage {
	literals := pdfTextLiteralRe.FindAllSubmatch(doc, -1)
	if len(literals) == 0 {
		return nil
	}

	texts := make([]string, 0, len(literals))
	for _, m := range literals {
		t := unescapePDFLiteral(string(m[1]))
		if t != "" {
			texts = append(texts, t)
		}
	}
	if len(texts) == 0 {
		return nil
	}

	pageCount := len(pdfPageMarkerRe.FindAll(doc, -1))
	if pageCount < 1 {
		pageCount = 1
	}

	perPage := (len(texts) + pageCount - 1) / pageCount
	pages := make([]RawPage, 0, pageCount)
	for start := 0; start < len(texts); start += perPage {
		end := start + perPage
		if end > len(texts) {
			end = len(texts)
		}
		pages = append(pages, RawPage{
			PageNumber: len(pages) + 1,
			Text:       normalizeText(strings.Join(texts[start:end], " ")),
		})
	}

	return pages
}

func unescapePDFLiteral(s string) string {
	replacer := strings.NewReplacer(`\\`, `\`, `\(`, "(", `\)`, ")")
	return replacer.Replace(s)
}
