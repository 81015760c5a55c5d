package ingestion_engine

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"strings"

	"code.sajari.com/docconv"

	"github.com/markdave123-py/docchat/internal/core"
)

var (
	_ core.PDFEngine   = (*DocconvExtractor)(nil)
	_ core.PDFDocument = pagedText(nil)
)

const pdfContentType = "application/pdf"

func NewDocconvExtractor(useReadability bool) *DocconvExtractor {
	return &DocconvExtractor{useReadability: useReadability}
}

// ProbeDocconv succeeds once poppler's pdftotext, which docconv shells out to, is on PATH.
func ProbeDocconv(useReadability bool) Probe {
	return func(ctx context.Context) (core.PDFEngine, error) {
		if _, err := exec.LookPath("pdftotext"); err != nil {
			return nil, fmt.Errorf("docconv needs pdftotext: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return NewDocconvExtractor(useReadability), nil
	}
}

// Open converts the whole document with docconv and splits the body on form feeds.
func (e *DocconvExtractor) Open(ctx context.Context, data []byte) (core.PDFDocument, error) {
	res, err := docconv.Convert(bytes.NewReader(data), pdfContentType, e.useReadability)
	if err != nil {
		log.Printf("docconv: extraction failed (readability: %t): %v", e.useReadability, err)
		return nil, fmt.Errorf("docconv convert: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(res.Body) == "" {
		log.Printf("docconv: extracted empty text")
		return pagedText{}, nil
	}

	return splitPages(res.Body), nil
}

func (p pagedText) NumPages() int { return len(p) }

func (p pagedText) PageFragments(ctx context.Context, n int) ([]string, error) {
	if n < 1 || n > len(p) {
		return nil, fmt.Errorf("page %d out of range 1..%d", n, len(p))
	}
	return p[n-1], nil
}

// splitPages treats form feeds as page breaks. A trailing break does not open a new page.
func splitPages(body string) pagedText {
	pages := strings.Split(body, "\f")
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}

	out := make(pagedText, 0, len(pages))
	for _, page := range pages {
		out = append(out, splitFragments(page))
	}
	return out
}

// splitFragments turns raw page text into its non-empty trimmed lines.
func splitFragments(text string) []string {
	var frags []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		frags = append(frags, line)
	}
	return frags
}
