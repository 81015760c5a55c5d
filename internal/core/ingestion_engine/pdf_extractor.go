package ingestion_engine

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/markdave123-py/docchat/internal/core"
)

var (
	_ core.PDFEngine   = (*NativeExtractor)(nil)
	_ core.PDFDocument = (*nativeDocument)(nil)
)

func NewNativeExtractor() *NativeExtractor {
	return &NativeExtractor{}
}

// ProbeNative needs nothing outside the process, so it is ready at once.
func ProbeNative() Probe {
	return func(ctx context.Context) (core.PDFEngine, error) {
		return NewNativeExtractor(), nil
	}
}

// Open parses the PDF cross-reference table. The pdf package panics on some
// malformed input, which is reported as an error instead.
func (e *NativeExtractor) Open(ctx context.Context, data []byte) (doc core.PDFDocument, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("native: malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("native: %w", err)
	}
	return &nativeDocument{r: r}, nil
}

func (d *nativeDocument) NumPages() int {
	return d.r.NumPage()
}

func (d *nativeDocument) PageFragments(ctx context.Context, n int) (frags []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			frags, err = nil, fmt.Errorf("native: page %d: %v", n, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := d.r.Page(n)
	if p.V.IsNull() {
		return nil, nil
	}

	return lineFragments(p.Content().Text), nil
}

// lineFragments groups glyphs into lines by baseline, in content stream order,
// and yields one trimmed fragment per non-blank line. GetTextByRow is not used
// because it ignores Td moves.
func lineFragments(glyphs []pdf.Text) []string {
	var (
		frags []string
		line  strings.Builder
		y     float64
	)
	flush := func() {
		if frag := strings.TrimSpace(line.String()); frag != "" {
			frags = append(frags, frag)
		}
		line.Reset()
	}

	for i, g := range glyphs {
		if g.S == "\n" {
			continue
		}
		tolerance := math.Max(g.FontSize/2, 1)
		if i > 0 && math.Abs(g.Y-y) > tolerance {
			flush()
		}
		y = g.Y
		line.WriteString(g.S)
	}
	flush()
	return frags
}
