package ingestion_engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/markdave123-py/docchat/internal/core"
)

// ExtractText opens data with engine and concatenates every page in order.
// Fragments within a page are joined by a single space and each page ends with a newline.
// Any failure discards the partial text.
func ExtractText(ctx context.Context, engine core.PDFEngine, data []byte) (string, error) {
	doc, err := engine.Open(ctx, data)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for n := 1; n <= doc.NumPages(); n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		frags, err := doc.PageFragments(ctx, n)
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", n, err)
		}

		sb.WriteString(strings.Join(frags, " "))
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
