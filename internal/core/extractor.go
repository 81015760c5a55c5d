package core

import (
	"context"
)

// PDFDocument is an opened PDF whose pages can be read one at a time.
type PDFDocument interface {
	NumPages() int
	// PageFragments returns the text fragments of page n, counting from 1.
	PageFragments(ctx context.Context, n int) ([]string, error)
}

// PDFEngine opens raw PDF bytes.
type PDFEngine interface {
	Open(ctx context.Context, data []byte) (PDFDocument, error)
}

// EngineSource hands out the PDF engine once it finished initializing.
type EngineSource interface {
	Engine(ctx context.Context) (PDFEngine, error)
}
