package ingestion_engine

import (
	"context"
	"errors"

	"github.com/ledongthuc/pdf"

	"github.com/markdave123-py/docchat/internal/core"
)

var (
	// ErrEngineUnavailable is returned when the engine's readiness probe fails.
	ErrEngineUnavailable = errors.New("pdf engine unavailable")
	// ErrEngineInitTimeout is returned when the probe does not finish in time.
	ErrEngineInitTimeout = errors.New("pdf engine initialization timed out")
)

// Probe checks that an engine can run and returns it.
type Probe func(ctx context.Context) (core.PDFEngine, error)

// Loader resolves a PDF engine exactly once in the background.
//
// done:    closed when the probe finished, failed or timed out.
// engine:  the ready engine, nil on failure.
// err:     ErrEngineUnavailable or ErrEngineInitTimeout, wrapped.
type Loader struct {
	done   chan struct{}
	engine core.PDFEngine
	err    error
	name   string
}

// DocconvExtractor implements core.PDFEngine using sajari/docconv.
type DocconvExtractor struct {
	useReadability bool
}

// NativeExtractor implements core.PDFEngine in pure Go using ledongthuc/pdf.
type NativeExtractor struct{}

// pagedText is a document already converted to per-page fragments.
type pagedText [][]string

type nativeDocument struct {
	r *pdf.Reader
}
