package ingestion_engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/markdave123-py/docchat/internal/core"
)

func TestLoaderReady(t *testing.T) {
	l := StartLoader(context.Background(), "native", time.Second, ProbeNative())

	engine, err := l.Engine(context.Background())
	if err != nil {
		t.Fatalf("Engine err: %v", err)
	}
	if _, ok := engine.(*NativeExtractor); !ok {
		t.Fatalf("unexpected engine type %T", engine)
	}
	if l.Status() != "ready" {
		t.Fatalf("unexpected status %q", l.Status())
	}
}

func TestLoaderProbeFailure(t *testing.T) {
	check := func(ctx context.Context) (core.PDFEngine, error) {
		return nil, errors.New("pdftotext missing")
	}
	l := StartLoader(context.Background(), "docconv", time.Second, check)

	if _, err := l.Engine(context.Background()); !errors.Is(err, ErrEngineUnavailable) {
		t.Fatalf("expected ErrEngineUnavailable, got %v", err)
	}
	if l.Status() != "unavailable" {
		t.Fatalf("unexpected status %q", l.Status())
	}
}

func TestLoaderNilEngine(t *testing.T) {
	check := func(ctx context.Context) (core.PDFEngine, error) { return nil, nil }
	l := StartLoader(context.Background(), "empty", time.Second, check)

	if _, err := l.Engine(context.Background()); !errors.Is(err, ErrEngineUnavailable) {
		t.Fatalf("expected ErrEngineUnavailable, got %v", err)
	}
}

func TestLoaderTimeout(t *testing.T) {
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })

	check := func(ctx context.Context) (core.PDFEngine, error) {
		<-block
		return NewNativeExtractor(), nil
	}
	l := StartLoader(context.Background(), "slow", 20*time.Millisecond, check)

	if _, err := l.Engine(context.Background()); !errors.Is(err, ErrEngineInitTimeout) {
		t.Fatalf("expected ErrEngineInitTimeout, got %v", err)
	}

	// The outcome does not change on later calls.
	if _, err := l.Engine(context.Background()); !errors.Is(err, ErrEngineInitTimeout) {
		t.Fatalf("expected ErrEngineInitTimeout again, got %v", err)
	}
}

func TestLoaderPendingRespectsCallerContext(t *testing.T) {
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })

	check := func(ctx context.Context) (core.PDFEngine, error) {
		<-block
		return NewNativeExtractor(), nil
	}
	l := StartLoader(context.Background(), "slow", time.Minute, check)

	if l.Status() != "pending" {
		t.Fatalf("unexpected status %q", l.Status())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := l.Engine(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected caller deadline, got %v", err)
	}
}
