package ingestion_engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/markdave123-py/docchat/internal/core"
)

var _ core.EngineSource = (*Loader)(nil)

// StartLoader runs probe in its own goroutine, bounded by timeout.
// The outcome is fixed after the first run; callers wait on it with Engine.
func StartLoader(ctx context.Context, name string, timeout time.Duration, probe Probe) *Loader {
	l := &Loader{done: make(chan struct{}), name: name}
	go l.run(ctx, timeout, probe)
	return l
}

func (l *Loader) run(ctx context.Context, timeout time.Duration, probe Probe) {
	defer close(l.done)

	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		engine core.PDFEngine
		err    error
	}
	res := make(chan result, 1)
	go func() {
		e, err := probe(pctx)
		res <- result{engine: e, err: err}
	}()

	select {
	case r := <-res:
		switch {
		case r.err != nil:
			l.err = fmt.Errorf("%w: %s: %v", ErrEngineUnavailable, l.name, r.err)
		case r.engine == nil:
			l.err = fmt.Errorf("%w: %s: probe returned no engine", ErrEngineUnavailable, l.name)
		default:
			l.engine = r.engine
		}
	case <-pctx.Done():
		if errors.Is(pctx.Err(), context.DeadlineExceeded) {
			l.err = fmt.Errorf("%w: %s after %s", ErrEngineInitTimeout, l.name, timeout)
		} else {
			l.err = fmt.Errorf("%w: %s: %v", ErrEngineUnavailable, l.name, pctx.Err())
		}
	}

	if l.err != nil {
		log.Printf("Loader: %v", l.err)
		return
	}
	log.Printf("Loader: %s pdf engine ready", l.name)
}

// Engine blocks until the probe settled or ctx is done.
func (l *Loader) Engine(ctx context.Context) (core.PDFEngine, error) {
	select {
	case <-l.done:
		return l.engine, l.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Status reports "pending", "ready" or "unavailable" without blocking.
func (l *Loader) Status() string {
	select {
	case <-l.done:
		if l.err != nil {
			return "unavailable"
		}
		return "ready"
	default:
		return "pending"
	}
}
