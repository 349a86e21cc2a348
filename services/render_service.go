package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrRenderTimeout is returned when no renderer answers within the deadline
var ErrRenderTimeout = errors.New("PDF generation timeout")

// RenderJob asks a renderer to produce the PDF for one invoice summary.
// RequestID correlates the job with its result; a renderer must echo it back.
type RenderJob struct {
	RequestID string
	Summary   *InvoiceSummary
}

// RenderResult is a renderer's answer to a RenderJob
type RenderResult struct {
	RequestID string
	PDF       []byte
	Err       string
}

// RenderDispatcher brokers single-shot render requests between the API and an
// out-of-process renderer. Every request carries its own ID and waits in a
// pending map under its own deadline, so concurrent requests can never be
// cross-attributed and a late answer to an expired request is rejected
// instead of being delivered to the wrong waiter.
type RenderDispatcher struct {
	timeout time.Duration
	jobs    chan RenderJob

	mu      sync.Mutex
	pending map[string]chan RenderResult
}

// NewRenderDispatcher creates a dispatcher with the given per-request timeout
func NewRenderDispatcher(timeout time.Duration) *RenderDispatcher {
	return &RenderDispatcher{
		timeout: timeout,
		jobs:    make(chan RenderJob, 16),
		pending: make(map[string]chan RenderResult),
	}
}

// Jobs exposes the queue a renderer consumes
func (d *RenderDispatcher) Jobs() <-chan RenderJob {
	return d.jobs
}

// Render submits one job and blocks until the correlated result arrives, the
// per-request timeout elapses, or ctx is cancelled. On timeout the pending
// entry is removed so a later unrelated response cannot be misattributed.
func (d *RenderDispatcher) Render(ctx context.Context, summary *InvoiceSummary) ([]byte, error) {
	id := uuid.NewString()
	resultCh := make(chan RenderResult, 1)

	d.mu.Lock()
	d.pending[id] = resultCh
	d.mu.Unlock()

	select {
	case d.jobs <- RenderJob{RequestID: id, Summary: summary}:
	default:
		d.remove(id)
		return nil, errors.New("renderer queue is full")
	}

	timer := time.NewTimer(d.timeout)
	defer timer.Stop()

	select {
	case result := <-resultCh:
		if result.Err != "" {
			return nil, fmt.Errorf("renderer failed: %s", result.Err)
		}
		return result.PDF, nil
	case <-timer.C:
		d.remove(id)
		return nil, ErrRenderTimeout
	case <-ctx.Done():
		d.remove(id)
		return nil, ctx.Err()
	}
}

// Complete delivers a renderer's result to the waiter registered under its
// request ID. Unknown IDs (never issued, already resolved, or expired) are
// rejected.
func (d *RenderDispatcher) Complete(result RenderResult) error {
	d.mu.Lock()
	resultCh, ok := d.pending[result.RequestID]
	if ok {
		delete(d.pending, result.RequestID)
	}
	d.mu.Unlock()

	if !ok {
		return fmt.Errorf("unknown or expired render request %q", result.RequestID)
	}

	resultCh <- result
	return nil
}

// PendingCount reports how many requests are still waiting for a result
func (d *RenderDispatcher) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

func (d *RenderDispatcher) remove(id string) {
	d.mu.Lock()
	delete(d.pending, id)
	d.mu.Unlock()
}

var renderDispatcherInstance *RenderDispatcher

// InitRenderService initializes the render dispatcher
func InitRenderService(timeout time.Duration) *RenderDispatcher {
	renderDispatcherInstance = NewRenderDispatcher(timeout)
	log.Printf("Render dispatcher initialized with %s timeout", timeout)
	return renderDispatcherInstance
}

// GetRenderDispatcher returns the initialized render dispatcher instance
func GetRenderDispatcher() *RenderDispatcher {
	return renderDispatcherInstance
}

// SetRenderDispatcher sets the render dispatcher instance (primarily for testing)
func SetRenderDispatcher(d *RenderDispatcher) {
	renderDispatcherInstance = d
}
