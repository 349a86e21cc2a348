package services

import (
	"sync"
)

// MockRenderer consumes a dispatcher's job queue and answers each job with a
// configurable result. Used in tests in place of the external renderer.
type MockRenderer struct {
	// PDF is the payload returned for successful renders
	PDF []byte
	// FailWith, when non-empty, makes every render report this error
	FailWith string
	// Silent, when true, swallows jobs without ever completing them,
	// which forces the waiter into its timeout path
	Silent bool

	mu       sync.Mutex
	rendered []RenderJob
	stop     chan struct{}
	done     sync.WaitGroup
}

// NewMockRenderer creates a mock renderer that answers with the given PDF bytes
func NewMockRenderer(pdf []byte) *MockRenderer {
	return &MockRenderer{PDF: pdf, stop: make(chan struct{})}
}

// Attach starts consuming jobs from the dispatcher until Stop is called
func (m *MockRenderer) Attach(d *RenderDispatcher) {
	m.done.Add(1)
	go func() {
		defer m.done.Done()
		for {
			select {
			case job := <-d.Jobs():
				m.mu.Lock()
				m.rendered = append(m.rendered, job)
				silent := m.Silent
				failWith := m.FailWith
				m.mu.Unlock()

				if silent {
					continue
				}
				result := RenderResult{RequestID: job.RequestID, PDF: m.PDF, Err: failWith}
				if failWith != "" {
					result.PDF = nil
				}
				// Ignore rejection of expired requests; the waiter is gone
				_ = d.Complete(result)
			case <-m.stop:
				return
			}
		}
	}()
}

// Stop terminates the consuming goroutine
func (m *MockRenderer) Stop() {
	close(m.stop)
	m.done.Wait()
}

// RenderedJobs returns the jobs seen so far
func (m *MockRenderer) RenderedJobs() []RenderJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	jobs := make([]RenderJob, len(m.rendered))
	copy(jobs, m.rendered)
	return jobs
}
