package services

import "sync"

// MockURLOpener records opened URLs instead of launching anything.
// Used in tests in place of ShellOpener.
type MockURLOpener struct {
	// FailWith, when non-nil, is returned by every OpenExternal call
	FailWith error

	mu     sync.Mutex
	opened []string
}

// OpenExternal records the URL and returns the configured error
func (m *MockURLOpener) OpenExternal(target string) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	m.opened = append(m.opened, target)
	m.mu.Unlock()
	return nil
}

// OpenedURLs returns the URLs opened so far
func (m *MockURLOpener) OpenedURLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	urls := make([]string, len(m.opened))
	copy(urls, m.opened)
	return urls
}
