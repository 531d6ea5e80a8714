package localtools

import "sync"

// MemClipboard is an in-process ClipboardBackend suitable for tests and
// for hosts with no real OS clipboard available.
type MemClipboard struct {
	mu   sync.Mutex
	text string
}

// NewMemClipboard returns an empty in-process clipboard.
func NewMemClipboard() *MemClipboard { return &MemClipboard{} }

func (c *MemClipboard) Paste() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}

func (c *MemClipboard) Copy(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return nil
}
