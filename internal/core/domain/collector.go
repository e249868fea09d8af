package domain

import (
	"fmt"
	"sync"
)

// Collector accumulates run-level counters. An explicit Collector is
// threaded through the fetch path instead of mutable package state, so
// concurrent runs never share counts. Safe for concurrent use.
type Collector struct {
	mu       sync.Mutex
	requests int
	retries  int
	nodes    int
	warnings []string
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// AddRequest records one issued network request.
func (c *Collector) AddRequest() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests++
}

// AddRetry records one rate-limit retry wait.
func (c *Collector) AddRetry() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.retries++
}

// AddNodes records n successfully fetched nodes.
func (c *Collector) AddNodes(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nodes += n
}

// Warnf records a formatted warning.
func (c *Collector) Warnf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

// Stats returns a snapshot of the accumulated counters.
func (c *Collector) Stats() RunStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	warnings := make([]string, len(c.warnings))
	copy(warnings, c.warnings)
	return RunStats{
		Requests: c.requests,
		Retries:  c.retries,
		Nodes:    c.nodes,
		Warnings: warnings,
	}
}

// RunStats is an immutable snapshot of a Collector.
type RunStats struct {
	// Requests is the number of network requests issued, retries included.
	Requests int `json:"requests"`

	// Retries is the number of rate-limit waits taken.
	Retries int `json:"retries"`

	// Nodes is the number of nodes fetched.
	Nodes int `json:"nodes"`

	// Warnings lists non-fatal conditions hit during the run.
	Warnings []string `json:"warnings,omitempty"`
}
