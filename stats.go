package xpa

import "sync/atomic"

// ClientStats contains statistics about client operations.
// All fields are safe for concurrent access.
//
// Struct fits within a single cache line (64 bytes).
//
// For Prometheus integration, expose every field as a counter.
type ClientStats struct {
	Gets        uint64 // Total get commands
	Sets        uint64 // Total set commands
	Infos       uint64 // Total info commands
	Accesses    uint64 // Total access queries
	Opens       uint64 // Connections opened
	Replies     uint64 // Replies collected across all commands
	Truncations uint64 // Commands whose reply set filled the bound
	Errors      uint64 // Total errors across all operations
}

// clientStatsCollector provides internal methods for updating client
// stats. Not exported - the client updates its own stats.
type clientStatsCollector struct {
	stats *ClientStats
}

func newClientStatsCollector() *clientStatsCollector {
	return &clientStatsCollector{
		stats: &ClientStats{},
	}
}

func (c *clientStatsCollector) recordGet() {
	atomic.AddUint64(&c.stats.Gets, 1)
}

func (c *clientStatsCollector) recordSet() {
	atomic.AddUint64(&c.stats.Sets, 1)
}

func (c *clientStatsCollector) recordInfo() {
	atomic.AddUint64(&c.stats.Infos, 1)
}

func (c *clientStatsCollector) recordAccess() {
	atomic.AddUint64(&c.stats.Accesses, 1)
}

func (c *clientStatsCollector) recordOpen() {
	atomic.AddUint64(&c.stats.Opens, 1)
}

func (c *clientStatsCollector) recordReplies(n int, truncated bool) {
	atomic.AddUint64(&c.stats.Replies, uint64(n))
	if truncated {
		atomic.AddUint64(&c.stats.Truncations, 1)
	}
}

func (c *clientStatsCollector) recordError() {
	atomic.AddUint64(&c.stats.Errors, 1)
}

func (c *clientStatsCollector) snapshot() ClientStats {
	return ClientStats{
		Gets:        atomic.LoadUint64(&c.stats.Gets),
		Sets:        atomic.LoadUint64(&c.stats.Sets),
		Infos:       atomic.LoadUint64(&c.stats.Infos),
		Accesses:    atomic.LoadUint64(&c.stats.Accesses),
		Opens:       atomic.LoadUint64(&c.stats.Opens),
		Replies:     atomic.LoadUint64(&c.stats.Replies),
		Truncations: atomic.LoadUint64(&c.stats.Truncations),
		Errors:      atomic.LoadUint64(&c.stats.Errors),
	}
}
