package xpa

import (
	"sync"
	"testing"
)

func TestClientStatsCollector(t *testing.T) {
	c := newClientStatsCollector()

	stats := c.snapshot()
	if stats != (ClientStats{}) {
		t.Errorf("fresh collector snapshot = %+v, want zero", stats)
	}

	c.recordGet()
	c.recordGet()
	c.recordSet()
	c.recordInfo()
	c.recordAccess()
	c.recordOpen()
	c.recordReplies(3, false)
	c.recordReplies(2, true)
	c.recordError()

	stats = c.snapshot()
	if stats.Gets != 2 {
		t.Errorf("Gets = %d, want 2", stats.Gets)
	}
	if stats.Sets != 1 {
		t.Errorf("Sets = %d, want 1", stats.Sets)
	}
	if stats.Infos != 1 {
		t.Errorf("Infos = %d, want 1", stats.Infos)
	}
	if stats.Accesses != 1 {
		t.Errorf("Accesses = %d, want 1", stats.Accesses)
	}
	if stats.Opens != 1 {
		t.Errorf("Opens = %d, want 1", stats.Opens)
	}
	if stats.Replies != 5 {
		t.Errorf("Replies = %d, want 5", stats.Replies)
	}
	if stats.Truncations != 1 {
		t.Errorf("Truncations = %d, want 1", stats.Truncations)
	}
	if stats.Errors != 1 {
		t.Errorf("Errors = %d, want 1", stats.Errors)
	}
}

func TestClientStatsSnapshotIsCopy(t *testing.T) {
	c := newClientStatsCollector()
	c.recordGet()

	before := c.snapshot()
	c.recordGet()

	if before.Gets != 1 {
		t.Errorf("snapshot changed after recording: Gets = %d", before.Gets)
	}
	if after := c.snapshot(); after.Gets != 2 {
		t.Errorf("Gets = %d, want 2", after.Gets)
	}
}

func TestClientStatsConcurrent(t *testing.T) {
	c := newClientStatsCollector()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.recordGet()
				c.recordReplies(1, false)
			}
		}()
	}
	wg.Wait()

	stats := c.snapshot()
	if stats.Gets != 400 {
		t.Errorf("Gets = %d, want 400", stats.Gets)
	}
	if stats.Replies != 400 {
		t.Errorf("Replies = %d, want 400", stats.Replies)
	}
}
