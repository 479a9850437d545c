package converter

import (
	"fmt"
	"sync"
	"time"
)

// ProgressTracker tracks progress of a conversion run
type ProgressTracker struct {
	processed  int
	converted  int
	skipped    int
	errors     int
	totalFiles int
	ticker     *time.Ticker
	done       chan bool
	mu         sync.Mutex
}

// NewProgressTracker initializes the progress tracker
func NewProgressTracker(totalFiles int) *ProgressTracker {
	tracker := &ProgressTracker{
		ticker:     time.NewTicker(500 * time.Millisecond),
		done:       make(chan bool),
		totalFiles: totalFiles,
	}

	// Start progress display goroutine
	go tracker.displayProgress()

	return tracker
}

// displayProgress shows the progress periodically
func (p *ProgressTracker) displayProgress() {
	for {
		select {
		case <-p.done:
			return
		case <-p.ticker.C:
			p.mu.Lock()
			if p.errors > 0 {
				fmt.Printf("\rProgress: %d/%d (Converted: %d, Skipped: %d, Errors: %d)",
					p.processed, p.totalFiles, p.converted, p.skipped, p.errors)
			} else {
				fmt.Printf("\rProgress: %d/%d (Converted: %d, Skipped: %d)",
					p.processed, p.totalFiles, p.converted, p.skipped)
			}
			p.mu.Unlock()
		}
	}
}

// Record updates the tracker state with one document's result
func (p *ProgressTracker) Record(res fileResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processed++
	if res.err != nil {
		p.errors++
		return
	}
	p.converted += res.outcome.ConvertedCount
	p.skipped += res.outcome.SkippedCount
}

// Stop ends the progress tracking
func (p *ProgressTracker) Stop() {
	p.ticker.Stop()
	p.done <- true
}
