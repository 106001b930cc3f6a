package render

import (
	"log/slog"
	"sync"
)

// progress counts finished rows and forwards each update to report.
// Calls to report are serialized.
type progress struct {
	mu     sync.Mutex
	done   int
	total  int
	report func(done, total int)
}

func newProgress(total int, report func(done, total int)) *progress {
	return &progress{total: total, report: report}
}

func (p *progress) rowDone() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	if p.report != nil {
		p.report(p.done, p.total)
	}
}

// LogMilestones returns a progress callback that logs every step percent.
func LogMilestones(logger *slog.Logger, step int) func(done, total int) {
	if step <= 0 {
		step = 10
	}
	milestone := step
	return func(done, total int) {
		if total <= 0 {
			return
		}
		percent := done * 100 / total
		if percent < milestone && done < total {
			return
		}
		for milestone <= percent {
			milestone += step
		}
		logger.Info("progress", "percent", percent, "rows", done, "total", total)
	}
}
