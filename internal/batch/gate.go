// Package batch gates scheduled report regeneration behind a cron
// expression, for evaluators who leave `benchscore aggregate --cron` running
// while scoring sessions accumulate.
package batch

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Gate tracks when a scheduled aggregation is due
type Gate struct {
	schedule cron.Schedule
	lastRun  time.Time
	running  bool
	mu       sync.Mutex
}

// ParseCron parses a standard five-field cron expression
func ParseCron(expr string) (cron.Schedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	return parser.Parse(expr)
}

// NewGate creates a gate from a cron expression
func NewGate(expr string) (*Gate, error) {
	sched, err := ParseCron(expr)
	if err != nil {
		return nil, err
	}
	return &Gate{schedule: sched}, nil
}

// NextRun returns the next due time after now
func (g *Gate) NextRun(now time.Time) time.Time {
	return g.schedule.Next(now)
}

// ShouldRun reports whether an aggregation is due. A run already in flight
// suppresses the next trigger.
func (g *Gate) ShouldRun(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.running {
		return false
	}

	last := g.lastRun
	if last.IsZero() {
		last = now.Add(-24 * time.Hour)
	}
	return now.After(g.schedule.Next(last))
}

// MarkRunning marks an aggregation as in flight
func (g *Gate) MarkRunning() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.running = true
}

// MarkComplete records a finished aggregation
func (g *Gate) MarkComplete(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.running = false
	g.lastRun = now
}

// Start polls once a minute and invokes run when the schedule fires.
// It returns when stop is closed.
func (g *Gate) Start(run func() error, stop <-chan struct{}) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			if !g.ShouldRun(now) {
				continue
			}
			g.MarkRunning()
			_ = run()
			g.MarkComplete(time.Now())
		}
	}
}
