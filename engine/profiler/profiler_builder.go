package profiler

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-canvas/engine/renderer"
)

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithUpdateInterval sets how often statistics are reported.
//
// Parameters:
//   - d: the reporting interval; values < 0 are treated as 0 (report every tick)
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithUpdateInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.updateInterval = max(d, 0)
	}
}

// WithStats adds texture upload counters to every report.
//
// Parameters:
//   - stats: the counters, usually Renderer.Storage().Stats()
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithStats(stats *renderer.Stats) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.stats = stats
	}
}

// WithLogger sends reports to l instead of common.Logger.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithLogger(l *slog.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.logger = l
	}
}
