package experiment

import (
	"log/slog"

	"github.com/san-kum/phasesync/internal/metrics"
	"github.com/san-kum/phasesync/internal/sim"
)

const progressParts = 10

// progressLogger logs the phase spread and coherence at every tenth of
// the run, plus the first and last step. It observes, it never alters.
type progressLogger struct {
	logger *slog.Logger
	total  int
	every  int
	seen   int
}

func newProgressLogger(logger *slog.Logger, steps int) *progressLogger {
	return &progressLogger{
		logger: logger,
		total:  steps,
		every:  max(steps/progressParts, 1),
	}
}

func (p *progressLogger) OnStep(x sim.State, t float64) {
	if t == 0 {
		p.seen = 0
	}
	k := p.seen
	p.seen++
	if k%p.every != 0 && k != p.total {
		return
	}
	p.logger.Debug("progress",
		slog.Int("step", k),
		slog.Int("of", p.total),
		slog.Float64("t", t),
		slog.Float64("spread", metrics.PhaseSpread(x)),
		slog.Float64("coherence", metrics.OrderParameter(x)),
	)
}
