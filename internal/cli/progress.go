package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tabuclique/pkg/clique"
	"github.com/matzehuels/tabuclique/pkg/pipeline"
)

// progress times one command step and logs its completion.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time: "Verified clique of size 4 (3ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// heartbeat is the interval between "still searching" log lines.
const heartbeat = 10 * time.Second

// searchReporter logs the progress of a search: improvements of the best
// clique at info level, every restart at debug level, and a periodic
// heartbeat while nothing improves.
//
// The reporter is not safe for concurrent use; the searcher calls it from
// its own goroutine only.
type searchReporter struct {
	logger   *log.Logger
	prog     *progress
	instance string
	lastBest int
	lastLog  time.Time
	interval time.Duration
}

func newSearchReporter(ctx context.Context, instance string) *searchReporter {
	logger := loggerFromContext(ctx)
	return &searchReporter{
		logger:   logger,
		prog:     newProgress(logger),
		instance: instance,
		lastLog:  time.Now(),
		interval: heartbeat,
	}
}

// onRestart is installed as clique.Options.Progress.
func (r *searchReporter) onRestart(st clique.RestartStats) {
	r.logger.Debug("restart",
		"instance", r.instance,
		"restart", st.Restart+1,
		"seed_size", st.SeedSize,
		"size", st.Size,
		"moves", st.Moves,
		"swaps", st.Swaps)

	switch {
	case st.Improved && r.lastBest == 0:
		r.logger.Infof("Initial: clique of size %d (restart %d/%d)", st.Best, st.Restart+1, st.Restarts)
		r.lastLog = time.Now()
	case st.Improved:
		r.logger.Infof("Improved: clique of size %d (↑%d, restart %d/%d)", st.Best, st.Best-r.lastBest, st.Restart+1, st.Restarts)
		r.lastLog = time.Now()
	case time.Since(r.lastLog) >= r.interval:
		r.logger.Infof("Searching... restart %d/%d, best %d", st.Restart+1, st.Restarts, st.Best)
		r.lastLog = time.Now()
	}
	r.lastBest = st.Best
}

// finish logs the outcome of a pipeline run.
func (r *searchReporter) finish(res *pipeline.Result) {
	if res.CacheHit {
		r.prog.done(fmt.Sprintf("Cached: clique of size %d", res.Search.Size))
		return
	}
	r.prog.done(fmt.Sprintf("Search complete: clique of size %d", res.Search.Size))
	r.logger.Infof("Best: %d (restarts: %d, moves: %d, swaps: %d)",
		res.Search.Size, res.Search.Restarts, res.Search.Moves, res.Search.Swaps)
	if !res.Verification.Valid {
		r.logger.Warn("Returned vertex set is not a clique", "reason", res.Verification.Reason)
	}
}
