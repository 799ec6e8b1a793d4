package maintenance

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mentorstack/mentorhub/internal/app/system/timeouts"
)

// Worker fires the maintenance run once a day at a fixed wall-clock hour
// in a configured timezone.
type Worker struct {
	runner *Runner
	log    *zap.Logger
	hour   int
	loc    *time.Location
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewWorker creates the daily worker.
//
// Parameters:
//   - runner: the shared maintenance runner (also used by the cron endpoint)
//   - logger: zap logger for logging
//   - hour: local hour of day to fire (0-23)
//   - loc: timezone the hour is interpreted in
func NewWorker(runner *Runner, logger *zap.Logger, hour int, loc *time.Location) *Worker {
	if loc == nil {
		loc = time.UTC
	}
	return &Worker{
		runner: runner,
		log:    logger,
		hour:   hour,
		loc:    loc,
		stopCh: make(chan struct{}),
	}
}

// Start begins the background loop.
func (w *Worker) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("maintenance worker started",
		zap.Int("hour", w.hour),
		zap.String("timezone", w.loc.String()))
}

// Stop signals the worker to stop and waits for it to finish. A run in
// progress completes first.
func (w *Worker) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("maintenance worker stopped")
}

func (w *Worker) run() {
	defer w.wg.Done()

	for {
		wait := time.Until(w.nextFire(time.Now()))
		timer := time.NewTimer(wait)

		select {
		case <-w.stopCh:
			timer.Stop()
			return
		case <-timer.C:
			w.fire()
		}
	}
}

func (w *Worker) fire() {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Sweep())
	defer cancel()
	w.runner.Run(ctx, "worker")
}

// nextFire returns the next occurrence of the configured hour, strictly
// after now, in the worker's timezone.
func (w *Worker) nextFire(now time.Time) time.Time {
	local := now.In(w.loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), w.hour, 0, 0, 0, w.loc)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
