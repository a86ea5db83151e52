package services

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// ExpirySweeper periodically expires idle sessions. Inactivity is handled
// as a background sweep rather than a per-question timer: each run asks
// the flow controller to expire anything idle for longer than the
// configured window.
type ExpirySweeper struct {
	service  AssessmentService
	window   time.Duration
	interval time.Duration
	cron     *cron.Cron
}

// NewExpirySweeper builds a sweeper over the flow controller. window is
// the inactivity limit; interval is the sweep cadence.
func NewExpirySweeper(service AssessmentService, window, interval time.Duration) *ExpirySweeper {
	return &ExpirySweeper{
		service:  service,
		window:   window,
		interval: interval,
		cron:     cron.New(),
	}
}

// Start schedules the sweep and begins running it in the background.
func (w *ExpirySweeper) Start() error {
	spec := fmt.Sprintf("@every %s", w.interval)
	if _, err := w.cron.AddFunc(spec, w.sweep); err != nil {
		return fmt.Errorf("failed to schedule expiry sweep (%s): %w", spec, err)
	}
	w.cron.Start()
	log.Printf("INFO: [ExpirySweeper] Started: expiring sessions idle for over %s, sweeping every %s.", w.window, w.interval)
	return nil
}

// Stop halts the background sweep. Already-running sweeps finish.
func (w *ExpirySweeper) Stop() {
	w.cron.Stop()
	log.Println("INFO: [ExpirySweeper] Stopped.")
}

func (w *ExpirySweeper) sweep() {
	if n := w.service.ExpireStaleSessions(w.window); n > 0 {
		log.Printf("INFO: [ExpirySweeper] Expired %d idle session(s).", n)
	}
}
