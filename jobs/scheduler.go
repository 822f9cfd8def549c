package jobs

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/arvind-722/ProfitNest/services"
	"github.com/arvind-722/ProfitNest/utils"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// AccrualScheduler runs the daily profit settlement sweep on a cron
// schedule. One scheduler per process; the sweep itself is idempotent, so
// overlapping processes are safe, but within a process runs never overlap.
type AccrualScheduler struct {
	db       *gorm.DB
	cron     *cron.Cron
	schedule string
	running  int32
}

// NewAccrualScheduler creates a scheduler with the given cron schedule
// (standard 5-field syntax, e.g. "0 1 * * *" for 01:00 daily)
func NewAccrualScheduler(db *gorm.DB, schedule string) *AccrualScheduler {
	return &AccrualScheduler{
		db:       db,
		cron:     cron.New(),
		schedule: schedule,
	}
}

// Start registers the sweep job and starts the cron loop
func (s *AccrualScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.runSweep)
	if err != nil {
		return fmt.Errorf("invalid accrual sweep schedule %q: %v", s.schedule, err)
	}

	s.cron.Start()
	utils.LogInfo("Accrual scheduler started with schedule %q", s.schedule)
	return nil
}

// Stop halts the cron loop; a sweep in flight finishes
func (s *AccrualScheduler) Stop() {
	s.cron.Stop()
	utils.LogInfo("Accrual scheduler stopped")
}

func (s *AccrualScheduler) runSweep() {
	// Skip the tick if the previous sweep is still catching up
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		utils.LogInfo("Skipping accrual sweep tick: previous sweep still running")
		return
	}
	defer atomic.StoreInt32(&s.running, 0)

	result, err := services.RunAccrualSweep(s.db, time.Now().UTC())
	if err != nil {
		// Never fatal: the checkpoint model makes the next tick resume
		// exactly where this one stopped
		utils.LogError("Accrual sweep failed: %v", err)
		return
	}
	if result.Errors > 0 || result.Skipped > 0 {
		utils.LogError("Accrual sweep finished with %d errors, %d skipped (will retry next tick)",
			result.Errors, result.Skipped)
	}
}
