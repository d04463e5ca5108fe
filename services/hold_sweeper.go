package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// HoldSweeper periodically expires pending holds whose TTL has passed.
type HoldSweeper struct {
	scheduler    gocron.Scheduler
	availability *AvailabilityService
}

func NewHoldSweeper(availability *AvailabilityService, interval time.Duration) (*HoldSweeper, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("init scheduler: %w", err)
	}
	sw := &HoldSweeper{scheduler: sched, availability: availability}

	j, err := sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(sw.Sweep),
		gocron.WithName("expire-holds"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("schedule expire-holds: %w", err)
	}
	log.Printf("Job: %s %s every %s", j.ID().String(), j.Name(), interval)
	return sw, nil
}

func (sw *HoldSweeper) Start() {
	sw.scheduler.Start()
}

func (sw *HoldSweeper) Shutdown() error {
	return sw.scheduler.Shutdown()
}

// Sweep runs one expiry pass.
func (sw *HoldSweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := sw.availability.ExpireStaleHolds(ctx)
	if err != nil {
		log.Printf("❌ [HOLDS] %v", err)
		return
	}
	if n > 0 {
		log.Printf("[HOLDS] expired %d pending hold(s)", n)
	}
}
