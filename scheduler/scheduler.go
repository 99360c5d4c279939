package scheduler

import (
	"github.com/wishlistapp/apiv1/dbhelper"
	"github.com/wishlistapp/apiv1/utils"
	"context"
	"log"
	"time"
)

// Start launches the maintenance loops: tracker replenishment every 30
// seconds and the daily sweep (stale trackers, light-abuser forgiveness,
// error-log retention). Both loops stop when ctx is cancelled. Jobs run
// concurrently with live traffic; their predicates are monotonic, so a
// row mutated by a request between job runs is skipped, not corrupted.
func Start(ctx context.Context) {
	go replenishLoop(ctx)
	go dailyLoop(ctx)
}

func replenishLoop(ctx context.Context) {
	ticker := time.NewTicker(utils.REPLENISH_INTERVAL_SECONDS * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("[scheduler] replenish loop stopping")
			return
		case <-ticker.C:
			runJob("replenish rate trackers", dbhelper.ReplenishRateTrackers)
		}
	}
}

func dailyLoop(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("[scheduler] daily loop stopping")
			return
		case <-ticker.C:
			RunDailySweep()
		}
	}
}

// RunDailySweep runs every daily job once. A failing job logs and moves
// on; it never stops the other jobs or the loop.
func RunDailySweep() {
	runJob("delete stale rate trackers", dbhelper.DeleteStaleRateTrackers)
	runJob("forgive light abusers", dbhelper.ForgiveLightAbusers)
	runJob("prune unexpected errors", dbhelper.PruneUnexpectedErrors)
}

func runJob(name string, job func() (int64, error)) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[scheduler] %s panicked: %v", name, rec)
		}
	}()
	rows, err := job()
	if err != nil {
		log.Printf("[scheduler] %s failed: %v", name, err)
		return
	}
	if rows > 0 {
		log.Printf("[scheduler] %s touched %d rows", name, rows)
	}
}
