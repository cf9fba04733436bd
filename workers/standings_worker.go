package workers

import (
	"context"
	"log"
	"time"

	"fairway-pickem/services"
)

// PollStandings periodically re-runs the full standings aggregation.
// The engine already recomputes after every result ingestion; this loop
// is the safety net that heals totals if an ingestion died between
// scoring and aggregation, or if a pick was corrected by hand. The
// recomputation is a complete overwrite, so running it again is always
// harmless.
func PollStandings(ctx context.Context, scoring *services.ScoringService, pollInterval time.Duration) {
	log.Println("Starting standings reconciliation loop...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Standings reconciliation stopped.")
			return
		case <-ticker.C:
			start := time.Now()
			if err := scoring.RecomputeStandings(); err != nil {
				log.Printf("[Reconcile] standings recompute failed: %v", err)
				continue
			}
			log.Printf("[Reconcile] standings recomputed in %s", time.Since(start).Round(time.Millisecond))
		}
	}
}
