package sweeper

import (
	"context"
	"log"
	"time"

	ucReservation "github.com/salonlink/salon-scheduler/internal/usecase/reservation"
	ucShop "github.com/salonlink/salon-scheduler/internal/usecase/shop"
)

// Sweeper drives the periodic jobs: completing past-due reservations and
// rebuilding the popular-shop ranking. It is the only place that reads
// the wall clock; the jobs themselves take asOf explicitly.
type Sweeper struct {
	interval time.Duration
	sweep    *ucReservation.SweepExpiredReservations
	ranking  *ucShop.RecomputePopularShops
}

func New(
	interval time.Duration,
	sweep *ucReservation.SweepExpiredReservations,
	ranking *ucShop.RecomputePopularShops,
) *Sweeper {
	return &Sweeper{
		interval: interval,
		sweep:    sweep,
		ranking:  ranking,
	}
}

// Start blocks until ctx is cancelled. Runs once immediately so a fresh
// deployment does not wait a full interval for its first pass.
func (s *Sweeper) Start(ctx context.Context) {
	log.Printf("sweeper started, interval %s", s.interval)

	s.run(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("sweeper stopped")
			return
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *Sweeper) run(ctx context.Context) {
	asOf := time.Now()

	count, err := s.sweep.Execute(ctx, asOf)
	if err != nil {
		log.Println("sweep error:", err)
	} else if count > 0 {
		log.Printf("sweep completed %d reservations", count)
	}

	if err := s.ranking.Execute(ctx, asOf); err != nil {
		log.Println("ranking recompute error:", err)
	}
}
