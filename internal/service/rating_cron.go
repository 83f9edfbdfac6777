package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/sizzer/salon-booking/internal/repository"
)

// RatingRefresher periodically recomputes every salon's aggregate rating
// from its reviews so salon listings stay close to live review data.
type RatingRefresher struct {
	salons *repository.SalonRepo
	cron   *cron.Cron
	spec   string
}

// NewRatingRefresher builds the job with a cron spec, e.g. "@every 10m".
func NewRatingRefresher(salons *repository.SalonRepo, spec string) *RatingRefresher {
	if spec == "" {
		spec = "@every 10m"
	}
	return &RatingRefresher{
		salons: salons,
		cron:   cron.New(),
		spec:   spec,
	}
}

// Start schedules the job and runs one refresh immediately so ratings are
// current right after boot.
func (r *RatingRefresher) Start() error {
	if _, err := r.cron.AddFunc(r.spec, r.refresh); err != nil {
		return err
	}
	go r.refresh()
	r.cron.Start()
	return nil
}

// Stop halts the scheduler. Running jobs finish first.
func (r *RatingRefresher) Stop() {
	<-r.cron.Stop().Done()
}

func (r *RatingRefresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := r.salons.RefreshRatings(ctx)
	if err != nil {
		log.Error().Err(err).Msg("rating refresh failed")
		return
	}
	log.Debug().Int64("salons", n).Msg("salon ratings refreshed")
}
