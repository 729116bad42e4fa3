package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Mandalorian7773/Collabie/internal/queue"
)

const sweepInterval = time.Hour

// StartScheduler enqueues the periodic maintenance jobs. Currently only the
// stale-call sweep.
func (wp *WorkerPool) StartScheduler(ctx context.Context, producer queue.Producer) {
	wp.wg.Add(1)
	go func() {
		defer wp.wg.Done()

		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		log.Info().Msg("Job scheduler started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("Job scheduler stopping")
				return
			case <-ticker.C:
				now := time.Now()
				job := queue.Job{
					ID:        uuid.New().String(),
					Type:      queue.JobSweepStaleCalls,
					Priority:  5,
					MaxRetry:  1,
					CreatedAt: now.Unix(),
					ExpireAt:  now.Add(sweepInterval).Unix(),
				}
				if err := producer.Enqueue(ctx, job); err != nil {
					log.Error().Err(err).Msg("Failed to enqueue stale call sweep")
				}
			}
		}
	}()
}
