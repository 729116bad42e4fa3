package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Mandalorian7773/Collabie/internal/metrics"
	"github.com/Mandalorian7773/Collabie/internal/queue"
	call_repo "github.com/Mandalorian7773/Collabie/internal/repo/call"
	user_repo "github.com/Mandalorian7773/Collabie/internal/repo/user"
	"github.com/Mandalorian7773/Collabie/state"
)

const (
	dlqKey = "collabie:jobs:dlq"

	dlqCollection = "dlq_jobs"
)

type WorkerPool struct {
	AppState   *state.AppState
	WorkerNum  int
	JobChannel chan string
	wg         sync.WaitGroup

	handler *JobHandler
}

func NewWorkerPool(appState *state.AppState, workerNum int) *WorkerPool {
	return &WorkerPool{
		AppState:   appState,
		WorkerNum:  workerNum,
		JobChannel: make(chan string, 100),
		handler: &JobHandler{
			AppState: appState,
			UserRepo: user_repo.NewUserRepo(appState),
			CallRepo: call_repo.NewCallRepo(appState),
		},
	}
}

func (wp *WorkerPool) Start(ctx context.Context) {
	log.Info().Msgf("Starting worker pool with %d workers", wp.WorkerNum)

	for i := 0; i < wp.WorkerNum; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}

	go func() {
		defer close(wp.JobChannel)
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("Stopping worker pool")
				return
			default:
				now := float64(time.Now().Unix())
				result, err := wp.AppState.Redis.ZRangeByScore(ctx, queue.QueueKey, &redis.ZRangeBy{
					Min:    "-inf",
					Max:    fmt.Sprintf("%f", now),
					Offset: 0,
					Count:  1,
				}).Result()

				if err != nil {
					if err != redis.Nil {
						log.Error().Err(err).Msg("Worker: failed to pop job")
					}
					continue
				}

				if len(result) == 0 {
					time.Sleep(1 * time.Second)
					continue
				}

				payload := result[0]
				wp.AppState.Redis.ZRem(ctx, queue.QueueKey, payload)
				wp.JobChannel <- payload
			}
		}
	}()
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()
	log.Info().Msgf("Worker %d started", id)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("Worker %d stopping", id)
			return
		case payload, ok := <-wp.JobChannel:
			if !ok {
				return
			}

			var job queue.Job
			if err := json.Unmarshal([]byte(payload), &job); err != nil {
				log.Warn().Err(err).Msgf("Worker %d: failed to unmarshal job payload", id)
				continue
			}

			if err := wp.handler.Handle(ctx, job); err != nil {
				metrics.JobsProcessedTotal.WithLabelValues(job.Type, "error").Inc()
				job.Retry++
				job.ErrorMsg = err.Error()

				now := time.Now().Unix()
				if job.Retry >= job.MaxRetry || now > job.ExpireAt {
					log.Error().Str("job_id", job.ID).Msg("Job moved to DLQ")
					dlqBytes, _ := json.Marshal(job)
					wp.AppState.Redis.RPush(ctx, dlqKey, dlqBytes)

					sendDLA(job)
				} else {
					// exponential backoff
					delay := time.Duration(5*(1<<job.Retry)) * time.Second
					retryAt := time.Now().Add(delay).Unix()

					jobBytes, _ := json.Marshal(job)
					wp.AppState.Redis.ZAdd(ctx, queue.QueueKey, redis.Z{
						Score:  float64(job.Priority)*1e10 + float64(retryAt),
						Member: jobBytes,
					})
					log.Warn().Str("job_id", job.ID).Msgf("Retrying in %v seconds (%d/%d)", delay.Seconds(), job.Retry, job.MaxRetry)
				}
			} else {
				metrics.JobsProcessedTotal.WithLabelValues(job.Type, "ok").Inc()
			}
		}
	}
}

var dlaCache = make(map[string]time.Time)
var dlaMu sync.Mutex

// sendDLA throttles dead-letter alerts to one per job type per 10 minutes.
func sendDLA(job queue.Job) {
	dlaMu.Lock()
	defer dlaMu.Unlock()

	now := time.Now()
	lastAlert, ok := dlaCache[job.Type]
	if ok && now.Sub(lastAlert) < 10*time.Minute {
		return
	}

	log.Error().Str("job_id", job.ID).Str("type", job.Type).Str("error", job.ErrorMsg).Msg("Dead Letter Alert: job failed permanently")

	dlaCache[job.Type] = now
}

func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
	log.Info().Msg("All workers have stopped")
}
