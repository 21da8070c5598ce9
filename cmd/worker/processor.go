package main

import (
	"context"
	"fmt"

	zlog "github.com/rs/zerolog/log"

	"github.com/raminsh/filmlog/internal/domain/movies/repository"
	"github.com/raminsh/filmlog/internal/platform/queue"
)

// EventProcessor drains rating events and recomputes the affected
// movie's aggregate score columns.
type EventProcessor struct {
	queueService *queue.RedisQueue
	movieRepo    *repository.MovieRepository
}

func NewEventProcessor(queueService *queue.RedisQueue, movieRepo *repository.MovieRepository) *EventProcessor {
	return &EventProcessor{
		queueService: queueService,
		movieRepo:    movieRepo,
	}
}

// Start consumes events until the context is cancelled. Individual event
// failures are logged and skipped so one bad movie UUID cannot stall the
// queue.
func (p *EventProcessor) Start(ctx context.Context) error {
	zlog.Info().Msg("Event processor started, waiting for rating events...")

	for {
		select {
		case <-ctx.Done():
			zlog.Info().Msg("Event processor stopped")
			return ctx.Err()
		default:
			event, err := p.queueService.ConsumeRatingEvent(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				zlog.Error().Err(err).Msg("Error consuming rating event")
				continue
			}

			if event == nil {
				// No event available (timeout), continue
				continue
			}

			if err := p.processEvent(ctx, event); err != nil {
				zlog.Error().Err(err).Str("movie_uuid", event.MovieUUID).Msg("Error processing rating event")
			}
		}
	}
}

func (p *EventProcessor) processEvent(ctx context.Context, event *queue.RatingEvent) error {
	if event.MovieUUID == "" {
		return fmt.Errorf("rating event missing movie uuid")
	}

	if err := p.movieRepo.RefreshRatingAggregates(ctx, event.MovieUUID); err != nil {
		return fmt.Errorf("failed to refresh rating aggregates: %w", err)
	}

	zlog.Info().Str("movie_uuid", event.MovieUUID).Msg("Rating aggregates refreshed")
	return nil
}
