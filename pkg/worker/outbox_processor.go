package worker

import (
	"context"
	"time"

	"github.com/medisync/claims-api/internal/repository"
	"github.com/medisync/claims-api/pkg/logger"
	"github.com/medisync/claims-api/pkg/messaging"
)

type OutboxProcessorConfig struct {
	BatchSize    int
	PollInterval time.Duration
}

// OutboxProcessor drains pending outbox events to the message broker.
type OutboxProcessor struct {
	repo   repository.OutboxRepository
	broker messaging.Broker
	config OutboxProcessorConfig
	logger *logger.Logger
}

func NewOutboxProcessor(
	repo repository.OutboxRepository,
	broker messaging.Broker,
	config OutboxProcessorConfig,
	logger *logger.Logger,
) *OutboxProcessor {
	if config.BatchSize <= 0 {
		config.BatchSize = 50
	}
	if config.PollInterval <= 0 {
		config.PollInterval = 5 * time.Second
	}
	return &OutboxProcessor{
		repo:   repo,
		broker: broker,
		config: config,
		logger: logger,
	}
}

func (p *OutboxProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	p.logger.Info("starting outbox processor")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("shutting down outbox processor")
			return
		case <-ticker.C:
			if err := p.ProcessEvents(ctx); err != nil {
				p.logger.Error(err, "failed to process outbox events")
			}
		}
	}
}

// ProcessEvents publishes one batch of pending events. Publish failures
// mark the event failed and move on; the batch never aborts midway.
func (p *OutboxProcessor) ProcessEvents(ctx context.Context) error {
	events, err := p.repo.GetPending(ctx, p.config.BatchSize)
	if err != nil {
		return err
	}

	for _, event := range events {
		if err := p.broker.Publish(ctx, event.EventType, event.Payload); err != nil {
			p.logger.Error(err, "failed to publish event", "event_id", event.ID.String())
			if markErr := p.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				p.logger.Error(markErr, "failed to mark event failed", "event_id", event.ID.String())
			}
			continue
		}
		if err := p.repo.MarkProcessed(ctx, event.ID); err != nil {
			p.logger.Error(err, "failed to mark event processed", "event_id", event.ID.String())
		}
	}
	return nil
}
