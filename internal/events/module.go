package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/meatmarket/internal/config"
)

// Module wires the event publisher. Without brokers the publisher is a no-op.
var Module = fx.Options(
	fx.Provide(newPublisher),
)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newPublisher(p publisherParams) Publisher {
	if len(p.Config.KafkaBrokers) == 0 {
		p.Logger.Info("kafka brokers not set, event publishing disabled")
		return NoopPublisher{}
	}

	publisher := NewKafkaPublisher(p.Config.KafkaBrokers, p.Logger)
	runCtx, cancel := context.WithCancel(context.Background())
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			publisher.Start(runCtx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			publisher.Wait()
			return nil
		},
	})
	return publisher
}
