package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// Publisher fans application events out to interested consumers.
type Publisher interface {
	Publish(topic, key string, envelope *Envelope)
}

// KafkaPublisher writes envelopes to Kafka asynchronously through a buffered
// inbox so request handlers never block on the broker.
type KafkaPublisher struct {
	writer *kafka.Writer
	inbox  chan kafka.Message
	done   chan struct{}
	logger *slog.Logger
}

// NewKafkaPublisher constructs a publisher for the given brokers.
func NewKafkaPublisher(brokers []string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
		inbox:  make(chan kafka.Message, 256),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Start launches the write loop. On shutdown the loop drains the inbox before
// closing the writer.
func (p *KafkaPublisher) Start(ctx context.Context) {
	go func() {
		defer close(p.done)
		for {
			select {
			case <-ctx.Done():
				for {
					select {
					case m := <-p.inbox:
						p.write(m)
					default:
						_ = p.writer.Close()
						return
					}
				}
			case m := <-p.inbox:
				p.write(m)
			}
		}
	}()
}

// Wait blocks until the write loop has exited.
func (p *KafkaPublisher) Wait() {
	<-p.done
}

func (p *KafkaPublisher) write(m kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, m); err != nil {
		p.logger.Error("publish event failed",
			slog.String("topic", m.Topic),
			slog.String("error", err.Error()))
	}
}

// Publish enqueues an envelope; a full inbox drops the event with a log line
// rather than stalling the caller.
func (p *KafkaPublisher) Publish(topic, key string, envelope *Envelope) {
	payload, err := json.Marshal(envelope)
	if err != nil {
		p.logger.Error("marshal event failed", slog.String("error", err.Error()))
		return
	}
	msg := kafka.Message{Topic: topic, Key: []byte(key), Value: payload, Time: time.Now()}
	select {
	case p.inbox <- msg:
	default:
		p.logger.Warn("event inbox full, dropping event", slog.String("topic", topic))
	}
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(string, string, *Envelope) {}
