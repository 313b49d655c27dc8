// File: /queue/publisher.go
package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
)

// TopicPostCreate carries post-creation jobs from the HTTP layer to the
// worker.
const TopicPostCreate = "posts.create"

// PostJob is the payload enqueued when a post is created. It carries no
// idempotency key, so a redelivered job creates a duplicate post.
type PostJob struct {
	AuthorID    string `json:"author_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Publisher wraps a Watermill publisher for the post-creation topic.
// EnqueuePost returns once the job is durably enqueued, before the post
// exists.
type Publisher struct {
	publisher message.Publisher
}

// NewPublisher wraps an existing Watermill publisher. Used by tests with an
// in-process pub/sub.
func NewPublisher(publisher message.Publisher) *Publisher {
	return &Publisher{publisher: publisher}
}

// NewNATSPublisher connects a JetStream-backed publisher.
func NewNATSPublisher(url string, logger watermill.LoggerAdapter) (*Publisher, error) {
	if logger == nil {
		logger = watermill.NewStdLogger(false, false)
	}

	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(time.Second),
		natsgo.DisconnectErrHandler(func(nc *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{
				"url": nc.ConnectedUrl(),
			})
		}),
	}

	wmConfig := wmNats.PublisherConfig{
		URL:         url,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: true,
		},
	}

	pub, err := wmNats.NewPublisher(wmConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}

	return &Publisher{publisher: pub}, nil
}

// EnqueuePost publishes a post-creation job.
func (p *Publisher) EnqueuePost(job PostJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal post job: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := p.publisher.Publish(TopicPostCreate, msg); err != nil {
		return fmt.Errorf("enqueue post job: %w", err)
	}
	return nil
}

// Close releases the underlying publisher.
func (p *Publisher) Close() error {
	return p.publisher.Close()
}
