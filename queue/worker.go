// File: /queue/worker.go
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"

	"friendloop-api/models"
)

// PostCreator is the part of the post service the worker invokes.
type PostCreator interface {
	Create(authorID, title, description string) (*models.Post, error)
}

// Worker drains the post-creation topic. A job is acked once the post is
// persisted; on failure it is nacked so the transport redelivers it after
// its ack timeout. Redelivery of an already-persisted job creates a
// duplicate post since jobs carry no idempotency key.
type Worker struct {
	subscriber message.Subscriber
	posts      PostCreator
}

func NewWorker(subscriber message.Subscriber, posts PostCreator) *Worker {
	return &Worker{subscriber: subscriber, posts: posts}
}

// NewNATSSubscriber connects a durable JetStream subscriber for the worker.
func NewNATSSubscriber(url string, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	if logger == nil {
		logger = watermill.NewStdLogger(false, false)
	}

	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(time.Second),
		natsgo.DisconnectErrHandler(func(nc *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS subscriber disconnected", err, nil)
			}
		}),
	}

	wmConfig := wmNats.SubscriberConfig{
		URL:            url,
		AckWaitTimeout: 30 * time.Second,
		NatsOptions:    natsOpts,
		Unmarshaler:    &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: true,
			DurablePrefix: "friendloop-posts",
		},
	}

	sub, err := wmNats.NewSubscriber(wmConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill subscriber: %w", err)
	}
	return sub, nil
}

// Run consumes jobs until ctx is canceled or the subscription closes.
func (w *Worker) Run(ctx context.Context) error {
	messages, err := w.subscriber.Subscribe(ctx, TopicPostCreate)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", TopicPostCreate, err)
	}

	for msg := range messages {
		w.handle(msg)
	}
	return nil
}

func (w *Worker) handle(msg *message.Message) {
	var job PostJob
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		// Malformed payloads can never succeed; ack to drop them.
		log.Printf("Dropping malformed post job %s: %v", msg.UUID, err)
		msg.Ack()
		return
	}

	post, err := w.posts.Create(job.AuthorID, job.Title, job.Description)
	if err != nil {
		log.Printf("Failed to process post job %s: %v", msg.UUID, err)
		msg.Nack()
		return
	}

	log.Printf("Post %s created for user %s", post.ID, post.AuthorID)
	msg.Ack()
}
