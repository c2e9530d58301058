package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"cloud.google.com/go/pubsub"
)

// Notification represents Gmail Pub/Sub notification
type Notification struct {
	EmailAddress string `json:"emailAddress"`
	HistoryID    uint64 `json:"historyId"`
}

// Subscriber handles Pub/Sub messages one at a time.
type Subscriber struct {
	client         *pubsub.Client
	subscriptionID string
}

// NewSubscriber creates a new Pub/Sub subscriber
func NewSubscriber(ctx context.Context, projectID, subscriptionID string) (*Subscriber, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}

	return &Subscriber{
		client:         client,
		subscriptionID: subscriptionID,
	}, nil
}

// Listen blocks until ctx is done, calling handler for each notification.
// Notifications are not deduplicated.
func (s *Subscriber) Listen(ctx context.Context, handler func(ctx context.Context, n Notification)) error {
	sub := s.client.Subscription(s.subscriptionID)
	sub.ReceiveSettings.MaxOutstandingMessages = 1
	sub.ReceiveSettings.NumGoroutines = 1

	log.Println("Pub/Sub listener started...")

	return sub.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
		notification, err := parseNotification(m.Data)
		if err != nil {
			log.Printf("Parse notification error: %v", err)
			m.Ack()
			return
		}

		log.Printf("New notification - %s (historyID: %d)", notification.EmailAddress, notification.HistoryID)

		handler(ctx, *notification)
		m.Ack()
	})
}

// Close closes the Pub/Sub client
func (s *Subscriber) Close() error {
	return s.client.Close()
}

func parseNotification(data []byte) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("unmarshal notification: %w", err)
	}
	if n.HistoryID == 0 {
		return nil, fmt.Errorf("notification without historyId")
	}
	return &n, nil
}
