// internal/notification/push.go

package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type PushSender interface {
	SendPush(ctx context.Context, msg *PushMessage) error
}

// FCMPushSender implements PushSender using Firebase Cloud Messaging
type FCMPushSender struct {
	client *messaging.Client
}

// NewFCMPushSender initializes Firebase from a credentials file or, when the
// path is empty, from inline JSON.
func NewFCMPushSender(ctx context.Context, credentialsPath, credentialsJSON string) (*FCMPushSender, error) {
	var opt option.ClientOption
	switch {
	case credentialsPath != "":
		opt = option.WithCredentialsFile(credentialsPath)
	case credentialsJSON != "":
		opt = option.WithCredentialsJSON([]byte(credentialsJSON))
	default:
		return nil, errors.New("firebase credentials are not configured")
	}

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}
	return &FCMPushSender{client: client}, nil
}

func (s *FCMPushSender) SendPush(ctx context.Context, msg *PushMessage) error {
	message := &messaging.Message{
		Token: msg.Token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{"apns-priority": "10"},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{Title: msg.Title, Body: msg.Body},
					Sound: "default",
				},
			},
		},
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		return fmt.Errorf("failed to send push notification: %w", err)
	}
	return nil
}

type MockPushSender struct {
	mu   sync.Mutex
	Sent []PushMessage
}

func (m *MockPushSender) SendPush(_ context.Context, msg *PushMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, *msg)
	return nil
}

func (m *MockPushSender) Messages() []PushMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PushMessage(nil), m.Sent...)
}
