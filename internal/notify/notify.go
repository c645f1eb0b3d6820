// Package notify implements the notification surface: listing a user's
// notifications and marking unread ones read when the surface is opened.
package notify

import (
	"context"
	"log/slog"

	"github.com/starward/starward/internal/api"
)

// Client is the slice of the API facade the service needs.
type Client interface {
	Notifications(ctx context.Context) ([]api.Notification, error)
	MarkNotificationRead(ctx context.Context, id int) error
}

// Service fetches and acknowledges notifications.
type Service struct {
	client Client
}

// NewService creates a Service over the given client.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// List returns the user's notifications without acknowledging anything.
func (s *Service) List(ctx context.Context) ([]api.Notification, error) {
	return s.client.Notifications(ctx)
}

// Open fetches the notifications and issues one mark-read call per unread
// item, sequentially. A failed mark-read is logged and skipped; it never
// fails the open. Returns the notifications as fetched and how many were
// successfully acknowledged.
func (s *Service) Open(ctx context.Context) ([]api.Notification, int, error) {
	items, err := s.client.Notifications(ctx)
	if err != nil {
		return nil, 0, err
	}

	marked := 0
	for _, n := range items {
		if n.IsRead {
			continue
		}
		if err := s.client.MarkNotificationRead(ctx, n.ID); err != nil {
			slog.Debug("mark-read failed", "notification_id", n.ID, "error", err)
			continue
		}
		marked++
	}
	return items, marked, nil
}
