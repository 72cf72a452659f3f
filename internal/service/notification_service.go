package service

import (
	"context"
	"errors"
	"time"

	"murmur/internal/models"
	"murmur/internal/observability"
	"murmur/internal/repository"

	"github.com/google/uuid"
)

// NotificationEngine fans out response, quote and mention notifications
// and drives their read-state transitions.
type NotificationEngine struct {
	notificationRepo repository.NotificationRepository
	now              func() time.Time
}

// NewNotificationEngine returns a new NotificationEngine.
func NewNotificationEngine(notificationRepo repository.NotificationRepository) *NotificationEngine {
	return &NotificationEngine{
		notificationRepo: notificationRepo,
		now:              time.Now,
	}
}

// NotifyResponse notifies the target that their post received a
// response. Self-responses are suppressed and reported as not created.
func (e *NotificationEngine) NotifyResponse(ctx context.Context, post *models.Post, targetUUID string) (bool, error) {
	return e.notify(ctx, post, targetUUID, models.NotificationResponse)
}

// NotifyQuote notifies the target that their post was quoted.
func (e *NotificationEngine) NotifyQuote(ctx context.Context, post *models.Post, targetUUID string) (bool, error) {
	return e.notify(ctx, post, targetUUID, models.NotificationQuote)
}

func (e *NotificationEngine) notify(ctx context.Context, post *models.Post, targetUUID string, kind models.NotificationType) (bool, error) {
	if targetUUID == post.AuthorUUID {
		return false, nil
	}
	created, err := e.notificationRepo.Create(ctx, &models.Notification{
		UUID:         uuid.NewString(),
		Type:         kind,
		CreationDate: e.now(),
		PostUUID:     post.UUID,
		TargetUUID:   targetUUID,
	})
	if err != nil {
		return false, err
	}
	if created {
		observability.NotificationsCreated.WithLabelValues(string(kind)).Inc()
	}
	return created, nil
}

// NotifyMention notifies every distinct mentioned user, suppressing the
// post's author. Each target is an independent write: a store failure
// partway through leaves earlier notifications in place and returns the
// count created so far alongside the error.
func (e *NotificationEngine) NotifyMention(ctx context.Context, post *models.Post, targetUUIDs []string) (int, error) {
	seen := make(map[string]struct{}, len(targetUUIDs))
	count := 0
	for _, target := range targetUUIDs {
		if _, dup := seen[target]; dup {
			continue
		}
		seen[target] = struct{}{}

		created, err := e.notify(ctx, post, target, models.NotificationMention)
		if err != nil {
			return count, err
		}
		if created {
			count++
		}
	}
	return count, nil
}

// ListNotifications returns the principal's notifications newest first.
func (e *NotificationEngine) ListNotifications(ctx context.Context, principal models.Principal, skip, limit int) ([]models.Notification, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}
	return e.notificationRepo.List(ctx, principal.UUID, skip, limit)
}

// UnreadCount returns the number of unread notifications.
func (e *NotificationEngine) UnreadCount(ctx context.Context, principal models.Principal) (int64, error) {
	return e.notificationRepo.UnreadCount(ctx, principal.UUID)
}

// MarkAllRead transitions every unread notification to read and returns
// how many this call transitioned. Notifications flipped by a concurrent
// call are not counted again.
func (e *NotificationEngine) MarkAllRead(ctx context.Context, principal models.Principal) (int64, error) {
	return e.notificationRepo.MarkAllRead(ctx, principal.UUID)
}

// MarkOneRead transitions a single notification if it targets the
// principal and is unread, reporting whether a transition occurred.
func (e *NotificationEngine) MarkOneRead(ctx context.Context, principal models.Principal, notificationUUID string) (bool, error) {
	err := e.notificationRepo.MarkRead(ctx, principal.UUID, notificationUUID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
