package repository

import (
	"context"

	"murmur/internal/graph"
	"murmur/internal/models"
)

// NotificationRepository defines the interface for NOTIFIES edges.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) (bool, error)
	List(ctx context.Context, userUUID string, skip, limit int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userUUID string) (int64, error)
	MarkRead(ctx context.Context, userUUID, notificationUUID string) error
	MarkAllRead(ctx context.Context, userUUID string) (int64, error)
}

type notificationRepository struct {
	runner graph.Runner
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(runner graph.Runner) NotificationRepository {
	return &notificationRepository{runner: runner}
}

// Create attaches a NOTIFIES edge from the post to the target user. The
// author guard suppresses self-notification inside the store, so callers
// racing on the author check cannot produce one anyway. Returns whether
// an edge was created.
func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) (bool, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (p:Post {uuid: $post})<-[:POSTED]-(author:User)
		MATCH (u:User {uuid: $target})
		WHERE author.uuid <> u.uuid
		CREATE (p)-[n:NOTIFIES {uuid: $uuid, type: $type, read: false, creationDate: $at}]->(u)
		RETURN count(n) AS created`,
		map[string]any{
			"post":   notification.PostUUID,
			"target": notification.TargetUUID,
			"uuid":   notification.UUID,
			"type":   string(notification.Type),
			"at":     millis(notification.CreationDate),
		})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	if len(result.Records) == 0 {
		return false, nil
	}
	return recordInt(result.Records[0], "created") > 0, nil
}

// List returns the user's notifications newest first, with the source
// post's author denormalized for display.
func (r *notificationRepository) List(ctx context.Context, userUUID string, skip, limit int) ([]models.Notification, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (p:Post)-[n:NOTIFIES]->(u:User {uuid: $uuid})
		MATCH (p)<-[:POSTED]-(author:User)
		RETURN n.uuid AS uuid, n.type AS type, n.read AS read,
		       n.creationDate AS creationDate,
		       p.uuid AS postUuid, author.username AS authorUsername
		ORDER BY creationDate DESC, uuid ASC
		SKIP $skip LIMIT $limit`,
		map[string]any{"uuid": userUUID, "skip": skip, "limit": limit})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	notifications := make([]models.Notification, 0, len(result.Records))
	for _, record := range result.Records {
		notifications = append(notifications, models.Notification{
			UUID:           recordString(record, "uuid"),
			Type:           models.NotificationType(recordString(record, "type")),
			Read:           recordBool(record, "read"),
			CreationDate:   recordTime(record, "creationDate"),
			PostUUID:       recordString(record, "postUuid"),
			AuthorUsername: recordString(record, "authorUsername"),
		})
	}
	return notifications, nil
}

func (r *notificationRepository) UnreadCount(ctx context.Context, userUUID string) (int64, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (:Post)-[n:NOTIFIES]->(u:User {uuid: $uuid})
		WHERE n.read = false
		RETURN count(n) AS unread`,
		map[string]any{"uuid": userUUID})
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	if len(result.Records) == 0 {
		return 0, nil
	}
	return recordInt(result.Records[0], "unread"), nil
}

// MarkRead flips a single notification owned by the user. An unknown
// uuid, someone else's notification, and an already-read one all match
// zero edges and report not found.
func (r *notificationRepository) MarkRead(ctx context.Context, userUUID, notificationUUID string) error {
	result, err := r.runner.Run(ctx, `
		MATCH (:Post)-[n:NOTIFIES {uuid: $notification}]->(u:User {uuid: $uuid})
		WHERE n.read = false
		SET n.read = true
		RETURN count(n) AS updated`,
		map[string]any{"uuid": userUUID, "notification": notificationUUID})
	if err != nil {
		return models.NewInternalError(err)
	}
	if len(result.Records) == 0 || recordInt(result.Records[0], "updated") == 0 {
		return models.NewNotFoundError("notification", notificationUUID)
	}
	return nil
}

// MarkAllRead flips every unread notification in one statement and
// returns how many changed. The single-statement form keeps the count
// honest under concurrent reads.
func (r *notificationRepository) MarkAllRead(ctx context.Context, userUUID string) (int64, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (:Post)-[n:NOTIFIES]->(u:User {uuid: $uuid})
		WHERE n.read = false
		SET n.read = true
		RETURN count(n) AS updated`,
		map[string]any{"uuid": userUUID})
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	if len(result.Records) == 0 {
		return 0, nil
	}
	return recordInt(result.Records[0], "updated"), nil
}
