package repository

import (
	"context"
	"time"

	"murmur/internal/graph"
	"murmur/internal/models"
)

// TagRepository defines the interface for tag nodes and TAGS edges.
type TagRepository interface {
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	GetByUUID(ctx context.Context, uuid string) (*models.Tag, error)
	Popular(ctx context.Context, since, until time.Time, limit int) ([]models.TagCount, error)
	Posts(ctx context.Context, tagUUID string, skip, limit int) ([]models.FeedPost, error)
	Attach(ctx context.Context, name, tagUUID, postUUID string) error
}

type tagRepository struct {
	runner graph.Runner
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(runner graph.Runner) TagRepository {
	return &tagRepository{runner: runner}
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (t:Tag {name: $name})
		RETURN t.uuid AS uuid, t.name AS name`,
		map[string]any{"name": name})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(result.Records) == 0 {
		return nil, models.NewNotFoundError("tag", name)
	}
	record := result.Records[0]
	return &models.Tag{UUID: recordString(record, "uuid"), Name: recordString(record, "name")}, nil
}

func (r *tagRepository) GetByUUID(ctx context.Context, uuid string) (*models.Tag, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (t:Tag {uuid: $uuid})
		RETURN t.uuid AS uuid, t.name AS name`,
		map[string]any{"uuid": uuid})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(result.Records) == 0 {
		return nil, models.NewNotFoundError("tag", uuid)
	}
	record := result.Records[0]
	return &models.Tag{UUID: recordString(record, "uuid"), Name: recordString(record, "name")}, nil
}

// Popular counts TAGS edges into non-deleted posts created within the
// closed window [since, until], most used first. Name breaks count ties
// deterministically.
func (r *tagRepository) Popular(ctx context.Context, since, until time.Time, limit int) ([]models.TagCount, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (t:Tag)-[:TAGS]->(p:Post)
		WHERE p.deleted = false
		  AND p.creationDate >= $since AND p.creationDate <= $until
		WITH t, count(p) AS uses
		RETURN t.uuid AS uuid, t.name AS name, uses
		ORDER BY uses DESC, name ASC
		LIMIT $limit`,
		map[string]any{"since": millis(since), "until": millis(until), "limit": limit})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	tags := make([]models.TagCount, 0, len(result.Records))
	for _, record := range result.Records {
		tags = append(tags, models.TagCount{
			UUID:  recordString(record, "uuid"),
			Name:  recordString(record, "name"),
			Count: recordInt(record, "uses"),
		})
	}
	return tags, nil
}

func (r *tagRepository) Posts(ctx context.Context, tagUUID string, skip, limit int) ([]models.FeedPost, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (t:Tag {uuid: $uuid})-[:TAGS]->(p:Post)
		WHERE p.deleted = false
		MATCH (author:User)-[:POSTED]->(p)`+feedKindMatch+feedReturn+`
		ORDER BY creationDate DESC, uuid ASC
		SKIP $skip LIMIT $limit`,
		map[string]any{"uuid": tagUUID, "skip": skip, "limit": limit})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return mapFeed(result), nil
}

// Attach merges the tag node by its unique name and links it to the
// post. The provided uuid is only used when the tag is first created.
func (r *tagRepository) Attach(ctx context.Context, name, tagUUID, postUUID string) error {
	result, err := r.runner.Run(ctx, `
		MATCH (p:Post {uuid: $post})
		MERGE (t:Tag {name: $name})
		ON CREATE SET t.uuid = $uuid
		MERGE (t)-[:TAGS]->(p)
		RETURN t.uuid AS uuid`,
		map[string]any{"post": postUUID, "name": name, "uuid": tagUUID})
	if err != nil {
		return models.NewInternalError(err)
	}
	if len(result.Records) == 0 {
		return models.NewNotFoundError("post", postUUID)
	}
	return nil
}
