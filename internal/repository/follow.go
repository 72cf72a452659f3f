package repository

import (
	"context"

	"murmur/internal/graph"
	"murmur/internal/models"
)

// FollowRepository defines the interface for FOLLOWS edge operations.
type FollowRepository interface {
	Upsert(ctx context.Context, followerUUID, followeeUUID string) error
	Delete(ctx context.Context, followerUUID, followeeUUID string) error
	Exists(ctx context.Context, followerUUID, followeeUUID string) (bool, error)
	Following(ctx context.Context, userUUID string, skip, limit int) ([]models.User, error)
	Followers(ctx context.Context, userUUID string, skip, limit int) ([]models.User, error)
	Mutuals(ctx context.Context, userUUID, otherUUID string, skip, limit int) ([]models.User, error)
	Counts(ctx context.Context, userUUID string) (*models.ProfileCounts, error)
}

type followRepository struct {
	runner graph.Runner
}

// NewFollowRepository creates a new follow repository.
func NewFollowRepository(runner graph.Runner) FollowRepository {
	return &followRepository{runner: runner}
}

// Upsert creates the FOLLOWS edge if absent. MERGE keeps the edge unique
// per ordered pair, which also resolves the concurrent create race at
// the store.
func (r *followRepository) Upsert(ctx context.Context, followerUUID, followeeUUID string) error {
	result, err := r.runner.Run(ctx, `
		MATCH (a:User {uuid: $follower})
		MATCH (b:User {uuid: $followee})
		MERGE (a)-[f:FOLLOWS]->(b)
		RETURN count(f) AS edges`,
		map[string]any{"follower": followerUUID, "followee": followeeUUID})
	if err != nil {
		return models.NewInternalError(err)
	}
	if len(result.Records) == 0 || recordInt(result.Records[0], "edges") == 0 {
		return models.NewNotFoundError("user", followeeUUID)
	}
	return nil
}

// Delete removes the FOLLOWS edge; removing an absent edge is a no-op.
func (r *followRepository) Delete(ctx context.Context, followerUUID, followeeUUID string) error {
	_, err := r.runner.Run(ctx, `
		MATCH (a:User {uuid: $follower})-[f:FOLLOWS]->(b:User {uuid: $followee})
		DELETE f`,
		map[string]any{"follower": followerUUID, "followee": followeeUUID})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerUUID, followeeUUID string) (bool, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (a:User {uuid: $follower})
		MATCH (b:User {uuid: $followee})
		OPTIONAL MATCH (a)-[f:FOLLOWS]->(b)
		RETURN count(f) > 0 AS following`,
		map[string]any{"follower": followerUUID, "followee": followeeUUID})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	if len(result.Records) == 0 {
		return false, nil
	}
	return recordBool(result.Records[0], "following"), nil
}

// Following lists outgoing follows. Self-loops are excluded and the order
// is username ascending with uuid as a final tie-break, so repeated pages
// over a fixed set never shift.
func (r *followRepository) Following(ctx context.Context, userUUID string, skip, limit int) ([]models.User, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (u:User {uuid: $uuid})-[:FOLLOWS]->(f:User)
		WHERE f.uuid <> u.uuid
		RETURN f.uuid AS uuid, f.username AS username,
		       f.displayedUsername AS displayedUsername, f.email AS email,
		       f.description AS description, f.avatarUrl AS avatarUrl,
		       f.creationDate AS creationDate, f.roles AS roles
		ORDER BY username ASC, uuid ASC
		SKIP $skip LIMIT $limit`,
		map[string]any{"uuid": userUUID, "skip": skip, "limit": limit})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	users := make([]models.User, 0, len(result.Records))
	for _, record := range result.Records {
		users = append(users, *mapUser(record))
	}
	return users, nil
}

func (r *followRepository) Followers(ctx context.Context, userUUID string, skip, limit int) ([]models.User, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (u:User {uuid: $uuid})<-[:FOLLOWS]-(f:User)
		WHERE f.uuid <> u.uuid
		RETURN f.uuid AS uuid, f.username AS username,
		       f.displayedUsername AS displayedUsername, f.email AS email,
		       f.description AS description, f.avatarUrl AS avatarUrl,
		       f.creationDate AS creationDate, f.roles AS roles
		ORDER BY username ASC, uuid ASC
		SKIP $skip LIMIT $limit`,
		map[string]any{"uuid": userUUID, "skip": skip, "limit": limit})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	users := make([]models.User, 0, len(result.Records))
	for _, record := range result.Records {
		users = append(users, *mapUser(record))
	}
	return users, nil
}

// Mutuals finds the two-hop bridge users x with u→x→other, excluding the
// endpoints themselves, newest account first.
func (r *followRepository) Mutuals(ctx context.Context, userUUID, otherUUID string, skip, limit int) ([]models.User, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (a:User {uuid: $user})-[:FOLLOWS]->(x:User)-[:FOLLOWS]->(b:User {uuid: $other})
		WHERE x.uuid <> $user AND x.uuid <> $other
		RETURN DISTINCT x.uuid AS uuid, x.username AS username,
		       x.displayedUsername AS displayedUsername, x.email AS email,
		       x.description AS description, x.avatarUrl AS avatarUrl,
		       x.creationDate AS creationDate, x.roles AS roles
		ORDER BY creationDate DESC, uuid ASC
		SKIP $skip LIMIT $limit`,
		map[string]any{"user": userUUID, "other": otherUUID, "skip": skip, "limit": limit})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	users := make([]models.User, 0, len(result.Records))
	for _, record := range result.Records {
		users = append(users, *mapUser(record))
	}
	return users, nil
}

func (r *followRepository) Counts(ctx context.Context, userUUID string) (*models.ProfileCounts, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (u:User {uuid: $uuid})
		OPTIONAL MATCH (u)-[:FOLLOWS]->(f:User) WHERE f.uuid <> u.uuid
		OPTIONAL MATCH (u)<-[:FOLLOWS]-(g:User) WHERE g.uuid <> u.uuid
		RETURN count(DISTINCT f) AS follows, count(DISTINCT g) AS followers`,
		map[string]any{"uuid": userUUID})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(result.Records) == 0 {
		return nil, models.NewNotFoundError("user", userUUID)
	}
	record := result.Records[0]
	return &models.ProfileCounts{
		Follows:   recordInt(record, "follows"),
		Followers: recordInt(record, "followers"),
	}, nil
}
