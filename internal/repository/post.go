package repository

import (
	"context"
	"time"

	"murmur/internal/graph"
	"murmur/internal/models"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// PostRepository defines the interface for post nodes, their typed edges
// and the feed queries built over them.
type PostRepository interface {
	GetByUUID(ctx context.Context, uuid string) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Counts(ctx context.Context, uuid string) (*models.PostCounts, error)
	HomeFeed(ctx context.Context, userUUID string, since, until time.Time, skip, limit int) ([]models.FeedPost, error)
	RankedHomeFeed(ctx context.Context, userUUID string, since, until time.Time, skip, limit int) ([]models.FeedPost, error)
	RankedGlobalFeed(ctx context.Context, since, until time.Time, skip, limit int) ([]models.FeedPost, error)
	ResponsesTo(ctx context.Context, uuid string, skip, limit int) ([]models.FeedPost, error)
	QuotesOf(ctx context.Context, uuid string, skip, limit int) ([]models.FeedPost, error)
	Like(ctx context.Context, userUUID, postUUID string, at time.Time) error
	Unlike(ctx context.Context, userUUID, postUUID string) error
	IsLiked(ctx context.Context, userUUID, postUUID string) (bool, error)
}

type postRepository struct {
	runner graph.Runner
}

// NewPostRepository creates a new post repository.
func NewPostRepository(runner graph.Runner) PostRepository {
	return &postRepository{runner: runner}
}

// feedReturn denormalizes the author and, for responses, the username of
// the author of the post responded to. The post kind is derived from the
// optional RESPONDS/QUOTES targets when mapping the row.
const feedReturn = `
	RETURN p.uuid AS uuid, p.content AS content, p.creationDate AS creationDate,
	       author.uuid AS authorUuid, author.username AS authorUsername,
	       rp.uuid AS respondsToUuid, ra.username AS respondsToUsername,
	       qp.uuid AS quotesUuid`

const feedKindMatch = `
	OPTIONAL MATCH (p)-[:RESPONDS]->(rp:Post)<-[:POSTED]-(ra:User)
	OPTIONAL MATCH (p)-[:QUOTES]->(qp:Post)`

func (r *postRepository) GetByUUID(ctx context.Context, uuid string) (*models.Post, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (author:User)-[:POSTED]->(p:Post {uuid: $uuid})`+feedKindMatch+`
		RETURN p.uuid AS uuid, p.content AS content, p.creationDate AS creationDate,
		       p.deleted AS deleted,
		       author.uuid AS authorUuid, author.username AS authorUsername,
		       rp.uuid AS respondsToUuid, ra.username AS respondsToUsername,
		       qp.uuid AS quotesUuid`,
		map[string]any{"uuid": uuid})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(result.Records) == 0 {
		return nil, models.NewNotFoundError("post", uuid)
	}
	record := result.Records[0]
	kind, target := deriveKind(record)
	respondsTo := ""
	if kind == models.PostKindResponse {
		respondsTo = recordString(record, "respondsToUsername")
	}
	return &models.Post{
		UUID:               recordString(record, "uuid"),
		Content:            recordString(record, "content"),
		CreationDate:       recordTime(record, "creationDate"),
		Deleted:            recordBool(record, "deleted"),
		AuthorUUID:         recordString(record, "authorUuid"),
		AuthorUsername:     recordString(record, "authorUsername"),
		Kind:               kind,
		TargetUUID:         target,
		RespondsToUsername: respondsTo,
	}, nil
}

// Create writes the post node, its POSTED edge and, for responses and
// quotes, the typed edge to the target post, in one statement.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	params := map[string]any{
		"author":       post.AuthorUUID,
		"uuid":         post.UUID,
		"content":      post.Content,
		"creationDate": millis(post.CreationDate),
	}

	query := `
		MATCH (author:User {uuid: $author})
		CREATE (author)-[:POSTED]->(p:Post {uuid: $uuid, content: $content,
			creationDate: $creationDate, deleted: false})
		RETURN p.uuid AS uuid`
	switch post.Kind {
	case models.PostKindResponse:
		query = `
		MATCH (author:User {uuid: $author})
		MATCH (target:Post {uuid: $target})
		CREATE (author)-[:POSTED]->(p:Post {uuid: $uuid, content: $content,
			creationDate: $creationDate, deleted: false})
		CREATE (p)-[:RESPONDS]->(target)
		RETURN p.uuid AS uuid`
		params["target"] = post.TargetUUID
	case models.PostKindQuote:
		query = `
		MATCH (author:User {uuid: $author})
		MATCH (target:Post {uuid: $target})
		CREATE (author)-[:POSTED]->(p:Post {uuid: $uuid, content: $content,
			creationDate: $creationDate, deleted: false})
		CREATE (p)-[:QUOTES]->(target)
		RETURN p.uuid AS uuid`
		params["target"] = post.TargetUUID
	}

	result, err := r.runner.Run(ctx, query, params)
	if err != nil {
		return models.NewInternalError(err)
	}
	if len(result.Records) == 0 {
		if post.Kind != models.PostKindPlain {
			return models.NewNotFoundError("post", post.TargetUUID)
		}
		return models.NewNotFoundError("user", post.AuthorUUID)
	}
	return nil
}

// Counts reports interaction counters regardless of the deleted flag.
func (r *postRepository) Counts(ctx context.Context, uuid string) (*models.PostCounts, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (p:Post {uuid: $uuid})
		OPTIONAL MATCH (p)<-[:RESPONDS]-(resp:Post)
		OPTIONAL MATCH (p)<-[l:LIKES]-(:User)
		OPTIONAL MATCH (p)<-[:QUOTES]-(qt:Post)
		RETURN count(DISTINCT resp) AS responses, count(DISTINCT l) AS likes,
		       count(DISTINCT qt) AS quotes`,
		map[string]any{"uuid": uuid})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(result.Records) == 0 {
		return nil, models.NewNotFoundError("post", uuid)
	}
	record := result.Records[0]
	return &models.PostCounts{
		Responses: recordInt(record, "responses"),
		Likes:     recordInt(record, "likes"),
		Quotes:    recordInt(record, "quotes"),
	}, nil
}

// HomeFeed returns non-deleted posts by the user or any followee within
// the closed window [since, until], newest first. The upper bound keeps
// future-dated rows (clock skew) out of the feed; the uuid tie-break
// keeps pagination stable when posts share a timestamp.
func (r *postRepository) HomeFeed(ctx context.Context, userUUID string, since, until time.Time, skip, limit int) ([]models.FeedPost, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (me:User {uuid: $user})
		MATCH (author:User)-[:POSTED]->(p:Post)
		WHERE (author.uuid = $user OR (me)-[:FOLLOWS]->(author))
		  AND p.deleted = false
		  AND p.creationDate >= $since AND p.creationDate <= $until`+feedKindMatch+feedReturn+`
		ORDER BY creationDate DESC, uuid ASC
		SKIP $skip LIMIT $limit`,
		map[string]any{"user": userUUID, "since": millis(since), "until": millis(until), "skip": skip, "limit": limit})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return mapFeed(result), nil
}

// RankedHomeFeed orders the same candidate set by the count of LIKES,
// RESPONDS and QUOTES edges restricted to the same closed window, with
// creation date then uuid as explicit tie-breaks.
func (r *postRepository) RankedHomeFeed(ctx context.Context, userUUID string, since, until time.Time, skip, limit int) ([]models.FeedPost, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (me:User {uuid: $user})
		MATCH (author:User)-[:POSTED]->(p:Post)
		WHERE (author.uuid = $user OR (me)-[:FOLLOWS]->(author))
		  AND p.deleted = false
		  AND p.creationDate >= $since AND p.creationDate <= $until
		OPTIONAL MATCH (p)<-[l:LIKES]-(:User)
			WHERE l.creationDate >= $since AND l.creationDate <= $until
		OPTIONAL MATCH (p)<-[:RESPONDS]-(rpost:Post)
			WHERE rpost.creationDate >= $since AND rpost.creationDate <= $until
		OPTIONAL MATCH (p)<-[:QUOTES]-(qpost:Post)
			WHERE qpost.creationDate >= $since AND qpost.creationDate <= $until
		WITH p, author, count(DISTINCT l) + count(DISTINCT rpost) + count(DISTINCT qpost) AS score`+feedKindMatch+feedReturn+`,
		       score
		ORDER BY score DESC, creationDate DESC, uuid ASC
		SKIP $skip LIMIT $limit`,
		map[string]any{"user": userUUID, "since": millis(since), "until": millis(until), "skip": skip, "limit": limit})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return mapFeed(result), nil
}

// RankedGlobalFeed is the anonymous feed: every non-deleted post in the
// window, popularity-ranked with the same tie-breaks.
func (r *postRepository) RankedGlobalFeed(ctx context.Context, since, until time.Time, skip, limit int) ([]models.FeedPost, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (author:User)-[:POSTED]->(p:Post)
		WHERE p.deleted = false
		  AND p.creationDate >= $since AND p.creationDate <= $until
		OPTIONAL MATCH (p)<-[l:LIKES]-(:User)
			WHERE l.creationDate >= $since AND l.creationDate <= $until
		OPTIONAL MATCH (p)<-[:RESPONDS]-(rpost:Post)
			WHERE rpost.creationDate >= $since AND rpost.creationDate <= $until
		OPTIONAL MATCH (p)<-[:QUOTES]-(qpost:Post)
			WHERE qpost.creationDate >= $since AND qpost.creationDate <= $until
		WITH p, author, count(DISTINCT l) + count(DISTINCT rpost) + count(DISTINCT qpost) AS score`+feedKindMatch+feedReturn+`,
		       score
		ORDER BY score DESC, creationDate DESC, uuid ASC
		SKIP $skip LIMIT $limit`,
		map[string]any{"since": millis(since), "until": millis(until), "skip": skip, "limit": limit})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return mapFeed(result), nil
}

func (r *postRepository) ResponsesTo(ctx context.Context, uuid string, skip, limit int) ([]models.FeedPost, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (target:Post {uuid: $uuid})<-[:RESPONDS]-(p:Post)
		WHERE p.deleted = false
		MATCH (author:User)-[:POSTED]->(p)`+feedKindMatch+feedReturn+`
		ORDER BY creationDate DESC, uuid ASC
		SKIP $skip LIMIT $limit`,
		map[string]any{"uuid": uuid, "skip": skip, "limit": limit})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return mapFeed(result), nil
}

func (r *postRepository) QuotesOf(ctx context.Context, uuid string, skip, limit int) ([]models.FeedPost, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (target:Post {uuid: $uuid})<-[:QUOTES]-(p:Post)
		WHERE p.deleted = false
		MATCH (author:User)-[:POSTED]->(p)`+feedKindMatch+feedReturn+`
		ORDER BY creationDate DESC, uuid ASC
		SKIP $skip LIMIT $limit`,
		map[string]any{"uuid": uuid, "skip": skip, "limit": limit})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return mapFeed(result), nil
}

// Like writes the LIKES edge idempotently; MERGE guarantees at most one
// edge per (user, post) pair.
func (r *postRepository) Like(ctx context.Context, userUUID, postUUID string, at time.Time) error {
	result, err := r.runner.Run(ctx, `
		MATCH (u:User {uuid: $user})
		MATCH (p:Post {uuid: $post})
		MERGE (u)-[l:LIKES]->(p)
		ON CREATE SET l.creationDate = $at
		RETURN count(l) AS edges`,
		map[string]any{"user": userUUID, "post": postUUID, "at": millis(at)})
	if err != nil {
		return models.NewInternalError(err)
	}
	if len(result.Records) == 0 || recordInt(result.Records[0], "edges") == 0 {
		return models.NewNotFoundError("post", postUUID)
	}
	return nil
}

// Unlike removes the LIKES edge; a never-liked pair is a no-op.
func (r *postRepository) Unlike(ctx context.Context, userUUID, postUUID string) error {
	_, err := r.runner.Run(ctx, `
		MATCH (u:User {uuid: $user})-[l:LIKES]->(p:Post {uuid: $post})
		DELETE l`,
		map[string]any{"user": userUUID, "post": postUUID})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) IsLiked(ctx context.Context, userUUID, postUUID string) (bool, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (u:User {uuid: $user})
		MATCH (p:Post {uuid: $post})
		OPTIONAL MATCH (u)-[l:LIKES]->(p)
		RETURN count(l) > 0 AS liked`,
		map[string]any{"user": userUUID, "post": postUUID})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	if len(result.Records) == 0 {
		return false, nil
	}
	return recordBool(result.Records[0], "liked"), nil
}

func deriveKind(record *neo4j.Record) (models.PostKind, string) {
	if target := recordString(record, "respondsToUuid"); target != "" {
		return models.PostKindResponse, target
	}
	if target := recordString(record, "quotesUuid"); target != "" {
		return models.PostKindQuote, target
	}
	return models.PostKindPlain, ""
}

func mapFeed(result *neo4j.EagerResult) []models.FeedPost {
	posts := make([]models.FeedPost, 0, len(result.Records))
	for _, record := range result.Records {
		kind, _ := deriveKind(record)
		respondsTo := ""
		if kind == models.PostKindResponse {
			respondsTo = recordString(record, "respondsToUsername")
		}
		posts = append(posts, models.FeedPost{
			UUID:               recordString(record, "uuid"),
			Content:            recordString(record, "content"),
			CreationDate:       recordTime(record, "creationDate"),
			AuthorUUID:         recordString(record, "authorUuid"),
			AuthorUsername:     recordString(record, "authorUsername"),
			Kind:               kind,
			RespondsToUsername: respondsTo,
			Score:              recordInt(record, "score"),
		})
	}
	return posts
}
