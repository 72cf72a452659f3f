package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"murmur/internal/models"
)

var feedKeys = []string{
	"uuid", "content", "creationDate",
	"authorUuid", "authorUsername",
	"respondsToUuid", "respondsToUsername", "quotesUuid",
}

func TestPostRepositoryHomeFeedMapping(t *testing.T) {
	at := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	runner := &fakeRunner{result: resultOf(
		record(feedKeys, []any{"p1", "plain one", at.UnixMilli(), "u1", "alice", nil, nil, nil}),
		record(feedKeys, []any{"p2", "a reply", at.UnixMilli(), "u2", "bob", "p1", "alice", nil}),
		record(feedKeys, []any{"p3", "a quote", at.UnixMilli(), "u3", "carol", nil, nil, "p1"}),
	)}
	repo := NewPostRepository(runner)

	posts, err := repo.HomeFeed(context.Background(), "u1", at.Add(-time.Hour), at, 0, 20)
	if err != nil {
		t.Fatalf("home feed: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	if posts[0].Kind != models.PostKindPlain || posts[0].RespondsToUsername != "" {
		t.Fatalf("unexpected plain post %#v", posts[0])
	}
	if posts[1].Kind != models.PostKindResponse || posts[1].RespondsToUsername != "alice" {
		t.Fatalf("unexpected response post %#v", posts[1])
	}
	if posts[2].Kind != models.PostKindQuote || posts[2].RespondsToUsername != "" {
		t.Fatalf("unexpected quote post %#v", posts[2])
	}
	if !posts[0].CreationDate.Equal(at) {
		t.Fatalf("expected creation date %v, got %v", at, posts[0].CreationDate)
	}
}

func TestPostRepositoryHomeFeedQueryShape(t *testing.T) {
	runner := &fakeRunner{result: resultOf()}
	repo := NewPostRepository(runner)
	since := time.Date(2026, 1, 15, 8, 30, 0, 0, time.UTC)
	until := since.Add(time.Hour)

	if _, err := repo.HomeFeed(context.Background(), "u1", since, until, 2, 4); err != nil {
		t.Fatalf("home feed: %v", err)
	}
	if !strings.Contains(runner.lastQuery, "p.deleted = false") {
		t.Fatalf("expected deleted filter, got %q", runner.lastQuery)
	}
	if !strings.Contains(runner.lastQuery, "p.creationDate >= $since AND p.creationDate <= $until") {
		t.Fatalf("expected closed window bounds, got %q", runner.lastQuery)
	}
	if !strings.Contains(runner.lastQuery, "ORDER BY creationDate DESC, uuid ASC") {
		t.Fatalf("expected deterministic order, got %q", runner.lastQuery)
	}
	if runner.lastParams["since"] != since.UnixMilli() {
		t.Fatalf("expected since in epoch millis, got %#v", runner.lastParams["since"])
	}
	if runner.lastParams["until"] != until.UnixMilli() {
		t.Fatalf("expected until in epoch millis, got %#v", runner.lastParams["until"])
	}
	if runner.lastParams["skip"] != 2 || runner.lastParams["limit"] != 4 {
		t.Fatalf("unexpected pagination params %#v", runner.lastParams)
	}
}

func TestPostRepositoryRankedFeedScore(t *testing.T) {
	keys := append(append([]string{}, feedKeys...), "score")
	at := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	runner := &fakeRunner{result: resultOf(
		record(keys, []any{"p1", "popular", at.UnixMilli(), "u1", "alice", nil, nil, nil, int64(7)}),
	)}
	repo := NewPostRepository(runner)

	posts, err := repo.RankedGlobalFeed(context.Background(), at.Add(-time.Hour), at, 0, 20)
	if err != nil {
		t.Fatalf("ranked global feed: %v", err)
	}
	if len(posts) != 1 || posts[0].Score != 7 {
		t.Fatalf("unexpected posts %#v", posts)
	}
	if !strings.Contains(runner.lastQuery, "ORDER BY score DESC, creationDate DESC, uuid ASC") {
		t.Fatalf("expected ranked order clause, got %q", runner.lastQuery)
	}
	// The score counters are bounded on both ends like the posts
	// themselves, so future-dated interactions never rank a post up.
	if !strings.Contains(runner.lastQuery, "l.creationDate >= $since AND l.creationDate <= $until") {
		t.Fatalf("expected bounded like counter, got %q", runner.lastQuery)
	}
	if !strings.Contains(runner.lastQuery, "rpost.creationDate >= $since AND rpost.creationDate <= $until") {
		t.Fatalf("expected bounded response counter, got %q", runner.lastQuery)
	}
	if !strings.Contains(runner.lastQuery, "qpost.creationDate >= $since AND qpost.creationDate <= $until") {
		t.Fatalf("expected bounded quote counter, got %q", runner.lastQuery)
	}
	if runner.lastParams["until"] != at.UnixMilli() {
		t.Fatalf("expected until in epoch millis, got %#v", runner.lastParams["until"])
	}
}

func TestPostRepositoryCreateResponse(t *testing.T) {
	runner := &fakeRunner{result: resultOf(
		record([]string{"uuid"}, []any{"p2"}),
	)}
	repo := NewPostRepository(runner)

	post := &models.Post{
		UUID:         "p2",
		Content:      "a reply",
		CreationDate: time.Now(),
		AuthorUUID:   "u1",
		Kind:         models.PostKindResponse,
		TargetUUID:   "p1",
	}
	if err := repo.Create(context.Background(), post); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.Contains(runner.lastQuery, "CREATE (p)-[:RESPONDS]->(target)") {
		t.Fatalf("expected RESPONDS edge, got %q", runner.lastQuery)
	}
	if runner.lastParams["target"] != "p1" {
		t.Fatalf("unexpected target param %#v", runner.lastParams)
	}
}

func TestPostRepositoryCreateResponseMissingTarget(t *testing.T) {
	runner := &fakeRunner{result: resultOf()}
	repo := NewPostRepository(runner)

	post := &models.Post{
		UUID:       "p2",
		Content:    "a reply",
		AuthorUUID: "u1",
		Kind:       models.PostKindResponse,
		TargetUUID: "missing",
	}
	err := repo.Create(context.Background(), post)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
		t.Fatalf("expected not found app error, got %#v", err)
	}
}

func TestPostRepositoryLikeMissingPost(t *testing.T) {
	runner := &fakeRunner{result: resultOf()}
	repo := NewPostRepository(runner)

	err := repo.Like(context.Background(), "u1", "missing", time.Now())
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
		t.Fatalf("expected not found app error, got %#v", err)
	}
}

func TestPostRepositoryLikeIdempotentMerge(t *testing.T) {
	runner := &fakeRunner{result: resultOf(
		record([]string{"edges"}, []any{int64(1)}),
	)}
	repo := NewPostRepository(runner)

	if err := repo.Like(context.Background(), "u1", "p1", time.Now()); err != nil {
		t.Fatalf("like: %v", err)
	}
	if !strings.Contains(runner.lastQuery, "MERGE (u)-[l:LIKES]->(p)") {
		t.Fatalf("expected MERGE for like edge, got %q", runner.lastQuery)
	}
	if !strings.Contains(runner.lastQuery, "ON CREATE SET l.creationDate") {
		t.Fatalf("expected creation date only on create, got %q", runner.lastQuery)
	}
}

func TestPostRepositoryCountsMissingPost(t *testing.T) {
	runner := &fakeRunner{result: resultOf()}
	repo := NewPostRepository(runner)

	_, err := repo.Counts(context.Background(), "missing")
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
		t.Fatalf("expected not found app error, got %#v", err)
	}
}

func TestPostRepositoryGetByUUIDDeletedFlag(t *testing.T) {
	keys := []string{
		"uuid", "content", "creationDate", "deleted",
		"authorUuid", "authorUsername",
		"respondsToUuid", "respondsToUsername", "quotesUuid",
	}
	at := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	runner := &fakeRunner{result: resultOf(
		record(keys, []any{"p1", "gone", at.UnixMilli(), true, "u1", "alice", nil, nil, nil}),
	)}
	repo := NewPostRepository(runner)

	post, err := repo.GetByUUID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("get by uuid: %v", err)
	}
	if !post.Deleted {
		t.Fatal("expected deleted flag to survive mapping")
	}
}
