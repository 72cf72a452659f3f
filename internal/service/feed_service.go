package service

import (
	"context"
	"fmt"
	"time"

	"murmur/internal/cache"
	"murmur/internal/models"
	"murmur/internal/repository"
)

const anonymousFeedTTL = 60 * time.Second

// FeedEngine assembles chronological and popularity-ranked feeds and
// handles per-post reads and like toggling.
type FeedEngine struct {
	postRepo repository.PostRepository
	cache    *cache.Cache
	now      func() time.Time
}

// NewFeedEngine returns a new FeedEngine.
func NewFeedEngine(postRepo repository.PostRepository, c *cache.Cache) *FeedEngine {
	return &FeedEngine{
		postRepo: postRepo,
		cache:    c,
		now:      time.Now,
	}
}

// ChronologicalFeed returns the principal's home feed, newest first:
// non-deleted posts by the principal or any followee inside the window.
func (s *FeedEngine) ChronologicalFeed(ctx context.Context, principal models.Principal, window models.Window, skip, limit int) ([]models.FeedPost, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}
	now := s.now()
	return s.postRepo.HomeFeed(ctx, principal.UUID, window.Since(now), now, skip, limit)
}

// PopularityFeed returns the same candidate set ranked by the count of
// likes, responses and quotes received inside the window.
func (s *FeedEngine) PopularityFeed(ctx context.Context, principal models.Principal, window models.Window, skip, limit int) ([]models.FeedPost, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}
	now := s.now()
	return s.postRepo.RankedHomeFeed(ctx, principal.UUID, window.Since(now), now, skip, limit)
}

// AnonymousFeed is the platform-wide popularity feed shown to
// unauthenticated visitors. Pages are briefly cached since the result is
// identical for everyone.
func (s *FeedEngine) AnonymousFeed(ctx context.Context, window models.Window, skip, limit int) ([]models.FeedPost, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("feed:anonymous:%s:%d:%d", window, skip, limit)
	var cached []models.FeedPost
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	now := s.now()
	posts, err := s.postRepo.RankedGlobalFeed(ctx, window.Since(now), now, skip, limit)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, key, posts, anonymousFeedTTL)
	return posts, nil
}

// PostDetail returns a single post. Soft-deleted posts are hidden here
// like on every other read path.
func (s *FeedEngine) PostDetail(ctx context.Context, uuid string) (*models.Post, error) {
	post, err := s.postRepo.GetByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}
	if post.Deleted {
		return nil, models.NewNotFoundError("post", uuid)
	}
	return post, nil
}

// PostInfo returns interaction counters, reported regardless of the
// post's deleted state.
func (s *FeedEngine) PostInfo(ctx context.Context, uuid string) (*models.PostCounts, error) {
	return s.postRepo.Counts(ctx, uuid)
}

// ResponsesTo lists non-deleted responses to the post, newest first.
func (s *FeedEngine) ResponsesTo(ctx context.Context, uuid string, skip, limit int) ([]models.FeedPost, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}
	return s.postRepo.ResponsesTo(ctx, uuid, skip, limit)
}

// QuotesOf lists non-deleted quotes of the post, newest first.
func (s *FeedEngine) QuotesOf(ctx context.Context, uuid string, skip, limit int) ([]models.FeedPost, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}
	return s.postRepo.QuotesOf(ctx, uuid, skip, limit)
}

// Like creates the like edge and returns the resulting state, which is
// always true. Liking an already-liked post is not an error.
func (s *FeedEngine) Like(ctx context.Context, principal models.Principal, postUUID string) (bool, error) {
	if err := s.postRepo.Like(ctx, principal.UUID, postUUID, s.now()); err != nil {
		return false, err
	}
	return true, nil
}

// Unlike removes the like edge and returns the resulting state, always
// false. Unliking a never-liked post is a no-op, but the post itself
// must exist.
func (s *FeedEngine) Unlike(ctx context.Context, principal models.Principal, postUUID string) (bool, error) {
	if _, err := s.postRepo.GetByUUID(ctx, postUUID); err != nil {
		return false, err
	}
	if err := s.postRepo.Unlike(ctx, principal.UUID, postUUID); err != nil {
		return false, err
	}
	return false, nil
}

// IsLiked reports whether the principal currently likes the post.
func (s *FeedEngine) IsLiked(ctx context.Context, principal models.Principal, postUUID string) (bool, error) {
	return s.postRepo.IsLiked(ctx, principal.UUID, postUUID)
}
