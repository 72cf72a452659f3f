package service

import (
	"context"
	"fmt"
	"time"

	"murmur/internal/cache"
	"murmur/internal/models"
	"murmur/internal/repository"
)

const popularTagsTTL = 5 * time.Minute

// TagService resolves tags and ranks them by time-windowed usage.
type TagService struct {
	tagRepo repository.TagRepository
	cache   *cache.Cache
	now     func() time.Time
}

// NewTagService returns a new TagService.
func NewTagService(tagRepo repository.TagRepository, c *cache.Cache) *TagService {
	return &TagService{
		tagRepo: tagRepo,
		cache:   c,
		now:     time.Now,
	}
}

// ResolveByName looks a tag up by its unique name.
func (s *TagService) ResolveByName(ctx context.Context, name string) (*models.Tag, error) {
	return s.tagRepo.GetByName(ctx, name)
}

// ResolveByUUID looks a tag up by uuid.
func (s *TagService) ResolveByUUID(ctx context.Context, uuid string) (*models.Tag, error) {
	return s.tagRepo.GetByUUID(ctx, uuid)
}

// PopularTags returns the most used tags across non-deleted posts
// created inside the window. The result is identical for every caller,
// so it is cached per window and limit.
func (s *TagService) PopularTags(ctx context.Context, window models.Window, limit int) ([]models.TagCount, error) {
	if limit < 0 {
		return nil, models.NewValidationError("limit must not be negative")
	}

	key := fmt.Sprintf("tags:popular:%s:%d", window, limit)
	var cached []models.TagCount
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	now := s.now()
	tags, err := s.tagRepo.Popular(ctx, window.Since(now), now, limit)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, key, tags, popularTagsTTL)
	return tags, nil
}

// PostsForTag lists non-deleted posts carrying the tag, newest first.
// The tag must exist.
func (s *TagService) PostsForTag(ctx context.Context, tagUUID string, skip, limit int) ([]models.FeedPost, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}
	if _, err := s.tagRepo.GetByUUID(ctx, tagUUID); err != nil {
		return nil, err
	}
	return s.tagRepo.Posts(ctx, tagUUID, skip, limit)
}
