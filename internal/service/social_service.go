package service

import (
	"context"

	"murmur/internal/models"
	"murmur/internal/repository"
)

// SocialGraphService provides follow-graph mutation and traversal.
type SocialGraphService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewSocialGraphService returns a new SocialGraphService.
func NewSocialGraphService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *SocialGraphService {
	return &SocialGraphService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates the follow edge from the principal to the target.
// Following a user twice is not an error; exactly one edge exists
// afterwards either way.
func (s *SocialGraphService) Follow(ctx context.Context, principal models.Principal, followeeUUID string) error {
	if principal.UUID == followeeUUID {
		return models.NewValidationError("cannot follow yourself")
	}
	return s.followRepo.Upsert(ctx, principal.UUID, followeeUUID)
}

// Unfollow removes the follow edge; unfollowing someone never followed
// is a no-op.
func (s *SocialGraphService) Unfollow(ctx context.Context, principal models.Principal, followeeUUID string) error {
	if principal.UUID == followeeUUID {
		return models.NewValidationError("cannot unfollow yourself")
	}
	return s.followRepo.Delete(ctx, principal.UUID, followeeUUID)
}

// IsFollowing reports whether the principal follows the target.
func (s *SocialGraphService) IsFollowing(ctx context.Context, principal models.Principal, followeeUUID string) (bool, error) {
	return s.followRepo.Exists(ctx, principal.UUID, followeeUUID)
}

// ListFollowing returns the users the given user follows.
func (s *SocialGraphService) ListFollowing(ctx context.Context, userUUID string, skip, limit int) ([]models.User, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, userUUID, skip, limit)
}

// ListFollowers returns the users following the given user.
func (s *SocialGraphService) ListFollowers(ctx context.Context, userUUID string, skip, limit int) ([]models.User, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, userUUID, skip, limit)
}

// MutualConnections returns users the principal follows who in turn
// follow the other user, newest account first.
func (s *SocialGraphService) MutualConnections(ctx context.Context, userUUID, otherUUID string, skip, limit int) ([]models.User, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}
	return s.followRepo.Mutuals(ctx, userUUID, otherUUID, skip, limit)
}

// ProfileInfo returns the distinct follow and follower counts of a user.
func (s *SocialGraphService) ProfileInfo(ctx context.Context, userUUID string) (*models.ProfileCounts, error) {
	return s.followRepo.Counts(ctx, userUUID)
}
