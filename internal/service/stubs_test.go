package service

import (
	"context"
	"time"

	"murmur/internal/models"
)

type followRepoStub struct {
	upsertFn    func(context.Context, string, string) error
	deleteFn    func(context.Context, string, string) error
	existsFn    func(context.Context, string, string) (bool, error)
	followingFn func(context.Context, string, int, int) ([]models.User, error)
	followersFn func(context.Context, string, int, int) ([]models.User, error)
	mutualsFn   func(context.Context, string, string, int, int) ([]models.User, error)
	countsFn    func(context.Context, string) (*models.ProfileCounts, error)
}

func (s *followRepoStub) Upsert(ctx context.Context, follower, followee string) error {
	return s.upsertFn(ctx, follower, followee)
}
func (s *followRepoStub) Delete(ctx context.Context, follower, followee string) error {
	return s.deleteFn(ctx, follower, followee)
}
func (s *followRepoStub) Exists(ctx context.Context, follower, followee string) (bool, error) {
	return s.existsFn(ctx, follower, followee)
}
func (s *followRepoStub) Following(ctx context.Context, user string, skip, limit int) ([]models.User, error) {
	return s.followingFn(ctx, user, skip, limit)
}
func (s *followRepoStub) Followers(ctx context.Context, user string, skip, limit int) ([]models.User, error) {
	return s.followersFn(ctx, user, skip, limit)
}
func (s *followRepoStub) Mutuals(ctx context.Context, user, other string, skip, limit int) ([]models.User, error) {
	return s.mutualsFn(ctx, user, other, skip, limit)
}
func (s *followRepoStub) Counts(ctx context.Context, user string) (*models.ProfileCounts, error) {
	return s.countsFn(ctx, user)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		upsertFn: func(context.Context, string, string) error { return nil },
		deleteFn: func(context.Context, string, string) error { return nil },
		existsFn: func(context.Context, string, string) (bool, error) { return false, nil },
		followingFn: func(context.Context, string, int, int) ([]models.User, error) {
			return nil, nil
		},
		followersFn: func(context.Context, string, int, int) ([]models.User, error) {
			return nil, nil
		},
		mutualsFn: func(context.Context, string, string, int, int) ([]models.User, error) {
			return nil, nil
		},
		countsFn: func(context.Context, string) (*models.ProfileCounts, error) {
			return &models.ProfileCounts{}, nil
		},
	}
}

type userRepoStub struct {
	getByUUIDFn      func(context.Context, string) (*models.User, error)
	getByUsernameFn  func(context.Context, string) (*models.User, error)
	getByUsernamesFn func(context.Context, []string) ([]models.User, error)
	createFn         func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByUUID(ctx context.Context, uuid string) (*models.User, error) {
	return s.getByUUIDFn(ctx, uuid)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByUsernames(ctx context.Context, usernames []string) ([]models.User, error) {
	return s.getByUsernamesFn(ctx, usernames)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByUUIDFn: func(_ context.Context, uuid string) (*models.User, error) {
			return &models.User{UUID: uuid}, nil
		},
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			return &models.User{Username: username}, nil
		},
		getByUsernamesFn: func(context.Context, []string) ([]models.User, error) { return nil, nil },
		createFn:         func(context.Context, *models.User) error { return nil },
	}
}

type postRepoStub struct {
	getByUUIDFn        func(context.Context, string) (*models.Post, error)
	createFn           func(context.Context, *models.Post) error
	countsFn           func(context.Context, string) (*models.PostCounts, error)
	homeFeedFn         func(context.Context, string, time.Time, time.Time, int, int) ([]models.FeedPost, error)
	rankedHomeFeedFn   func(context.Context, string, time.Time, time.Time, int, int) ([]models.FeedPost, error)
	rankedGlobalFeedFn func(context.Context, time.Time, time.Time, int, int) ([]models.FeedPost, error)
	responsesToFn      func(context.Context, string, int, int) ([]models.FeedPost, error)
	quotesOfFn         func(context.Context, string, int, int) ([]models.FeedPost, error)
	likeFn             func(context.Context, string, string, time.Time) error
	unlikeFn           func(context.Context, string, string) error
	isLikedFn          func(context.Context, string, string) (bool, error)
}

func (s *postRepoStub) GetByUUID(ctx context.Context, uuid string) (*models.Post, error) {
	return s.getByUUIDFn(ctx, uuid)
}
func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) Counts(ctx context.Context, uuid string) (*models.PostCounts, error) {
	return s.countsFn(ctx, uuid)
}
func (s *postRepoStub) HomeFeed(ctx context.Context, user string, since, until time.Time, skip, limit int) ([]models.FeedPost, error) {
	return s.homeFeedFn(ctx, user, since, until, skip, limit)
}
func (s *postRepoStub) RankedHomeFeed(ctx context.Context, user string, since, until time.Time, skip, limit int) ([]models.FeedPost, error) {
	return s.rankedHomeFeedFn(ctx, user, since, until, skip, limit)
}
func (s *postRepoStub) RankedGlobalFeed(ctx context.Context, since, until time.Time, skip, limit int) ([]models.FeedPost, error) {
	return s.rankedGlobalFeedFn(ctx, since, until, skip, limit)
}
func (s *postRepoStub) ResponsesTo(ctx context.Context, uuid string, skip, limit int) ([]models.FeedPost, error) {
	return s.responsesToFn(ctx, uuid, skip, limit)
}
func (s *postRepoStub) QuotesOf(ctx context.Context, uuid string, skip, limit int) ([]models.FeedPost, error) {
	return s.quotesOfFn(ctx, uuid, skip, limit)
}
func (s *postRepoStub) Like(ctx context.Context, user, post string, at time.Time) error {
	return s.likeFn(ctx, user, post, at)
}
func (s *postRepoStub) Unlike(ctx context.Context, user, post string) error {
	return s.unlikeFn(ctx, user, post)
}
func (s *postRepoStub) IsLiked(ctx context.Context, user, post string) (bool, error) {
	return s.isLikedFn(ctx, user, post)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		getByUUIDFn: func(_ context.Context, uuid string) (*models.Post, error) {
			return &models.Post{UUID: uuid}, nil
		},
		createFn: func(context.Context, *models.Post) error { return nil },
		countsFn: func(context.Context, string) (*models.PostCounts, error) {
			return &models.PostCounts{}, nil
		},
		homeFeedFn: func(context.Context, string, time.Time, time.Time, int, int) ([]models.FeedPost, error) {
			return nil, nil
		},
		rankedHomeFeedFn: func(context.Context, string, time.Time, time.Time, int, int) ([]models.FeedPost, error) {
			return nil, nil
		},
		rankedGlobalFeedFn: func(context.Context, time.Time, time.Time, int, int) ([]models.FeedPost, error) {
			return nil, nil
		},
		responsesToFn: func(context.Context, string, int, int) ([]models.FeedPost, error) {
			return nil, nil
		},
		quotesOfFn: func(context.Context, string, int, int) ([]models.FeedPost, error) {
			return nil, nil
		},
		likeFn:    func(context.Context, string, string, time.Time) error { return nil },
		unlikeFn:  func(context.Context, string, string) error { return nil },
		isLikedFn: func(context.Context, string, string) (bool, error) { return false, nil },
	}
}

type tagRepoStub struct {
	getByNameFn func(context.Context, string) (*models.Tag, error)
	getByUUIDFn func(context.Context, string) (*models.Tag, error)
	popularFn   func(context.Context, time.Time, time.Time, int) ([]models.TagCount, error)
	postsFn     func(context.Context, string, int, int) ([]models.FeedPost, error)
	attachFn    func(context.Context, string, string, string) error
}

func (s *tagRepoStub) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	return s.getByNameFn(ctx, name)
}
func (s *tagRepoStub) GetByUUID(ctx context.Context, uuid string) (*models.Tag, error) {
	return s.getByUUIDFn(ctx, uuid)
}
func (s *tagRepoStub) Popular(ctx context.Context, since, until time.Time, limit int) ([]models.TagCount, error) {
	return s.popularFn(ctx, since, until, limit)
}
func (s *tagRepoStub) Posts(ctx context.Context, uuid string, skip, limit int) ([]models.FeedPost, error) {
	return s.postsFn(ctx, uuid, skip, limit)
}
func (s *tagRepoStub) Attach(ctx context.Context, name, tagUUID, postUUID string) error {
	return s.attachFn(ctx, name, tagUUID, postUUID)
}

func noopTagRepo() *tagRepoStub {
	return &tagRepoStub{
		getByNameFn: func(_ context.Context, name string) (*models.Tag, error) {
			return &models.Tag{Name: name}, nil
		},
		getByUUIDFn: func(_ context.Context, uuid string) (*models.Tag, error) {
			return &models.Tag{UUID: uuid}, nil
		},
		popularFn: func(context.Context, time.Time, time.Time, int) ([]models.TagCount, error) {
			return nil, nil
		},
		postsFn: func(context.Context, string, int, int) ([]models.FeedPost, error) {
			return nil, nil
		},
		attachFn: func(context.Context, string, string, string) error { return nil },
	}
}

type notificationRepoStub struct {
	createFn      func(context.Context, *models.Notification) (bool, error)
	listFn        func(context.Context, string, int, int) ([]models.Notification, error)
	unreadCountFn func(context.Context, string) (int64, error)
	markReadFn    func(context.Context, string, string) error
	markAllReadFn func(context.Context, string) (int64, error)
}

func (s *notificationRepoStub) Create(ctx context.Context, n *models.Notification) (bool, error) {
	return s.createFn(ctx, n)
}
func (s *notificationRepoStub) List(ctx context.Context, user string, skip, limit int) ([]models.Notification, error) {
	return s.listFn(ctx, user, skip, limit)
}
func (s *notificationRepoStub) UnreadCount(ctx context.Context, user string) (int64, error) {
	return s.unreadCountFn(ctx, user)
}
func (s *notificationRepoStub) MarkRead(ctx context.Context, user, uuid string) error {
	return s.markReadFn(ctx, user, uuid)
}
func (s *notificationRepoStub) MarkAllRead(ctx context.Context, user string) (int64, error) {
	return s.markAllReadFn(ctx, user)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		createFn: func(context.Context, *models.Notification) (bool, error) { return true, nil },
		listFn: func(context.Context, string, int, int) ([]models.Notification, error) {
			return nil, nil
		},
		unreadCountFn: func(context.Context, string) (int64, error) { return 0, nil },
		markReadFn:    func(context.Context, string, string) error { return nil },
		markAllReadFn: func(context.Context, string) (int64, error) { return 0, nil },
	}
}

type reportRepoStub struct {
	createFn    func(context.Context, *models.Report) error
	getByUUIDFn func(context.Context, string) (*models.Report, error)
	listFn      func(context.Context, bool, int, int) ([]models.Report, error)
	resolveFn   func(context.Context, string, bool) error
}

func (s *reportRepoStub) Create(ctx context.Context, report *models.Report) error {
	return s.createFn(ctx, report)
}
func (s *reportRepoStub) GetByUUID(ctx context.Context, uuid string) (*models.Report, error) {
	return s.getByUUIDFn(ctx, uuid)
}
func (s *reportRepoStub) List(ctx context.Context, checked bool, skip, limit int) ([]models.Report, error) {
	return s.listFn(ctx, checked, skip, limit)
}
func (s *reportRepoStub) Resolve(ctx context.Context, uuid string, accept bool) error {
	return s.resolveFn(ctx, uuid, accept)
}

func noopReportRepo() *reportRepoStub {
	return &reportRepoStub{
		createFn: func(context.Context, *models.Report) error { return nil },
		getByUUIDFn: func(_ context.Context, uuid string) (*models.Report, error) {
			return &models.Report{UUID: uuid}, nil
		},
		listFn: func(context.Context, bool, int, int) ([]models.Report, error) {
			return nil, nil
		},
		resolveFn: func(context.Context, string, bool) error { return nil },
	}
}
