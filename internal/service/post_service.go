package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"murmur/internal/models"
	"murmur/internal/observability"
	"murmur/internal/repository"

	"github.com/google/uuid"
)

var mentionPattern = regexp.MustCompile(`@([A-Za-z0-9_]+)`)

// PostService creates posts and triggers the notification fan-out that
// follows from them.
type PostService struct {
	postRepo      repository.PostRepository
	tagRepo       repository.TagRepository
	userRepo      repository.UserRepository
	notifications *NotificationEngine
	logger        *observability.Logger
	now           func() time.Time
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, tagRepo repository.TagRepository, userRepo repository.UserRepository, notifications *NotificationEngine) *PostService {
	return &PostService{
		postRepo:      postRepo,
		tagRepo:       tagRepo,
		userRepo:      userRepo,
		notifications: notifications,
		logger:        observability.GlobalLogger,
		now:           time.Now,
	}
}

// CreatePost writes a plain, response or quote post authored by the
// principal, attaches the given tags and fans out notifications. The
// post is committed before fan-out starts; fan-out failures are logged
// and never undo the post.
func (s *PostService) CreatePost(ctx context.Context, principal models.Principal, content string, kind models.PostKind, targetUUID string, tags []string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("content must not be empty")
	}

	var target *models.Post
	switch kind {
	case models.PostKindPlain:
		if targetUUID != "" {
			return nil, models.NewValidationError("plain posts cannot reference a target post")
		}
	case models.PostKindResponse, models.PostKindQuote:
		if targetUUID == "" {
			return nil, models.NewValidationError("target post is required")
		}
		var err error
		target, err = s.postRepo.GetByUUID(ctx, targetUUID)
		if err != nil {
			return nil, err
		}
	default:
		return nil, models.NewValidationError("unknown post kind")
	}

	post := &models.Post{
		UUID:           uuid.NewString(),
		Content:        content,
		CreationDate:   s.now(),
		AuthorUUID:     principal.UUID,
		AuthorUsername: principal.Username,
		Kind:           kind,
		TargetUUID:     targetUUID,
	}
	if target != nil && kind == models.PostKindResponse {
		post.RespondsToUsername = target.AuthorUsername
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.attachTags(ctx, post, tags)
	s.fanOut(ctx, post, target)
	return post, nil
}

func (s *PostService) attachTags(ctx context.Context, post *models.Post, tags []string) {
	seen := make(map[string]struct{}, len(tags))
	for _, name := range tags {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		if err := s.tagRepo.Attach(ctx, name, uuid.NewString(), post.UUID); err != nil {
			s.logger.Warn("tag attach failed", "post", post.UUID, "tag", name, "error", err)
		}
	}
}

// fanOut sends the response/quote notification to the target's author
// and mention notifications to every @username the content resolves to.
func (s *PostService) fanOut(ctx context.Context, post *models.Post, target *models.Post) {
	if target != nil {
		var err error
		switch post.Kind {
		case models.PostKindResponse:
			_, err = s.notifications.NotifyResponse(ctx, post, target.AuthorUUID)
		case models.PostKindQuote:
			_, err = s.notifications.NotifyQuote(ctx, post, target.AuthorUUID)
		}
		if err != nil {
			s.logger.Warn("notification fan-out failed", "post", post.UUID, "error", err)
		}
	}

	mentioned := mentionedUsernames(post.Content)
	if len(mentioned) == 0 {
		return
	}
	users, err := s.userRepo.GetByUsernames(ctx, mentioned)
	if err != nil {
		s.logger.Warn("mention resolution failed", "post", post.UUID, "error", err)
		return
	}
	targets := make([]string, 0, len(users))
	for _, user := range users {
		targets = append(targets, user.UUID)
	}
	if _, err := s.notifications.NotifyMention(ctx, post, targets); err != nil {
		s.logger.Warn("mention fan-out failed", "post", post.UUID, "error", err)
	}
}

// mentionedUsernames extracts the distinct @username tokens in order of
// first appearance. Unknown names are filtered out later at resolution.
func mentionedUsernames(content string) []string {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		name := match[1]
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
