package service

import (
	"context"
	"time"

	"murmur/internal/models"
	"murmur/internal/repository"

	"github.com/google/uuid"
)

// ModerationService files reports against posts and drives their
// one-way resolution, cascading accepted reports into a soft delete.
type ModerationService struct {
	reportRepo repository.ReportRepository
	postRepo   repository.PostRepository
	userRepo   repository.UserRepository
	now        func() time.Time
}

// NewModerationService returns a new ModerationService.
func NewModerationService(reportRepo repository.ReportRepository, postRepo repository.PostRepository, userRepo repository.UserRepository) *ModerationService {
	return &ModerationService{
		reportRepo: reportRepo,
		postRepo:   postRepo,
		userRepo:   userRepo,
		now:        time.Now,
	}
}

// FileReport records a report by the principal against the post. The
// reason must be one of the accepted enum values and authors cannot
// report their own posts. The same user may report the same post more
// than once; each filing is its own report.
func (s *ModerationService) FileReport(ctx context.Context, principal models.Principal, postUUID, reason, description string) (*models.Report, error) {
	parsed, ok := models.ParseReportReason(reason)
	if !ok {
		return nil, models.NewValidationError("unknown report reason")
	}

	if _, err := s.userRepo.GetByUUID(ctx, principal.UUID); err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByUUID(ctx, postUUID)
	if err != nil {
		return nil, err
	}
	if post.AuthorUUID == principal.UUID {
		return nil, models.NewValidationError("cannot report your own post")
	}

	report := &models.Report{
		UUID:         uuid.NewString(),
		Reason:       parsed,
		Description:  description,
		CreationDate: s.now(),
		ReporterUUID: principal.UUID,
		PostUUID:     postUUID,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return s.reportRepo.GetByUUID(ctx, report.UUID)
}

// ListReports returns reports in the given checked state, newest first,
// denormalized for the moderation queue.
func (s *ModerationService) ListReports(ctx context.Context, checked bool, skip, limit int) ([]models.Report, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}
	return s.reportRepo.List(ctx, checked, skip, limit)
}

// ResolveReport moves an open report to its terminal state and returns
// it. Accepting soft-deletes the reported post in the same store
// statement. Reports already resolved cannot be resolved again.
func (s *ModerationService) ResolveReport(ctx context.Context, reportUUID string, accept bool) (*models.Report, error) {
	if err := s.reportRepo.Resolve(ctx, reportUUID, accept); err != nil {
		return nil, err
	}
	return s.reportRepo.GetByUUID(ctx, reportUUID)
}
