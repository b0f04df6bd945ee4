package usecases

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/domain"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/ports"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/pkg/metrics"
)

const (
	defaultIssuePageSize = 20
	maxIssuePageSize     = 100
)

// ErrInvalidIssue is returned when a reported issue fails validation.
var ErrInvalidIssue = errors.New("invalid issue")

// IssueService handles citizen issue reports: validation, persistence and a
// best-effort event publish for downstream consumers.
type IssueService struct {
	repo      ports.IssueRepository
	publisher ports.EventPublisher
}

// NewIssueService creates a new IssueService.
func NewIssueService(repo ports.IssueRepository, publisher ports.EventPublisher) *IssueService {
	return &IssueService{repo: repo, publisher: publisher}
}

// Report validates and persists a new issue. Publishing the reported event
// is best effort; a broker outage never fails the report.
func (s *IssueService) Report(ctx context.Context, issue *domain.Issue) (*domain.Issue, error) {
	if issue.Title == "" || issue.Category == "" {
		return nil, ErrInvalidIssue
	}
	if issue.Location.IsZero() {
		return nil, ErrInvalidIssue
	}

	issue.ID = uuid.NewString()
	issue.Status = domain.IssueOpen
	issue.CreatedAt = time.Now().UTC()

	if err := s.repo.Create(ctx, issue); err != nil {
		return nil, err
	}
	metrics.IssuesReported.WithLabelValues(issue.Category).Inc()

	if s.publisher != nil {
		if err := s.publisher.PublishIssueReported(ctx, issue); err != nil {
			slog.Warn("issue event publish failed", "issue_id", issue.ID, "error", err)
		}
	}
	return issue, nil
}

// Get returns one issue by ID.
func (s *IssueService) Get(ctx context.Context, id string) (*domain.Issue, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a page of issues, newest first, and the total count.
func (s *IssueService) List(ctx context.Context, offset, limit int) ([]domain.Issue, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultIssuePageSize
	}
	if limit > maxIssuePageSize {
		limit = maxIssuePageSize
	}
	return s.repo.List(ctx, offset, limit)
}
