package ports

import (
	"context"

	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/domain"
)

// IssueRepository persists reported civic issues.
type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) error
	GetByID(ctx context.Context, id string) (*domain.Issue, error)
	// List returns a page of issues (newest first) and the total count.
	List(ctx context.Context, offset, limit int) ([]domain.Issue, int, error)
}
