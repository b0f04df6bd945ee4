package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/domain"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/usecases"
)

type mockIssueRepo struct {
	createFn  func(ctx context.Context, issue *domain.Issue) error
	getByIDFn func(ctx context.Context, id string) (*domain.Issue, error)
	listFn    func(ctx context.Context, offset, limit int) ([]domain.Issue, int, error)
}

func (m *mockIssueRepo) Create(ctx context.Context, issue *domain.Issue) error {
	return m.createFn(ctx, issue)
}

func (m *mockIssueRepo) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockIssueRepo) List(ctx context.Context, offset, limit int) ([]domain.Issue, int, error) {
	return m.listFn(ctx, offset, limit)
}

type mockPublisher struct {
	reportedFn func(ctx context.Context, issue *domain.Issue) error
}

func (m *mockPublisher) PublishIssueReported(ctx context.Context, issue *domain.Issue) error {
	if m.reportedFn != nil {
		return m.reportedFn(ctx, issue)
	}
	return nil
}

func (m *mockPublisher) PublishBroadcast(_ context.Context, _ []byte) error { return nil }

func validIssue() *domain.Issue {
	return &domain.Issue{
		Title:    "Pothole on Dame Street",
		Category: "roads",
		Location: domain.GeoPoint{Lat: 53.344, Lon: -6.266},
	}
}

func TestReportAssignsIDAndStatus(t *testing.T) {
	var stored *domain.Issue
	repo := &mockIssueRepo{
		createFn: func(_ context.Context, issue *domain.Issue) error {
			stored = issue
			return nil
		},
	}
	svc := usecases.NewIssueService(repo, &mockPublisher{})

	issue, err := svc.Report(context.Background(), validIssue())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if issue.ID == "" {
		t.Error("expected an assigned ID")
	}
	if issue.Status != domain.IssueOpen {
		t.Errorf("status = %q, want %q", issue.Status, domain.IssueOpen)
	}
	if issue.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if stored == nil || stored.ID != issue.ID {
		t.Error("issue was not persisted")
	}
}

func TestReportRejectsInvalidIssue(t *testing.T) {
	svc := usecases.NewIssueService(&mockIssueRepo{}, nil)

	cases := map[string]*domain.Issue{
		"missing title":    {Category: "roads", Location: domain.GeoPoint{Lat: 53.3, Lon: -6.2}},
		"missing category": {Title: "Pothole", Location: domain.GeoPoint{Lat: 53.3, Lon: -6.2}},
		"missing location": {Title: "Pothole", Category: "roads"},
	}
	for name, issue := range cases {
		if _, err := svc.Report(context.Background(), issue); !errors.Is(err, usecases.ErrInvalidIssue) {
			t.Errorf("%s: expected ErrInvalidIssue, got %v", name, err)
		}
	}
}

func TestReportToleratesPublishFailure(t *testing.T) {
	repo := &mockIssueRepo{
		createFn: func(_ context.Context, _ *domain.Issue) error { return nil },
	}
	pub := &mockPublisher{
		reportedFn: func(_ context.Context, _ *domain.Issue) error {
			return errors.New("broker down")
		},
	}
	svc := usecases.NewIssueService(repo, pub)

	if _, err := svc.Report(context.Background(), validIssue()); err != nil {
		t.Errorf("publish failure must not fail the report: %v", err)
	}
}

func TestListClampsPagination(t *testing.T) {
	var gotOffset, gotLimit int
	repo := &mockIssueRepo{
		listFn: func(_ context.Context, offset, limit int) ([]domain.Issue, int, error) {
			gotOffset, gotLimit = offset, limit
			return []domain.Issue{}, 0, nil
		},
	}
	svc := usecases.NewIssueService(repo, nil)

	if _, _, err := svc.List(context.Background(), -5, 500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotOffset != 0 {
		t.Errorf("offset = %d, want 0", gotOffset)
	}
	if gotLimit != 100 {
		t.Errorf("limit = %d, want 100", gotLimit)
	}
}
