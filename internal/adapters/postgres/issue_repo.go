package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/domain"
)

// IssueRepo implements ports.IssueRepository.
type IssueRepo struct {
	db *DB
}

func NewIssueRepo(db *DB) *IssueRepo {
	return &IssueRepo{db: db}
}

func (r *IssueRepo) Create(ctx context.Context, issue *domain.Issue) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO issues (id, title, description, category, lat, lon, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, issue.ID, issue.Title, issue.Description, issue.Category,
		issue.Location.Lat, issue.Location.Lon, issue.Status, issue.CreatedAt)
	return err
}

func (r *IssueRepo) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	i := &domain.Issue{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, title, COALESCE(description, ''), category, lat, lon, status, created_at
		FROM issues WHERE id = $1
	`, id).Scan(&i.ID, &i.Title, &i.Description, &i.Category,
		&i.Location.Lat, &i.Location.Lon, &i.Status, &i.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return i, nil
}

func (r *IssueRepo) List(ctx context.Context, offset, limit int) ([]domain.Issue, int, error) {
	var total int
	if err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM issues`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, title, COALESCE(description, ''), category, lat, lon, status, created_at
		FROM issues ORDER BY created_at DESC OFFSET $1 LIMIT $2
	`, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var issues []domain.Issue
	for rows.Next() {
		var i domain.Issue
		if err := rows.Scan(&i.ID, &i.Title, &i.Description, &i.Category,
			&i.Location.Lat, &i.Location.Lon, &i.Status, &i.CreatedAt); err != nil {
			return nil, 0, err
		}
		issues = append(issues, i)
	}
	return issues, total, rows.Err()
}
