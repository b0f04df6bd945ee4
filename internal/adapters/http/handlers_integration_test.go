//go:build integration
// +build integration

package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	handler "github.com/SubhayanDas08/ase-grp2-sub001/internal/adapters/http"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/adapters/postgres"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/domain"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/usecases"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/pkg/config"
)

// setupTestDB connects to the test database.
func setupTestDB(t *testing.T) *postgres.DB {
	cfg, err := config.Load("cityflow-test")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}

	db := &postgres.DB{Pool: pool}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("ping db: %v", err)
	}

	return db
}

// setupTestDeps creates dependencies with a real issue repo, no cache.
func setupTestDeps(t *testing.T, db *postgres.DB) *handler.Dependencies {
	tolls := usecases.NewTollService(nil, 0.5)
	return &handler.Dependencies{
		Planner:     usecases.NewPlannerService(&mockRoadRouter{}, &mockTransitPlanner{}, tolls),
		Locations:   usecases.NewLocationService(&mockGeocoder{}, &mockTransitLocator{}, nil),
		Tolls:       tolls,
		Environment: usecases.NewEnvironmentService(&mockAirProvider{}, &mockWeatherProvider{}, nil),
		Issues:      usecases.NewIssueService(postgres.NewIssueRepo(db), nil),
		DB:          db,
	}
}

// TestReportAndGetIssue_Integration exercises the full issue round trip
// against a real database.
func TestReportAndGetIssue_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	title := "Integration pothole " + time.Now().Format("20060102150405")
	body := `{"title":"` + title + `","category":"roads","lat":53.344,"lon":-6.266}`
	req := httptest.NewRequest("POST", "/v1/issues", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var created domain.Issue
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected assigned issue ID")
	}

	req = httptest.NewRequest("GET", "/v1/issues/"+created.ID, nil)
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var fetched domain.Issue
	if err := json.NewDecoder(resp.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if fetched.Title != title {
		t.Errorf("expected title %q, got %q", title, fetched.Title)
	}
	if fetched.Status != domain.IssueOpen {
		t.Errorf("expected status open, got %q", fetched.Status)
	}
}

// TestListIssues_Integration verifies pagination over a real table.
func TestListIssues_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	// Seed two issues through the API itself.
	for _, title := range []string{"Broken light A", "Broken light B"} {
		body := `{"title":"` + title + `","category":"lighting","lat":53.35,"lon":-6.26}`
		req := httptest.NewRequest("POST", "/v1/issues", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("seed issue: %v", err)
		}
		if resp.StatusCode != 201 {
			t.Fatalf("seed issue: expected 201, got %d", resp.StatusCode)
		}
	}

	req := httptest.NewRequest("GET", "/v1/issues?offset=0&limit=1", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data       []domain.Issue      `json:"data"`
		Pagination struct{ Total int } `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(result.Data) != 1 {
		t.Errorf("expected 1 issue in page, got %d", len(result.Data))
	}
	if result.Pagination.Total < 2 {
		t.Errorf("expected total >= 2, got %d", result.Pagination.Total)
	}
}
