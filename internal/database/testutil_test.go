package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/thenoetrevino/tcm/internal/models"
	_ "modernc.org/sqlite"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database and runs migrations
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

// fixture holds one company with a product, suite, case and cycle
type fixture struct {
	repo    *Repository
	company *models.Company
	product *models.Product
	suite   *models.Suite
	tcase   *models.Case
	cycle   *models.Cycle
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	company, err := repo.CreateCompany(ctx, "Mozilla")
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	product, err := repo.CreateProduct(ctx, company.ID, "Firefox", "the browser")
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	suite, err := repo.CreateSuite(ctx, product.ID, "Smoke", "")
	if err != nil {
		t.Fatalf("CreateSuite: %v", err)
	}
	tcase, err := repo.CreateCase(ctx, product.ID, &suite.ID, "Open a tab", "1. press ctrl-t")
	if err != nil {
		t.Fatalf("CreateCase: %v", err)
	}
	cycle, err := repo.CreateCycle(ctx, product.ID, "Release 10", "")
	if err != nil {
		t.Fatalf("CreateCycle: %v", err)
	}

	return &fixture{repo: repo, company: company, product: product, suite: suite, tcase: tcase, cycle: cycle}
}
