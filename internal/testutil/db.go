package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/thenoetrevino/tcm/internal/auth"
	"github.com/thenoetrevino/tcm/internal/database"
	"github.com/thenoetrevino/tcm/internal/models"
	_ "modernc.org/sqlite"
)

// SetupTestDB creates an in-memory database with full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

// SetupTestRepo returns a repository over a fresh test database
func SetupTestRepo(t *testing.T) *database.Repository {
	t.Helper()
	return database.NewRepository(SetupTestDB(t))
}

// AllPermissions is every permission codename the web layer checks
var AllPermissions = []string{
	models.PermManageProducts,
	models.PermManageSuites,
	models.PermManageCases,
	models.PermManageCycles,
}

// CreateTestPrincipal creates a company and a user holding perms, and returns
// the user's principal
func CreateTestPrincipal(t *testing.T, repo *database.Repository, company, username string, perms ...string) auth.Principal {
	t.Helper()
	ctx := context.Background()

	c, err := repo.GetCompanyByName(ctx, company)
	if err != nil {
		c, err = repo.CreateCompany(ctx, company)
		if err != nil {
			t.Fatalf("Failed to create company: %v", err)
		}
	}

	u, err := repo.CreateUser(ctx, c.ID, username, perms)
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return auth.FromUser(u)
}

// CreateTestProduct creates a product with the given status
func CreateTestProduct(t *testing.T, repo *database.Repository, companyID int, name string, status models.Status) *models.Product {
	t.Helper()
	ctx := context.Background()

	p, err := repo.CreateProduct(ctx, companyID, name, "")
	if err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	if status != p.Status {
		if err := repo.UpdateProductStatus(ctx, p.ID, status); err != nil {
			t.Fatalf("Failed to set product status: %v", err)
		}
		p.Status = status
	}
	return p
}

// CreateTestSuite creates a suite with the given status
func CreateTestSuite(t *testing.T, repo *database.Repository, productID int, name string, status models.Status) *models.Suite {
	t.Helper()
	ctx := context.Background()

	s, err := repo.CreateSuite(ctx, productID, name, "")
	if err != nil {
		t.Fatalf("Failed to create suite: %v", err)
	}
	if status != s.Status {
		if err := repo.UpdateSuiteStatus(ctx, s.ID, status); err != nil {
			t.Fatalf("Failed to set suite status: %v", err)
		}
		s.Status = status
	}
	return s
}

// CreateTestCase creates a case, optionally inside a suite
func CreateTestCase(t *testing.T, repo *database.Repository, productID int, suiteID *int, name string, status models.Status) *models.Case {
	t.Helper()
	ctx := context.Background()

	c, err := repo.CreateCase(ctx, productID, suiteID, name, "")
	if err != nil {
		t.Fatalf("Failed to create case: %v", err)
	}
	if status != c.Status {
		if err := repo.UpdateCaseStatus(ctx, c.ID, status); err != nil {
			t.Fatalf("Failed to set case status: %v", err)
		}
		c.Status = status
	}
	return c
}

// CreateTestCycle creates a cycle with the given status
func CreateTestCycle(t *testing.T, repo *database.Repository, productID int, name string, status models.Status) *models.Cycle {
	t.Helper()
	ctx := context.Background()

	c, err := repo.CreateCycle(ctx, productID, name, "")
	if err != nil {
		t.Fatalf("Failed to create cycle: %v", err)
	}
	if status != c.Status {
		if err := repo.UpdateCycleStatus(ctx, c.ID, status); err != nil {
			t.Fatalf("Failed to set cycle status: %v", err)
		}
		c.Status = status
	}
	return c
}
