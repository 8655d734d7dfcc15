package testcase

import (
	"context"
	"errors"
	"testing"

	"github.com/thenoetrevino/tcm/internal/auth"
	"github.com/thenoetrevino/tcm/internal/database"
	"github.com/thenoetrevino/tcm/internal/models"
	"github.com/thenoetrevino/tcm/internal/testutil"
)

func setup(t *testing.T) (*database.Repository, Service, auth.Principal, *models.Product) {
	t.Helper()
	repo := testutil.SetupTestRepo(t)
	p := testutil.CreateTestPrincipal(t, repo, "Mozilla", "admin", testutil.AllPermissions...)
	product := testutil.CreateTestProduct(t, repo, p.CompanyID, "Firefox", models.StatusActive)
	return repo, NewService(repo, nil), p, product
}

func TestCreateCase_WithoutSuite(t *testing.T) {
	t.Parallel()
	_, svc, p, product := setup(t)

	c, err := svc.CreateCase(context.Background(), p, CreateCaseRequest{
		ProductID:   product.ID,
		Name:        "Open a tab",
		Description: "1. press ctrl-t",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if c.SuiteID != nil {
		t.Errorf("Expected no suite, got %d", *c.SuiteID)
	}
	if c.Description != "1. press ctrl-t" {
		t.Errorf("Unexpected description %q", c.Description)
	}
}

func TestCreateCase_SuiteOfOtherProduct(t *testing.T) {
	t.Parallel()
	repo, svc, p, product := setup(t)
	other := testutil.CreateTestProduct(t, repo, p.CompanyID, "Thunderbird", models.StatusActive)
	suite := testutil.CreateTestSuite(t, repo, other.ID, "Mail", models.StatusActive)

	_, err := svc.CreateCase(context.Background(), p, CreateCaseRequest{
		ProductID: product.ID,
		SuiteID:   &suite.ID,
		Name:      "Send mail",
	})
	if !errors.Is(err, ErrSuiteMismatch) {
		t.Errorf("Expected ErrSuiteMismatch, got %v", err)
	}
}

func TestDelete_ActiveCase(t *testing.T) {
	t.Parallel()
	repo, svc, p, product := setup(t)
	ctx := context.Background()
	c := testutil.CreateTestCase(t, repo, product.ID, nil, "Open a tab", models.StatusActive)

	if err := svc.Delete(ctx, c); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("Expected conflict, got %v", err)
	}
	if _, err := svc.GetCaseByID(ctx, p, c.ID); err != nil {
		t.Fatalf("Expected case to remain, got %v", err)
	}

	if err := svc.Deactivate(ctx, c); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if err := svc.Delete(ctx, c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetCaseByID(ctx, p, c.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestClone_KeepsSuite(t *testing.T) {
	t.Parallel()
	repo, svc, p, product := setup(t)
	ctx := context.Background()
	suite := testutil.CreateTestSuite(t, repo, product.ID, "Smoke", models.StatusActive)
	c := testutil.CreateTestCase(t, repo, product.ID, &suite.ID, "Open a tab", models.StatusActive)

	if err := svc.Clone(ctx, c); err != nil {
		t.Fatalf("Clone: %v", err)
	}

	recs, err := repo.Cases().Ours(p).Filter("suite", suite.ID).Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("Expected 2 cases in suite, got %d", len(recs))
	}
	if recs[1].String() != "Open a tab (clone)" {
		t.Errorf("Expected clone name, got %q", recs[1].String())
	}
}
