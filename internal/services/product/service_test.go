package product

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/thenoetrevino/tcm/internal/auth"
	"github.com/thenoetrevino/tcm/internal/database"
	"github.com/thenoetrevino/tcm/internal/models"
	"github.com/thenoetrevino/tcm/internal/testutil"
)

func setup(t *testing.T) (*database.Repository, Service, auth.Principal) {
	t.Helper()
	repo := testutil.SetupTestRepo(t)
	p := testutil.CreateTestPrincipal(t, repo, "Mozilla", "admin", testutil.AllPermissions...)
	return repo, NewService(repo, nil), p
}

func TestCreateProduct(t *testing.T) {
	t.Parallel()
	_, svc, p := setup(t)

	result, err := svc.CreateProduct(context.Background(), p, CreateProductRequest{
		Name:        "  Firefox ",
		Description: "the browser",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Name != "Firefox" {
		t.Errorf("Expected name 'Firefox', got '%s'", result.Name)
	}
	if result.CompanyID != p.CompanyID {
		t.Errorf("Expected company %d, got %d", p.CompanyID, result.CompanyID)
	}
	if result.Status != models.StatusDraft {
		t.Errorf("Expected draft status, got %s", result.Status)
	}
}

func TestCreateProduct_Validation(t *testing.T) {
	t.Parallel()
	_, svc, p := setup(t)

	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrEmptyName},
		{"blank", "   ", ErrEmptyName},
		{"too long", strings.Repeat("a", maxNameLength+1), ErrNameTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), p, CreateProductRequest{Name: tt.in})
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestGetProductByID_OtherCompany(t *testing.T) {
	t.Parallel()
	repo, svc, p := setup(t)
	other := testutil.CreateTestPrincipal(t, repo, "Acme", "wile")
	product := testutil.CreateTestProduct(t, repo, other.CompanyID, "Rocket", models.StatusActive)

	_, err := svc.GetProductByID(context.Background(), p, product.ID)
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	_, err = svc.GetProductByID(context.Background(), p, 0)
	if !errors.Is(err, ErrInvalidProductID) {
		t.Errorf("Expected ErrInvalidProductID, got %v", err)
	}
}

func TestActivateDeactivate(t *testing.T) {
	t.Parallel()
	repo, svc, p := setup(t)
	ctx := context.Background()
	product := testutil.CreateTestProduct(t, repo, p.CompanyID, "Firefox", models.StatusDraft)

	if err := svc.Activate(ctx, product); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	stored, err := svc.GetProductByID(ctx, p, product.ID)
	if err != nil {
		t.Fatalf("GetProductByID: %v", err)
	}
	if stored.Status != models.StatusActive {
		t.Errorf("Expected active, got %s", stored.Status)
	}

	if err := svc.Deactivate(ctx, product); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if product.Status != models.StatusDisabled {
		t.Errorf("Expected disabled, got %s", product.Status)
	}
}

func TestClone_CopiesProductOnly(t *testing.T) {
	t.Parallel()
	repo, svc, p := setup(t)
	ctx := context.Background()
	product := testutil.CreateTestProduct(t, repo, p.CompanyID, "Firefox", models.StatusActive)
	suite := testutil.CreateTestSuite(t, repo, product.ID, "Smoke", models.StatusActive)
	testutil.CreateTestCase(t, repo, product.ID, &suite.ID, "Open a tab", models.StatusActive)

	if err := svc.Clone(ctx, product); err != nil {
		t.Fatalf("Clone: %v", err)
	}

	products, err := svc.ListProducts(ctx, p)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("Expected 2 products, got %d", len(products))
	}
	clone := products[1]
	if clone.Name != "Firefox (clone)" {
		t.Errorf("Expected 'Firefox (clone)', got '%s'", clone.Name)
	}
	if clone.Status != models.StatusDraft {
		t.Errorf("Expected clone in draft, got %s", clone.Status)
	}

	count, err := repo.CountCasesByProduct(ctx, clone.ID)
	if err != nil {
		t.Fatalf("CountCasesByProduct: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected clone without cases, got %d", count)
	}
}

func TestDelete_WithActiveCycle(t *testing.T) {
	t.Parallel()
	repo, svc, p := setup(t)
	ctx := context.Background()
	product := testutil.CreateTestProduct(t, repo, p.CompanyID, "Firefox", models.StatusActive)
	cycle := testutil.CreateTestCycle(t, repo, product.ID, "Release 10", models.StatusActive)

	err := svc.Delete(ctx, product)
	if !errors.Is(err, models.ErrConflict) {
		t.Fatalf("Expected conflict, got %v", err)
	}
	var conflict *models.ConflictError
	if !errors.As(err, &conflict) || conflict.Reason == "" {
		t.Errorf("Expected a conflict reason, got %v", err)
	}

	if err := repo.UpdateCycleStatus(ctx, cycle.ID, models.StatusDisabled); err != nil {
		t.Fatalf("UpdateCycleStatus: %v", err)
	}
	if err := svc.Delete(ctx, product); err != nil {
		t.Fatalf("Delete after disabling cycle: %v", err)
	}
	if _, err := svc.GetProductByID(ctx, p, product.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected product to be gone, got %v", err)
	}
}
