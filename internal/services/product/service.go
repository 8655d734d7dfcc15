// Package product implements product business rules and list actions
package product

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/tcm/internal/auth"
	"github.com/thenoetrevino/tcm/internal/models"
)

const maxNameLength = 100

// Service defines all product-related business operations
type Service interface {
	// Read operations
	GetProductByID(ctx context.Context, p auth.Principal, id int) (*models.Product, error)
	ListProducts(ctx context.Context, p auth.Principal) ([]*models.Product, error)

	// Write operations
	CreateProduct(ctx context.Context, p auth.Principal, req CreateProductRequest) (*models.Product, error)

	// List actions
	Activate(ctx context.Context, product *models.Product) error
	Deactivate(ctx context.Context, product *models.Product) error
	Clone(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, product *models.Product) error
}

// CreateProductRequest encapsulates data for creating a product
type CreateProductRequest struct {
	Name        string
	Description string
}

// repository defines the data access methods needed by the product service
type repository interface {
	CreateProduct(ctx context.Context, companyID int, name, description string) (*models.Product, error)
	GetProductByID(ctx context.Context, companyID, id int) (*models.Product, error)
	GetProductsByCompany(ctx context.Context, companyID int) ([]*models.Product, error)
	UpdateProductStatus(ctx context.Context, id int, status models.Status) error
	CloneProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int) error

	// used to enforce the deletion rule
	CountCyclesByStatus(ctx context.Context, productID int, status models.Status) (int, error)
}

type service struct {
	repo   repository
	logger *slog.Logger
}

// NewService creates a new product service
func NewService(repo repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{repo: repo, logger: logger.With("service", "product")}
}

// GetProductByID retrieves a product in the principal's company
func (s *service) GetProductByID(ctx context.Context, p auth.Principal, id int) (*models.Product, error) {
	if id <= 0 {
		return nil, ErrInvalidProductID
	}
	return s.repo.GetProductByID(ctx, p.CompanyID, id)
}

// ListProducts returns the principal's products ordered by name
func (s *service) ListProducts(ctx context.Context, p auth.Principal) ([]*models.Product, error) {
	return s.repo.GetProductsByCompany(ctx, p.CompanyID)
}

// CreateProduct validates and inserts a draft product
func (s *service) CreateProduct(ctx context.Context, p auth.Principal, req CreateProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > maxNameLength {
		return nil, ErrNameTooLong
	}

	product, err := s.repo.CreateProduct(ctx, p.CompanyID, name, req.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	s.logger.Info("product created", "id", product.ID, "company", p.CompanyID)
	return product, nil
}

func (s *service) Activate(ctx context.Context, product *models.Product) error {
	return s.setStatus(ctx, product, models.StatusActive)
}

func (s *service) Deactivate(ctx context.Context, product *models.Product) error {
	return s.setStatus(ctx, product, models.StatusDisabled)
}

func (s *service) setStatus(ctx context.Context, product *models.Product, status models.Status) error {
	if err := s.repo.UpdateProductStatus(ctx, product.ID, status); err != nil {
		return fmt.Errorf("failed to update product status: %w", err)
	}
	product.Status = status
	return nil
}

// Clone copies the product without its suites, cases or cycles
func (s *service) Clone(ctx context.Context, product *models.Product) error {
	clone, err := s.repo.CloneProduct(ctx, product)
	if err != nil {
		return fmt.Errorf("failed to clone product: %w", err)
	}
	s.logger.Info("product cloned", "id", product.ID, "clone", clone.ID)
	return nil
}

// Delete removes the product (business rule: no active test cycles)
func (s *service) Delete(ctx context.Context, product *models.Product) error {
	active, err := s.repo.CountCyclesByStatus(ctx, product.ID, models.StatusActive)
	if err != nil {
		return fmt.Errorf("failed to check product cycles: %w", err)
	}
	if active > 0 {
		return models.Conflictf("cannot delete a product with active test cycles")
	}

	if err := s.repo.DeleteProduct(ctx, product.ID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	s.logger.Info("product deleted", "id", product.ID)
	return nil
}
