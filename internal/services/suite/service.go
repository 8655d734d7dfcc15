// Package suite implements test suite business rules and list actions
package suite

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/tcm/internal/auth"
	"github.com/thenoetrevino/tcm/internal/models"
)

const maxNameLength = 100

// Service defines all suite-related business operations
type Service interface {
	GetSuiteByID(ctx context.Context, p auth.Principal, id int) (*models.Suite, error)
	CreateSuite(ctx context.Context, p auth.Principal, req CreateSuiteRequest) (*models.Suite, error)

	// List actions
	Activate(ctx context.Context, suite *models.Suite) error
	Deactivate(ctx context.Context, suite *models.Suite) error
	Clone(ctx context.Context, suite *models.Suite) error
	Delete(ctx context.Context, suite *models.Suite) error
}

// CreateSuiteRequest encapsulates data for creating a suite
type CreateSuiteRequest struct {
	ProductID   int
	Name        string
	Description string
}

type repository interface {
	CreateSuite(ctx context.Context, productID int, name, description string) (*models.Suite, error)
	GetSuiteByID(ctx context.Context, companyID, id int) (*models.Suite, error)
	UpdateSuiteStatus(ctx context.Context, id int, status models.Status) error
	CloneSuite(ctx context.Context, s *models.Suite) (*models.Suite, error)
	DeleteSuite(ctx context.Context, id int) error

	GetProductByID(ctx context.Context, companyID, id int) (*models.Product, error)
}

type service struct {
	repo   repository
	logger *slog.Logger
}

// NewService creates a new suite service
func NewService(repo repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{repo: repo, logger: logger.With("service", "suite")}
}

func (s *service) GetSuiteByID(ctx context.Context, p auth.Principal, id int) (*models.Suite, error) {
	if id <= 0 {
		return nil, ErrInvalidSuiteID
	}
	return s.repo.GetSuiteByID(ctx, p.CompanyID, id)
}

// CreateSuite adds a draft suite to one of the principal's products
func (s *service) CreateSuite(ctx context.Context, p auth.Principal, req CreateSuiteRequest) (*models.Suite, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > maxNameLength {
		return nil, ErrNameTooLong
	}

	// the product must be visible to the caller
	if _, err := s.repo.GetProductByID(ctx, p.CompanyID, req.ProductID); err != nil {
		return nil, err
	}

	suite, err := s.repo.CreateSuite(ctx, req.ProductID, name, req.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create suite: %w", err)
	}
	s.logger.Info("suite created", "id", suite.ID, "product", req.ProductID)
	return suite, nil
}

// Activate refuses suites whose product is disabled
func (s *service) Activate(ctx context.Context, suite *models.Suite) error {
	product, err := s.repo.GetProductByID(ctx, suite.CompanyID, suite.ProductID)
	if err != nil {
		return fmt.Errorf("failed to load product of suite %d: %w", suite.ID, err)
	}
	if product.Status == models.StatusDisabled {
		return models.Conflictf("product %s is disabled", product.Name)
	}
	return s.setStatus(ctx, suite, models.StatusActive)
}

func (s *service) Deactivate(ctx context.Context, suite *models.Suite) error {
	return s.setStatus(ctx, suite, models.StatusDisabled)
}

func (s *service) setStatus(ctx context.Context, suite *models.Suite, status models.Status) error {
	if err := s.repo.UpdateSuiteStatus(ctx, suite.ID, status); err != nil {
		return fmt.Errorf("failed to update suite status: %w", err)
	}
	suite.Status = status
	return nil
}

// Clone copies the suite row; its cases stay with the original
func (s *service) Clone(ctx context.Context, suite *models.Suite) error {
	clone, err := s.repo.CloneSuite(ctx, suite)
	if err != nil {
		return fmt.Errorf("failed to clone suite: %w", err)
	}
	s.logger.Info("suite cloned", "id", suite.ID, "clone", clone.ID)
	return nil
}

// Delete removes a suite that is not active. Its cases are kept without a suite.
func (s *service) Delete(ctx context.Context, suite *models.Suite) error {
	if suite.Status == models.StatusActive {
		return models.Conflictf("cannot delete an active suite")
	}
	if err := s.repo.DeleteSuite(ctx, suite.ID); err != nil {
		return fmt.Errorf("failed to delete suite: %w", err)
	}
	s.logger.Info("suite deleted", "id", suite.ID)
	return nil
}
