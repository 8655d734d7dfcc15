// Package testcase implements test case business rules and list actions
package testcase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/tcm/internal/auth"
	"github.com/thenoetrevino/tcm/internal/models"
)

const maxNameLength = 200

// Service defines all case-related business operations
type Service interface {
	GetCaseByID(ctx context.Context, p auth.Principal, id int) (*models.Case, error)
	CreateCase(ctx context.Context, p auth.Principal, req CreateCaseRequest) (*models.Case, error)

	// List actions
	Activate(ctx context.Context, c *models.Case) error
	Deactivate(ctx context.Context, c *models.Case) error
	Clone(ctx context.Context, c *models.Case) error
	Delete(ctx context.Context, c *models.Case) error
}

// CreateCaseRequest encapsulates data for creating a case.
// SuiteID is optional; when set the suite must belong to ProductID.
type CreateCaseRequest struct {
	ProductID   int
	SuiteID     *int
	Name        string
	Description string
}

type repository interface {
	CreateCase(ctx context.Context, productID int, suiteID *int, name, description string) (*models.Case, error)
	GetCaseByID(ctx context.Context, companyID, id int) (*models.Case, error)
	UpdateCaseStatus(ctx context.Context, id int, status models.Status) error
	CloneCase(ctx context.Context, c *models.Case) (*models.Case, error)
	DeleteCase(ctx context.Context, id int) error

	GetProductByID(ctx context.Context, companyID, id int) (*models.Product, error)
	GetSuiteByID(ctx context.Context, companyID, id int) (*models.Suite, error)
}

type service struct {
	repo   repository
	logger *slog.Logger
}

// NewService creates a new test case service
func NewService(repo repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{repo: repo, logger: logger.With("service", "case")}
}

func (s *service) GetCaseByID(ctx context.Context, p auth.Principal, id int) (*models.Case, error) {
	if id <= 0 {
		return nil, ErrInvalidCaseID
	}
	return s.repo.GetCaseByID(ctx, p.CompanyID, id)
}

func (s *service) CreateCase(ctx context.Context, p auth.Principal, req CreateCaseRequest) (*models.Case, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > maxNameLength {
		return nil, ErrNameTooLong
	}

	if _, err := s.repo.GetProductByID(ctx, p.CompanyID, req.ProductID); err != nil {
		return nil, err
	}
	if req.SuiteID != nil {
		suite, err := s.repo.GetSuiteByID(ctx, p.CompanyID, *req.SuiteID)
		if err != nil {
			return nil, err
		}
		if suite.ProductID != req.ProductID {
			return nil, ErrSuiteMismatch
		}
	}

	c, err := s.repo.CreateCase(ctx, req.ProductID, req.SuiteID, name, req.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create case: %w", err)
	}
	s.logger.Info("case created", "id", c.ID, "product", req.ProductID)
	return c, nil
}

func (s *service) Activate(ctx context.Context, c *models.Case) error {
	return s.setStatus(ctx, c, models.StatusActive)
}

func (s *service) Deactivate(ctx context.Context, c *models.Case) error {
	return s.setStatus(ctx, c, models.StatusDisabled)
}

func (s *service) setStatus(ctx context.Context, c *models.Case, status models.Status) error {
	if err := s.repo.UpdateCaseStatus(ctx, c.ID, status); err != nil {
		return fmt.Errorf("failed to update case status: %w", err)
	}
	c.Status = status
	return nil
}

// Clone copies the case into the same product and suite
func (s *service) Clone(ctx context.Context, c *models.Case) error {
	clone, err := s.repo.CloneCase(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to clone case: %w", err)
	}
	s.logger.Info("case cloned", "id", c.ID, "clone", clone.ID)
	return nil
}

func (s *service) Delete(ctx context.Context, c *models.Case) error {
	if c.Status == models.StatusActive {
		return models.Conflictf("cannot delete an active test case")
	}
	if err := s.repo.DeleteCase(ctx, c.ID); err != nil {
		return fmt.Errorf("failed to delete case: %w", err)
	}
	s.logger.Info("case deleted", "id", c.ID)
	return nil
}
