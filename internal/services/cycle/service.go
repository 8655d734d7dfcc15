// Package cycle implements test cycle business rules and list actions
package cycle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/tcm/internal/auth"
	"github.com/thenoetrevino/tcm/internal/models"
)

const maxNameLength = 100

// Service defines all cycle-related business operations
type Service interface {
	GetCycleByID(ctx context.Context, p auth.Principal, id int) (*models.Cycle, error)
	// ActiveCycles lists the cycles of a product that testers can run
	ActiveCycles(ctx context.Context, p auth.Principal, productID int) (*models.Product, []*models.Cycle, error)
	ListCycles(ctx context.Context, p auth.Principal, productID int) ([]*models.Cycle, error)
	CreateCycle(ctx context.Context, p auth.Principal, req CreateCycleRequest) (*models.Cycle, error)

	// List actions
	Activate(ctx context.Context, cycle *models.Cycle) error
	Deactivate(ctx context.Context, cycle *models.Cycle) error
	Clone(ctx context.Context, cycle *models.Cycle) error
	Delete(ctx context.Context, cycle *models.Cycle) error
}

// CreateCycleRequest encapsulates data for creating a cycle
type CreateCycleRequest struct {
	ProductID   int
	Name        string
	Description string
}

type repository interface {
	CreateCycle(ctx context.Context, productID int, name, description string) (*models.Cycle, error)
	GetCycleByID(ctx context.Context, companyID, id int) (*models.Cycle, error)
	GetCyclesByProduct(ctx context.Context, companyID, productID int, status *models.Status) ([]*models.Cycle, error)
	UpdateCycleStatus(ctx context.Context, id int, status models.Status) error
	CloneCycle(ctx context.Context, c *models.Cycle) (*models.Cycle, error)
	DeleteCycle(ctx context.Context, id int) error

	GetProductByID(ctx context.Context, companyID, id int) (*models.Product, error)
}

type service struct {
	repo   repository
	logger *slog.Logger
}

// NewService creates a new cycle service
func NewService(repo repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{repo: repo, logger: logger.With("service", "cycle")}
}

func (s *service) GetCycleByID(ctx context.Context, p auth.Principal, id int) (*models.Cycle, error) {
	if id <= 0 {
		return nil, ErrInvalidCycleID
	}
	return s.repo.GetCycleByID(ctx, p.CompanyID, id)
}

func (s *service) ActiveCycles(ctx context.Context, p auth.Principal, productID int) (*models.Product, []*models.Cycle, error) {
	product, err := s.repo.GetProductByID(ctx, p.CompanyID, productID)
	if err != nil {
		return nil, nil, err
	}
	active := models.StatusActive
	cycles, err := s.repo.GetCyclesByProduct(ctx, p.CompanyID, productID, &active)
	if err != nil {
		return nil, nil, err
	}
	return product, cycles, nil
}

func (s *service) ListCycles(ctx context.Context, p auth.Principal, productID int) ([]*models.Cycle, error) {
	return s.repo.GetCyclesByProduct(ctx, p.CompanyID, productID, nil)
}

func (s *service) CreateCycle(ctx context.Context, p auth.Principal, req CreateCycleRequest) (*models.Cycle, error) {
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

	cycle, err := s.repo.CreateCycle(ctx, req.ProductID, name, req.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create cycle: %w", err)
	}
	s.logger.Info("cycle created", "id", cycle.ID, "product", req.ProductID)
	return cycle, nil
}

// Activate refuses cycles that are already active or whose product is disabled
func (s *service) Activate(ctx context.Context, cycle *models.Cycle) error {
	if cycle.Status == models.StatusActive {
		return models.Conflictf("cycle is already active")
	}
	product, err := s.repo.GetProductByID(ctx, cycle.CompanyID, cycle.ProductID)
	if err != nil {
		return fmt.Errorf("failed to load product of cycle %d: %w", cycle.ID, err)
	}
	if product.Status == models.StatusDisabled {
		return models.Conflictf("product %s is disabled", product.Name)
	}
	return s.setStatus(ctx, cycle, models.StatusActive)
}

func (s *service) Deactivate(ctx context.Context, cycle *models.Cycle) error {
	return s.setStatus(ctx, cycle, models.StatusDisabled)
}

func (s *service) setStatus(ctx context.Context, cycle *models.Cycle, status models.Status) error {
	if err := s.repo.UpdateCycleStatus(ctx, cycle.ID, status); err != nil {
		return fmt.Errorf("failed to update cycle status: %w", err)
	}
	cycle.Status = status
	return nil
}

func (s *service) Clone(ctx context.Context, cycle *models.Cycle) error {
	clone, err := s.repo.CloneCycle(ctx, cycle)
	if err != nil {
		return fmt.Errorf("failed to clone cycle: %w", err)
	}
	s.logger.Info("cycle cloned", "id", cycle.ID, "clone", clone.ID)
	return nil
}

// Delete removes a cycle that is not active
func (s *service) Delete(ctx context.Context, cycle *models.Cycle) error {
	if cycle.Status == models.StatusActive {
		return models.Conflictf("cannot delete an active test cycle")
	}
	if err := s.repo.DeleteCycle(ctx, cycle.ID); err != nil {
		return fmt.Errorf("failed to delete cycle: %w", err)
	}
	s.logger.Info("cycle deleted", "id", cycle.ID)
	return nil
}
