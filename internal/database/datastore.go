package database

import (
	"context"

	"github.com/thenoetrevino/tcm/internal/models"
)

// ProductRepository is the product storage used by the product service
type ProductRepository interface {
	Products() *Source
	CreateProduct(ctx context.Context, companyID int, name, description string) (*models.Product, error)
	GetProductByID(ctx context.Context, companyID, id int) (*models.Product, error)
	GetProductsByCompany(ctx context.Context, companyID int) ([]*models.Product, error)
	UpdateProductStatus(ctx context.Context, id int, status models.Status) error
	CloneProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

// SuiteRepository is the suite storage used by the suite service
type SuiteRepository interface {
	Suites() *Source
	CreateSuite(ctx context.Context, productID int, name, description string) (*models.Suite, error)
	GetSuiteByID(ctx context.Context, companyID, id int) (*models.Suite, error)
	UpdateSuiteStatus(ctx context.Context, id int, status models.Status) error
	CloneSuite(ctx context.Context, s *models.Suite) (*models.Suite, error)
	DeleteSuite(ctx context.Context, id int) error
}

// CaseRepository is the test case storage used by the case service
type CaseRepository interface {
	Cases() *Source
	CreateCase(ctx context.Context, productID int, suiteID *int, name, description string) (*models.Case, error)
	GetCaseByID(ctx context.Context, companyID, id int) (*models.Case, error)
	CountCasesByProduct(ctx context.Context, productID int) (int, error)
	UpdateCaseStatus(ctx context.Context, id int, status models.Status) error
	CloneCase(ctx context.Context, c *models.Case) (*models.Case, error)
	DeleteCase(ctx context.Context, id int) error
}

// CycleRepository is the test cycle storage used by the cycle service
type CycleRepository interface {
	Cycles() *Source
	CreateCycle(ctx context.Context, productID int, name, description string) (*models.Cycle, error)
	GetCycleByID(ctx context.Context, companyID, id int) (*models.Cycle, error)
	GetCyclesByProduct(ctx context.Context, companyID, productID int, status *models.Status) ([]*models.Cycle, error)
	CountCyclesByStatus(ctx context.Context, productID int, status models.Status) (int, error)
	UpdateCycleStatus(ctx context.Context, id int, status models.Status) error
	CloneCycle(ctx context.Context, c *models.Cycle) (*models.Cycle, error)
	DeleteCycle(ctx context.Context, id int) error
}

// UserRepository is the account storage used by auth and seeding
type UserRepository interface {
	CreateCompany(ctx context.Context, name string) (*models.Company, error)
	GetCompanyByName(ctx context.Context, name string) (*models.Company, error)
	CreateUser(ctx context.Context, companyID int, username string, permissions []string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// DataStore is the union of all repositories.
// Consumers should depend on the smaller interfaces where they can.
type DataStore interface {
	ProductRepository
	SuiteRepository
	CaseRepository
	CycleRepository
	UserRepository
	Close() error
}

var _ DataStore = (*Repository)(nil)
