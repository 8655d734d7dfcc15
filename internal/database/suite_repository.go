package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/tcm/internal/models"
	"github.com/thenoetrevino/tcm/internal/records"
)

const suiteColumns = "id, company_id, product_id, name, description, status, created_at, updated_at"

var suiteTable = &table{
	name:    "suites",
	kind:    models.KindSuite,
	columns: suiteColumns,
	fields: map[string]string{
		"id":      "id",
		"company": "company_id",
		"product": "product_id",
		"name":    "name",
		"status":  "status",
		"created": "created_at",
	},
	order: []string{"name"},
	scan:  func(rs rowScanner) (records.Record, error) { return scanSuite(rs) },
}

func scanSuite(rs rowScanner) (*models.Suite, error) {
	s := &models.Suite{}
	var status string
	if err := rs.Scan(&s.ID, &s.CompanyID, &s.ProductID, &s.Name, &s.Description, &status, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if s.Status, err = scanStatus(status); err != nil {
		return nil, err
	}
	return s, nil
}

// SuiteRepo handles all suite-related database operations.
type SuiteRepo struct {
	db *sql.DB
}

// Suites returns the record source over suites
func (r *SuiteRepo) Suites() *Source {
	return newSource(r.db, suiteTable)
}

// CreateSuite inserts a draft suite; the product's company is copied onto it
func (r *SuiteRepo) CreateSuite(ctx context.Context, productID int, name, description string) (*models.Suite, error) {
	var companyID, suiteID int
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT company_id FROM products WHERE id = ?`, productID).Scan(&companyID); err != nil {
			return lookupErr(err, models.KindProduct, productID)
		}
		result, err := tx.ExecContext(ctx,
			`INSERT INTO suites (company_id, product_id, name, description, status) VALUES (?, ?, ?, ?, ?)`,
			companyID, productID, name, description, string(models.StatusDraft),
		)
		if err != nil {
			return fmt.Errorf("failed to insert suite '%s': %w", name, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get suite ID after insert: %w", err)
		}
		suiteID = int(id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetSuiteByID(ctx, companyID, suiteID)
}

// GetSuiteByID retrieves a suite owned by the company
func (r *SuiteRepo) GetSuiteByID(ctx context.Context, companyID, id int) (*models.Suite, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+suiteColumns+` FROM suites WHERE id = ? AND company_id = ?`,
		id, companyID,
	)
	s, err := scanSuite(row)
	if err != nil {
		return nil, lookupErr(err, models.KindSuite, id)
	}
	return s, nil
}

// UpdateSuiteStatus sets a suite's status
func (r *SuiteRepo) UpdateSuiteStatus(ctx context.Context, id int, status models.Status) error {
	return setStatus(ctx, r.db, suiteTable, id, status)
}

// CloneSuite copies the suite row as a draft
func (r *SuiteRepo) CloneSuite(ctx context.Context, s *models.Suite) (*models.Suite, error) {
	return r.CreateSuite(ctx, s.ProductID, s.Name+models.CloneSuffix, s.Description)
}

// DeleteSuite removes a suite; its cases are kept and detached
func (r *SuiteRepo) DeleteSuite(ctx context.Context, id int) error {
	return deleteRow(ctx, r.db, suiteTable, id)
}
