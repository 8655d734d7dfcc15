package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/tcm/internal/models"
	"github.com/thenoetrevino/tcm/internal/records"
)

const caseColumns = "id, company_id, product_id, suite_id, name, description, status, created_at, updated_at"

var caseTable = &table{
	name:    "cases",
	kind:    models.KindCase,
	columns: caseColumns,
	fields: map[string]string{
		"id":      "id",
		"company": "company_id",
		"product": "product_id",
		"suite":   "suite_id",
		"name":    "name",
		"status":  "status",
		"created": "created_at",
	},
	order: []string{"name"},
	scan:  func(rs rowScanner) (records.Record, error) { return scanCase(rs) },
}

func scanCase(rs rowScanner) (*models.Case, error) {
	c := &models.Case{}
	var (
		suiteID sql.NullInt64
		status  string
	)
	if err := rs.Scan(&c.ID, &c.CompanyID, &c.ProductID, &suiteID, &c.Name, &c.Description, &status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if suiteID.Valid {
		id := int(suiteID.Int64)
		c.SuiteID = &id
	}
	var err error
	if c.Status, err = scanStatus(status); err != nil {
		return nil, err
	}
	return c, nil
}

// CaseRepo handles all test-case-related database operations.
type CaseRepo struct {
	db *sql.DB
}

// Cases returns the record source over test cases
func (r *CaseRepo) Cases() *Source {
	return newSource(r.db, caseTable)
}

// CreateCase inserts a draft case into a product, optionally inside a suite
func (r *CaseRepo) CreateCase(ctx context.Context, productID int, suiteID *int, name, description string) (*models.Case, error) {
	var companyID, caseID int
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT company_id FROM products WHERE id = ?`, productID).Scan(&companyID); err != nil {
			return lookupErr(err, models.KindProduct, productID)
		}
		result, err := tx.ExecContext(ctx,
			`INSERT INTO cases (company_id, product_id, suite_id, name, description, status) VALUES (?, ?, ?, ?, ?, ?)`,
			companyID, productID, sqlValue(suiteID), name, description, string(models.StatusDraft),
		)
		if err != nil {
			return fmt.Errorf("failed to insert case '%s': %w", name, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get case ID after insert: %w", err)
		}
		caseID = int(id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetCaseByID(ctx, companyID, caseID)
}

// GetCaseByID retrieves a case owned by the company
func (r *CaseRepo) GetCaseByID(ctx context.Context, companyID, id int) (*models.Case, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+caseColumns+` FROM cases WHERE id = ? AND company_id = ?`,
		id, companyID,
	)
	c, err := scanCase(row)
	if err != nil {
		return nil, lookupErr(err, models.KindCase, id)
	}
	return c, nil
}

// CountCasesByProduct returns the number of cases in a product
func (r *CaseRepo) CountCasesByProduct(ctx context.Context, productID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cases WHERE product_id = ?`, productID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count cases for product %d: %w", productID, err)
	}
	return count, nil
}

// UpdateCaseStatus sets a case's status
func (r *CaseRepo) UpdateCaseStatus(ctx context.Context, id int, status models.Status) error {
	return setStatus(ctx, r.db, caseTable, id, status)
}

// CloneCase copies the case as a draft within the same product and suite
func (r *CaseRepo) CloneCase(ctx context.Context, c *models.Case) (*models.Case, error) {
	return r.CreateCase(ctx, c.ProductID, c.SuiteID, c.Name+models.CloneSuffix, c.Description)
}

// DeleteCase removes a case
func (r *CaseRepo) DeleteCase(ctx context.Context, id int) error {
	return deleteRow(ctx, r.db, caseTable, id)
}
