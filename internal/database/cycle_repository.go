package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/tcm/internal/models"
	"github.com/thenoetrevino/tcm/internal/records"
)

const cycleColumns = "id, company_id, product_id, name, description, status, created_at, updated_at"

var cycleTable = &table{
	name:    "cycles",
	kind:    models.KindCycle,
	columns: cycleColumns,
	fields: map[string]string{
		"id":      "id",
		"company": "company_id",
		"product": "product_id",
		"name":    "name",
		"status":  "status",
		"created": "created_at",
	},
	order: []string{"name"},
	scan:  func(rs rowScanner) (records.Record, error) { return scanCycle(rs) },
}

func scanCycle(rs rowScanner) (*models.Cycle, error) {
	c := &models.Cycle{}
	var status string
	if err := rs.Scan(&c.ID, &c.CompanyID, &c.ProductID, &c.Name, &c.Description, &status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if c.Status, err = scanStatus(status); err != nil {
		return nil, err
	}
	return c, nil
}

// CycleRepo handles all test-cycle-related database operations.
type CycleRepo struct {
	db *sql.DB
}

// Cycles returns the record source over test cycles
func (r *CycleRepo) Cycles() *Source {
	return newSource(r.db, cycleTable)
}

// CreateCycle inserts a draft cycle for a product
func (r *CycleRepo) CreateCycle(ctx context.Context, productID int, name, description string) (*models.Cycle, error) {
	var companyID, cycleID int
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT company_id FROM products WHERE id = ?`, productID).Scan(&companyID); err != nil {
			return lookupErr(err, models.KindProduct, productID)
		}
		result, err := tx.ExecContext(ctx,
			`INSERT INTO cycles (company_id, product_id, name, description, status) VALUES (?, ?, ?, ?, ?)`,
			companyID, productID, name, description, string(models.StatusDraft),
		)
		if err != nil {
			return fmt.Errorf("failed to insert cycle '%s': %w", name, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get cycle ID after insert: %w", err)
		}
		cycleID = int(id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetCycleByID(ctx, companyID, cycleID)
}

// GetCycleByID retrieves a cycle owned by the company
func (r *CycleRepo) GetCycleByID(ctx context.Context, companyID, id int) (*models.Cycle, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+cycleColumns+` FROM cycles WHERE id = ? AND company_id = ?`,
		id, companyID,
	)
	c, err := scanCycle(row)
	if err != nil {
		return nil, lookupErr(err, models.KindCycle, id)
	}
	return c, nil
}

// GetCyclesByProduct lists a product's cycles ordered by name.
// A non-nil status restricts the list to cycles in that status.
func (r *CycleRepo) GetCyclesByProduct(ctx context.Context, companyID, productID int, status *models.Status) ([]*models.Cycle, error) {
	query := `SELECT ` + cycleColumns + ` FROM cycles WHERE company_id = ? AND product_id = ?`
	args := []any{companyID, productID}
	if status != nil {
		query += ` AND status = ?`
		args = append(args, string(*status))
	}
	query += ` ORDER BY name, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cycles for product %d: %w", productID, err)
	}
	defer closeRows(rows)

	cycles := make([]*models.Cycle, 0, 10)
	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cycle row: %w", err)
		}
		cycles = append(cycles, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cycle rows: %w", err)
	}
	return cycles, nil
}

// CountCyclesByStatus returns how many of a product's cycles are in status
func (r *CycleRepo) CountCyclesByStatus(ctx context.Context, productID int, status models.Status) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cycles WHERE product_id = ? AND status = ?`,
		productID, string(status),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count cycles for product %d: %w", productID, err)
	}
	return count, nil
}

// UpdateCycleStatus sets a cycle's status
func (r *CycleRepo) UpdateCycleStatus(ctx context.Context, id int, status models.Status) error {
	return setStatus(ctx, r.db, cycleTable, id, status)
}

// CloneCycle copies the cycle as a draft
func (r *CycleRepo) CloneCycle(ctx context.Context, c *models.Cycle) (*models.Cycle, error) {
	return r.CreateCycle(ctx, c.ProductID, c.Name+models.CloneSuffix, c.Description)
}

// DeleteCycle removes a cycle
func (r *CycleRepo) DeleteCycle(ctx context.Context, id int) error {
	return deleteRow(ctx, r.db, cycleTable, id)
}
