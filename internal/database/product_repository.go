package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/tcm/internal/models"
	"github.com/thenoetrevino/tcm/internal/records"
)

const productColumns = "id, company_id, name, description, status, created_at, updated_at"

var productTable = &table{
	name:    "products",
	kind:    models.KindProduct,
	columns: productColumns,
	fields: map[string]string{
		"id":      "id",
		"company": "company_id",
		"name":    "name",
		"status":  "status",
		"created": "created_at",
	},
	order: []string{"name"},
	scan:  func(rs rowScanner) (records.Record, error) { return scanProduct(rs) },
}

func scanProduct(rs rowScanner) (*models.Product, error) {
	p := &models.Product{}
	var status string
	if err := rs.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Description, &status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if p.Status, err = scanStatus(status); err != nil {
		return nil, err
	}
	return p, nil
}

// ProductRepo handles all product-related database operations.
type ProductRepo struct {
	db *sql.DB
}

// Products returns the record source over products
func (r *ProductRepo) Products() *Source {
	return newSource(r.db, productTable)
}

// CreateProduct inserts a draft product
func (r *ProductRepo) CreateProduct(ctx context.Context, companyID int, name, description string) (*models.Product, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO products (company_id, name, description, status) VALUES (?, ?, ?, ?)`,
		companyID, name, description, string(models.StatusDraft),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product '%s': %w", name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get product ID after insert: %w", err)
	}
	return r.GetProductByID(ctx, companyID, int(id))
}

// GetProductByID retrieves a product owned by the company
func (r *ProductRepo) GetProductByID(ctx context.Context, companyID, id int) (*models.Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ? AND company_id = ?`,
		id, companyID,
	)
	p, err := scanProduct(row)
	if err != nil {
		return nil, lookupErr(err, models.KindProduct, id)
	}
	return p, nil
}

// GetProductsByCompany retrieves all products of a company ordered by name
func (r *ProductRepo) GetProductsByCompany(ctx context.Context, companyID int) ([]*models.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE company_id = ? ORDER BY name, id`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer closeRows(rows)

	products := make([]*models.Product, 0, 10)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

// UpdateProductStatus sets a product's status
func (r *ProductRepo) UpdateProductStatus(ctx context.Context, id int, status models.Status) error {
	return setStatus(ctx, r.db, productTable, id, status)
}

// CloneProduct copies the product row only; suites, cases and cycles stay
// with the original
func (r *ProductRepo) CloneProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	return r.CreateProduct(ctx, p.CompanyID, p.Name+models.CloneSuffix, p.Description)
}

// DeleteProduct removes a product along with its suites, cases and cycles
func (r *ProductRepo) DeleteProduct(ctx context.Context, id int) error {
	return deleteRow(ctx, r.db, productTable, id)
}
