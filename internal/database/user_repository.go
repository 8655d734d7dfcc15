package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/thenoetrevino/tcm/internal/models"
)

// UserRepo handles companies and user accounts.
type UserRepo struct {
	db *sql.DB
}

// CreateCompany inserts a company
func (r *UserRepo) CreateCompany(ctx context.Context, name string) (*models.Company, error) {
	result, err := r.db.ExecContext(ctx, `INSERT INTO companies (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to insert company '%s': %w", name, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get company ID after insert: %w", err)
	}
	return &models.Company{ID: int(id), Name: name}, nil
}

// GetCompanyByName retrieves a company by its unique name
func (r *UserRepo) GetCompanyByName(ctx context.Context, name string) (*models.Company, error) {
	c := &models.Company{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM companies WHERE name = ?`, name).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("company %q: %w", name, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company %q: %w", name, err)
	}
	return c, nil
}

// CreateUser inserts a user with the given permission codenames
func (r *UserRepo) CreateUser(ctx context.Context, companyID int, username string, permissions []string) (*models.User, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (company_id, username, permissions) VALUES (?, ?, ?)`,
		companyID, username, strings.Join(permissions, ","),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user '%s': %w", username, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user ID after insert: %w", err)
	}
	return &models.User{ID: int(id), CompanyID: companyID, Username: username, Permissions: permissions}, nil
}

// GetUserByUsername retrieves a user by login name
func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u := &models.User{}
	var perms string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, company_id, username, permissions FROM users WHERE username = ?`,
		username,
	).Scan(&u.ID, &u.CompanyID, &u.Username, &perms)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}
	u.Permissions = splitPermissions(perms)
	return u, nil
}

func splitPermissions(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
