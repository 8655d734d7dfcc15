package database

import "database/sql"

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	db *sql.DB
	*ProductRepo
	*SuiteRepo
	*CaseRepo
	*CycleRepo
	*UserRepo
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		db:          db,
		ProductRepo: &ProductRepo{db: db},
		SuiteRepo:   &SuiteRepo{db: db},
		CaseRepo:    &CaseRepo{db: db},
		CycleRepo:   &CycleRepo{db: db},
		UserRepo:    &UserRepo{db: db},
	}
}

// Close closes the underlying database
func (r *Repository) Close() error {
	return r.db.Close()
}
