package models

import "time"

// Product represents a piece of software under test.
// Products are the top-level organizational unit; suites, cases and cycles
// all belong to exactly one product.
type Product struct {
	ID          int
	CompanyID   int
	Name        string
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Product) Kind() Kind     { return KindProduct }
func (p *Product) GetID() int     { return p.ID }
func (p *Product) String() string { return p.Name }
