package models

import "time"

// Cycle is a test cycle: a period in which a product's cases are executed.
// Only active cycles are shown to testers.
type Cycle struct {
	ID          int
	CompanyID   int
	ProductID   int
	Name        string
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c *Cycle) Kind() Kind     { return KindCycle }
func (c *Cycle) GetID() int     { return c.ID }
func (c *Cycle) String() string { return c.Name }
