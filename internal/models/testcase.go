package models

import "time"

// Case is a single test case. Description holds markdown steps.
// SuiteID is nil for cases that are not part of any suite.
type Case struct {
	ID          int
	CompanyID   int
	ProductID   int
	SuiteID     *int
	Name        string
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c *Case) Kind() Kind     { return KindCase }
func (c *Case) GetID() int     { return c.ID }
func (c *Case) String() string { return c.Name }
