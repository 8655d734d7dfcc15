package models

import "time"

// Suite groups test cases of a product
type Suite struct {
	ID          int
	CompanyID   int
	ProductID   int
	Name        string
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (s *Suite) Kind() Kind     { return KindSuite }
func (s *Suite) GetID() int     { return s.ID }
func (s *Suite) String() string { return s.Name }
