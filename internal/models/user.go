package models

// Company owns records; every query a user makes is scoped to their company
type Company struct {
	ID   int
	Name string
}

// User is an account allowed to use the web interface
type User struct {
	ID          int
	CompanyID   int
	Username    string
	Permissions []string
}

func (u *User) GetID() int { return u.ID }
