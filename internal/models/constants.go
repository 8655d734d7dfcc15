package models

import "fmt"

// ============================================================================
// RECORD KINDS
// ============================================================================

// Kind names the type of record a row represents. Finder columns are indexed
// by it.
type Kind string

const (
	KindProduct Kind = "product"
	KindSuite   Kind = "suite"
	KindCase    Kind = "case"
	KindCycle   Kind = "cycle"
)

// ============================================================================
// STATUS CONSTANTS
// ============================================================================

// Status is the lifecycle state shared by products, suites, cases and cycles
type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)

// ParseStatus converts a stored or user-supplied status string
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusActive, StatusDisabled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

// ============================================================================
// PERMISSION CODENAMES
// ============================================================================

const (
	PermManageProducts = "manage_products"
	PermManageSuites   = "manage_suites"
	PermManageCases    = "manage_cases"
	PermManageCycles   = "manage_cycles"
)

// CloneSuffix is appended to the name of every cloned record
const CloneSuffix = " (clone)"
