package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/thenoetrevino/tcm/internal/models"
)

// DemoCompany is the company created by Seed
const DemoCompany = "Demo"

// Seed inserts a demo company, an admin user holding every permission and a
// small product catalogue. It does nothing if the demo company exists.
func Seed(ctx context.Context, repo *Repository, adminUsername string) error {
	if _, err := repo.GetCompanyByName(ctx, DemoCompany); err == nil {
		return nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return err
	}

	company, err := repo.CreateCompany(ctx, DemoCompany)
	if err != nil {
		return err
	}

	_, err = repo.CreateUser(ctx, company.ID, adminUsername, []string{
		models.PermManageProducts,
		models.PermManageSuites,
		models.PermManageCases,
		models.PermManageCycles,
	})
	if err != nil {
		return err
	}

	catalogue := []struct {
		product string
		suites  map[string][]string
		cycles  []string
	}{
		{
			product: "Firefox",
			suites: map[string][]string{
				"Smoke":     {"Browser starts", "Open a new tab"},
				"Bookmarks": {"Add a bookmark", "Delete a bookmark"},
			},
			cycles: []string{"Release 10", "Nightly"},
		},
		{
			product: "Thunderbird",
			suites: map[string][]string{
				"Mail": {"Send a message"},
			},
			cycles: []string{"Release 3"},
		},
	}

	for _, entry := range catalogue {
		product, err := repo.CreateProduct(ctx, company.ID, entry.product, "")
		if err != nil {
			return err
		}
		if err := repo.UpdateProductStatus(ctx, product.ID, models.StatusActive); err != nil {
			return err
		}
		for suiteName, cases := range entry.suites {
			suite, err := repo.CreateSuite(ctx, product.ID, suiteName, "")
			if err != nil {
				return err
			}
			for _, caseName := range cases {
				description := fmt.Sprintf("## Steps\n\n1. %s\n\n## Expected\n\nIt works.", caseName)
				if _, err := repo.CreateCase(ctx, product.ID, &suite.ID, caseName, description); err != nil {
					return err
				}
			}
		}
		for i, cycleName := range entry.cycles {
			cycle, err := repo.CreateCycle(ctx, product.ID, cycleName, "")
			if err != nil {
				return err
			}
			if i == 0 {
				if err := repo.UpdateCycleStatus(ctx, cycle.ID, models.StatusActive); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
