package seed

import (
	"context"
	"fmt"

	"caseflow/internal/store"
	"caseflow/pkg/types"
)

// SeedCountries upserts the country reference list. This file is the source
// of truth: rerunning the seed refreshes names in place.
func SeedCountries(ctx context.Context, repo *store.CountryRepository) error {
	countries := []types.Country{
		{Code: "AU", Name: "Australia"},
		{Code: "BR", Name: "Brazil"},
		{Code: "CA", Name: "Canada"},
		{Code: "CH", Name: "Switzerland"},
		{Code: "DE", Name: "Germany"},
		{Code: "ES", Name: "Spain"},
		{Code: "FR", Name: "France"},
		{Code: "GB", Name: "United Kingdom"},
		{Code: "IN", Name: "India"},
		{Code: "IT", Name: "Italy"},
		{Code: "JP", Name: "Japan"},
		{Code: "NL", Name: "Netherlands"},
		{Code: "SG", Name: "Singapore"},
		{Code: "US", Name: "United States"},
		{Code: "ZA", Name: "South Africa"},
	}

	for _, country := range countries {
		if err := repo.UpsertCountry(ctx, &country); err != nil {
			return fmt.Errorf("seed country %s: %w", country.Code, err)
		}
	}

	return nil
}
