package store

import (
	"context"
	"fmt"

	"caseflow/internal/utils"
	"caseflow/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const countryTableName = "caseflow.ref_country"

var countryColumns = utils.StructTagValues(types.Country{})

type CountryRepository struct {
	pool *pgxpool.Pool
}

func NewCountryRepository(pool *pgxpool.Pool) *CountryRepository {
	return &CountryRepository{pool: pool}
}

func (r *CountryRepository) Countries(ctx context.Context) ([]*types.Country, error) {
	query, args, err := psql().
		Select(countryColumns...).
		From(countryTableName).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build countries query: %w", err)
	}

	out := make([]*types.Country, 0)
	if err := pgxscan.Select(ctx, r.pool, &out, query, args...); err != nil {
		return nil, fmt.Errorf("select countries: %w", err)
	}

	return out, nil
}

func (r *CountryRepository) UpsertCountry(ctx context.Context, country *types.Country) error {
	query := `
		INSERT INTO caseflow.ref_country (code, name)
		VALUES ($1, $2)
		ON CONFLICT (code)
		DO UPDATE SET name = EXCLUDED.name`

	_, err := r.pool.Exec(ctx, query, country.Code, country.Name)
	if err != nil {
		return fmt.Errorf("upsert country: %w", err)
	}

	return nil
}
