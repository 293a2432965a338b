package store

import (
	"context"
	"fmt"

	"caseflow/internal/utils"
	"caseflow/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const caseTableName = "caseflow.cases"

var caseColumns = utils.StructTagValues(types.Case{})

type CaseRepository struct {
	pool *pgxpool.Pool
}

func NewCaseRepository(pool *pgxpool.Pool) *CaseRepository {
	return &CaseRepository{pool: pool}
}

// CreateCase inserts a case and returns the persisted row. A nil id takes
// the next value from the cases sequence; a non-nil id uses the value the
// client reserved through NextCaseID.
func (r *CaseRepository) CreateCase(ctx context.Context, req *types.CreateCaseRequest) (*types.Case, error) {
	builder := psql().Insert(caseTableName)

	if req.ID != nil {
		builder = builder.
			Columns("id", "title", "description", "country", "amount", "reporter_name").
			Values(*req.ID, req.Title, req.Description, req.Country, req.Amount, req.ReporterName)
	} else {
		builder = builder.
			Columns("title", "description", "country", "amount", "reporter_name").
			Values(req.Title, req.Description, req.Country, req.Amount, req.ReporterName)
	}

	query, args, err := builder.
		Suffix("RETURNING " + joinColumns(caseColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build case insert: %w", err)
	}

	var created types.Case
	if err := pgxscan.Get(ctx, r.pool, &created, query, args...); err != nil {
		return nil, fmt.Errorf("insert case: %w", err)
	}

	return &created, nil
}

func (r *CaseRepository) CaseExists(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)", caseTableName)

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check case exists: %w", err)
	}

	return exists, nil
}

// NextCaseID reserves an id from the cases sequence for client-side
// pre-assignment.
func (r *CaseRepository) NextCaseID(ctx context.Context) (int64, error) {
	var id int64
	if err := r.pool.QueryRow(ctx, "SELECT nextval('caseflow.cases_id_seq')").Scan(&id); err != nil {
		return 0, fmt.Errorf("reserve next case id: %w", err)
	}

	return id, nil
}

func (r *CaseRepository) Cases(ctx context.Context) ([]*types.Case, error) {
	query, args, err := psql().
		Select(caseColumns...).
		From(caseTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build cases query: %w", err)
	}

	out := make([]*types.Case, 0)
	if err := pgxscan.Select(ctx, r.pool, &out, query, args...); err != nil {
		return nil, fmt.Errorf("select cases: %w", err)
	}

	return out, nil
}

func (r *CaseRepository) CaseByID(ctx context.Context, id int64) (*types.Case, error) {
	query, args, err := psql().
		Select(caseColumns...).
		From(caseTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build case query: %w", err)
	}

	var c types.Case
	err = pgxscan.Get(ctx, r.pool, &c, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrCaseNotFound
		}
		return nil, fmt.Errorf("fetch case: %w", err)
	}

	return &c, nil
}
