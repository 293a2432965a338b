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

const docTableName = "caseflow.doc"

var docColumns = utils.StructTagValues(types.Doc{})

type DocRepository struct {
	pool *pgxpool.Pool
}

func NewDocRepository(pool *pgxpool.Pool) *DocRepository {
	return &DocRepository{pool: pool}
}

// CreateDoc inserts a blob row and returns the generated id. Content is
// immutable after this point; no update path exists.
func (r *DocRepository) CreateDoc(ctx context.Context, doc *types.Doc) (int64, error) {
	query, args, err := psql().
		Insert(docTableName).
		Columns("content", "storage_key", "uploaded_by").
		Values(doc.Content, doc.StorageKey, doc.UploadedBy).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build doc insert: %w", err)
	}

	var id int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert doc: %w", err)
	}

	return id, nil
}

func (r *DocRepository) DocByID(ctx context.Context, id int64) (*types.Doc, error) {
	query, args, err := psql().
		Select(docColumns...).
		From(docTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build doc query: %w", err)
	}

	var doc types.Doc
	err = pgxscan.Get(ctx, r.pool, &doc, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("fetch doc: %w", err)
	}

	return &doc, nil
}

func (r *DocRepository) DeleteDoc(ctx context.Context, id int64) error {
	query, args, err := psql().
		Delete(docTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build doc delete: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete doc: %w", err)
	}

	return nil
}
