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

const fileMetadataTableName = "caseflow.file_metadata"

var fileMetadataColumns = utils.StructTagValues(types.FileMetadata{})

type FileMetadataRepository struct {
	pool *pgxpool.Pool
}

func NewFileMetadataRepository(pool *pgxpool.Pool) *FileMetadataRepository {
	return &FileMetadataRepository{pool: pool}
}

// CreateFileMetadata inserts a metadata row and returns the generated id.
// CaseID is persisted as given, including for TEMP rows whose case does not
// exist yet.
func (r *FileMetadataRepository) CreateFileMetadata(ctx context.Context, meta *types.FileMetadata) (int64, error) {
	query, args, err := psql().
		Insert(fileMetadataTableName).
		Columns("case_id", "doc_id", "file_name", "file_size", "content_type", "status", "uploaded_by").
		Values(meta.CaseID, meta.DocID, meta.FileName, meta.FileSize, meta.ContentType, string(meta.Status), meta.UploadedBy).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build file metadata insert: %w", err)
	}

	var id int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert file metadata: %w", err)
	}

	return id, nil
}

func (r *FileMetadataRepository) FileMetadataByID(ctx context.Context, id int64) (*types.FileMetadata, error) {
	query, args, err := psql().
		Select(fileMetadataColumns...).
		From(fileMetadataTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build file metadata query: %w", err)
	}

	var meta types.FileMetadata
	err = pgxscan.Get(ctx, r.pool, &meta, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrFileMetadataNotFound
		}
		return nil, fmt.Errorf("fetch file metadata: %w", err)
	}

	return &meta, nil
}

// FileMetadataByCaseID returns all metadata rows for a case in stable
// storage order.
func (r *FileMetadataRepository) FileMetadataByCaseID(ctx context.Context, caseID int64) ([]*types.FileMetadata, error) {
	query, args, err := psql().
		Select(fileMetadataColumns...).
		From(fileMetadataTableName).
		Where(sq.Eq{"case_id": caseID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build file metadata case query: %w", err)
	}

	out := make([]*types.FileMetadata, 0)
	if err := pgxscan.Select(ctx, r.pool, &out, query, args...); err != nil {
		return nil, fmt.Errorf("select file metadata by case: %w", err)
	}

	return out, nil
}

// UpdateStatusByCaseID moves every metadata row of a case to the given
// status in a single set-based UPDATE, so the transition cannot race a
// concurrent insert for the same case. Zero matched rows is not an error.
func (r *FileMetadataRepository) UpdateStatusByCaseID(ctx context.Context, caseID int64, status types.FileStatus) (int64, error) {
	query, args, err := psql().
		Update(fileMetadataTableName).
		Set("status", string(status)).
		Where(sq.Eq{"case_id": caseID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build status update: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update status by case: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *FileMetadataRepository) DeleteFileMetadata(ctx context.Context, id int64) error {
	query, args, err := psql().
		Delete(fileMetadataTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build file metadata delete: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete file metadata: %w", err)
	}

	return nil
}
