package blobstore

import (
	"context"
	"fmt"

	"caseflow/pkg/types"
)

// Postgres keeps blob content inline in the doc table.
type Postgres struct {
	docs DocStore
}

func NewPostgres(docs DocStore) *Postgres {
	return &Postgres{docs: docs}
}

func (s *Postgres) Put(ctx context.Context, content []byte, uploadedBy string) (int64, error) {
	id, err := s.docs.CreateDoc(ctx, &types.Doc{
		Content:    content,
		UploadedBy: uploadedBy,
	})
	if err != nil {
		return 0, fmt.Errorf("store blob content: %w", err)
	}

	return id, nil
}

func (s *Postgres) Get(ctx context.Context, docID int64) ([]byte, error) {
	doc, err := s.docs.DocByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	if doc.Content == nil {
		return nil, fmt.Errorf("doc %d has no inline content (stored under key %q)", docID, derefKey(doc.StorageKey))
	}

	return doc.Content, nil
}

func (s *Postgres) Delete(ctx context.Context, docID int64) error {
	return s.docs.DeleteDoc(ctx, docID)
}

func derefKey(key *string) string {
	if key == nil {
		return ""
	}
	return *key
}
