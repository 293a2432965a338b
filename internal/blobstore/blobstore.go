// Package blobstore persists opaque uploaded file content. A blob is
// written once, keyed by the generated doc id, and removed only when its
// owning metadata record is deleted.
package blobstore

import (
	"context"

	"caseflow/pkg/types"
)

// Store is the byte-storage abstraction the file service works against.
type Store interface {
	// Put persists content and returns the generated doc id.
	Put(ctx context.Context, content []byte, uploadedBy string) (int64, error)
	// Get returns the full content for a doc id, or
	// types.ErrDocumentNotFound.
	Get(ctx context.Context, docID int64) ([]byte, error)
	// Delete removes the content and its doc row.
	Delete(ctx context.Context, docID int64) error
}

// DocStore is the doc-row persistence both backends share. Satisfied by
// store.DocRepository.
type DocStore interface {
	CreateDoc(ctx context.Context, doc *types.Doc) (int64, error)
	DocByID(ctx context.Context, id int64) (*types.Doc, error)
	DeleteDoc(ctx context.Context, id int64) error
}
