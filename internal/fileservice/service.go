// Package fileservice owns the file-attachment lifecycle: the upload
// protocol, the TEMP/FINAL state machine, and the bulk finalize that
// promotes a case's attachments once the case is confirmed to exist.
package fileservice

import (
	"context"
	"fmt"

	"caseflow/internal/blobstore"
	"caseflow/pkg/types"

	"github.com/sirupsen/logrus"
)

// MetadataStore is the metadata persistence the service works against.
// Satisfied by store.FileMetadataRepository.
type MetadataStore interface {
	CreateFileMetadata(ctx context.Context, meta *types.FileMetadata) (int64, error)
	FileMetadataByID(ctx context.Context, id int64) (*types.FileMetadata, error)
	FileMetadataByCaseID(ctx context.Context, caseID int64) ([]*types.FileMetadata, error)
	UpdateStatusByCaseID(ctx context.Context, caseID int64, status types.FileStatus) (int64, error)
	DeleteFileMetadata(ctx context.Context, id int64) error
}

// CaseChecker answers whether a case exists. It never errors; the oracle
// resolves failures to false before they reach this service.
type CaseChecker interface {
	CaseExists(ctx context.Context, caseID int64) bool
}

type Service struct {
	metadata MetadataStore
	blobs    blobstore.Store
	cases    CaseChecker
	logger   *logrus.Logger
}

func New(metadata MetadataStore, blobs blobstore.Store, cases CaseChecker, logger *logrus.Logger) *Service {
	return &Service{
		metadata: metadata,
		blobs:    blobs,
		cases:    cases,
		logger:   logger,
	}
}

// UploadInput carries one upload request. CaseID may be nil; content must
// already be fully read.
type UploadInput struct {
	Content     []byte
	CaseID      *int64
	FileName    string
	ContentType string
	UploadedBy  string
}

// UploadFile stores the blob and its metadata row. Status derivation:
// no case id means TEMP outright; with a case id the oracle is asked once,
// and only a confirmed-existing case yields FINAL. The case id is persisted
// as given even when the case does not exist yet, so a later finalize call
// keyed on it can promote the row without re-uploading.
func (s *Service) UploadFile(ctx context.Context, in UploadInput) (*types.FileUploadResponse, error) {
	if err := validateUpload(in); err != nil {
		return nil, err
	}

	status := types.FileStatusTemp
	if in.CaseID != nil && s.cases.CaseExists(ctx, *in.CaseID) {
		status = types.FileStatusFinal
	}

	docID, err := s.blobs.Put(ctx, in.Content, in.UploadedBy)
	if err != nil {
		return nil, fmt.Errorf("persist blob: %w", err)
	}

	metadataID, err := s.metadata.CreateFileMetadata(ctx, &types.FileMetadata{
		CaseID:      in.CaseID,
		DocID:       docID,
		FileName:    in.FileName,
		FileSize:    int64(len(in.Content)),
		ContentType: in.ContentType,
		Status:      status,
		UploadedBy:  in.UploadedBy,
	})
	if err != nil {
		return nil, fmt.Errorf("persist file metadata: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"file_metadata_id": metadataID,
		"doc_id":           docID,
		"status":           status,
	}).Info("file uploaded")

	return &types.FileUploadResponse{
		FileMetadataID: metadataID,
		DocID:          docID,
		Status:         status,
	}, nil
}

// GetDocument returns the raw content for a doc id, or
// types.ErrDocumentNotFound.
func (s *Service) GetDocument(ctx context.Context, docID int64) ([]byte, error) {
	return s.blobs.Get(ctx, docID)
}

// FilesByCase lists a case's metadata records in stable storage order.
func (s *Service) FilesByCase(ctx context.Context, caseID int64) ([]types.FileMetadataResponse, error) {
	metas, err := s.metadata.FileMetadataByCaseID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	out := make([]types.FileMetadataResponse, 0, len(metas))
	for _, meta := range metas {
		out = append(out, types.FileMetadataResponse{
			ID:          meta.ID,
			CaseID:      meta.CaseID,
			DocID:       meta.DocID,
			FileName:    meta.FileName,
			FileSize:    meta.FileSize,
			ContentType: meta.ContentType,
			Status:      meta.Status,
			UploadedAt:  meta.UploadedAt,
		})
	}

	return out, nil
}

// FinalizeFiles promotes every metadata row of a case to FINAL as one
// set-based update. Idempotent; zero matching rows is a successful no-op.
func (s *Service) FinalizeFiles(ctx context.Context, caseID int64) error {
	updated, err := s.metadata.UpdateStatusByCaseID(ctx, caseID, types.FileStatusFinal)
	if err != nil {
		return fmt.Errorf("finalize files: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"case_id": caseID,
		"updated": updated,
	}).Info("finalized case files")

	return nil
}

// DeleteFile removes the metadata row and its blob. The blob goes first; if
// the metadata delete then fails, the dangling reference points at nothing
// but is owned by no other record, so retrying the delete converges.
func (s *Service) DeleteFile(ctx context.Context, metadataID int64) error {
	meta, err := s.metadata.FileMetadataByID(ctx, metadataID)
	if err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, meta.DocID); err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}

	if err := s.metadata.DeleteFileMetadata(ctx, metadataID); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"file_metadata_id": metadataID,
			"doc_id":           meta.DocID,
		}).Error("blob deleted but metadata delete failed")
		return fmt.Errorf("delete file metadata: %w", err)
	}

	return nil
}

func validateUpload(in UploadInput) error {
	if len(in.Content) == 0 {
		return fmt.Errorf("%w: file content is required", types.ErrValidation)
	}
	if in.FileName == "" {
		return fmt.Errorf("%w: file name is required", types.ErrValidation)
	}
	if in.UploadedBy == "" {
		return fmt.Errorf("%w: uploadedBy is required", types.ErrValidation)
	}
	return nil
}
