package types

import (
	"time"
)

type FileStatus string

const (
	// FileStatusTemp marks an upload not yet confirmed to belong to an
	// existing case.
	FileStatusTemp FileStatus = "TEMP"
	// FileStatusFinal marks an upload confirmed linked to an existing case.
	FileStatusFinal FileStatus = "FINAL"
)

func (s FileStatus) Valid() bool {
	return s == FileStatusTemp || s == FileStatusFinal
}

// Doc is one stored blob of uploaded file content. Content is inline for
// the postgres backend; the s3 backend leaves Content nil and records the
// object key in StorageKey instead.
type Doc struct {
	ID         int64     `db:"id"`
	Content    []byte    `db:"content"`
	StorageKey *string   `db:"storage_key"`
	UploadedAt time.Time `db:"uploaded_at"`
	UploadedBy string    `db:"uploaded_by"`
}

// FileMetadata is the descriptive record for one uploaded file. CaseID may
// be set while the record is still TEMP: uploads are allowed to reference a
// case that does not exist yet, and the finalize operation picks them up by
// case id once it does.
type FileMetadata struct {
	ID          int64      `db:"id"`
	CaseID      *int64     `db:"case_id"`
	DocID       int64      `db:"doc_id"`
	FileName    string     `db:"file_name"`
	FileSize    int64      `db:"file_size"`
	ContentType string     `db:"content_type"`
	Status      FileStatus `db:"status"`
	UploadedAt  time.Time  `db:"uploaded_at"`
	UploadedBy  string     `db:"uploaded_by"`
}

type FileUploadResponse struct {
	FileMetadataID int64      `json:"fileMetadataId"`
	DocID          int64      `json:"docId"`
	Status         FileStatus `json:"status"`
}

type FileMetadataResponse struct {
	ID          int64      `json:"id"`
	CaseID      *int64     `json:"caseId"`
	DocID       int64      `json:"docId"`
	FileName    string     `json:"fileName"`
	FileSize    int64      `json:"fileSize"`
	ContentType string     `json:"contentType"`
	Status      FileStatus `json:"status"`
	UploadedAt  time.Time  `json:"uploadedAt"`
}

// UploadForm carries the non-file fields of the multipart upload request.
type UploadForm struct {
	CaseID     *int64 `form:"caseId"`
	UploadedBy string `form:"uploadedBy"`
}

type FinalizeRequest struct {
	CaseID int64 `json:"caseId"`
}
