package types

import "errors"

var (
	ErrDocumentNotFound     = errors.New("document not found")
	ErrFileMetadataNotFound = errors.New("file metadata not found")
	ErrCaseNotFound         = errors.New("case not found")

	// ErrValidation wraps all caller-input failures; the HTTP layer maps it
	// to a 400.
	ErrValidation = errors.New("validation failed")
)
