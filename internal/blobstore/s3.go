package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"caseflow/internal/utils"
	"caseflow/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

// s3API is the slice of the S3 client the store uses.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3 stores blob content as bucket objects and keeps only identity and
// audit fields plus the object key in the doc row.
type S3 struct {
	docs   DocStore
	client s3API
	bucket string
	logger *logrus.Logger
}

func NewS3(docs DocStore, client s3API, bucket string, logger *logrus.Logger) *S3 {
	return &S3{
		docs:   docs,
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

func objectKey(key string) string {
	return "doc/" + key
}

func (s *S3) Put(ctx context.Context, content []byte, uploadedBy string) (int64, error) {
	key := utils.NanoID()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(key)),
		Body:   bytes.NewReader(content),
	})
	if err != nil {
		return 0, fmt.Errorf("upload blob object: %w", err)
	}

	id, err := s.docs.CreateDoc(ctx, &types.Doc{
		StorageKey: &key,
		UploadedBy: uploadedBy,
	})
	if err != nil {
		// The row is the source of truth: without it the object is
		// unreachable, so remove it best-effort.
		if _, delErr := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(objectKey(key)),
		}); delErr != nil {
			s.logger.WithError(delErr).WithField("storage_key", key).
				Warn("failed to remove orphaned blob object")
		}
		return 0, fmt.Errorf("store blob row: %w", err)
	}

	return id, nil
}

func (s *S3) Get(ctx context.Context, docID int64) ([]byte, error) {
	doc, err := s.docs.DocByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	if doc.StorageKey == nil {
		// Row predates the s3 backend; content is inline.
		if doc.Content != nil {
			return doc.Content, nil
		}
		return nil, fmt.Errorf("doc %d has no storage key", docID)
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(*doc.StorageKey)),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch blob object: %w", err)
	}
	defer out.Body.Close()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read blob object: %w", err)
	}

	return content, nil
}

func (s *S3) Delete(ctx context.Context, docID int64) error {
	doc, err := s.docs.DocByID(ctx, docID)
	if err != nil {
		return err
	}

	if doc.StorageKey != nil {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(objectKey(*doc.StorageKey)),
		})
		if err != nil {
			return fmt.Errorf("delete blob object: %w", err)
		}
	}

	return s.docs.DeleteDoc(ctx, docID)
}
