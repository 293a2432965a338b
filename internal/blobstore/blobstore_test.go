package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"caseflow/pkg/types"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

type fakeDocStore struct {
	nextID    int64
	docs      map[int64]*types.Doc
	createErr error
}

func newFakeDocStore() *fakeDocStore {
	return &fakeDocStore{docs: map[int64]*types.Doc{}}
}

func (f *fakeDocStore) CreateDoc(_ context.Context, doc *types.Doc) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	stored := *doc
	stored.ID = f.nextID
	f.docs[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeDocStore) DocByID(_ context.Context, id int64) (*types.Doc, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, types.ErrDocumentNotFound
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeDocStore) DeleteDoc(_ context.Context, id int64) error {
	delete(f.docs, id)
	return nil
}

type fakeS3 struct {
	objects map[string][]byte
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	content, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*params.Key] = content
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	content, ok := f.objects[*params.Key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(content))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, *params.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestPostgresRoundTrip(t *testing.T) {
	store := NewPostgres(newFakeDocStore())
	ctx := context.Background()

	id, err := store.Put(ctx, []byte("payload"), "alice")
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	content, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(content, []byte("payload")) {
		t.Fatalf("unexpected content %q", content)
	}

	if err := store.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, id); !errors.Is(err, types.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound after delete, got %v", err)
	}
}

func TestPostgresGetUnknownID(t *testing.T) {
	store := NewPostgres(newFakeDocStore())

	if _, err := store.Get(context.Background(), 99); !errors.Is(err, types.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestS3RoundTrip(t *testing.T) {
	docs := newFakeDocStore()
	objects := newFakeS3()
	store := NewS3(docs, objects, "test-bucket", discardLogger())
	ctx := context.Background()

	id, err := store.Put(ctx, []byte("payload"), "alice")
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	doc := docs.docs[id]
	if doc.StorageKey == nil {
		t.Fatal("s3 doc row must carry a storage key")
	}
	if doc.Content != nil {
		t.Fatal("s3 doc row must not hold inline content")
	}

	content, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(content, []byte("payload")) {
		t.Fatalf("unexpected content %q", content)
	}

	if err := store.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(objects.objects) != 0 {
		t.Fatal("object should be removed on delete")
	}
	if _, err := store.Get(ctx, id); !errors.Is(err, types.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound after delete, got %v", err)
	}
}

func TestS3PutCleansUpObjectWhenRowInsertFails(t *testing.T) {
	docs := newFakeDocStore()
	docs.createErr = errors.New("db down")
	objects := newFakeS3()
	store := NewS3(docs, objects, "test-bucket", discardLogger())

	if _, err := store.Put(context.Background(), []byte("payload"), "alice"); err == nil {
		t.Fatal("expected error when the doc row cannot be written")
	}
	if len(objects.objects) != 0 {
		t.Fatal("orphaned object should have been removed")
	}
}
