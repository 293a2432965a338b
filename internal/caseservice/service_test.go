package caseservice

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"caseflow/pkg/types"

	"github.com/sirupsen/logrus"
)

type fakeCaseStore struct {
	nextID int64
	cases  map[int64]*types.Case
}

func newFakeCaseStore() *fakeCaseStore {
	return &fakeCaseStore{cases: map[int64]*types.Case{}}
}

func (f *fakeCaseStore) CreateCase(_ context.Context, req *types.CreateCaseRequest) (*types.Case, error) {
	id := req.ID
	if id == nil {
		f.nextID++
		v := f.nextID
		id = &v
	}

	c := &types.Case{
		ID:           *id,
		Title:        req.Title,
		Description:  req.Description,
		Country:      req.Country,
		Amount:       req.Amount,
		ReporterName: req.ReporterName,
		CreatedAt:    time.Now(),
	}
	f.cases[c.ID] = c
	return c, nil
}

func (f *fakeCaseStore) CaseExists(_ context.Context, id int64) (bool, error) {
	_, ok := f.cases[id]
	return ok, nil
}

func (f *fakeCaseStore) NextCaseID(_ context.Context) (int64, error) {
	f.nextID++
	return f.nextID, nil
}

func (f *fakeCaseStore) Cases(_ context.Context) ([]*types.Case, error) {
	out := make([]*types.Case, 0, len(f.cases))
	for id := int64(1); id <= f.nextID; id++ {
		if c, ok := f.cases[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeCountryStore struct {
	countries []*types.Country
}

func (f *fakeCountryStore) Countries(_ context.Context) ([]*types.Country, error) {
	return f.countries, nil
}

type recordingNotifier struct {
	err  error
	sent chan *types.Case
}

func newRecordingNotifier(err error) *recordingNotifier {
	return &recordingNotifier{err: err, sent: make(chan *types.Case, 1)}
}

func (n *recordingNotifier) CaseCreated(_ context.Context, c *types.Case) error {
	n.sent <- c
	return n.err
}

func newTestService(notifier *recordingNotifier) (*Service, *fakeCaseStore) {
	cases := newFakeCaseStore()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return New(cases, &fakeCountryStore{}, notifier, logger), cases
}

func validRequest() *types.CreateCaseRequest {
	return &types.CreateCaseRequest{
		Title:        "Flood damage",
		Description:  "Basement flooded after storm",
		Country:      "US",
		Amount:       1500,
		ReporterName: "alice",
	}
}

func TestCreateCaseSendsNotification(t *testing.T) {
	notifier := newRecordingNotifier(nil)
	svc, _ := newTestService(notifier)

	created, err := svc.CreateCase(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("create case: %v", err)
	}

	select {
	case sent := <-notifier.sent:
		if sent.ID != created.ID {
			t.Fatalf("notified about case %d, created %d", sent.ID, created.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("notification was never sent")
	}
}

func TestCreateCaseSucceedsWhenNotifierFails(t *testing.T) {
	notifier := newRecordingNotifier(errors.New("smtp down"))
	svc, cases := newTestService(notifier)

	created, err := svc.CreateCase(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("create case must not fail on notification error, got %v", err)
	}

	if _, ok := cases.cases[created.ID]; !ok {
		t.Fatal("case was not persisted")
	}

	select {
	case <-notifier.sent:
	case <-time.After(time.Second):
		t.Fatal("notification attempt was never made")
	}
}

func TestCreateCaseWithPreAssignedID(t *testing.T) {
	notifier := newRecordingNotifier(nil)
	svc, _ := newTestService(notifier)
	ctx := context.Background()

	reserved, err := svc.NextCaseID(ctx)
	if err != nil {
		t.Fatalf("next case id: %v", err)
	}

	req := validRequest()
	req.ID = &reserved

	created, err := svc.CreateCase(ctx, req)
	if err != nil {
		t.Fatalf("create case: %v", err)
	}
	if created.ID != reserved {
		t.Fatalf("expected id %d, got %d", reserved, created.ID)
	}

	exists, err := svc.CaseExists(ctx, reserved)
	if err != nil {
		t.Fatalf("case exists: %v", err)
	}
	if !exists {
		t.Fatal("created case must exist")
	}
	<-notifier.sent
}

func TestCreateCaseValidation(t *testing.T) {
	svc, _ := newTestService(newRecordingNotifier(nil))
	ctx := context.Background()

	mutations := []struct {
		name   string
		mutate func(*types.CreateCaseRequest)
	}{
		{"missing title", func(r *types.CreateCaseRequest) { r.Title = "" }},
		{"missing description", func(r *types.CreateCaseRequest) { r.Description = "" }},
		{"missing country", func(r *types.CreateCaseRequest) { r.Country = "" }},
		{"country too long", func(r *types.CreateCaseRequest) { r.Country = "UNITEDSTATES" }},
		{"negative amount", func(r *types.CreateCaseRequest) { r.Amount = -1 }},
		{"missing reporter", func(r *types.CreateCaseRequest) { r.ReporterName = "" }},
	}

	for _, tc := range mutations {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)

			if _, err := svc.CreateCase(ctx, req); !errors.Is(err, types.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
