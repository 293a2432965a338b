// Package caseservice owns case creation, id allocation, and existence
// truth, plus the reference-data and search listings served alongside them.
package caseservice

import (
	"context"
	"fmt"
	"time"

	"caseflow/internal/notify"
	"caseflow/pkg/types"

	"github.com/sirupsen/logrus"
)

// CaseStore is the case persistence the service works against. Satisfied
// by store.CaseRepository.
type CaseStore interface {
	CreateCase(ctx context.Context, req *types.CreateCaseRequest) (*types.Case, error)
	CaseExists(ctx context.Context, id int64) (bool, error)
	NextCaseID(ctx context.Context) (int64, error)
	Cases(ctx context.Context) ([]*types.Case, error)
}

// CountryStore serves the country reference list. Satisfied by
// store.CountryRepository.
type CountryStore interface {
	Countries(ctx context.Context) ([]*types.Country, error)
}

const notifyTimeout = 30 * time.Second

type Service struct {
	cases     CaseStore
	countries CountryStore
	notifier  notify.Notifier
	logger    *logrus.Logger
}

func New(cases CaseStore, countries CountryStore, notifier notify.Notifier, logger *logrus.Logger) *Service {
	return &Service{
		cases:     cases,
		countries: countries,
		notifier:  notifier,
		logger:    logger,
	}
}

// CreateCase persists the case and then fires the creation notification
// without waiting for it. The notification runs after the write has
// returned and its failure is only ever a log line.
func (s *Service) CreateCase(ctx context.Context, req *types.CreateCaseRequest) (*types.Case, error) {
	if err := validateCreateCase(req); err != nil {
		return nil, err
	}

	created, err := s.cases.CreateCase(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create case: %w", err)
	}

	go func(c types.Case) {
		notifyCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.CaseCreated(notifyCtx, &c); err != nil {
			s.logger.WithError(err).WithField("case_id", c.ID).
				Error("failed to send case created notification")
			return
		}
		s.logger.WithField("case_id", c.ID).Info("case created notification sent")
	}(*created)

	return created, nil
}

// NextCaseID reserves a case id for client-side pre-assignment.
func (s *Service) NextCaseID(ctx context.Context) (int64, error) {
	return s.cases.NextCaseID(ctx)
}

// CaseExists is the existence truth the file service's oracle queries.
func (s *Service) CaseExists(ctx context.Context, id int64) (bool, error) {
	return s.cases.CaseExists(ctx, id)
}

// Cases returns the full case listing.
func (s *Service) Cases(ctx context.Context) ([]*types.Case, error) {
	return s.cases.Cases(ctx)
}

// Countries returns the country reference list.
func (s *Service) Countries(ctx context.Context) ([]*types.Country, error) {
	return s.countries.Countries(ctx)
}

func validateCreateCase(req *types.CreateCaseRequest) error {
	if req.Title == "" {
		return fmt.Errorf("%w: title is required", types.ErrValidation)
	}
	if req.Description == "" {
		return fmt.Errorf("%w: description is required", types.ErrValidation)
	}
	if req.Country == "" || len(req.Country) > 10 {
		return fmt.Errorf("%w: country must be a code of at most 10 characters", types.ErrValidation)
	}
	if req.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", types.ErrValidation)
	}
	if req.ReporterName == "" {
		return fmt.Errorf("%w: reporterName is required", types.ErrValidation)
	}
	return nil
}
