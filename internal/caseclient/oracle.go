package caseclient

import (
	"context"

	"github.com/sirupsen/logrus"
)

// existsOnFailure is the answer the oracle gives when the case service
// cannot be reached or returns something unusable. False keeps the upload
// path available at the cost of leaving the file TEMP until a later
// finalize call.
const existsOnFailure = false

// ExistsClient is the single outbound capability the oracle needs.
type ExistsClient interface {
	Exists(ctx context.Context, caseID int64) (bool, error)
}

// ExistenceOracle answers "does case X exist?" and never fails: a single
// attempt is made against the case service and any error resolves to
// existsOnFailure with a logged warning.
type ExistenceOracle struct {
	client ExistsClient
	logger *logrus.Logger
}

func NewExistenceOracle(client ExistsClient, logger *logrus.Logger) *ExistenceOracle {
	return &ExistenceOracle{client: client, logger: logger}
}

func (o *ExistenceOracle) CaseExists(ctx context.Context, caseID int64) bool {
	exists, err := o.client.Exists(ctx, caseID)
	if err != nil {
		o.logger.WithError(err).WithField("case_id", caseID).
			Warn("case existence check failed, treating case as absent")
		return existsOnFailure
	}

	return exists
}
