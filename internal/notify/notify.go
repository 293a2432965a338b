// Package notify delivers best-effort notifications for case creation.
// Delivery failures are the caller's to log and must never affect the
// operation that triggered them.
package notify

import (
	"context"

	"caseflow/pkg/types"

	"github.com/sirupsen/logrus"
)

type Notifier interface {
	CaseCreated(ctx context.Context, c *types.Case) error
}

// LogNotifier is the fallback sink when no SMTP host is configured: the
// notification becomes a log line.
type LogNotifier struct {
	logger *logrus.Logger
}

func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) CaseCreated(_ context.Context, c *types.Case) error {
	n.logger.WithFields(logrus.Fields{
		"case_id":  c.ID,
		"title":    c.Title,
		"country":  c.Country,
		"amount":   c.Amount,
		"reporter": c.ReporterName,
	}).Info("case created notification")
	return nil
}
