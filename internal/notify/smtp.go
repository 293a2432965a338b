package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"caseflow/pkg/types"
)

// SMTPNotifier sends the case-created mail over plain SMTP.
type SMTPNotifier struct {
	addr string
	auth smtp.Auth
	from string
	to   string
}

func NewSMTPNotifier(host string, port uint, username, password, from, to string) *SMTPNotifier {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPNotifier{
		addr: fmt.Sprintf("%s:%d", host, port),
		auth: auth,
		from: from,
		to:   to,
	}
}

func (n *SMTPNotifier) CaseCreated(_ context.Context, c *types.Case) error {
	msg := buildCaseCreatedMessage(n.from, n.to, c)

	if err := smtp.SendMail(n.addr, n.auth, n.from, []string{n.to}, msg); err != nil {
		return fmt.Errorf("send case created mail: %w", err)
	}

	return nil
}

func buildCaseCreatedMessage(from, to string, c *types.Case) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: New case created: %d - %s\r\n", c.ID, c.Title)
	b.WriteString("\r\n")
	b.WriteString("A new case has been created.\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "ID: %d\r\n", c.ID)
	fmt.Fprintf(&b, "Title: %s\r\n", c.Title)
	fmt.Fprintf(&b, "Country: %s\r\n", c.Country)
	fmt.Fprintf(&b, "Amount: %.2f\r\n", c.Amount)
	fmt.Fprintf(&b, "Reporter: %s\r\n", c.ReporterName)

	return []byte(b.String())
}
