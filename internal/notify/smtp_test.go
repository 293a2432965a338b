package notify

import (
	"strings"
	"testing"

	"caseflow/pkg/types"
)

func TestBuildCaseCreatedMessage(t *testing.T) {
	msg := string(buildCaseCreatedMessage("noreply@example.com", "requester1@example.com", &types.Case{
		ID:           42,
		Title:        "Flood damage",
		Country:      "US",
		Amount:       1200.5,
		ReporterName: "alice",
	}))

	for _, want := range []string{
		"From: noreply@example.com\r\n",
		"To: requester1@example.com\r\n",
		"Subject: New case created: 42 - Flood damage\r\n",
		"A new case has been created.",
		"ID: 42\r\n",
		"Title: Flood damage\r\n",
		"Country: US\r\n",
		"Amount: 1200.50\r\n",
		"Reporter: alice\r\n",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}

	headerEnd := strings.Index(msg, "\r\n\r\n")
	if headerEnd < 0 {
		t.Fatal("message has no header/body separator")
	}
	if strings.Contains(msg[:headerEnd], "A new case") {
		t.Fatal("body text leaked into headers")
	}
}
