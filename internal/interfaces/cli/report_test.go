package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nalgeon/be"
	"mailtriage/internal/domain/triage"
)

func TestPrintResultAutoReply(t *testing.T) {
	res := &triage.ProcessingResult{
		MessageID:   "m1",
		Body:        strings.Repeat("x", 250),
		Summary:     "Asks whether Tuesday works.",
		Category:    triage.CategoryAutoReply,
		Explanation: "Simple scheduling question.",
		Reply:       "Tuesday works for me.",
	}
	res.Attach(triage.ActionAutoReply, triage.Succeeded("Reply to m1 sent to john@example.com"))

	var buf bytes.Buffer
	NewPrinter(&buf).PrintResult(res)
	out := buf.String()

	be.True(t, strings.Contains(out, "Original Email:\n"+strings.Repeat("x", 200)+"...\n"))
	be.True(t, strings.Contains(out, "Summary:\nAsks whether Tuesday works.\n"))
	be.True(t, strings.Contains(out, "Category:\nAUTO_REPLY: Simple scheduling question.\n"))
	be.True(t, strings.Contains(out, "Auto-Response:\nTuesday works for me.\n"))
	be.True(t, strings.Contains(out, "Send Status:\nReply to m1 sent to john@example.com\n"))
	be.True(t, strings.Contains(out, strings.Repeat("=", 50)))
}

func TestPrintResultFailures(t *testing.T) {
	res := &triage.ProcessingResult{
		MessageID: "m2",
		Body:      "short",
		Category:  triage.CategoryNoResponse,
	}
	res.Attach(triage.ActionMarkSpam, triage.Failed(errors.New("quota exceeded")))

	var buf bytes.Buffer
	NewPrinter(&buf).PrintResult(res)
	out := buf.String()

	be.True(t, strings.Contains(out, "Original Email:\nshort\n"))
	be.True(t, strings.Contains(out, "Summary:\nCould not generate summary\n"))
	be.True(t, strings.Contains(out, "Spam Status:\nFailed to mark as spam: quota exceeded\n"))
	be.True(t, !strings.Contains(out, "Auto-Response:"))
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintStats(triage.Stats{
		triage.CategoryNoResponse:   2,
		triage.CategoryHumanNeeded:  1,
		triage.CategoryAutoReply:    0,
		triage.CategoryUnrecognized: 1,
	})

	be.Equal(t, buf.String(), "\nCategory Statistics:\nHUMAN_NEEDED: 1\nNO_RESPONSE: 2\nUNRECOGNIZED: 1\n")
}

func TestPrintRunPartial(t *testing.T) {
	res := &triage.ProcessingResult{MessageID: "m1", Body: "hello", Category: triage.CategoryHumanNeeded}
	run := &triage.RunReport{ID: "r1", Results: []*triage.ProcessingResult{res}}
	run.Finish(time.Now(), errors.New("read message m2: boom"))

	var buf bytes.Buffer
	NewPrinter(&buf).PrintRun(run)

	be.True(t, strings.Contains(buf.String(), "HUMAN_NEEDED: 1"))
	be.True(t, strings.Contains(buf.String(), "Run stopped after 1 email(s): read message m2: boom"))
}
