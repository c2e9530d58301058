package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"mailtriage/internal/domain/triage"
)

const ruleWidth = 50

// Printer writes human-readable run reports. Colors are dropped when w is
// not a terminal.
type Printer struct {
	w io.Writer

	rule    lipgloss.Style
	heading lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		rule:    r.NewStyle().Foreground(lipgloss.Color("240")),
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		muted:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "244"}),
		success: r.NewStyle().Foreground(lipgloss.Color("42")),
		failure: r.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// PrintRun writes every result of the run followed by the category statistics.
func (p *Printer) PrintRun(run *triage.RunReport) {
	for _, res := range run.Results {
		p.PrintResult(res)
	}
	p.PrintStats(run.Stats)

	if run.Partial() {
		msg := fmt.Sprintf("Run stopped after %d email(s): %v", len(run.Results), run.Err)
		fmt.Fprintf(p.w, "\n%s\n", p.failure.Render(msg))
	}
}

func (p *Printer) PrintResult(res *triage.ProcessingResult) {
	var b strings.Builder
	rule := p.rule.Render(strings.Repeat("=", ruleWidth))

	b.WriteString("\n" + rule + "\n")
	p.section(&b, "Original Email:", triage.Preview(res.Body, triage.PreviewLength))

	summary := res.Summary
	if summary == "" {
		summary = p.muted.Render("Could not generate summary")
	}
	p.section(&b, "Summary:", summary)
	p.section(&b, "Category:", fmt.Sprintf("%s: %s", res.Category, res.Explanation))

	if res.Reply != "" {
		p.section(&b, "Auto-Response:", res.Reply)
	}

	if res.Outcome != nil {
		switch res.Action {
		case triage.ActionAutoReply:
			p.section(&b, "Send Status:", p.outcome(res.Outcome, "Failed to send"))
		case triage.ActionFlagImportant:
			p.section(&b, "Flag Status:", p.outcome(res.Outcome, "Failed to flag"))
		case triage.ActionMarkSpam:
			p.section(&b, "Spam Status:", p.outcome(res.Outcome, "Failed to mark as spam"))
		}
	}

	b.WriteString(rule + "\n")
	fmt.Fprint(p.w, b.String())
}

// PrintStats lists the categories that occurred, in a fixed order.
func (p *Printer) PrintStats(stats triage.Stats) {
	var b strings.Builder
	b.WriteString("\n" + p.heading.Render("Category Statistics:") + "\n")
	for _, c := range triage.Categories {
		if n := stats[c]; n > 0 {
			fmt.Fprintf(&b, "%s: %d\n", c, n)
		}
	}
	fmt.Fprint(p.w, b.String())
}

func (p *Printer) section(b *strings.Builder, title, body string) {
	b.WriteString(p.heading.Render(title) + "\n")
	b.WriteString(body + "\n\n")
}

func (p *Printer) outcome(o *triage.ActionOutcome, failedPrefix string) string {
	if o.Success {
		return p.success.Render(o.Message)
	}
	return p.failure.Render(fmt.Sprintf("%s: %s", failedPrefix, o.Error))
}
