package triage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mailtriage/internal/domain/triage"
)

var errUnavailable = errors.New("service unavailable")

type fakeCompleter struct {
	prompts []triage.Prompt
	respond func(p triage.Prompt) (string, error)
}

func (f *fakeCompleter) Complete(_ context.Context, p triage.Prompt) (string, error) {
	f.prompts = append(f.prompts, p)
	return f.respond(p)
}

func failingCompleter() *fakeCompleter {
	return &fakeCompleter{respond: func(triage.Prompt) (string, error) {
		return "", errUnavailable
	}}
}

// scriptedCompleter answers every call site with canned text; categories
// are picked by a keyword found in the email body.
func scriptedCompleter(categories map[string]string) *fakeCompleter {
	return &fakeCompleter{respond: func(p triage.Prompt) (string, error) {
		switch p.System {
		case summarizeSystemPrompt:
			return "A short summary.", nil
		case replySystemPrompt:
			return "Thanks, confirmed.\n\nBest regards,\nSupport", nil
		case categorizeSystemPrompt:
			for keyword, category := range categories {
				if strings.Contains(p.User, keyword) {
					return category + "\nBecause of " + keyword, nil
				}
			}
			return "", errors.New("no scripted category")
		}
		return "", fmt.Errorf("unexpected system prompt %q", p.System)
	}}
}

type modifyCall struct {
	MessageID string
	Add       []string
	Remove    []string
}

type sendCall struct {
	Raw      []byte
	ThreadID string
}

type fakeMailbox struct {
	ids      []string
	messages map[string]*triage.Message
	labels   []triage.Label

	listErr   error
	fetchErr  map[string]error
	modifyErr error
	sendErr   error
	labelsErr error

	fetches  []string
	modifies []modifyCall
	sends    []sendCall
	created  []triage.LabelSpec
}

func newFakeMailbox(messages ...*triage.Message) *fakeMailbox {
	m := &fakeMailbox{
		messages: make(map[string]*triage.Message),
		fetchErr: make(map[string]error),
	}
	for _, msg := range messages {
		m.ids = append(m.ids, msg.ID)
		m.messages[msg.ID] = msg
	}
	return m
}

func (m *fakeMailbox) ListInbox(_ context.Context, maxResults int64) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.ids, nil
}

func (m *fakeMailbox) FetchMessage(_ context.Context, id string) (*triage.Message, error) {
	m.fetches = append(m.fetches, id)
	if err := m.fetchErr[id]; err != nil {
		return nil, err
	}
	msg, ok := m.messages[id]
	if !ok {
		return nil, fmt.Errorf("message %s not found", id)
	}
	cp := *msg
	return &cp, nil
}

func (m *fakeMailbox) ModifyLabels(_ context.Context, id string, add, remove []string) error {
	m.modifies = append(m.modifies, modifyCall{MessageID: id, Add: add, Remove: remove})
	return m.modifyErr
}

func (m *fakeMailbox) SendMessage(_ context.Context, raw []byte, threadID string) (*triage.SentMessage, error) {
	m.sends = append(m.sends, sendCall{Raw: raw, ThreadID: threadID})
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	return &triage.SentMessage{ID: fmt.Sprintf("sent-%d", len(m.sends)), ThreadID: threadID}, nil
}

func (m *fakeMailbox) ListLabels(context.Context) ([]triage.Label, error) {
	if m.labelsErr != nil {
		return nil, m.labelsErr
	}
	return m.labels, nil
}

func (m *fakeMailbox) CreateLabel(_ context.Context, spec triage.LabelSpec) (*triage.Label, error) {
	m.created = append(m.created, spec)
	l := triage.Label{ID: fmt.Sprintf("Label_%d", len(m.created)), Name: spec.Name}
	m.labels = append(m.labels, l)
	return &l, nil
}

type fakeRecorder struct {
	runs []*triage.RunReport
}

func (r *fakeRecorder) SaveRun(_ context.Context, run *triage.RunReport) error {
	r.runs = append(r.runs, run)
	return nil
}
