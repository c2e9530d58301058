package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/api/gmail/v1"
	"mailtriage/internal/domain/triage"
)

// Client implements the triage Mailbox port over the Gmail REST API.
type Client struct {
	Srv  *gmail.Service
	user string
}

// NewClient creates a Gmail client acting as user ("me" for the token owner).
func NewClient(srv *gmail.Service, user string) *Client {
	if user == "" {
		user = "me"
	}
	return &Client{
		Srv:  srv,
		user: user,
	}
}

func (c *Client) ListInbox(ctx context.Context, maxResults int64) ([]string, error) {
	call := c.Srv.Users.Messages.List(c.user).
		LabelIds(triage.LabelInbox).
		Context(ctx)
	if maxResults > 0 {
		call = call.MaxResults(maxResults)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		ids = append(ids, msg.Id)
	}

	return ids, nil
}

func (c *Client) FetchMessage(ctx context.Context, messageID string) (*triage.Message, error) {
	msg, err := c.Srv.Users.Messages.Get(c.user, messageID).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("gmail get message: %w", err)
	}
	if msg.Payload == nil {
		return nil, fmt.Errorf("gmail message %s has no payload", messageID)
	}

	return &triage.Message{
		ID:         messageID,
		ThreadID:   msg.ThreadId,
		From:       extractHeader(msg, "From"),
		To:         extractHeader(msg, "To"),
		Subject:    extractHeader(msg, "Subject"),
		MessageID:  extractHeader(msg, "Message-ID"),
		References: extractHeader(msg, "References"),
		Body:       ExtractBody(msg.Payload),
	}, nil
}

func (c *Client) ModifyLabels(ctx context.Context, messageID string, add, remove []string) error {
	_, err := c.Srv.Users.Messages.Modify(c.user, messageID, &gmail.ModifyMessageRequest{
		AddLabelIds:    add,
		RemoveLabelIds: remove,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gmail modify message: %w", err)
	}
	return nil
}

// SendMessage sends an RFC 5322 message, inside threadID when it is set.
func (c *Client) SendMessage(ctx context.Context, raw []byte, threadID string) (*triage.SentMessage, error) {
	sent, err := c.Srv.Users.Messages.Send(c.user, &gmail.Message{
		Raw:      base64.URLEncoding.EncodeToString(raw),
		ThreadId: threadID,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("gmail send message: %w", err)
	}

	return &triage.SentMessage{ID: sent.Id, ThreadID: sent.ThreadId}, nil
}

func (c *Client) ListLabels(ctx context.Context) ([]triage.Label, error) {
	resp, err := c.Srv.Users.Labels.List(c.user).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("gmail list labels: %w", err)
	}

	labels := make([]triage.Label, 0, len(resp.Labels))
	for _, l := range resp.Labels {
		labels = append(labels, triage.Label{ID: l.Id, Name: l.Name})
	}
	return labels, nil
}

func (c *Client) CreateLabel(ctx context.Context, spec triage.LabelSpec) (*triage.Label, error) {
	label := &gmail.Label{
		Name:                  spec.Name,
		LabelListVisibility:   spec.LabelListVisibility,
		MessageListVisibility: spec.MessageListVisibility,
	}
	if spec.BackgroundColor != "" || spec.TextColor != "" {
		label.Color = &gmail.LabelColor{
			BackgroundColor: spec.BackgroundColor,
			TextColor:       spec.TextColor,
		}
	}

	created, err := c.Srv.Users.Labels.Create(c.user, label).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("gmail create label: %w", err)
	}

	return &triage.Label{ID: created.Id, Name: created.Name}, nil
}

// FetchNewMessagesSince lists messages added after historyID, drafts excluded.
func (c *Client) FetchNewMessagesSince(ctx context.Context, historyID uint64) ([]string, error) {
	var messageIDs []string

	resp, err := c.Srv.Users.History.List(c.user).
		StartHistoryId(historyID).
		HistoryTypes("messageAdded").
		LabelId(triage.LabelInbox).
		Context(ctx).
		Do()

	if err != nil {
		return nil, fmt.Errorf("gmail history list: %w", err)
	}

	for _, h := range resp.History {
		for _, added := range h.MessagesAdded {
			if added.Message != nil && !isDraft(added.Message) {
				messageIDs = append(messageIDs, added.Message.Id)
			}
		}
	}

	return messageIDs, nil
}

// EnableWatch enables Gmail push notifications for the inbox and returns the
// mailbox history id at the moment the watch started.
func (c *Client) EnableWatch(ctx context.Context, topicName string) (uint64, error) {
	req := &gmail.WatchRequest{
		TopicName: topicName,
		LabelIds:  []string{triage.LabelInbox},
	}

	resp, err := c.Srv.Users.Watch(c.user, req).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("gmail watch: %w", err)
	}

	return resp.HistoryId, nil
}

func extractHeader(msg *gmail.Message, name string) string {
	for _, h := range msg.Payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

func isDraft(msg *gmail.Message) bool {
	for _, labelID := range msg.LabelIds {
		if labelID == triage.LabelDraft {
			return true
		}
	}
	return false
}
