package triage

// Message is an inbox message as read from the mail provider.
type Message struct {
	ID         string
	ThreadID   string
	From       string
	To         string
	Subject    string
	MessageID  string
	References string
	Body       string
}

type Label struct {
	ID   string
	Name string
}

type LabelSpec struct {
	Name                  string
	LabelListVisibility   string
	MessageListVisibility string
	BackgroundColor       string
	TextColor             string
}

type SentMessage struct {
	ID       string
	ThreadID string
}

// System labels understood by the mail provider.
const (
	LabelInbox       = "INBOX"
	LabelImportant   = "IMPORTANT"
	LabelUnimportant = "UNIMPORTANT"
	LabelStarred     = "STARRED"
	LabelSpam        = "SPAM"
	LabelUnspam      = "UNSPAM"
	LabelDraft       = "DRAFT"
)
