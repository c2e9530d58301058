package triage

import "strings"

type Reply struct {
	To         string
	Subject    string
	InReplyTo  string
	References []string
	ThreadID   string
	Body       string
}

func NewReply(original *Message, body string) *Reply {
	refs := strings.Fields(original.References)
	if original.MessageID != "" {
		refs = append(refs, original.MessageID)
	}

	return &Reply{
		To:         original.From,
		Subject:    ReplySubject(original.Subject),
		InReplyTo:  original.MessageID,
		References: refs,
		ThreadID:   original.ThreadID,
		Body:       body,
	}
}

// ReplySubject prefixes "Re: " unless the subject already starts with "re:".
func ReplySubject(subject string) string {
	if strings.HasPrefix(strings.ToLower(subject), "re:") {
		return subject
	}
	return "Re: " + subject
}
