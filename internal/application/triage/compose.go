package triage

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
	"mailtriage/internal/domain/triage"
)

// composeReply renders reply as an RFC 5322 text/plain message.
func composeReply(reply *triage.Reply, date time.Time) ([]byte, error) {
	var h mail.Header
	h.SetDate(date)
	h.SetSubject(reply.Subject)

	if to, err := mail.ParseAddressList(reply.To); err == nil && len(to) > 0 {
		h.SetAddressList("To", to)
	} else {
		h.Set("To", reply.To)
	}

	if reply.InReplyTo != "" {
		h.SetMsgIDList("In-Reply-To", []string{bareMsgID(reply.InReplyTo)})
	}
	if len(reply.References) > 0 {
		refs := make([]string, len(reply.References))
		for i, ref := range reply.References {
			refs[i] = bareMsgID(ref)
		}
		h.SetMsgIDList("References", refs)
	}

	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	h.Set("Content-Transfer-Encoding", "quoted-printable")

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("create message writer: %w", err)
	}
	if _, err := w.Write([]byte(reply.Body)); err != nil {
		return nil, fmt.Errorf("write message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close message writer: %w", err)
	}

	return buf.Bytes(), nil
}

func bareMsgID(id string) string {
	return strings.Trim(strings.TrimSpace(id), "<>")
}
