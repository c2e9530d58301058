package gmail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/emersion/go-message"
	"github.com/emersion/go-message/charset"
	"google.golang.org/api/gmail/v1"
)

// NoTextContent stands in for the body of messages without any text part.
const NoTextContent = "No text content found in message"

// ExtractBody returns the plain text of a message payload. A top-level body
// wins; otherwise the first text/plain part anywhere in the tree, then the
// first text/html part converted to Markdown.
func ExtractBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return NoTextContent
	}

	if payload.Body != nil && payload.Body.Data != "" {
		text, err := decodePart(payload)
		if err == nil {
			if isMimeType(payload.MimeType, "text/html") {
				return htmlToText(text)
			}
			return text
		}
		log.Printf("Error decoding message body: %v", err)
	}

	if text := findPart(payload.Parts, "text/plain"); text != "" {
		return text
	}
	if html := findPart(payload.Parts, "text/html"); html != "" {
		return htmlToText(html)
	}

	return NoTextContent
}

func findPart(parts []*gmail.MessagePart, mimeType string) string {
	for _, p := range parts {
		if p == nil {
			continue
		}
		if isMimeType(p.MimeType, "multipart/") {
			if text := findPart(p.Parts, mimeType); text != "" {
				return text
			}
			continue
		}
		// attachments carry a filename and are not the message text
		if p.Filename != "" || !isMimeType(p.MimeType, mimeType) {
			continue
		}
		if p.Body == nil || p.Body.Data == "" {
			continue
		}
		text, err := decodePart(p)
		if err != nil {
			log.Printf("Error decoding %s part: %v", p.MimeType, err)
			continue
		}
		return text
	}
	return ""
}

// decodePart decodes the base64url body of p, padded or unpadded, and
// converts it to UTF-8 from the charset named in its Content-Type.
func decodePart(p *gmail.MessagePart) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(p.Body.Data, "="))
	if err != nil {
		return "", err
	}

	cs := partCharset(p)
	if cs == "" || strings.EqualFold(cs, "utf-8") || strings.EqualFold(cs, "us-ascii") {
		return string(b), nil
	}

	r, err := charset.Reader(cs, bytes.NewReader(b))
	if err != nil {
		log.Printf("Unknown charset %q, keeping raw bytes: %v", cs, err)
		return string(b), nil
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", cs, err)
	}
	return string(decoded), nil
}

func partCharset(p *gmail.MessagePart) string {
	var h message.Header
	for _, ph := range p.Headers {
		if strings.EqualFold(ph.Name, "Content-Type") {
			h.Set("Content-Type", ph.Value)
			break
		}
	}
	if !h.Has("Content-Type") {
		return ""
	}

	_, params, err := h.ContentType()
	if err != nil {
		return ""
	}
	return params["charset"]
}

func htmlToText(html string) string {
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		log.Printf("Error converting HTML body: %v", err)
		return html
	}
	return strings.TrimSpace(md)
}

func isMimeType(got, want string) bool {
	return strings.HasPrefix(strings.ToLower(got), want)
}
