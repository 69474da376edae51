package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"
)

// ParsedMessage is one email extracted from an .eml payload
type ParsedMessage struct {
	MessageID  string
	Subject    string
	Sender     string
	Recipients []string
	CC         []string
	BCC        []string
	Date       *time.Time
	BodyText   string
	BodyHTML   string
	RawContent string
}

// Parse reads an .eml payload and returns the messages it contains.
// A multipart/digest container yields one ParsedMessage per embedded
// message/rfc822 part; anything else yields a single message.
func Parse(raw []byte) ([]*ParsedMessage, error) {
	entity, err := message.Read(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}

	mediaType, _, _ := entity.Header.ContentType()
	if mediaType != "multipart/digest" {
		msg, err := parseSingle(entity, raw)
		if err != nil {
			return nil, err
		}
		return []*ParsedMessage{msg}, nil
	}

	mr := entity.MultipartReader()
	if mr == nil {
		msg, err := parseSingle(entity, raw)
		if err != nil {
			return nil, err
		}
		return []*ParsedMessage{msg}, nil
	}

	var messages []*ParsedMessage
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read digest part: %w", err)
		}

		partType, _, _ := part.Header.ContentType()
		if partType != "message/rfc822" {
			continue
		}

		// Buffer the embedded message so its raw source can be kept
		embedded, err := io.ReadAll(part.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded message: %w", err)
		}

		sub, err := message.Read(bytes.NewReader(embedded))
		if err != nil && !message.IsUnknownCharset(err) {
			return nil, fmt.Errorf("failed to parse embedded message: %w", err)
		}

		msg, err := parseSingle(sub, embedded)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, nil
}

func parseSingle(entity *message.Entity, raw []byte) (*ParsedMessage, error) {
	header := mail.Header{Header: entity.Header}

	subject, err := header.Subject()
	if err != nil || subject == "" {
		subject = "(no subject)"
	}

	messageID, _ := header.MessageID()
	if messageID == "" {
		// Some senders omit Message-ID; synthesize one so the unique
		// index still deduplicates re-uploads of the same parse.
		messageID = "generated-" + uuid.New().String()
	}

	msg := &ParsedMessage{
		MessageID:  messageID,
		Subject:    subject,
		Sender:     firstAddress(header, "From"),
		Recipients: addressList(header, "To"),
		CC:         addressList(header, "Cc"),
		BCC:        addressList(header, "Bcc"),
		RawContent: string(raw),
	}

	if date, err := header.Date(); err == nil && !date.IsZero() {
		msg.Date = &date
	}

	bodyText, bodyHTML, err := extractBodies(entity)
	if err != nil {
		return nil, err
	}
	msg.BodyText = bodyText
	msg.BodyHTML = bodyHTML

	return msg, nil
}

// extractBodies walks the MIME tree and returns the first text/plain and the
// first text/html part found
func extractBodies(entity *message.Entity) (string, string, error) {
	mr := entity.MultipartReader()
	if mr == nil {
		mediaType, _, _ := entity.Header.ContentType()
		body, err := io.ReadAll(entity.Body)
		if err != nil {
			return "", "", fmt.Errorf("failed to read body: %w", err)
		}
		switch mediaType {
		case "text/html":
			return "", string(body), nil
		default:
			// Treat untyped bodies as plain text
			return string(body), "", nil
		}
	}

	var bodyText, bodyHTML string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", "", fmt.Errorf("failed to read part: %w", err)
		}

		partType, _, _ := part.Header.ContentType()
		switch {
		case partType == "text/plain" && bodyText == "":
			body, err := io.ReadAll(part.Body)
			if err != nil {
				return "", "", err
			}
			bodyText = string(body)
		case partType == "text/html" && bodyHTML == "":
			body, err := io.ReadAll(part.Body)
			if err != nil {
				return "", "", err
			}
			bodyHTML = string(body)
		case strings.HasPrefix(partType, "multipart/"):
			subText, subHTML, err := extractBodies(part)
			if err != nil {
				return "", "", err
			}
			if bodyText == "" {
				bodyText = subText
			}
			if bodyHTML == "" {
				bodyHTML = subHTML
			}
		}
	}

	return bodyText, bodyHTML, nil
}

func firstAddress(header mail.Header, key string) string {
	addrs, err := header.AddressList(key)
	if err != nil || len(addrs) == 0 {
		// Fall back to the raw header value for unparseable address lists
		return header.Get(key)
	}
	return addrs[0].Address
}

func addressList(header mail.Header, key string) []string {
	addrs, err := header.AddressList(key)
	if err != nil || len(addrs) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		out = append(out, addr.Address)
	}
	return out
}
