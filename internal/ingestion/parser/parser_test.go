package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const singleEML = "From: Alice <alice@example.com>\r\n" +
	"To: bob@example.com, carol@example.com\r\n" +
	"Cc: dave@example.com\r\n" +
	"Subject: Contract renewal\r\n" +
	"Date: Mon, 02 Jan 2006 15:04:05 -0700\r\n" +
	"Message-ID: <renewal-1@example.com>\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Please find the renewal terms attached.\r\n"

func TestParseSingleMessage(t *testing.T) {
	msgs, err := Parse([]byte(singleEML))
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	msg := msgs[0]
	assert.Equal(t, "renewal-1@example.com", msg.MessageID)
	assert.Equal(t, "Contract renewal", msg.Subject)
	assert.Equal(t, "alice@example.com", msg.Sender)
	assert.Equal(t, []string{"bob@example.com", "carol@example.com"}, msg.Recipients)
	assert.Equal(t, []string{"dave@example.com"}, msg.CC)
	assert.Empty(t, msg.BCC)
	require.NotNil(t, msg.Date)
	assert.Equal(t, 2006, msg.Date.Year())
	assert.Equal(t, "Please find the renewal terms attached.", strings.TrimSpace(msg.BodyText))
	assert.Empty(t, msg.BodyHTML)
	assert.Equal(t, singleEML, msg.RawContent)
}

func TestParseMultipartAlternative(t *testing.T) {
	eml := "From: alice@example.com\r\n" +
		"To: bob@example.com\r\n" +
		"Subject: Both bodies\r\n" +
		"Message-ID: <alt-1@example.com>\r\n" +
		"Content-Type: multipart/alternative; boundary=frontier\r\n" +
		"\r\n" +
		"--frontier\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"Hello in plain text.\r\n" +
		"--frontier\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<p>Hello in HTML.</p>\r\n" +
		"--frontier--\r\n"

	msgs, err := Parse([]byte(eml))
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	assert.Equal(t, "Hello in plain text.", strings.TrimSpace(msgs[0].BodyText))
	assert.Equal(t, "<p>Hello in HTML.</p>", strings.TrimSpace(msgs[0].BodyHTML))
}

func TestParseHTMLOnlyMessage(t *testing.T) {
	eml := "From: alice@example.com\r\n" +
		"Subject: HTML only\r\n" +
		"Message-ID: <html-1@example.com>\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<p>No plain text here.</p>\r\n"

	msgs, err := Parse([]byte(eml))
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	assert.Empty(t, msgs[0].BodyText)
	assert.Equal(t, "<p>No plain text here.</p>", strings.TrimSpace(msgs[0].BodyHTML))
}

func TestParseMissingHeaders(t *testing.T) {
	eml := "From: alice@example.com\r\n" +
		"\r\n" +
		"A bare note with no subject or message id.\r\n"

	msgs, err := Parse([]byte(eml))
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	msg := msgs[0]
	assert.Equal(t, "(no subject)", msg.Subject)
	assert.True(t, strings.HasPrefix(msg.MessageID, "generated-"), "got %q", msg.MessageID)
	assert.Nil(t, msg.Date)
}

func TestParseDigest(t *testing.T) {
	inner1 := "From: alice@example.com\r\n" +
		"Subject: First in thread\r\n" +
		"Message-ID: <digest-1@example.com>\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"Opening message.\r\n"
	inner2 := "From: bob@example.com\r\n" +
		"Subject: Re: First in thread\r\n" +
		"Message-ID: <digest-2@example.com>\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"Reply message.\r\n"

	eml := "From: archive@example.com\r\n" +
		"Subject: Thread export\r\n" +
		"Content-Type: multipart/digest; boundary=thread\r\n" +
		"\r\n" +
		"--thread\r\n" +
		"Content-Type: message/rfc822\r\n" +
		"\r\n" +
		inner1 +
		"--thread\r\n" +
		"Content-Type: message/rfc822\r\n" +
		"\r\n" +
		inner2 +
		"--thread--\r\n"

	msgs, err := Parse([]byte(eml))
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, "First in thread", msgs[0].Subject)
	assert.Equal(t, "alice@example.com", msgs[0].Sender)
	assert.Equal(t, "Opening message.", strings.TrimSpace(msgs[0].BodyText))

	assert.Equal(t, "Re: First in thread", msgs[1].Subject)
	assert.Equal(t, "bob@example.com", msgs[1].Sender)
	assert.Equal(t, "Reply message.", strings.TrimSpace(msgs[1].BodyText))

	// Each embedded message keeps its own raw source
	assert.Contains(t, msgs[0].RawContent, "<digest-1@example.com>")
	assert.NotContains(t, msgs[0].RawContent, "<digest-2@example.com>")
}
