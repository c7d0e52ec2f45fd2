package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rawMessage = "From: \"IT Support\" <support@company-mail.biz>\r\n" +
	"To: victim@example.com\r\n" +
	"Subject: Password expiry notice\r\n" +
	"Reply-To: attacker@elsewhere.net\r\n" +
	"Return-Path: <bounce@company-mail.biz>\r\n" +
	"Message-ID: <abc123@company-mail.biz>\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Your password expires today. Visit http://company-mail.biz/reset now.\r\n"

func TestFromRawContent(t *testing.T) {
	email, err := New().FromRawContent(rawMessage)
	require.NoError(t, err)

	assert.Equal(t, "support@company-mail.biz", email.Sender)
	assert.Equal(t, "company-mail.biz", email.SenderDomain)
	assert.Equal(t, "Password expiry notice", email.Subject)
	assert.Contains(t, email.Body, "Your password expires today")

	assert.Equal(t, "attacker@elsewhere.net", email.Headers["Reply-To"])
	assert.Equal(t, "<bounce@company-mail.biz>", email.Headers["Return-Path"])
	assert.Equal(t, "<abc123@company-mail.biz>", email.Headers["Message-ID"])
	assert.NotContains(t, email.Headers, "Authentication-Results")

	assert.Equal(t, []string{"http://company-mail.biz/reset"}, email.ExtractedURLs)
}

func TestFromRawContent_UnparsableFromKeptVerbatim(t *testing.T) {
	raw := "From: not an address\r\n" +
		"Subject: hi\r\n" +
		"\r\n" +
		"hello\r\n"

	email, err := New().FromRawContent(raw)
	require.NoError(t, err)

	assert.Equal(t, "not an address", email.Sender)
	assert.Equal(t, "", email.SenderDomain)
}

func TestFromUserInput(t *testing.T) {
	email := New().FromUserInput("alice@example.com", "Hello", "See https://example.com/page")

	assert.Equal(t, "alice@example.com", email.Sender)
	assert.Equal(t, "example.com", email.SenderDomain)
	assert.Equal(t, []string{"https://example.com/page"}, email.ExtractedURLs)
	assert.Empty(t, email.Headers)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "message.eml")
	require.NoError(t, os.WriteFile(path, []byte(rawMessage), 0o644))

	email, err := New().FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "support@company-mail.biz", email.Sender)
}

func TestFromFile_Missing(t *testing.T) {
	_, err := New().FromFile(filepath.Join(t.TempDir(), "nope.eml"))
	assert.Error(t, err)
}
