package parser

import (
	"fmt"
	"net/mail"
	"os"
	"strings"

	"github.com/jhillyerd/enmime"

	"github.com/mailsentry/email-threat-analyzer/internal/domain"
)

// Headers the detectors inspect; everything else in the raw message is
// dropped during normalization.
var capturedHeaders = []string{
	"Reply-To", "Return-Path", "Authentication-Results", "Received", "Message-ID",
}

// Parser normalizes raw input into domain.Email records. Raw messages are
// decoded with enmime so MIME multipart and encoded-word headers come out
// as plain text.
type Parser struct{}

// New creates an email parser.
func New() *Parser {
	return &Parser{}
}

// FromUserInput builds an Email from manually entered components.
func (p *Parser) FromUserInput(sender, subject, body string) domain.Email {
	return domain.NewEmail(sender, subject, body)
}

// FromRawContent parses a raw RFC 5322 message into an Email record. The
// text part is preferred as the analysis body; HTML-only messages fall back
// to the decoded HTML.
func (p *Parser) FromRawContent(raw string) (domain.Email, error) {
	env, err := enmime.ReadEnvelope(strings.NewReader(raw))
	if err != nil {
		return domain.Email{}, fmt.Errorf("failed to parse message: %w", err)
	}

	sender := senderAddress(env)

	body := env.Text
	if body == "" {
		body = env.HTML
	}

	email := domain.NewEmail(sender, env.GetHeader("Subject"), body)

	for _, name := range capturedHeaders {
		if value := env.GetHeader(name); value != "" {
			email.AddHeader(name, value)
		}
	}

	return email, nil
}

// FromFile parses a raw message stored on disk.
func (p *Parser) FromFile(path string) (domain.Email, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Email{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return p.FromRawContent(string(data))
}

// senderAddress extracts the bare address from the From header, falling
// back to the raw header when it does not parse as an address.
func senderAddress(env *enmime.Envelope) string {
	from := env.GetHeader("From")
	addr, err := mail.ParseAddress(from)
	if err != nil {
		return from
	}
	return addr.Address
}
