package ports

import "github.com/mailsentry/email-threat-analyzer/internal/domain"

// EmailParser defines the contract for turning raw input into the
// normalized Email record the analyzer consumes. Parse failures are the
// only errors surfaced to the caller; once an Email exists, analysis
// cannot fail.
type EmailParser interface {
	// FromUserInput builds an Email from manually entered components.
	FromUserInput(sender, subject, body string) domain.Email

	// FromRawContent parses a raw RFC 5322 message.
	FromRawContent(raw string) (domain.Email, error)

	// FromFile parses a raw message stored on disk.
	FromFile(path string) (domain.Email, error)
}
