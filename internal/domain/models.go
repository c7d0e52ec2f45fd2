package domain

import (
	"regexp"
	"strings"
)

// ThreatCategory classifies the kind of threat a detector reported
type ThreatCategory string

const (
	CategoryPhishing          ThreatCategory = "PHISHING"
	CategorySpam              ThreatCategory = "SPAM"
	CategoryMalware           ThreatCategory = "MALWARE" // reserved, no detector produces it yet
	CategorySuspiciousLink    ThreatCategory = "SUSPICIOUS_LINK"
	CategorySenderSpoofing    ThreatCategory = "SENDER_SPOOFING"
	CategorySocialEngineering ThreatCategory = "SOCIAL_ENGINEERING"
	CategoryOther             ThreatCategory = "OTHER"
)

// urlPattern matches URL-shaped substrings in an email body
var urlPattern = regexp.MustCompile(`(?i)\b(https?|ftp|file)://[-a-zA-Z0-9+&@#/%?=~_|!:,.;]*[-a-zA-Z0-9+&@#/%=~_|]`)

// Email is the normalized input every detector consumes.
//
// SenderDomain and ExtractedURLs are derived once in NewEmail and never
// recomputed; callers treat the record as immutable after construction
// (headers may still be attached by the parser before analysis starts).
type Email struct {
	Sender        string            `json:"sender"`
	SenderDomain  string            `json:"sender_domain"`
	Subject       string            `json:"subject"`
	Body          string            `json:"body"`
	Headers       map[string]string `json:"headers"`
	ExtractedURLs []string          `json:"extracted_urls"`
}

// NewEmail builds an Email record from its raw components, splitting the
// sender domain and scanning the body for URLs. Duplicated URLs are kept;
// the link detector scores every occurrence independently.
func NewEmail(sender, subject, body string) Email {
	e := Email{
		Sender:  sender,
		Subject: subject,
		Body:    body,
		Headers: make(map[string]string),
	}

	if at := strings.Index(sender, "@"); at >= 0 {
		e.SenderDomain = sender[at+1:]
	}

	e.ExtractedURLs = urlPattern.FindAllString(body, -1)

	return e
}

// AddHeader attaches a header to the email. Header names are case-sensitive.
func (e *Email) AddHeader(name, value string) {
	e.Headers[name] = value
}
