package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mailsentry/email-threat-analyzer/internal/domain"
)

func newEmail(subject, body string) domain.Email {
	return domain.NewEmail("someone@example.com", subject, body)
}

func TestTextContentDetector_DetectPhishing(t *testing.T) {
	detector := NewTextContentDetector(nil, nil)

	tests := []struct {
		name          string
		subject       string
		body          string
		expectedScore float64
	}{
		{
			name:          "Clean text",
			subject:       "Lunch on Friday?",
			body:          "Shall we grab lunch at noon?",
			expectedScore: 0,
		},
		{
			name:    "Keyword, bare lure, and credential request",
			subject: "Action needed",
			body:    "Please verify your account. Click here. Enter your password.",
			// 1 keyword + 1 bare lure + 2 credential = 4 matches
			expectedScore: 60,
		},
		{
			name:          "Lure followed by a URL is fine",
			subject:       "Newsletter",
			body:          "Click here http://example.com/news to read more.",
			expectedScore: 0,
		},
		{
			name:    "Misspelled brand with bare lure",
			subject: "Deals",
			body:    "Visit amaz0n today for savings.",
			// bare "visit" + brand misspelling
			expectedScore: 30,
		},
		{
			name:          "Symbol run obfuscation",
			subject:       "Re: invoice ####$$$## attached",
			body:          "see attachment",
			expectedScore: 15,
		},
		{
			name:    "Mixed Latin and Cyrillic script",
			subject: "Your pаypal invoice", // Cyrillic "а"
			body:    "regards",
			// mixed-script signal plus "paypall?" does not match the
			// homoglyph, so a single pattern hit
			expectedScore: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := detector.DetectPhishing(newEmail(tt.subject, tt.body))
			assert.Equal(t, tt.expectedScore, res.Score)
		})
	}
}

func TestTextContentDetector_PhishingEvidence(t *testing.T) {
	detector := NewTextContentDetector(nil, nil)

	res := detector.DetectPhishing(newEmail(
		"Action needed",
		"Please verify your account. Click here. Enter your password.",
	))

	assert.Equal(t, []string{
		"Phishing: verify your account",
		"Suspicious pattern in body: click here",
		"Credential request",
	}, res.Evidence)
}

func TestTextContentDetector_ConfiguredKeywordsExtendDefaults(t *testing.T) {
	detector := NewTextContentDetector([]string{"wire the funds"}, nil)

	res := detector.DetectPhishing(newEmail("Request", "Please wire the funds before noon."))
	assert.Equal(t, 15.0, res.Score)
	assert.Contains(t, res.Evidence, "Phishing: wire the funds")
}

func TestTextContentDetector_DetectSpam(t *testing.T) {
	detector := NewTextContentDetector(nil, nil)

	tests := []struct {
		name          string
		subject       string
		body          string
		expectedScore float64
	}{
		{
			name:          "Clean text",
			subject:       "Minutes from standup",
			body:          "Notes attached.",
			expectedScore: 0,
		},
		{
			name:    "Subject keyword weighted double",
			subject: "Limited time offer ends soon",
			body:    "buy now and save money",
			// "limited time" in subject (+2), "buy now" and "save money"
			// in body (+1 each)
			expectedScore: 40,
		},
		{
			name:    "All-caps runs",
			subject: "URGENT notice",
			body:    "ATTENTION please",
			// +2 subject caps, +1 body caps
			expectedScore: 30,
		},
		{
			name:    "Exclamation bonus",
			subject: "Hi!!",
			body:    "Wow!!!",
			// 5 exclamation marks -> bonus min(5/2, 5) = 2
			expectedScore: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := detector.DetectSpam(newEmail(tt.subject, tt.body))
			assert.Equal(t, tt.expectedScore, res.Score)
		})
	}
}

func TestTextContentDetector_SpamScoreCapped(t *testing.T) {
	detector := NewTextContentDetector(nil, nil)

	res := detector.DetectSpam(newEmail(
		"FREE WINNER! Congratulations, cash prize, free gift, act now!!!",
		"win free cash prize now, buy now, order now, best price, discount!!!",
	))

	assert.Equal(t, 100.0, res.Score)
}

func TestTextContentDetector_DetectSocialEngineering(t *testing.T) {
	detector := NewTextContentDetector(nil, nil)

	tests := []struct {
		name          string
		subject       string
		body          string
		expectedScore float64
	}{
		{
			name:          "Clean text",
			subject:       "Holiday schedule",
			body:          "The office closes early on Friday.",
			expectedScore: 0,
		},
		{
			name:    "Urgency and fear stacking",
			subject: "Urgent warning",
			body:    "Your account closed. Act now.",
			// subject keywords "urgent" (+2) and "warning" (+2),
			// subject fear pattern "warning" (+2),
			// body urgency "act now" (+1), body fear "account closed" (+1)
			expectedScore: 96,
		},
		{
			name:    "Body-only keyword",
			subject: "Reminder",
			body:    "This is mandatory for all staff.",
			expectedScore: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := detector.DetectSocialEngineering(newEmail(tt.subject, tt.body))
			assert.Equal(t, tt.expectedScore, res.Score)
		})
	}
}

func TestTextContentDetector_ResultsAreIndependent(t *testing.T) {
	detector := NewTextContentDetector(nil, nil)
	email := newEmail("Action needed", "Please verify your account. Click here. Enter your password.")

	first := detector.DetectPhishing(email)
	second := detector.DetectPhishing(email)

	// No state accumulates between calls
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Evidence, second.Evidence)
}
