package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mailsentry/email-threat-analyzer/internal/domain"
)

func TestSenderIdentityDetector_EmptySender(t *testing.T) {
	detector := NewSenderIdentityDetector(nil, nil)

	email := domain.NewEmail("", "any subject", "any body")
	email.AddHeader("Authentication-Results", "spf=pass")

	// Missing sender is maximally suspicious regardless of other fields
	assert.Equal(t, 100.0, detector.DetectSpoofing(email))
}

func TestSenderIdentityDetector_DetectSpoofing(t *testing.T) {
	detector := NewSenderIdentityDetector(
		[]string{"trusted-corp.com"},
		[]string{"spam-sender.com"},
	)

	tests := []struct {
		name     string
		sender   string
		headers  map[string]string
		expected float64
	}{
		{
			name:     "Clean sender",
			sender:   "user@example.com",
			expected: 0,
		},
		{
			name:     "Invalid address syntax",
			sender:   "not-an-address",
			expected: 60,
		},
		{
			name:     "Known spam domain",
			sender:   "user@spam-sender.com",
			expected: 80,
		},
		{
			name:     "Spam domain matched case-insensitively",
			sender:   "user@SPAM-SENDER.COM",
			expected: 80,
		},
		{
			name:     "Display name with trust-signaling token",
			sender:   "PayPal Support <help@random.biz>",
			expected: 85, // +60 syntax, +25 token
		},
		{
			name:     "Return-Path mismatch",
			sender:   "user@corp.com",
			headers:  map[string]string{"Return-Path": "<bounce@other.net>"},
			expected: 40,
		},
		{
			name:     "Return-Path matching sender domain",
			sender:   "user@corp.com",
			headers:  map[string]string{"Return-Path": "<bounces.corp.com>"},
			expected: 0,
		},
		{
			name:     "Reply-To outside sender domain",
			sender:   "user@corp.com",
			headers:  map[string]string{"Reply-To": "evil@else.org"},
			expected: 30,
		},
		{
			name:     "Reply-To within sender domain",
			sender:   "user@corp.com",
			headers:  map[string]string{"Reply-To": "billing@corp.com"},
			expected: 0,
		},
		{
			name:     "Trusted domain without authentication",
			sender:   "user@trusted-corp.com",
			expected: 75,
		},
		{
			name:     "Trusted domain with passing SPF",
			sender:   "user@trusted-corp.com",
			headers:  map[string]string{"Authentication-Results": "mx.example.com; spf=pass smtp.mailfrom=trusted-corp.com"},
			expected: 0,
		},
		{
			name:     "Trusted domain with failing authentication",
			sender:   "user@trusted-corp.com",
			headers:  map[string]string{"Authentication-Results": "mx.example.com; spf=fail; dkim=fail"},
			expected: 75,
		},
		{
			name:   "Everything wrong clamps at 100",
			sender: "Admin <admin@spam-sender.com",
			headers: map[string]string{
				"Return-Path": "<bounce@other.net>",
				"Reply-To":    "someone@unrelated.io",
			},
			expected: 100, // 60+80+40+30+25 clamped
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := domain.NewEmail(tt.sender, "subject", "body")
			for name, value := range tt.headers {
				email.AddHeader(name, value)
			}

			assert.Equal(t, tt.expected, detector.DetectSpoofing(email))
		})
	}
}
