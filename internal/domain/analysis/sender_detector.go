package analysis

import (
	"regexp"
	"strings"

	"github.com/mailsentry/email-threat-analyzer/internal/domain"
)

// Display-name tokens that signal trust; spoofed senders lean on these to
// look official regardless of their actual domain.
var trustSignalTokens = []string{
	"admin", "support", "service", "security", "help", "notify", "no-reply",
	"paypal", "amazon", "facebook", "microsoft", "apple", "google",
}

var validSenderPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,6}$`)

// SenderIdentityDetector scores sender-address and header inconsistencies
// for spoofing.
type SenderIdentityDetector struct {
	trustedDomains []string
	spamDomains    []string
}

// NewSenderIdentityDetector creates a sender detector using the configured
// trusted-domain and spam-domain lists.
func NewSenderIdentityDetector(trustedDomains, spamDomains []string) *SenderIdentityDetector {
	return &SenderIdentityDetector{
		trustedDomains: trustedDomains,
		spamDomains:    spamDomains,
	}
}

// DetectSpoofing returns a spoofing confidence in [0,100]. A missing sender
// is maximally suspicious and returns 100 immediately; otherwise independent
// signals accumulate and the total is clamped to 100.
func (d *SenderIdentityDetector) DetectSpoofing(email domain.Email) float64 {
	sender := email.Sender
	if sender == "" {
		return 100.0
	}

	score := 0.0

	if !validSenderPattern.MatchString(sender) {
		score += 60.0
	}

	for _, spamDomain := range d.spamDomains {
		if strings.EqualFold(email.SenderDomain, spamDomain) {
			score += 80.0
			break
		}
	}

	score += headerInconsistencyScore(email)
	score += displayNameScore(sender)

	for _, trustedDomain := range d.trustedDomains {
		if strings.EqualFold(email.SenderDomain, trustedDomain) {
			// A trusted domain without passing authentication results is a
			// classic spoof: anyone can put microsoft.com in the From line.
			if !hasValidAuthentication(email.Headers) {
				score += 75.0
			}
			break
		}
	}

	if score > 100 {
		return 100
	}
	return score
}

// headerInconsistencyScore checks Return-Path and Reply-To against the
// sender. No headers means no signal, not an error.
func headerInconsistencyScore(email domain.Email) float64 {
	if len(email.Headers) == 0 {
		return 0
	}

	score := 0.0
	sender := strings.ToLower(email.Sender)
	senderDomain := strings.ToLower(email.SenderDomain)

	if returnPath, ok := email.Headers["Return-Path"]; ok {
		cleaned := strings.ToLower(strings.TrimSpace(strings.NewReplacer("<", "", ">", "").Replace(returnPath)))
		if !strings.HasSuffix(sender, cleaned) && !strings.HasSuffix(cleaned, senderDomain) {
			score += 40.0
		}
	}

	if replyTo, ok := email.Headers["Reply-To"]; ok {
		if !strings.Contains(strings.ToLower(replyTo), senderDomain) {
			score += 30.0
		}
	}

	return score
}

// displayNameScore flags trust-signaling tokens anywhere in the raw sender
// string, which may include a display name. The penalty applies whether or
// not the domain actually belongs to the named brand.
func displayNameScore(sender string) float64 {
	if containsAny(strings.ToLower(sender), trustSignalTokens) {
		return 25.0
	}
	return 0
}

// hasValidAuthentication reports whether the Authentication-Results header
// shows at least one of SPF, DKIM, or DMARC passing.
func hasValidAuthentication(headers map[string]string) bool {
	authResults, ok := headers["Authentication-Results"]
	if !ok {
		return false
	}

	return strings.Contains(authResults, "spf=pass") ||
		strings.Contains(authResults, "dkim=pass") ||
		strings.Contains(authResults, "dmarc=pass")
}
