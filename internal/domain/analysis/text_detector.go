package analysis

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/mailsentry/email-threat-analyzer/internal/domain"
)

// TextResult carries one sub-detection's confidence score together with the
// evidence strings that produced it. Each call to a detect method returns a
// fresh result; nothing is accumulated between calls.
type TextResult struct {
	Score    float64
	Evidence []string
}

var (
	// Lure phrases that should normally be followed by a URL; a bare one is
	// a sign of an obfuscated link ("click here" pointing at an attachment
	// or image map instead).
	lurePhrasePattern = regexp.MustCompile(`\b(click\s+here|go\s+to|visit)\b`)
	linkSchemePattern = regexp.MustCompile(`\bhttp`)

	// Runs of symbols used to defeat keyword filters
	symbolRunPattern = regexp.MustCompile(`\W{5,}`)

	// Digit-for-letter lookalikes of frequently impersonated brands
	brandMisspellPattern = regexp.MustCompile(`\b(amaz[0o]n|g[0o]{2}gle|faceb[0o]{2}k|paypall?|micros[0o]ft)\b`)

	// Latin text mixed with Cyrillic or Greek characters (homoglyph attacks)
	mixedScriptPattern = regexp.MustCompile(`[\p{Cyrillic}\p{Greek}].*[a-z]|[a-z].*[\p{Cyrillic}\p{Greek}]`)

	allCapsPattern = regexp.MustCompile(`\b[A-Z]{5,}\b`)

	urgencyPattern = regexp.MustCompile(`\b(today only|hours left|expires today|act now|expires in|limited time|deadline|running out|hurry)\b`)

	fearPattern = regexp.MustCompile(`\b(risk|threat|danger|warning|alert|security breach|compromise|lose access|account closed)\b`)
)

var defaultPhishingKeywords = []string{
	"verify your account", "confirm your account", "update your information",
	"suspicious activity", "security alert", "login attempt", "click here to verify",
	"your account will be suspended", "verify your identity", "urgent action required",
	"validate your account", "account verification", "security notification",
	"unusual sign-in activity", "update your payment information", "confirm your identity",
}

var defaultSpamKeywords = []string{
	"free", "win", "winner", "congratulations", "exclusive offer", "limited time",
	"act now", "special promotion", "cash prize", "discount", "free gift",
	"best price", "great deal", "buy now", "order now", "click below", "cheap",
	"save money", "bonus", "incredible deal", "satisfaction guaranteed", "risk free",
}

var defaultSocialEngineeringKeywords = []string{
	"urgent", "immediate action", "warning", "important", "alert", "attention",
	"critical", "mandatory", "required step", "failure to comply", "legal action",
	"penalty", "fine", "breach", "violation", "restricted", "limited offer",
	"only for you", "selected customer", "confidential",
}

var credentialTerms = []string{
	"password", "username", "login", "sign in", "credit card", "ssn", "social security",
}

// TextContentDetector scores phishing, spam, and social-engineering language
// in an email's subject and body. All keyword matching is case-insensitive.
type TextContentDetector struct {
	phishingKeywords          []string
	spamKeywords              []string
	socialEngineeringKeywords []string
}

// NewTextContentDetector creates a text detector using the built-in phrase
// lists extended with externally configured phishing and spam keywords.
func NewTextContentDetector(extraPhishing, extraSpam []string) *TextContentDetector {
	return &TextContentDetector{
		phishingKeywords:          append(append([]string{}, defaultPhishingKeywords...), extraPhishing...),
		spamKeywords:              append(append([]string{}, defaultSpamKeywords...), extraSpam...),
		socialEngineeringKeywords: defaultSocialEngineeringKeywords,
	}
}

// DetectPhishing scores phishing indicators: known phrases, structural
// patterns, and credential-request vocabulary. Each match contributes to the
// score and produces one evidence string.
func (d *TextContentDetector) DetectPhishing(email domain.Email) TextResult {
	subject := strings.ToLower(email.Subject)
	body := strings.ToLower(email.Body)

	var res TextResult
	matchCount := 0

	for _, keyword := range d.phishingKeywords {
		k := strings.ToLower(keyword)
		if strings.Contains(subject, k) || strings.Contains(body, k) {
			matchCount++
			res.Evidence = append(res.Evidence, "Phishing: "+keyword)
		}
	}

	// Lure phrase with no URL anywhere after it
	if lures := bareLures(subject); len(lures) > 0 {
		matchCount++
		res.Evidence = append(res.Evidence, "Suspicious pattern in subject: "+lures[0])
	}
	for _, lure := range bareLures(body) {
		matchCount++
		res.Evidence = append(res.Evidence, "Suspicious pattern in body: "+lure)
	}

	for _, pattern := range []*regexp.Regexp{symbolRunPattern, brandMisspellPattern} {
		if m := pattern.FindString(subject); m != "" {
			matchCount++
			res.Evidence = append(res.Evidence, "Suspicious pattern in subject: "+m)
		}
		for _, m := range pattern.FindAllString(body, -1) {
			matchCount++
			res.Evidence = append(res.Evidence, "Suspicious pattern in body: "+m)
		}
	}

	// Mixed scripts are a property of the whole text, one signal per field
	if m := mixedScriptPattern.FindString(subject); m != "" {
		matchCount++
		res.Evidence = append(res.Evidence, "Suspicious pattern in subject: "+m)
	}
	if m := mixedScriptPattern.FindString(body); m != "" {
		matchCount++
		res.Evidence = append(res.Evidence, "Suspicious pattern in body: "+m)
	}

	if containsAny(body, credentialTerms) {
		matchCount += 2
		res.Evidence = append(res.Evidence, "Credential request")
	}

	res.Score = math.Min(float64(matchCount)*15.0, 100.0)
	return res
}

// bareLures returns every lure phrase in text that is not followed by a URL
// scheme anywhere in the remaining text.
func bareLures(text string) []string {
	var out []string
	for _, loc := range lurePhrasePattern.FindAllStringIndex(text, -1) {
		if !linkSchemePattern.MatchString(text[loc[1]:]) {
			out = append(out, text[loc[0]:loc[1]])
		}
	}
	return out
}

// DetectSpam scores spam indicators. Subject matches are weighted double:
// spammers front-load the subject line to win the open.
func (d *TextContentDetector) DetectSpam(email domain.Email) TextResult {
	subject := strings.ToLower(email.Subject)
	body := strings.ToLower(email.Body)

	var res TextResult
	matchCount := 0

	for _, keyword := range d.spamKeywords {
		k := strings.ToLower(keyword)
		if strings.Contains(subject, k) {
			matchCount += 2
			res.Evidence = append(res.Evidence, "Spam keyword in subject: "+keyword)
		}
		if strings.Contains(body, k) {
			matchCount++
			res.Evidence = append(res.Evidence, "Spam keyword in body: "+keyword)
		}
	}

	// ALL CAPS runs, matched against the raw (uncased) text
	for _, m := range allCapsPattern.FindAllString(email.Subject, -1) {
		matchCount += 2
		res.Evidence = append(res.Evidence, "All caps in subject: "+m)
	}
	for _, m := range allCapsPattern.FindAllString(email.Body, -1) {
		matchCount++
		res.Evidence = append(res.Evidence, "All caps in body: "+m)
	}

	exclamations := strings.Count(email.Subject, "!") + strings.Count(email.Body, "!")
	if exclamations > 3 {
		bonus := exclamations / 2
		if bonus > 5 {
			bonus = 5
		}
		matchCount += bonus
		res.Evidence = append(res.Evidence, fmt.Sprintf("Excessive exclamation marks: %d", exclamations))
	}

	res.Score = math.Min(float64(matchCount)*10.0, 100.0)
	return res
}

// DetectSocialEngineering scores pressure tactics: authority and urgency
// keywords, time-limited offers, and fear-based messaging.
func (d *TextContentDetector) DetectSocialEngineering(email domain.Email) TextResult {
	subject := strings.ToLower(email.Subject)
	body := strings.ToLower(email.Body)

	var res TextResult
	matchCount := 0

	for _, keyword := range d.socialEngineeringKeywords {
		k := strings.ToLower(keyword)
		if strings.Contains(subject, k) {
			matchCount += 2
			res.Evidence = append(res.Evidence, "Social engineering in subject: "+keyword)
		}
		if strings.Contains(body, k) {
			matchCount++
			res.Evidence = append(res.Evidence, "Social engineering in body: "+keyword)
		}
	}

	if m := urgencyPattern.FindString(subject); m != "" {
		matchCount += 2
		res.Evidence = append(res.Evidence, "Urgency in subject: "+m)
	}
	for _, m := range urgencyPattern.FindAllString(body, -1) {
		matchCount++
		res.Evidence = append(res.Evidence, "Urgency in body: "+m)
	}

	if m := fearPattern.FindString(subject); m != "" {
		matchCount += 2
		res.Evidence = append(res.Evidence, "Fear-based message in subject: "+m)
	}
	for _, m := range fearPattern.FindAllString(body, -1) {
		matchCount++
		res.Evidence = append(res.Evidence, "Fear-based message in body: "+m)
	}

	res.Score = math.Min(float64(matchCount)*12.0, 100.0)
	return res
}
