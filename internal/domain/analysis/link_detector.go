package analysis

import (
	"net/url"
	"regexp"
	"strings"
)

// Threat scores for structurally broken input. Both kinds of failure are a
// strong suspicion signal rather than an error; the caller sees only the
// score.
const (
	scoreInvalidURL   = 90.0
	scoreURLParseFail = 85.0
	scoreKnownBad     = 100.0
)

// Frequently spoofed brands checked for typosquatting
var spoofedBrands = []string{
	"google", "microsoft", "apple", "amazon", "paypal", "facebook", "dropbox",
	"linkedin", "instagram", "twitter", "bank", "chase", "wellsfargo", "citibank",
}

// TLDs disproportionately used for phishing infrastructure
var suspiciousTLDs = map[string]bool{
	"tk": true, "ml": true, "ga": true, "cf": true, "gq": true, "xyz": true,
	"top": true, "info": true, "live": true, "online": true, "site": true,
	"stream": true, "club": true, "icu": true, "work": true, "link": true,
}

// Shortener hosts that hide the real destination
var urlShorteners = map[string]bool{
	"bit.ly": true, "tinyurl.com": true, "goo.gl": true, "t.co": true,
	"ow.ly": true, "is.gd": true, "buff.ly": true, "rebrand.ly": true,
	"cutt.ly": true, "tiny.cc": true, "shorte.st": true, "adf.ly": true, "bc.vc": true,
}

var (
	ipURLPattern  = regexp.MustCompile(`(?i)https?://((25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)`)
	ipHostPattern = regexp.MustCompile(`^\d+\.\d+\.\d+\.\d+$`)
	pathKeywords  = []string{"login", "account", "secure", "verify"}
)

// LinkSafetyDetector scores a single URL for malicious indicators. It is
// stateless: the same URL with the same configuration always yields the
// same score.
type LinkSafetyDetector struct {
	maliciousDomains []string
}

// NewLinkSafetyDetector creates a link detector checking hosts against the
// configured malicious-domain list.
func NewLinkSafetyDetector(maliciousDomains []string) *LinkSafetyDetector {
	return &LinkSafetyDetector{maliciousDomains: maliciousDomains}
}

// Score returns a threat score in [0,100] for one URL. Empty input scores 0.
// A host matching the malicious-domain list returns 100 immediately,
// overriding every other signal; otherwise independent signals accumulate
// additively and the total is capped at 100.
func (d *LinkSafetyDetector) Score(rawURL string) float64 {
	if rawURL == "" {
		return 0
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return scoreURLParseFail
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	if (scheme != "http" && scheme != "https") || host == "" {
		return scoreInvalidURL
	}

	for _, bad := range d.maliciousDomains {
		if strings.Contains(host, strings.ToLower(bad)) {
			return scoreKnownBad
		}
	}

	score := 0.0

	if ipURLPattern.MatchString(rawURL) || ipHostPattern.MatchString(host) {
		score += 70.0
	}

	if len(host) > 40 {
		score += 40.0
	}

	if tld := host[strings.LastIndex(host, ".")+1:]; suspiciousTLDs[tld] {
		score += 30.0
	}

	if urlShorteners[host] {
		score += 25.0
	}

	if isSpoofedHost(host) {
		score += 60.0
	}

	if port := u.Port(); port != "" && port != "80" && port != "443" {
		score += 25.0
	}

	if strings.Count(host, ".") > 3 {
		score += 20.0
	}

	if path := strings.ToLower(u.Path); path != "" && containsAny(path, pathKeywords) {
		score += 15.0
	}

	if score > 100 {
		return 100
	}
	return score
}

// isSpoofedHost checks whether host typosquats one of the well-known brands:
// either within edit distance 2 of the brand, or containing the brand name
// without being the brand's own domain. The exact <brand>.com/.org/.net
// hosts are exempt.
//
// The distance is computed on the full host, not the registrable domain, so
// "mail.google-secure.com" is compared literally against "google".
func isSpoofedHost(host string) bool {
	for _, brand := range spoofedBrands {
		if host == brand+".com" || host == brand+".org" || host == brand+".net" {
			continue
		}

		if levenshteinDistance(host, brand) <= 2 ||
			(strings.Contains(host, brand) && !strings.HasPrefix(host, "www.") && !strings.HasPrefix(host, brand+".")) {
			return true
		}
	}
	return false
}
