package analysis

import (
	"go.uber.org/zap"

	"github.com/mailsentry/email-threat-analyzer/internal/domain"
)

// Thresholds are the decision cutoffs of one analysis run. The zero value is
// not usable; construct with DefaultThresholds and override as needed.
type Thresholds struct {
	// MaliciousVerdict is the overall score above which the report's
	// verdict flips to malicious.
	MaliciousVerdict float64

	// LinkFlag is the per-URL score above which a link is recorded as
	// suspicious.
	LinkFlag float64

	// ClassifierCatchAll is the malicious probability above which the
	// classifier contributes an OTHER threat.
	ClassifierCatchAll float64
}

// DefaultThresholds returns the standard cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaliciousVerdict:   50.0,
		LinkFlag:           50.0,
		ClassifierCatchAll: 0.7,
	}
}

// Analyzer orchestrates the detectors over one email and folds their
// findings into a ThreatReport. Detectors run in a fixed order (text,
// links, sender, classifier) and never depend on each other's output.
type Analyzer struct {
	text       *TextContentDetector
	links      *LinkSafetyDetector
	sender     *SenderIdentityDetector
	classifier *HeuristicClassifier
	thresholds Thresholds
	logger     *zap.Logger
}

// NewAnalyzer creates an analyzer owning one instance of each detector.
func NewAnalyzer(
	text *TextContentDetector,
	links *LinkSafetyDetector,
	sender *SenderIdentityDetector,
	classifier *HeuristicClassifier,
	thresholds Thresholds,
	logger *zap.Logger,
) *Analyzer {
	return &Analyzer{
		text:       text,
		links:      links,
		sender:     sender,
		classifier: classifier,
		thresholds: thresholds,
		logger:     logger,
	}
}

// Analyze runs all detectors over the email and returns the finished
// report. It is synchronous and never fails: missing data (no URLs, no
// headers, empty fields) is treated as absence of signal, not as an error.
func (a *Analyzer) Analyze(email domain.Email) *domain.ThreatReport {
	report := domain.NewThreatReport(email, a.thresholds.MaliciousVerdict)

	a.analyzeText(email, report)
	a.analyzeLinks(email, report)
	a.analyzeSender(email, report)
	a.applyClassifier(email, report)

	a.addRecommendations(report)

	a.logger.Debug("analysis complete",
		zap.String("report_id", report.ID.String()),
		zap.Float64("overall_score", report.OverallScore()),
		zap.Bool("malicious", report.IsMalicious()),
		zap.Int("categories", len(report.Categories())))

	return report
}

// analyzeText runs the three text sub-detections and collects their
// evidence in a fixed order: phishing, spam, social engineering.
func (a *Analyzer) analyzeText(email domain.Email, report *domain.ThreatReport) {
	phishing := a.text.DetectPhishing(email)
	if phishing.Score > 0 {
		report.AddThreat(domain.CategoryPhishing, phishing.Score)
	}

	spam := a.text.DetectSpam(email)
	if spam.Score > 0 {
		report.AddThreat(domain.CategorySpam, spam.Score)
	}

	social := a.text.DetectSocialEngineering(email)
	if social.Score > 0 {
		report.AddThreat(domain.CategorySocialEngineering, social.Score)
	}

	for _, result := range []TextResult{phishing, spam, social} {
		for _, evidence := range result.Evidence {
			report.AddSuspiciousKeyword(evidence)
		}
	}
}

// analyzeLinks scores every extracted URL independently. Any URL above the
// link-flag threshold is recorded; one SUSPICIOUS_LINK threat is added at
// the maximum flagged score, not the average: a single bad link is enough.
func (a *Analyzer) analyzeLinks(email domain.Email, report *domain.ThreatReport) {
	if len(email.ExtractedURLs) == 0 {
		return
	}

	highest := 0.0
	found := false

	for _, rawURL := range email.ExtractedURLs {
		score := a.links.Score(rawURL)
		if score > a.thresholds.LinkFlag {
			report.AddSuspiciousLink(rawURL)
			found = true
			if score > highest {
				highest = score
			}
		}
	}

	if found {
		report.AddThreat(domain.CategorySuspiciousLink, highest)
	}
}

func (a *Analyzer) analyzeSender(email domain.Email, report *domain.ThreatReport) {
	if score := a.sender.DetectSpoofing(email); score > 0 {
		report.AddThreat(domain.CategorySenderSpoofing, score)
	}
}

// applyClassifier adds a catch-all OTHER threat when the classifier is
// confident enough on its own.
func (a *Analyzer) applyClassifier(email domain.Email, report *domain.ThreatReport) {
	result := a.classifier.Classify(email)
	if result.Malicious > a.thresholds.ClassifierCatchAll {
		report.AddThreat(domain.CategoryOther, result.Malicious*100)
	}
}

// addRecommendations derives advice from the set of detected categories,
// iterated in insertion order. Benign reports get a single neutral
// recommendation.
func (a *Analyzer) addRecommendations(report *domain.ThreatReport) {
	if !report.IsMalicious() {
		report.AddRecommendation("No immediate threats detected, but always remain cautious")
		return
	}

	report.AddRecommendation("Do not reply to this email")

	for _, category := range report.Categories() {
		switch category {
		case domain.CategoryPhishing:
			report.AddRecommendation("Do not click on any links or buttons in this email")
			report.AddRecommendation("Do not provide any personal information")

		case domain.CategorySuspiciousLink:
			report.AddRecommendation("Do not click on any links in this email")
			report.AddRecommendation("If you need to visit the website, type the address directly in your browser")

		case domain.CategorySenderSpoofing:
			report.AddRecommendation("Verify the sender by contacting them through a known, trusted channel")

		case domain.CategorySpam:
			report.AddRecommendation("Mark the email as spam in your email client")

		case domain.CategorySocialEngineering:
			report.AddRecommendation("Be cautious of emails creating urgency or strong emotions")

		default:
			report.AddRecommendation("Exercise caution with this email")
		}
	}
}
