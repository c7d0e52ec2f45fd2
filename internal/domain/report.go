package domain

import (
	"time"

	"github.com/google/uuid"
)

// ThreatReport aggregates the findings of a single analysis run.
//
// A report is created empty, mutated only by the orchestrator while the
// detectors run, and handed to the caller read-only once analysis finishes.
// Reports are never reused across emails.
type ThreatReport struct {
	ID         uuid.UUID `json:"id"`
	Email      Email     `json:"email"`
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Category insertion order is preserved so recommendation derivation
	// and report rendering are deterministic.
	categories       []ThreatCategory
	confidence       map[ThreatCategory]float64
	overallScore     float64
	malicious        bool
	verdictThreshold float64

	suspiciousLinks    []string
	suspiciousKeywords []string
	recommendations    []string
}

// NewThreatReport creates an empty report for one analysis of the given
// email. verdictThreshold is the overall score above which the email is
// classified malicious.
func NewThreatReport(email Email, verdictThreshold float64) *ThreatReport {
	return &ThreatReport{
		ID:               uuid.New(),
		Email:            email,
		AnalyzedAt:       time.Now(),
		confidence:       make(map[ThreatCategory]float64),
		verdictThreshold: verdictThreshold,
	}
}

// AddThreat upserts a category confidence and recomputes the overall score.
//
// Upsert semantics are deliberate: adding the same category twice replaces
// the previous confidence rather than accumulating it, keeping the overall
// score an arithmetic mean over distinct categories.
func (r *ThreatReport) AddThreat(category ThreatCategory, confidence float64) {
	if _, exists := r.confidence[category]; !exists {
		r.categories = append(r.categories, category)
	}
	r.confidence[category] = confidence

	r.updateOverallScore()
}

func (r *ThreatReport) updateOverallScore() {
	if len(r.confidence) == 0 {
		r.overallScore = 0
		r.malicious = false
		return
	}

	sum := 0.0
	for _, c := range r.confidence {
		sum += c
	}
	r.overallScore = sum / float64(len(r.confidence))
	r.malicious = r.overallScore > r.verdictThreshold
}

// AddSuspiciousLink records a URL the link detector flagged. Repeated URLs
// are kept as-is.
func (r *ThreatReport) AddSuspiciousLink(link string) {
	r.suspiciousLinks = append(r.suspiciousLinks, link)
}

// AddSuspiciousKeyword records one evidence string from the text detector.
func (r *ThreatReport) AddSuspiciousKeyword(keyword string) {
	r.suspiciousKeywords = append(r.suspiciousKeywords, keyword)
}

// AddRecommendation appends one advice string for the end user.
func (r *ThreatReport) AddRecommendation(recommendation string) {
	r.recommendations = append(r.recommendations, recommendation)
}

// OverallScore is the arithmetic mean of all category confidences, or 0
// when no threat was recorded.
func (r *ThreatReport) OverallScore() float64 {
	return r.overallScore
}

// IsMalicious reports whether the overall score exceeds the verdict threshold.
func (r *ThreatReport) IsMalicious() bool {
	return r.malicious
}

// Categories returns the detected threat categories in insertion order.
func (r *ThreatReport) Categories() []ThreatCategory {
	out := make([]ThreatCategory, len(r.categories))
	copy(out, r.categories)
	return out
}

// Confidence returns the recorded confidence for a category and whether
// that category was detected at all.
func (r *ThreatReport) Confidence(category ThreatCategory) (float64, bool) {
	c, ok := r.confidence[category]
	return c, ok
}

// CategoryConfidence returns a copy of the category confidence mapping.
func (r *ThreatReport) CategoryConfidence() map[ThreatCategory]float64 {
	out := make(map[ThreatCategory]float64, len(r.confidence))
	for k, v := range r.confidence {
		out[k] = v
	}
	return out
}

// SuspiciousLinks returns the flagged URLs in detection order.
func (r *ThreatReport) SuspiciousLinks() []string {
	return r.suspiciousLinks
}

// SuspiciousKeywords returns the collected evidence strings in detection order.
func (r *ThreatReport) SuspiciousKeywords() []string {
	return r.suspiciousKeywords
}

// Recommendations returns the advice list in the order it was derived.
func (r *ThreatReport) Recommendations() []string {
	return r.recommendations
}
