package application

import (
	"go.uber.org/zap"

	"github.com/mailsentry/email-threat-analyzer/internal/domain"
	"github.com/mailsentry/email-threat-analyzer/internal/domain/analysis"
)

// AnalysisService is the application-facing entry point for analyzing one
// email. It wraps the analyzer with structured logging; the analysis itself
// is pure in-memory computation and cannot fail.
type AnalysisService struct {
	analyzer *analysis.Analyzer
	logger   *zap.Logger
}

// NewAnalysisService creates the service with dependency injection.
func NewAnalysisService(analyzer *analysis.Analyzer, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		analyzer: analyzer,
		logger:   logger,
	}
}

// AnalyzeEmail runs the full detector pipeline and returns the finished
// report. Malicious verdicts are logged at warn level so operators see them
// without reading every report.
func (s *AnalysisService) AnalyzeEmail(email domain.Email) *domain.ThreatReport {
	s.logger.Info("analyzing email",
		zap.String("sender", email.Sender),
		zap.String("subject", email.Subject),
		zap.Int("url_count", len(email.ExtractedURLs)))

	report := s.analyzer.Analyze(email)

	if report.IsMalicious() {
		categories := report.Categories()
		names := make([]string, len(categories))
		for i, c := range categories {
			names[i] = string(c)
		}

		s.logger.Warn("malicious email detected",
			zap.String("report_id", report.ID.String()),
			zap.String("sender", email.Sender),
			zap.String("subject", email.Subject),
			zap.Float64("overall_score", report.OverallScore()),
			zap.Strings("categories", names),
			zap.Int("suspicious_links", len(report.SuspiciousLinks())))
	} else {
		s.logger.Info("email classified benign",
			zap.String("report_id", report.ID.String()),
			zap.Float64("overall_score", report.OverallScore()))
	}

	return report
}
