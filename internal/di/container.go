package di

import (
	"os"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mailsentry/email-threat-analyzer/internal/adapters/console"
	"github.com/mailsentry/email-threat-analyzer/internal/adapters/parser"
	"github.com/mailsentry/email-threat-analyzer/internal/application"
	"github.com/mailsentry/email-threat-analyzer/internal/config"
	"github.com/mailsentry/email-threat-analyzer/internal/domain/analysis"
	"github.com/mailsentry/email-threat-analyzer/internal/logging"
	"github.com/mailsentry/email-threat-analyzer/internal/ports"
)

// BuildContainer wires configuration, logging, the detectors, and the
// console surface into a dig container. configDir is where config.yaml and
// the keyword/domain list files live.
func BuildContainer(configDir string) (*dig.Container, error) {
	c := dig.New()

	providers := []interface{}{
		func() (*config.Config, error) {
			return config.Load(configDir)
		},

		func(cfg *config.Config) (*zap.Logger, error) {
			return logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
		},

		func(cfg *config.Config) *analysis.TextContentDetector {
			return analysis.NewTextContentDetector(cfg.PhishingKeywords, cfg.SpamKeywords)
		},

		func(cfg *config.Config) *analysis.LinkSafetyDetector {
			return analysis.NewLinkSafetyDetector(cfg.MaliciousDomains)
		},

		func(cfg *config.Config) *analysis.SenderIdentityDetector {
			return analysis.NewSenderIdentityDetector(cfg.TrustedDomains, cfg.SpamDomains)
		},

		func(cfg *config.Config, logger *zap.Logger) *analysis.HeuristicClassifier {
			return analysis.NewHeuristicClassifier(cfg.ClassifierModelPath, nil, logger)
		},

		func(cfg *config.Config) analysis.Thresholds {
			return analysis.Thresholds{
				MaliciousVerdict:   cfg.MaliciousVerdictThreshold,
				LinkFlag:           cfg.LinkFlagThreshold,
				ClassifierCatchAll: cfg.ClassifierCatchAllThreshold,
			}
		},

		analysis.NewAnalyzer,
		application.NewAnalysisService,

		func() ports.EmailParser {
			return parser.New()
		},

		func(p ports.EmailParser, service *application.AnalysisService) *console.Console {
			return console.New(os.Stdin, os.Stdout, p, service)
		},
	}

	for _, provider := range providers {
		if err := c.Provide(provider); err != nil {
			return nil, err
		}
	}

	return c, nil
}
