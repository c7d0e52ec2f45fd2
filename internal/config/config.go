package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// File names of the newline-delimited list files under the config directory.
// Lines starting with # and blank lines are ignored.
const (
	phishingKeywordsFile = "phishing_keywords.txt"
	spamKeywordsFile     = "spam_keywords.txt"
	maliciousDomainsFile = "malicious_domains.txt"
	trustedDomainsFile   = "trusted_domains.txt"
	spamDomainsFile      = "spam_domains.txt"
)

// Config holds everything the analyzer and its adapters consume: the five
// keyword/domain lists, the decision thresholds, the classifier model
// reference, and logging settings.
type Config struct {
	PhishingKeywords []string
	SpamKeywords     []string
	MaliciousDomains []string
	TrustedDomains   []string
	SpamDomains      []string

	MaliciousVerdictThreshold   float64
	LinkFlagThreshold           float64
	ClassifierCatchAllThreshold float64

	ClassifierModelPath string

	LogLevel  string
	LogFormat string
}

// Load reads config.yaml from dir (falling back to defaults when absent),
// applies EMAIL_THREAT_* environment overrides, and loads the five list
// files, creating them with starter content on first run.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvPrefix("EMAIL_THREAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file: defaults apply
	}

	cfg := &Config{
		MaliciousVerdictThreshold:   v.GetFloat64("thresholds.malicious_verdict"),
		LinkFlagThreshold:           v.GetFloat64("thresholds.link_flag"),
		ClassifierCatchAllThreshold: v.GetFloat64("thresholds.classifier_catch_all"),
		ClassifierModelPath:         v.GetString("classifier.model_path"),
		LogLevel:                    v.GetString("logging.level"),
		LogFormat:                   v.GetString("logging.format"),
	}

	if err := ensureDefaultLists(dir); err != nil {
		return nil, fmt.Errorf("failed to create default list files: %w", err)
	}

	var err error
	if cfg.PhishingKeywords, err = loadList(filepath.Join(dir, phishingKeywordsFile)); err != nil {
		return nil, err
	}
	if cfg.SpamKeywords, err = loadList(filepath.Join(dir, spamKeywordsFile)); err != nil {
		return nil, err
	}
	if cfg.MaliciousDomains, err = loadList(filepath.Join(dir, maliciousDomainsFile)); err != nil {
		return nil, err
	}
	if cfg.TrustedDomains, err = loadList(filepath.Join(dir, trustedDomainsFile)); err != nil {
		return nil, err
	}
	if cfg.SpamDomains, err = loadList(filepath.Join(dir, spamDomainsFile)); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("thresholds.malicious_verdict", 50.0)
	v.SetDefault("thresholds.link_flag", 50.0)
	v.SetDefault("thresholds.classifier_catch_all", 0.7)

	v.SetDefault("classifier.model_path", "models/email_classifier.model")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// ensureDefaultLists writes starter list files so a fresh install produces
// sensible reports before anyone tunes the lists.
func ensureDefaultLists(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	defaults := map[string]string{
		phishingKeywordsFile: "verify your account\nupdate your information\nsuspicious activity\nlogin attempt\n",
		spamKeywordsFile:     "free\nwin\nwinner\ncongratulations\nbest price\ncash prize\n",
		maliciousDomainsFile: "malicious-domain.com\nphishing-site.net\nfake-bank.com\n",
		trustedDomainsFile:   "google.com\nmicrosoft.com\napple.com\namazon.com\n",
		spamDomainsFile:      "spam-sender.com\nknown-spammer.net\n",
	}

	for name, content := range defaults {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return err
		}
	}

	return nil
}

// loadList reads one newline-delimited list file. A missing file yields an
// empty list rather than an error.
func loadList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		entries = append(entries, trimmed)
	}

	return entries, nil
}
