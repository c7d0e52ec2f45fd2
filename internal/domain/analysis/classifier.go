package analysis

import (
	"math/rand"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/mailsentry/email-threat-analyzer/internal/domain"
)

// featureVocabulary is the fixed, ordered term list the classifier derives
// its keyword features from. Order matters: only the first 15 terms carry
// weight in the score, the remainder are extracted for future model use.
var featureVocabulary = []string{
	"urgent", "verify", "account", "password", "credit card", "click", "confirm",
	"update", "bank", "payment", "free", "win", "congratulations", "lottery",
	"offer", "limited", "alert", "security", "login", "access", "suspend", "recover",
	"validate", "expire", "money", "cash", "prize", "gift", "information", "important",
	"transaction", "balance", "refund", "transfer", "billing", "invoice", "bonus", "jackpot",
	"exclusive", "reward", "promo", "voucher", "deal", "discount", "loan", "wire transfer",
	"guaranteed", "secure", "protection", "breach", "unauthorized", "threat", "problem", "final notice",
	"last chance", "act now", "limited time", "reset", "blocked", "unlock", "activation",
	"phishing", "scam", "fake", "malware", "ransomware", "virus", "compromised", "identity theft",
	"lawsuit", "legal action", "penalty", "investigation", "violation", "overdue", "due payment",
	"amazon", "google", "paypal", "apple", "netflix", "microsoft", "facebook", "instagram",
	"social security number", "bank details", "bitcoin", "crypto", "quick money", "fast cash",
	"account closure", "password change", "login attempt", "security token", "browser update",
	"software update", "download", "install", "attachment", "open attachment", "zip file", "executable",
}

// Classification is the probability pair produced by the classifier;
// Malicious + Safe always sums to 1.
type Classification struct {
	Malicious float64
	Safe      float64
}

// NoiseSource produces the bounded perturbation added to every
// classification, modeling real classifier noise. Tests inject a source
// returning 0 to make the classifier fully deterministic.
type NoiseSource func() float64

// NewSeededNoise returns a NoiseSource drawing uniformly from
// [-0.05, +0.05] with the given seed.
func NewSeededNoise(seed int64) NoiseSource {
	rng := rand.New(rand.NewSource(seed))
	return func() float64 {
		return rng.Float64()*0.1 - 0.05
	}
}

// HeuristicClassifier is a deterministic stand-in for a trained model. It
// derives a bounded feature vector from the email and produces a coarse
// malicious-probability estimate, acting as a catch-all signal independent
// of the rule-based detectors.
type HeuristicClassifier struct {
	noise  NoiseSource
	logger *zap.Logger
}

// NewHeuristicClassifier creates a classifier. modelPath is informational
// only: the heuristic stand-in logs it and otherwise ignores it, keeping
// the constructor shape stable for a future real model. A nil noise source
// falls back to a time-seeded one.
func NewHeuristicClassifier(modelPath string, noise NoiseSource, logger *zap.Logger) *HeuristicClassifier {
	if noise == nil {
		noise = NewSeededNoise(time.Now().UnixNano())
	}

	if modelPath == "" {
		logger.Info("no classifier model configured, using heuristic scoring")
	} else {
		logger.Info("classifier model reference noted, heuristic scoring in effect",
			zap.String("model_path", modelPath))
	}

	return &HeuristicClassifier{noise: noise, logger: logger}
}

// Classify returns the [malicious, safe] probability pair for an email.
func (c *HeuristicClassifier) Classify(email domain.Email) Classification {
	features := c.extractFeatures(email)
	return c.score(features)
}

// extractFeatures builds the feature vector: one per-100-characters
// frequency per vocabulary term (subject occurrences weighted double),
// followed by the URL count, special-character density, and combined text
// length in thousands.
func (c *HeuristicClassifier) extractFeatures(email domain.Email) []float64 {
	subject := strings.ToLower(email.Subject)
	body := strings.ToLower(email.Body)

	features := make([]float64, len(featureVocabulary)+3)

	textLength := float64(len(subject) + len(body))
	if textLength > 0 {
		for i, term := range featureVocabulary {
			count := 2*countOccurrences(subject, term) + countOccurrences(body, term)
			features[i] = float64(count) / (textLength / 100.0)
		}
	}

	features[len(featureVocabulary)] = float64(len(email.ExtractedURLs))
	features[len(featureVocabulary)+1] = float64(countSpecialChars(subject+body)) / 100.0
	features[len(featureVocabulary)+2] = textLength / 1000.0

	return features
}

// countSpecialChars counts characters that are neither alphanumeric nor
// whitespace, a rough obfuscation signal.
func countSpecialChars(text string) int {
	count := 0
	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			count++
		}
	}
	return count
}

// score combines the features into a malicious probability: the leading
// vocabulary features weighted 0.05 each, URL count and special-character
// density weighted 0.1, plus the bounded noise term, clamped to [0,1].
func (c *HeuristicClassifier) score(features []float64) Classification {
	malicious := 0.0

	keywordFeatures := 15
	if len(features) < keywordFeatures {
		keywordFeatures = len(features)
	}
	for i := 0; i < keywordFeatures; i++ {
		malicious += features[i] * 0.05
	}

	urlCount := features[len(featureVocabulary)]
	malicious += urlCount * 0.1

	specialChars := features[len(featureVocabulary)+1]
	malicious += specialChars * 0.1

	malicious += c.noise()

	if malicious < 0 {
		malicious = 0
	}
	if malicious > 1 {
		malicious = 1
	}

	return Classification{Malicious: malicious, Safe: 1 - malicious}
}
