package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/mailsentry/email-threat-analyzer/internal/domain"
)

// zeroNoise makes the classifier a pure function of the feature vector.
func zeroNoise() float64 { return 0 }

func newTestClassifier(noise NoiseSource) *HeuristicClassifier {
	return NewHeuristicClassifier("", noise, zap.NewNop())
}

func TestHeuristicClassifier_NeutralText(t *testing.T) {
	classifier := newTestClassifier(zeroNoise)

	email := domain.NewEmail("friend@example.com", "hello", "just checking in about lunch tomorrow")
	result := classifier.Classify(email)

	assert.Equal(t, 0.0, result.Malicious)
	assert.Equal(t, 1.0, result.Safe)
}

func TestHeuristicClassifier_HandComputedScore(t *testing.T) {
	classifier := newTestClassifier(zeroNoise)

	// subject (13 chars): "account" once -> weighted count 2
	// body (86 chars): "verify" once, "account" once, "payment" once
	// text length 99; weighted counts: verify 1, account 3, payment 1
	// keyword sum = 5 / 0.99 = 5.0505..., x0.05 = 0.2525...
	// no URLs; special chars: 2 periods -> 0.02 x0.1 = 0.002
	email := domain.NewEmail(
		"someone@example.com",
		"account alert",
		"please verify your account information today. we detected a problem with your payment.",
	)

	result := classifier.Classify(email)

	expected := 5.0/0.99*0.05 + 0.002
	assert.InDelta(t, expected, result.Malicious, 1e-12)
	assert.InDelta(t, 1-expected, result.Safe, 1e-12)
}

func TestHeuristicClassifier_ProbabilitiesSumToOne(t *testing.T) {
	classifier := newTestClassifier(NewSeededNoise(42))

	email := domain.NewEmail(
		"x@y.zz",
		"URGENT: verify account",
		"click http://bit.ly/a and http://bit.ly/b to win free cash!!!",
	)

	result := classifier.Classify(email)

	assert.InDelta(t, 1.0, result.Malicious+result.Safe, 1e-12)
	assert.GreaterOrEqual(t, result.Malicious, 0.0)
	assert.LessOrEqual(t, result.Malicious, 1.0)
}

func TestHeuristicClassifier_ClampsToUnitInterval(t *testing.T) {
	high := newTestClassifier(func() float64 { return 10 })
	low := newTestClassifier(func() float64 { return -10 })

	email := domain.NewEmail("a@b.cc", "anything", "anything at all")

	assert.Equal(t, 1.0, high.Classify(email).Malicious)
	assert.Equal(t, 0.0, low.Classify(email).Malicious)
}

func TestHeuristicClassifier_SeededNoiseIsBoundedAndReproducible(t *testing.T) {
	first := NewSeededNoise(7)
	second := NewSeededNoise(7)

	for i := 0; i < 1000; i++ {
		a := first()
		assert.Equal(t, a, second())
		assert.GreaterOrEqual(t, a, -0.05)
		assert.Less(t, a, 0.05)
	}
}

func TestHeuristicClassifier_EmptyTextHasNoKeywordSignal(t *testing.T) {
	classifier := newTestClassifier(zeroNoise)

	result := classifier.Classify(domain.NewEmail("a@b.cc", "", ""))
	assert.Equal(t, 0.0, result.Malicious)
}
