package usecases

import (
	"math"
	"testing"

	"fraud-radar.backend/internal/domain/entities"
	domainerrors "fraud-radar.backend/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeterministicEngine(residual float64) *ScoringEngine {
	return &ScoringEngine{residual: func() float64 { return residual }}
}

func TestScoringEngine_LowRiskTransaction(t *testing.T) {
	engine := newDeterministicEngine(0)

	outcome, err := engine.Score(&entities.ScoreTransactionInput{
		Amount:        150,
		UserCountry:   "US",
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.1, outcome.FraudScore, 1e-9)
	assert.Equal(t, entities.RiskLevelLow, outcome.RiskLevel)
	assert.Equal(t, entities.PredictionLegitimate, outcome.Prediction)
	assert.Equal(t, ModelVersion, outcome.ModelVersion)
}

func TestScoringEngine_HighRiskTransactionClamped(t *testing.T) {
	// 0.1 base + 0.2 + 0.3 (amount) + 0.25 (country) + 0.2 (crypto)
	// + 0.15 residual = 1.2, clamped to 1.0.
	engine := newDeterministicEngine(0.15)

	outcome, err := engine.Score(&entities.ScoreTransactionInput{
		Amount:        6000,
		UserCountry:   "RU",
		PaymentMethod: "crypto",
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, outcome.FraudScore)
	assert.Equal(t, entities.RiskLevelHigh, outcome.RiskLevel)
	assert.Equal(t, entities.PredictionFraudulent, outcome.Prediction)
}

func TestScoringEngine_ScoreBounds(t *testing.T) {
	amounts := []float64{0.01, 1, 150, 1000, 1000.01, 5000, 5000.01, 999999}
	countries := []string{"", "US", "NG", "RU", "CN"}
	methods := []string{"", "card", "crypto"}

	for _, residual := range []float64{0, 0.075, 0.15} {
		engine := newDeterministicEngine(residual)
		for _, amount := range amounts {
			for _, country := range countries {
				for _, method := range methods {
					outcome, err := engine.Score(&entities.ScoreTransactionInput{
						Amount:        amount,
						UserCountry:   country,
						PaymentMethod: method,
					})
					require.NoError(t, err)
					assert.GreaterOrEqual(t, outcome.FraudScore, 0.0)
					assert.LessOrEqual(t, outcome.FraudScore, 1.0)
					// 4 decimal places, reproducibly
					assert.Equal(t, math.Round(outcome.FraudScore*10000)/10000, outcome.FraudScore)
				}
			}
		}
	}
}

func TestScoringEngine_Deterministic(t *testing.T) {
	engine := newDeterministicEngine(0.05)
	input := &entities.ScoreTransactionInput{Amount: 2000, UserCountry: "CN", PaymentMethod: "card"}

	first, err := engine.Score(input)
	require.NoError(t, err)
	second, err := engine.Score(input)
	require.NoError(t, err)

	assert.Equal(t, first.FraudScore, second.FraudScore)
	assert.Equal(t, first.ShapValues, second.ShapValues)
}

func TestScoringEngine_InvalidAmount(t *testing.T) {
	engine := newDeterministicEngine(0)

	for name, amount := range map[string]float64{
		"zero":     0,
		"negative": -10,
		"nan":      math.NaN(),
		"posInf":   math.Inf(1),
		"negInf":   math.Inf(-1),
	} {
		t.Run(name, func(t *testing.T) {
			outcome, err := engine.Score(&entities.ScoreTransactionInput{Amount: amount})
			assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)
			assert.Nil(t, outcome)
		})
	}
}

func TestRiskLevelForScore_Boundaries(t *testing.T) {
	assert.Equal(t, entities.RiskLevelLow, RiskLevelForScore(0))
	assert.Equal(t, entities.RiskLevelLow, RiskLevelForScore(0.2999))
	assert.Equal(t, entities.RiskLevelMedium, RiskLevelForScore(0.3))
	assert.Equal(t, entities.RiskLevelMedium, RiskLevelForScore(0.6999))
	assert.Equal(t, entities.RiskLevelHigh, RiskLevelForScore(0.7))
	assert.Equal(t, entities.RiskLevelHigh, RiskLevelForScore(1))
}

func TestRiskLevelForScore_Monotonic(t *testing.T) {
	rank := map[entities.RiskLevel]int{
		entities.RiskLevelLow:    0,
		entities.RiskLevelMedium: 1,
		entities.RiskLevelHigh:   2,
	}

	prev := entities.RiskLevelLow
	for score := 0.0; score <= 1.0; score += 0.0001 {
		level := RiskLevelForScore(score)
		assert.GreaterOrEqual(t, rank[level], rank[prev], "tier regressed at score %f", score)
		prev = level
	}
}

func TestPredictionForScore_IndependentOfTiers(t *testing.T) {
	// The 0.5 classification threshold sits strictly between the tier
	// boundaries; both medium-tier scores below and above it exist.
	assert.Equal(t, entities.PredictionLegitimate, PredictionForScore(0.4999))
	assert.Equal(t, entities.PredictionFraudulent, PredictionForScore(0.5))

	assert.Equal(t, entities.RiskLevelMedium, RiskLevelForScore(0.4999))
	assert.Equal(t, entities.RiskLevelMedium, RiskLevelForScore(0.5))
}

func TestScoringEngine_ShapValuesFullKeySet(t *testing.T) {
	engine := newDeterministicEngine(0)

	// Minimal input still yields every documented feature.
	outcome, err := engine.Score(&entities.ScoreTransactionInput{Amount: 10})
	require.NoError(t, err)

	assert.Len(t, outcome.ShapValues, 6)
	assert.Equal(t, -0.1, outcome.ShapValues["amount"])
	assert.Equal(t, -0.05, outcome.ShapValues["user_country"])
	assert.Equal(t, -0.08, outcome.ShapValues["payment_method"])
	assert.Equal(t, 0.1, outcome.ShapValues["device_fingerprint"])
	assert.Equal(t, -0.12, outcome.ShapValues["user_email_age"])
	assert.Equal(t, 0.08, outcome.ShapValues["transaction_velocity"])
}

func TestScoringEngine_ShapValuesRiskSignals(t *testing.T) {
	engine := newDeterministicEngine(0)

	outcome, err := engine.Score(&entities.ScoreTransactionInput{
		Amount:            2500,
		UserCountry:       "NG",
		PaymentMethod:     "crypto",
		DeviceFingerprint: "fp_abc123",
	})
	require.NoError(t, err)

	assert.Equal(t, 0.3, outcome.ShapValues["amount"])
	assert.Equal(t, 0.25, outcome.ShapValues["user_country"])
	assert.Equal(t, 0.2, outcome.ShapValues["payment_method"])
	assert.Equal(t, -0.15, outcome.ShapValues["device_fingerprint"])
}

func TestNewScoringEngine_ResidualBounded(t *testing.T) {
	engine := NewScoringEngine(0)

	for i := 0; i < 1000; i++ {
		r := engine.residual()
		assert.GreaterOrEqual(t, r, 0.0)
		assert.Less(t, r, residualMax)
	}
}
