package usecases

import (
	"math"
	"math/rand"
	"time"

	"fraud-radar.backend/internal/domain/entities"
	domainerrors "fraud-radar.backend/internal/domain/errors"
)

// ModelVersion tags every scoring outcome. Bump it when the weighting
// logic changes so stored scores stay comparable within a version.
const ModelVersion = "v1.0"

// Heuristic model weights. The engine stands in for a real model service;
// only the contract (inputs, bounded outputs, explanation shape) is fixed.
const (
	baseScore           = 0.1
	lowAmountThreshold  = 1000.0
	highAmountThreshold = 5000.0
	lowAmountBonus      = 0.2
	highAmountBonus     = 0.3
	countryBonus        = 0.25
	cryptoBonus         = 0.2
	residualMax         = 0.15
)

var highRiskCountries = map[string]bool{
	"NG": true,
	"RU": true,
	"CN": true,
}

// ScoreOutcome is the result of scoring one transaction
type ScoreOutcome struct {
	FraudScore       float64
	RiskLevel        entities.RiskLevel
	Prediction       entities.Prediction
	ShapValues       map[string]float64
	ModelVersion     string
	ProcessingTimeMs int64
}

// ScoringEngine computes a fraud score from transaction features. It is
// pure with respect to persisted state: only the input and the fixed model
// version feed the score.
type ScoringEngine struct {
	// residual models unexplained signal; injectable so tests can pin it
	residual func() float64
	// modelDelay simulates inference latency; it never feeds the score
	modelDelay time.Duration
}

// NewScoringEngine creates an engine with the default bounded residual term
func NewScoringEngine(modelDelay time.Duration) *ScoringEngine {
	return &ScoringEngine{
		residual:   func() float64 { return rand.Float64() * residualMax },
		modelDelay: modelDelay,
	}
}

// Score maps transaction features to a bounded fraud score, a risk tier, a
// binary prediction and a per-feature explanation. Amounts that are not
// finite positive numbers are rejected before any contribution math.
func (e *ScoringEngine) Score(input *entities.ScoreTransactionInput) (*ScoreOutcome, error) {
	start := time.Now()

	amount := input.Amount
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, domainerrors.ErrInvalidAmount
	}

	if e.modelDelay > 0 {
		time.Sleep(e.modelDelay)
	}

	score := baseScore
	if amount > lowAmountThreshold {
		score += lowAmountBonus
	}
	if amount > highAmountThreshold {
		score += highAmountBonus
	}
	if highRiskCountries[input.UserCountry] {
		score += countryBonus
	}
	if input.PaymentMethod == "crypto" {
		score += cryptoBonus
	}
	score += e.residual()

	if score > 1.0 {
		score = 1.0
	}
	if score < 0.0 {
		score = 0.0
	}
	score = math.Round(score*10000) / 10000

	return &ScoreOutcome{
		FraudScore:       score,
		RiskLevel:        RiskLevelForScore(score),
		Prediction:       PredictionForScore(score),
		ShapValues:       e.shapValues(input),
		ModelVersion:     ModelVersion,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

// RiskLevelForScore discretizes a score into a tier. 0.3 is medium and 0.7
// is high, exactly.
func RiskLevelForScore(score float64) entities.RiskLevel {
	switch {
	case score < 0.3:
		return entities.RiskLevelLow
	case score < 0.7:
		return entities.RiskLevelMedium
	default:
		return entities.RiskLevelHigh
	}
}

// PredictionForScore classifies a score. The 0.5 threshold is independent
// of the tier boundaries and is never derived from the tier.
func PredictionForScore(score float64) entities.Prediction {
	if score >= 0.5 {
		return entities.PredictionFraudulent
	}
	return entities.PredictionLegitimate
}

// shapValues returns the full fixed feature set on every call; optional
// inputs that were not supplied get their documented default contribution.
func (e *ScoringEngine) shapValues(input *entities.ScoreTransactionInput) map[string]float64 {
	shap := map[string]float64{
		"amount":               -0.1,
		"user_country":         -0.05,
		"payment_method":       -0.08,
		"device_fingerprint":   0.1,
		"user_email_age":       -0.12,
		"transaction_velocity": 0.08,
	}
	if input.Amount > lowAmountThreshold {
		shap["amount"] = 0.3
	}
	if highRiskCountries[input.UserCountry] {
		shap["user_country"] = countryBonus
	}
	if input.PaymentMethod == "crypto" {
		shap["payment_method"] = cryptoBonus
	}
	if input.DeviceFingerprint != "" {
		shap["device_fingerprint"] = -0.15
	}
	return shap
}
