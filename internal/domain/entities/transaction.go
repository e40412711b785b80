package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// RiskLevel is the coarse bucket derived from a fraud score
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// Prediction is the binary fraud classification
type Prediction string

const (
	PredictionLegitimate Prediction = "legitimate"
	PredictionFraudulent Prediction = "fraudulent"
)

// Transaction is an immutable record of a scored payment transaction.
// There is no update or delete path; history is append-only.
type Transaction struct {
	ID                uuid.UUID          `json:"id"`
	UserID            uuid.UUID          `json:"userId"`
	TransactionRef    null.String        `json:"transactionRef,omitempty"`
	Amount            float64            `json:"amount"`
	Currency          string             `json:"currency"`
	UserEmail         null.String        `json:"userEmail,omitempty"`
	UserIP            null.String        `json:"userIp,omitempty"`
	UserCountry       null.String        `json:"userCountry,omitempty"`
	DeviceFingerprint null.String        `json:"deviceFingerprint,omitempty"`
	PaymentMethod     null.String        `json:"paymentMethod,omitempty"`
	MerchantCategory  null.String        `json:"merchantCategory,omitempty"`
	FraudScore        float64            `json:"fraudScore"`
	RiskLevel         RiskLevel          `json:"riskLevel"`
	Prediction        Prediction         `json:"prediction"`
	ShapValues        map[string]float64 `json:"shapValues"`
	ModelVersion      string             `json:"modelVersion"`
	ProcessingTimeMs  int64              `json:"processingTimeMs"`
	CreatedAt         time.Time          `json:"createdAt"`
}

// ScoreTransactionInput is the caller-supplied description of a transaction.
// Field names are the external wire contract and are case-sensitive.
type ScoreTransactionInput struct {
	Amount            float64 `json:"amount" binding:"required"`
	Currency          string  `json:"currency"`
	UserEmail         string  `json:"user_email"`
	UserIP            string  `json:"user_ip"`
	UserCountry       string  `json:"user_country"`
	DeviceFingerprint string  `json:"device_fingerprint"`
	PaymentMethod     string  `json:"payment_method"`
	MerchantCategory  string  `json:"merchant_category"`
	TransactionRef    string  `json:"transaction_id"`
}

// ScoreTransactionResponse is the external scoring result.
type ScoreTransactionResponse struct {
	TransactionID    uuid.UUID          `json:"transaction_id"`
	FraudScore       float64            `json:"fraud_score"`
	RiskLevel        RiskLevel          `json:"risk_level"`
	Prediction       Prediction         `json:"prediction"`
	ShapValues       map[string]float64 `json:"shap_values"`
	ProcessingTimeMs int64              `json:"processing_time_ms"`
}

// ValidRiskLevel reports whether s is one of the three known tiers.
func ValidRiskLevel(s string) bool {
	switch RiskLevel(s) {
	case RiskLevelLow, RiskLevelMedium, RiskLevelHigh:
		return true
	}
	return false
}
