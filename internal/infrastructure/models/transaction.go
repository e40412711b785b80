package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Transaction struct {
	ID                uuid.UUID         `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID            uuid.UUID         `gorm:"type:uuid;not null;index"`
	TransactionRef    *string           `gorm:"type:varchar(255)"` // caller-supplied, not unique
	Amount            float64           `gorm:"not null"`
	Currency          string            `gorm:"type:varchar(3);not null;default:'USD'"`
	UserEmail         *string           `gorm:"type:varchar(255)"`
	UserIP            *string           `gorm:"type:varchar(45)"`
	UserCountry       *string           `gorm:"type:varchar(2)"`
	DeviceFingerprint *string           `gorm:"type:varchar(255)"`
	PaymentMethod     *string           `gorm:"type:varchar(50)"`
	MerchantCategory  *string           `gorm:"type:varchar(50)"`
	FraudScore        float64           `gorm:"not null"`
	RiskLevel         string            `gorm:"type:varchar(10);not null;index"`
	Prediction        string            `gorm:"type:varchar(10);not null"`
	ShapValues        datatypes.JSONMap `gorm:"type:jsonb"`
	ModelVersion      string            `gorm:"type:varchar(20);not null"`
	ProcessingTimeMs  int64             `gorm:"not null"`
	CreatedAt         time.Time         `gorm:"index"`
	User              User              `gorm:"foreignKey:UserID"`
}
