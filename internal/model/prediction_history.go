package model

import (
	"time"

	"gorm.io/datatypes"
)

type PredictionHistory struct {
	ID            uint           `gorm:"primaryKey"`
	ISIN          string         `gorm:"column:isin;type:varchar(12);not null;index"`
	StartDate     string         `gorm:"type:varchar(10);not null"`
	EndDate       string         `gorm:"type:varchar(10);not null"`
	Interval      string         `gorm:"type:varchar(10);not null"`
	PredictedHigh float64        `gorm:"not null"`
	Confidence    float64        `gorm:"not null"`
	CandleCount   int            `gorm:"not null"`
	Features      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
}

func (PredictionHistory) TableName() string {
	return "prediction_histories"
}

type GetPredictionHistoryParam struct {
	ISIN  string
	Limit int
}
