package dto

import (
	"strings"
	"time"
)

// PredictionRequest is shared by /api/predict and /api/historical-candles.
type PredictionRequest struct {
	ISIN      string `json:"isin" validate:"required"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Interval  string `json:"interval,omitempty" validate:"omitempty,oneof=minute hour day week month"`
	Count     int    `json:"count,omitempty" validate:"omitempty,gte=1"`
}

// ApplyDefaults fills the optional fields. today is only consulted when
// EndDate is empty.
func (r *PredictionRequest) ApplyDefaults(defaultStart, defaultInterval string, today time.Time) {
	r.ISIN = strings.ToUpper(strings.TrimSpace(r.ISIN))
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)

	if r.StartDate == "" {
		r.StartDate = defaultStart
	}
	if r.EndDate == "" {
		r.EndDate = today.Format("2006-01-02")
	}
	if r.Interval == "" {
		r.Interval = defaultInterval
	}
	if r.Count == 0 {
		r.Count = DefaultCount
	}
}

type PredictionResponse struct {
	ISIN          string  `json:"isin"`
	PredictedHigh float64 `json:"predicted_high"`
	Confidence    float64 `json:"confidence"`
}

type HistoricalCandleResponse struct {
	ISIN      string   `json:"isin"`
	Data      []Candle `json:"data"`
	Timestamp string   `json:"timestamp"`
}

type PredictionHistoryItem struct {
	ID            uint      `json:"id"`
	ISIN          string    `json:"isin"`
	Name          string    `json:"name,omitempty"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Interval      string    `json:"interval"`
	PredictedHigh float64   `json:"predicted_high"`
	Confidence    float64   `json:"confidence"`
	CandleCount   int       `json:"candle_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type PredictionHistoryResponse struct {
	Predictions []PredictionHistoryItem `json:"predictions"`
}

type GetPredictionHistoryParam struct {
	ISIN  string `query:"isin"`
	Limit int    `query:"limit" validate:"omitempty,gte=1,lte=500"`
}
