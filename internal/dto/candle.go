package dto

import (
	"encoding/json"
	"fmt"
)

// Candle is one OHLCV bar. On the wire it is a positional array:
// [timestamp, open, high, low, close, volume, open_interest].
type Candle struct {
	Timestamp    string
	Open         float64
	High         float64
	Low          float64
	Close        float64
	Volume       float64
	OpenInterest float64
}

func (c Candle) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{
		c.Timestamp, c.Open, c.High, c.Low, c.Close, c.Volume, c.OpenInterest,
	})
}

func (c *Candle) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("candle is not an array: %w", err)
	}
	if len(raw) < 6 {
		return fmt.Errorf("candle has %d fields, want at least 6", len(raw))
	}

	if err := json.Unmarshal(raw[0], &c.Timestamp); err != nil {
		return fmt.Errorf("candle timestamp: %w", err)
	}
	nums := []*float64{&c.Open, &c.High, &c.Low, &c.Close, &c.Volume}
	for i, dst := range nums {
		if err := json.Unmarshal(raw[i+1], dst); err != nil {
			return fmt.Errorf("candle field %d: %w", i+1, err)
		}
	}
	c.OpenInterest = 0
	if len(raw) > 6 {
		if err := json.Unmarshal(raw[6], &c.OpenInterest); err != nil {
			return fmt.Errorf("candle open interest: %w", err)
		}
	}
	return nil
}

// UpstoxCandleResponse is the body of the Upstox historical candle API.
type UpstoxCandleResponse struct {
	Status string `json:"status"`
	Data   struct {
		Candles []Candle `json:"candles"`
	} `json:"data"`
	Errors []UpstoxError `json:"errors,omitempty"`
}

type UpstoxError struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

// GetCandlesParam selects a candle window for one instrument.
type GetCandlesParam struct {
	ISIN      string
	StartDate string
	EndDate   string
	Interval  string
	Count     int
}
