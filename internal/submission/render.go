package submission

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"algooee/internal/dto"
)

const loadingText = "Loading..."

// formatNumber prints the shortest decimal that round-trips, so 101.5
// stays "101.5" and 0.87 stays "0.87".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func successText(resp dto.PredictionResponse) string {
	return fmt.Sprintf("Predicted next-day high for %s: %s (confidence: %s)",
		resp.ISIN, formatNumber(resp.PredictedHigh), formatNumber(resp.Confidence))
}

func failureText(detail string) string {
	return "Error: " + detail
}

func transportErrorText(err error) string {
	return "Request failed: " + err.Error()
}

// errorDetail extracts "detail" from an error body. A string is used as
// is, any other JSON value in its compact form. It returns "" when the
// body has no usable detail.
func errorDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	raw := strings.TrimSpace(string(payload.Detail))
	if raw == "" || raw == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		return s
	}
	return raw
}

// decodePrediction parses a success body. Bodies that are not a JSON
// object, or lack isin or a numeric predicted_high or confidence, are rejected.
func decodePrediction(body []byte) (dto.PredictionResponse, error) {
	var payload struct {
		ISIN          *string  `json:"isin"`
		PredictedHigh *float64 `json:"predicted_high"`
		Confidence    *float64 `json:"confidence"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return dto.PredictionResponse{}, fmt.Errorf("invalid prediction response: %w", err)
	}
	if payload.ISIN == nil || payload.PredictedHigh == nil || payload.Confidence == nil {
		return dto.PredictionResponse{}, fmt.Errorf("invalid prediction response: missing isin, predicted_high or confidence")
	}
	return dto.PredictionResponse{
		ISIN:          *payload.ISIN,
		PredictedHigh: *payload.PredictedHigh,
		Confidence:    *payload.Confidence,
	}, nil
}
