package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandle_UnmarshalJSON(t *testing.T) {
	var resp UpstoxCandleResponse
	body := `{"status":"success","data":{"candles":[
		["2025-01-03T00:00:00+05:30",1210.5,1225,1201.1,1220,4512345,0],
		["2025-01-02T00:00:00+05:30",1200,1212.25,1195,1209.9,3900000]
	]}}`
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Len(t, resp.Data.Candles, 2)

	c := resp.Data.Candles[0]
	assert.Equal(t, "2025-01-03T00:00:00+05:30", c.Timestamp)
	assert.Equal(t, 1210.5, c.Open)
	assert.Equal(t, 1225.0, c.High)
	assert.Equal(t, 1201.1, c.Low)
	assert.Equal(t, 1220.0, c.Close)
	assert.Equal(t, 4512345.0, c.Volume)
	assert.Zero(t, resp.Data.Candles[1].OpenInterest)
}

func TestCandle_UnmarshalJSONRejectsShortRow(t *testing.T) {
	var c Candle
	assert.Error(t, json.Unmarshal([]byte(`["2025-01-03",1,2]`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"open":1}`), &c))
}

func TestCandle_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(Candle{Timestamp: "2025-01-03", Open: 1, High: 2.5, Low: 0.5, Close: 2, Volume: 10})
	require.NoError(t, err)
	assert.JSONEq(t, `["2025-01-03",1,2.5,0.5,2,10,0]`, string(out))
}

func TestPredictionRequest_ApplyDefaults(t *testing.T) {
	today := time.Date(2026, time.October, 18, 10, 0, 0, 0, time.UTC)

	req := PredictionRequest{ISIN: " ine002a01018 "}
	req.ApplyDefaults(DefaultStartDate, IntervalDay, today)

	assert.Equal(t, "INE002A01018", req.ISIN)
	assert.Equal(t, "2025-01-01", req.StartDate)
	assert.Equal(t, "2026-10-18", req.EndDate)
	assert.Equal(t, IntervalDay, req.Interval)
	assert.Equal(t, 1, req.Count)

	req = PredictionRequest{ISIN: "INE002A01018", StartDate: "2024-06-01", EndDate: "2024-12-31", Interval: IntervalWeek, Count: 2}
	req.ApplyDefaults(DefaultStartDate, IntervalDay, today)
	assert.Equal(t, "2024-06-01", req.StartDate)
	assert.Equal(t, "2024-12-31", req.EndDate)
	assert.Equal(t, IntervalWeek, req.Interval)
	assert.Equal(t, 2, req.Count)
}

func TestUpstoxUnit(t *testing.T) {
	unit, ok := UpstoxUnit(IntervalDay)
	assert.True(t, ok)
	assert.Equal(t, "days", unit)

	_, ok = UpstoxUnit("fortnight")
	assert.False(t, ok)
}
