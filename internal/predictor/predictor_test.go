package predictor

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"algooee/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trendCandles(n int) []dto.Candle {
	candles := make([]dto.Candle, n)
	for i := range candles {
		base := 100 + float64(i)
		candles[i] = dto.Candle{
			Timestamp: fmt.Sprintf("2025-01-%02dT00:00:00+05:30", i+1),
			Open:      base - 1,
			High:      base,
			Low:       base - 2,
			Close:     base - 0.5,
			Volume:    1000,
		}
	}
	return candles
}

func TestPredictor_Predict(t *testing.T) {
	tests := []struct {
		name           string
		candles        []dto.Candle
		minCandles     int
		wantErr        error
		wantHigh       float64
		wantConfidence float64
	}{
		{
			name:           "linear trend is recovered",
			candles:        trendCandles(20),
			minCandles:     10,
			wantHigh:       120,
			wantConfidence: 1,
		},
		{
			name:       "too few candles",
			candles:    trendCandles(5),
			minCandles: 10,
			wantErr:    ErrInsufficientData,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.minCandles)
			got, err := p.Predict(tt.candles)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantHigh, got.PredictedHigh, 0.05)
			assert.Equal(t, tt.wantConfidence, got.Confidence)
			assert.Equal(t, len(tt.candles)-lookback-1, got.Samples)
			assert.Equal(t, 119.0, got.Features["high"])
		})
	}
}

func TestPredictor_ConfidenceStaysInRange(t *testing.T) {
	candles := trendCandles(30)
	// Zig-zag highs that the features cannot explain well.
	for i := range candles {
		if i%2 == 0 {
			candles[i].High += 7
		} else {
			candles[i].High -= 3
		}
		candles[i].High += math.Sin(float64(i)) * 5
	}

	got, err := New(10).Predict(candles)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got.Confidence, 0.0)
	assert.LessOrEqual(t, got.Confidence, 1.0)
	assert.False(t, math.IsNaN(got.PredictedHigh))
}

func TestNew_FloorsMinCandles(t *testing.T) {
	assert.Equal(t, DefaultMinCandles, New(0).MinCandles())
	assert.Equal(t, 25, New(25).MinCandles())
}

func TestBuildDataset(t *testing.T) {
	ds := BuildDataset(trendCandles(6))
	require.Len(t, ds.X, 3)
	require.Len(t, ds.Y, 3)
	assert.Equal(t, []float64{103, 104, 105}, ds.Y)
	assert.Len(t, ds.Next, len(FeatureNames))

	assert.Empty(t, BuildDataset(trendCandles(2)).X)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 101.5, Round(101.499999, 2))
	assert.Equal(t, 0.87, Round(0.8713, 2))
	assert.Equal(t, 2.35, Round(2.345, 2))
}
