package predictor

import "algooee/internal/dto"

// FeatureNames lists the columns produced by featureRow, intercept excluded.
var FeatureNames = []string{"open", "high", "low", "close", "range", "return", "sma3_high"}

// lookback is the number of earlier candles a feature row needs.
const lookback = 2

// featureRow builds the features of candle i. Callers guarantee i >= lookback.
func featureRow(candles []dto.Candle, i int) []float64 {
	c := candles[i]
	prevClose := candles[i-1].Close

	ret := 0.0
	if prevClose != 0 {
		ret = c.Close/prevClose - 1
	}
	sma3 := (candles[i].High + candles[i-1].High + candles[i-2].High) / 3

	return []float64{c.Open, c.High, c.Low, c.Close, c.High - c.Low, ret, sma3}
}

// Dataset is the supervised view of a candle series: row t of X describes
// candle t and Y[t] is the high of candle t+1. Next describes the last
// candle and is what the next-day prediction is made from.
type Dataset struct {
	X    [][]float64
	Y    []float64
	Next []float64
}

// BuildDataset turns chronologically ordered candles into a Dataset.
func BuildDataset(candles []dto.Candle) Dataset {
	var ds Dataset
	if len(candles) <= lookback {
		return ds
	}
	for i := lookback; i < len(candles)-1; i++ {
		ds.X = append(ds.X, featureRow(candles, i))
		ds.Y = append(ds.Y, candles[i+1].High)
	}
	ds.Next = featureRow(candles, len(candles)-1)
	return ds
}
