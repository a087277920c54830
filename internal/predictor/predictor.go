// Package predictor estimates the next candle's high from a candle series.
//
// Each candle is turned into a feature row (see FeatureNames) whose target
// is the following candle's high. A ridge regression is fitted over those
// rows and applied to the most recent candle. Confidence is the training
// R², clamped to [0, 1].
package predictor

import (
	"errors"
	"fmt"

	"algooee/internal/dto"

	"github.com/shopspring/decimal"
)

var ErrInsufficientData = errors.New("insufficient candles to train model")

const (
	// DefaultMinCandles keeps at least a handful of training rows after
	// the lookback and the unlabeled last candle are removed.
	DefaultMinCandles = 10

	defaultLambda = 1e-3
)

type Result struct {
	PredictedHigh float64            `json:"predicted_high"`
	Confidence    float64            `json:"confidence"`
	Samples       int                `json:"samples"`
	Features      map[string]float64 `json:"features"`
}

type Predictor struct {
	minCandles int
	lambda     float64
}

func New(minCandles int) *Predictor {
	if minCandles < lookback+2 {
		minCandles = DefaultMinCandles
	}
	return &Predictor{minCandles: minCandles, lambda: defaultLambda}
}

func (p *Predictor) MinCandles() int {
	return p.minCandles
}

// Predict trains on candles, which must be in chronological order, and
// predicts the high of the candle that follows the last one.
func (p *Predictor) Predict(candles []dto.Candle) (*Result, error) {
	if len(candles) < p.minCandles {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrInsufficientData, len(candles), p.minCandles)
	}

	ds := BuildDataset(candles)
	model, err := fitRidge(ds.X, ds.Y, p.lambda)
	if err != nil {
		return nil, fmt.Errorf("failed to train model: %w", err)
	}

	features := make(map[string]float64, len(FeatureNames))
	for i, name := range FeatureNames {
		features[name] = ds.Next[i]
	}

	return &Result{
		PredictedHigh: model.predict(ds.Next),
		Confidence:    Round(clamp(model.rSquared(ds.X, ds.Y), 0, 1), 2),
		Samples:       len(ds.Y),
		Features:      features,
	}, nil
}

// Round rounds v half away from zero to places decimals.
func Round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
