package predictor

import (
	"errors"
	"math"
)

var errSingular = errors.New("normal equations are singular")

// scaler standardises feature columns so the ridge penalty treats them alike.
type scaler struct {
	mean []float64
	std  []float64
}

func fitScaler(x [][]float64) scaler {
	cols := len(x[0])
	s := scaler{mean: make([]float64, cols), std: make([]float64, cols)}
	n := float64(len(x))
	for _, row := range x {
		for j, v := range row {
			s.mean[j] += v / n
		}
	}
	for _, row := range x {
		for j, v := range row {
			d := v - s.mean[j]
			s.std[j] += d * d / n
		}
	}
	for j := range s.std {
		s.std[j] = math.Sqrt(s.std[j])
	}
	return s
}

// transform returns [1, z1, ..., zk]. Constant columns become 0.
func (s scaler) transform(row []float64) []float64 {
	out := make([]float64, len(row)+1)
	out[0] = 1
	for j, v := range row {
		if s.std[j] > 0 {
			out[j+1] = (v - s.mean[j]) / s.std[j]
		}
	}
	return out
}

// linearModel is a ridge regression over standardised features.
type linearModel struct {
	scaler  scaler
	weights []float64
}

// fitRidge solves (XᵀX + λI)w = Xᵀy. The intercept is not penalised.
func fitRidge(x [][]float64, y []float64, lambda float64) (*linearModel, error) {
	sc := fitScaler(x)
	k := len(x[0]) + 1

	a := make([][]float64, k)
	for i := range a {
		a[i] = make([]float64, k+1)
	}
	for r, row := range x {
		z := sc.transform(row)
		for i := 0; i < k; i++ {
			for j := 0; j < k; j++ {
				a[i][j] += z[i] * z[j]
			}
			a[i][k] += z[i] * y[r]
		}
	}
	for i := 1; i < k; i++ {
		a[i][i] += lambda
	}

	w, err := solve(a)
	if err != nil {
		return nil, err
	}
	return &linearModel{scaler: sc, weights: w}, nil
}

func (m *linearModel) predict(row []float64) float64 {
	z := m.scaler.transform(row)
	sum := 0.0
	for i, w := range m.weights {
		sum += w * z[i]
	}
	return sum
}

// rSquared is the coefficient of determination of m over (x, y).
func (m *linearModel) rSquared(x [][]float64, y []float64) float64 {
	mean := 0.0
	for _, v := range y {
		mean += v / float64(len(y))
	}
	var ssRes, ssTot float64
	for i, row := range x {
		d := y[i] - m.predict(row)
		ssRes += d * d
		t := y[i] - mean
		ssTot += t * t
	}
	if ssTot == 0 {
		if ssRes < 1e-9 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}

// solve runs Gauss-Jordan elimination with partial pivoting on an
// augmented k x (k+1) matrix, in place.
func solve(a [][]float64) ([]float64, error) {
	k := len(a)
	for col := 0; col < k; col++ {
		pivot := col
		for r := col + 1; r < k; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, errSingular
		}
		a[col], a[pivot] = a[pivot], a[col]

		for r := 0; r < k; r++ {
			if r == col {
				continue
			}
			f := a[r][col] / a[col][col]
			for c := col; c <= k; c++ {
				a[r][c] -= f * a[col][c]
			}
		}
	}

	w := make([]float64, k)
	for i := range w {
		w[i] = a[i][k] / a[i][i]
	}
	return w, nil
}
