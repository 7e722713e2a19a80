package analysis

// LinearModel is an incremental least-squares fit of y = Slope*x + Intercept.
type LinearModel struct {
	Slope     float64
	Intercept float64
	n         float64
	sumX      float64
	sumY      float64
	sumXY     float64
	sumXX     float64
	sumYY     float64
}

func NewLinearModel() *LinearModel {
	return &LinearModel{}
}

func (lm *LinearModel) Train(xs, ys []float64) {
	lm.n, lm.sumX, lm.sumY, lm.sumXY, lm.sumXX, lm.sumYY = 0, 0, 0, 0, 0, 0
	for i := range xs {
		lm.add(xs[i], ys[i])
	}
	lm.solve()
}

func (lm *LinearModel) Update(x, y float64) {
	lm.add(x, y)
	lm.solve()
}

func (lm *LinearModel) add(x, y float64) {
	lm.n += 1
	lm.sumX += x
	lm.sumY += y
	lm.sumXY += x * y
	lm.sumXX += x * x
	lm.sumYY += y * y
}

func (lm *LinearModel) solve() {
	denominator := lm.n*lm.sumXX - lm.sumX*lm.sumX
	if denominator == 0 {
		lm.Slope = 0
		if lm.n > 0 {
			lm.Intercept = lm.sumY / lm.n
		} else {
			lm.Intercept = 0
		}
	} else {
		lm.Slope = (lm.n*lm.sumXY - lm.sumX*lm.sumY) / denominator
		lm.Intercept = (lm.sumY - lm.Slope*lm.sumX) / lm.n
	}
}

func (lm *LinearModel) Predict(x float64) float64 {
	return lm.Slope*x + lm.Intercept
}

// R2 is the coefficient of determination of the current fit. A constant
// series that the line reproduces exactly scores 1.
func (lm *LinearModel) R2() float64 {
	if lm.n == 0 {
		return 0
	}
	ssTot := lm.sumYY - lm.sumY*lm.sumY/lm.n
	if ssTot <= 0 {
		return 1
	}
	// SSres expanded over the running sums.
	a, b := lm.Slope, lm.Intercept
	ssRes := lm.sumYY - 2*a*lm.sumXY - 2*b*lm.sumY + a*a*lm.sumXX + 2*a*b*lm.sumX + b*b*lm.n
	if ssRes < 0 {
		ssRes = 0
	}
	return 1 - ssRes/ssTot
}

func (lm *LinearModel) Len() int {
	return int(lm.n)
}
