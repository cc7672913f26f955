package ta

import "math"

func MeanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

// ZScore positions the last value against the mean and stddev of the window.
func ZScore(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean, std := MeanStd(values)
	if std == 0 {
		return 0
	}
	return (values[len(values)-1] - mean) / std
}

func EMASeries(values []float64, period int) []float64 {
	if len(values) == 0 {
		return nil
	}
	if period <= 1 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	alpha := 2.0 / float64(period+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

func SMA(values []float64, period int) float64 {
	if period <= 0 || len(values) < period {
		return math.NaN()
	}
	window := values[len(values)-period:]
	mean, _ := MeanStd(window)
	return mean
}

func RSISeries(closes []float64, period int) []float64 {
	if len(closes) <= period {
		return nil
	}
	series := make([]float64, len(closes))
	for i := range series {
		series[i] = math.NaN()
	}

	var gainSum float64
	var lossSum float64
	for i := 1; i <= period; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gainSum += delta
		} else {
			lossSum -= delta
		}
	}
	avgGain := gainSum / float64(period)
	avgLoss := lossSum / float64(period)
	series[period] = rsiFromAvg(avgGain, avgLoss)

	for i := period + 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gain := math.Max(delta, 0)
		loss := math.Max(-delta, 0)
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		series[i] = rsiFromAvg(avgGain, avgLoss)
	}
	return series
}

func rsiFromAvg(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

func MACDSeries(values []float64, fast, slow, signal int) ([]float64, []float64) {
	if len(values) == 0 {
		return nil, nil
	}
	fastEMA := EMASeries(values, fast)
	slowEMA := EMASeries(values, slow)
	macdLine := make([]float64, len(values))
	for i := range values {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}
	signalLine := EMASeries(macdLine, signal)
	return macdLine, signalLine
}

// BollingerPosition returns where the last close sits inside the band:
// -1 at the lower band, 0 at the middle, +1 at the upper band.
func BollingerPosition(values []float64, period int, stdDevs float64) float64 {
	if period <= 0 || len(values) < period {
		return math.NaN()
	}
	window := values[len(values)-period:]
	mean, std := MeanStd(window)
	if std == 0 {
		return 0
	}
	return (values[len(values)-1] - mean) / (stdDevs * std)
}

// ROC is the percent rate of change over the trailing period.
func ROC(values []float64, period int) float64 {
	if period <= 0 || len(values) <= period {
		return math.NaN()
	}
	base := values[len(values)-1-period]
	if base == 0 {
		return math.NaN()
	}
	return (values[len(values)-1] - base) / math.Abs(base) * 100
}

// OBVSlope approximates on-balance volume over the window and returns its
// least-squares slope normalized by mean volume.
func OBVSlope(closes, volumes []float64) float64 {
	n := len(closes)
	if n < 3 || len(volumes) != n {
		return math.NaN()
	}
	obv := make([]float64, n)
	for i := 1; i < n; i++ {
		switch {
		case closes[i] > closes[i-1]:
			obv[i] = obv[i-1] + volumes[i]
		case closes[i] < closes[i-1]:
			obv[i] = obv[i-1] - volumes[i]
		default:
			obv[i] = obv[i-1]
		}
	}
	meanVol, _ := MeanStd(volumes)
	if meanVol == 0 {
		return 0
	}
	return Slope(obv) / meanVol
}

// Slope is the least-squares slope of the series against its index.
func Slope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / denom
}

// DonchianPosition locates the last close inside the window's high/low
// channel: 0 at the low, 1 at the high.
func DonchianPosition(values []float64, period int) float64 {
	if period <= 1 || len(values) < period {
		return math.NaN()
	}
	window := values[len(values)-period:]
	lo, hi := window[0], window[0]
	for _, v := range window {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return 0.5
	}
	return (values[len(values)-1] - lo) / (hi - lo)
}
