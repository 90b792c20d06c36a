// Package formulas wraps go-talib indicator calculations behind small
// helpers that handle short inputs and NaN results.
package formulas

import (
	"github.com/markcheno/go-talib"
)

// CalculateEMA returns the latest exponential moving average of the series,
// or nil if there is not enough data.
func CalculateEMA(values []float64, length int) *float64 {
	if len(values) < length {
		return nil
	}
	ema := talib.Ema(values, length)
	if len(ema) == 0 || isNaN(ema[len(ema)-1]) {
		return nil
	}
	result := ema[len(ema)-1]
	return &result
}

// CalculateSMA returns the latest simple moving average of the series, or
// nil if there is not enough data.
func CalculateSMA(values []float64, length int) *float64 {
	if len(values) < length {
		return nil
	}
	sma := talib.Sma(values, length)
	if len(sma) == 0 || isNaN(sma[len(sma)-1]) {
		return nil
	}
	result := sma[len(sma)-1]
	return &result
}

// TrendSlope compares a short EMA against a long SMA over the same series.
// Positive values indicate the recent level sits above its longer baseline.
// Returns nil when the series is too short for the long window.
func TrendSlope(values []float64, shortLen, longLen int) *float64 {
	short := CalculateEMA(values, shortLen)
	long := CalculateSMA(values, longLen)
	if short == nil || long == nil {
		return nil
	}
	slope := *short - *long
	return &slope
}

func isNaN(f float64) bool {
	return f != f
}
