package audio

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// MaxGain is the highest linear gain accepted by GainEffect.
const MaxGain = 4.0

// GainEffect implements linear volume scaling on float samples.
//
// Gain values: 0.0 = silence, 1.0 = no change, >1.0 = amplification.
// No clipping is applied; out-of-range samples are left for the PCM encoder,
// which wraps rather than saturates.
type GainEffect struct {
	gain float32
}

// NewGainEffect creates a new gain effect.
//
// Parameters:
//   - gain: Linear gain multiplier (0.0 = silence, 1.0 = unity, 2.0 = +6dB)
//
// Returns:
//   - *GainEffect: New gain effect instance
//   - error: ErrInvalidGain if gain is negative, above MaxGain or NaN
func NewGainEffect(gain float32) (*GainEffect, error) {
	if !(gain >= 0) {
		logrus.WithFields(logrus.Fields{
			"function": "NewGainEffect",
			"gain":     gain,
			"error":    "gain must be a non-negative number",
		}).Error("Gain validation failed")
		return nil, fmt.Errorf("%w: gain must be a non-negative number: %f", ErrInvalidGain, gain)
	}
	if gain > MaxGain {
		logrus.WithFields(logrus.Fields{
			"function": "NewGainEffect",
			"gain":     gain,
			"error":    "gain too high",
		}).Error("Gain validation failed")
		return nil, fmt.Errorf("%w: gain too high (max %.1f): %f", ErrInvalidGain, MaxGain, gain)
	}

	return &GainEffect{gain: gain}, nil
}

// Process scales samples in place and returns the same slice.
func (g *GainEffect) Process(samples []float32) []float32 {
	if g.gain == 1 {
		return samples
	}
	for i := range samples {
		samples[i] *= g.gain
	}

	logrus.WithFields(logrus.Fields{
		"function":     "GainEffect.Process",
		"sample_count": len(samples),
		"gain":         g.gain,
	}).Debug("Gain applied")

	return samples
}

// GetGain returns the linear gain multiplier.
func (g *GainEffect) GetGain() float32 {
	return g.gain
}
