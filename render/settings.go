package render

import (
	"fmt"

	"github.com/opd-ai/chartrender/audio"
)

// Settings are the volume levels of a render.
type Settings struct {
	// EffectVolume scales hit sounds. It only applies to automated play.
	EffectVolume float32
	// MusicVolume scales the song.
	MusicVolume float32
}

// DefaultSettings returns unity volumes.
func DefaultSettings() Settings {
	return Settings{EffectVolume: 1, MusicVolume: 1}
}

// Validate checks both volumes lie in [0, audio.MaxGain].
func (s Settings) Validate() error {
	if _, err := audio.NewGainEffect(s.EffectVolume); err != nil {
		return fmt.Errorf("%w: effect volume: %v", ErrInvalidSettings, err)
	}
	if _, err := audio.NewGainEffect(s.MusicVolume); err != nil {
		return fmt.Errorf("%w: music volume: %v", ErrInvalidSettings, err)
	}
	return nil
}

// ResolveEffectGain returns the gain applied to hit sounds: EffectVolume for
// automated input modes and 0 otherwise.
func ResolveEffectGain(s Settings, m InputMode) float32 {
	if !m.IsAutomated() {
		return 0
	}
	return s.EffectVolume
}
