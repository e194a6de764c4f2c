package audiosync

import (
	"fmt"
	"os"
	"time"

	"github.com/forPelevin/viralcut/internal/types"
)

// Attach fits the narration to the visual track. A longer narration is cut
// to exactly visual, keeping its start; a shorter one is attached unchanged
// and the video tail plays without narration.
func Attach(visual time.Duration, track types.AudioTrack) (types.AudioTrack, error) {
	if track.Path == "" {
		return types.AudioTrack{}, fmt.Errorf("%w: narration path is empty", types.ErrInputMissing)
	}
	if _, err := os.Stat(track.Path); err != nil {
		return types.AudioTrack{}, fmt.Errorf("%w: narration: %v", types.ErrInputMissing, err)
	}
	if visual <= 0 {
		return types.AudioTrack{}, fmt.Errorf("visual track duration must be > 0, got %s", visual)
	}
	if track.Duration > visual {
		return types.AudioTrack{Path: track.Path, Duration: visual, Trimmed: true}, nil
	}
	return track, nil
}

// Silence is how much of the visual track plays without narration.
func Silence(visual time.Duration, attached types.AudioTrack) time.Duration {
	if attached.Duration >= visual {
		return 0
	}
	return visual - attached.Duration
}
