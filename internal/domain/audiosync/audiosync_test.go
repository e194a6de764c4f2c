package audiosync

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forPelevin/viralcut/internal/types"
)

func narration(t *testing.T, d time.Duration) types.AudioTrack {
	t.Helper()
	p := filepath.Join(t.TempDir(), "voiceover.mp3")
	require.NoError(t, os.WriteFile(p, []byte("ID3"), 0o644))
	return types.AudioTrack{Path: p, Duration: d}
}

func TestAttach(t *testing.T) {
	visual := 20 * time.Second
	tests := []struct {
		name        string
		audio       time.Duration
		wantDur     time.Duration
		wantTrimmed bool
		wantSilence time.Duration
	}{
		{"longer is truncated", 25 * time.Second, 20 * time.Second, true, 0},
		{"shorter is untouched", 12 * time.Second, 12 * time.Second, false, 8 * time.Second},
		{"equal is untouched", 20 * time.Second, 20 * time.Second, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := narration(t, tt.audio)
			got, err := Attach(visual, in)
			require.NoError(t, err)
			assert.Equal(t, in.Path, got.Path)
			assert.Equal(t, tt.wantDur, got.Duration)
			assert.Equal(t, tt.wantTrimmed, got.Trimmed)
			assert.Equal(t, tt.wantSilence, Silence(visual, got))
		})
	}
}

func TestAttach_MissingNarrationIsFatal(t *testing.T) {
	_, err := Attach(20*time.Second, types.AudioTrack{Path: filepath.Join(t.TempDir(), "nope.mp3"), Duration: time.Second})
	assert.ErrorIs(t, err, types.ErrInputMissing)

	_, err = Attach(20*time.Second, types.AudioTrack{})
	assert.ErrorIs(t, err, types.ErrInputMissing)
}
