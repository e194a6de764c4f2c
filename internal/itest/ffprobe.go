//go:build integration

package itest

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

func probeDurationSeconds(videoPath string) (float64, error) {
	return probeSeconds(videoPath, "-show_entries", "format=duration")
}

// probeAudioDurationSeconds reads the first audio stream rather than the
// container, which is as long as the longest stream.
func probeAudioDurationSeconds(videoPath string) (float64, error) {
	return probeSeconds(videoPath, "-select_streams", "a:0", "-show_entries", "stream=duration")
}

func probeSeconds(path string, selectArgs ...string) (float64, error) {
	bin := os.Getenv("FFPROBE_PATH")
	if bin == "" {
		bin = "ffprobe"
	}
	args := append([]string{"-v", "error"}, selectArgs...)
	args = append(args, "-of", "default=noprint_wrappers=1:nokey=1", path)
	b, err := exec.Command(bin, args...).CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w\n%s", err, string(b))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return sec, nil
}
