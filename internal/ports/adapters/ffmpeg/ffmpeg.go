package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/forPelevin/viralcut/internal/ports"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

func (a *Adapter) ProbeDuration(ctx context.Context, path string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w\n%s", err, string(b))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return time.Duration(sec * float64(time.Second)), nil
}

func (a *Adapter) TranscodeAudio(ctx context.Context, job ports.AudioJob) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg, AudioArgs(job)...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg transcode audio: %w\n%s", err, string(b))
	}
	return nil
}

func (a *Adapter) EncodeStills(ctx context.Context, job ports.EncodeJob) error {
	args, err := EncodeArgs(job)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg encode: %w\n%s", err, string(b))
	}
	return nil
}

func AudioArgs(job ports.AudioJob) []string {
	args := []string{"-y", "-i", job.In, "-vn"}
	if job.Limit > 0 {
		// -t after -i trims the output, keeping the leading part
		args = append(args, "-t", fmtSeconds(job.Limit))
	}
	codec := job.Codec
	if codec == "" {
		codec = "aac"
	}
	args = append(args, "-c:a", codec)
	if job.Bitrate != "" {
		args = append(args, "-b:a", job.Bitrate)
	}
	return append(args, job.Out)
}

// EncodeArgs builds a single ffmpeg call: every still is a looped image
// input bounded by -t, and the concat filter joins them back to back.
func EncodeArgs(job ports.EncodeJob) ([]string, error) {
	if len(job.Stills) == 0 {
		return nil, fmt.Errorf("ffmpeg encode: no stills")
	}
	if job.FPS <= 0 {
		return nil, fmt.Errorf("ffmpeg encode: fps must be > 0")
	}
	fps := strconv.Itoa(job.FPS)

	args := []string{"-y"}
	for _, s := range job.Stills {
		if s.Duration <= 0 {
			return nil, fmt.Errorf("ffmpeg encode: still %s has duration %s", s.Path, s.Duration)
		}
		args = append(args,
			"-loop", "1",
			"-framerate", fps,
			"-t", fmtSeconds(s.Duration),
			"-i", s.Path,
		)
	}
	audioIdx := len(job.Stills)
	if job.Audio != "" {
		args = append(args, "-i", job.Audio)
	}

	var fc strings.Builder
	for i := range job.Stills {
		fmt.Fprintf(&fc, "[%d:v]", i)
		if job.Width > 0 && job.Height > 0 {
			fmt.Fprintf(&fc, "scale=%d:%d,", job.Width, job.Height)
		}
		fmt.Fprintf(&fc, "setsar=1[v%d];", i)
	}
	for i := range job.Stills {
		fmt.Fprintf(&fc, "[v%d]", i)
	}
	fmt.Fprintf(&fc, "concat=n=%d:v=1:a=0", len(job.Stills))
	if job.PixelFormat != "" {
		fmt.Fprintf(&fc, ",format=%s", job.PixelFormat)
	}
	fc.WriteString("[vout]")

	args = append(args, "-filter_complex", fc.String(), "-map", "[vout]")
	if job.Audio != "" {
		args = append(args, "-map", fmt.Sprintf("%d:a", audioIdx))
	}

	args = append(args, "-r", fps, "-c:v", orDefault(job.VideoCodec, "libx264"))
	if job.Preset != "" {
		args = append(args, "-preset", job.Preset)
	}
	if job.Audio != "" {
		args = append(args, "-c:a", orDefault(job.AudioCodec, "aac"))
		if job.AudioBitrate != "" {
			args = append(args, "-b:a", job.AudioBitrate)
		}
	}
	if job.Threads > 0 {
		args = append(args, "-threads", strconv.Itoa(job.Threads))
	}
	args = append(args, "-movflags", "+faststart", job.Out)
	return args, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func fmtSeconds(d time.Duration) string {
	sec := float64(d) / float64(time.Second)
	return strconv.FormatFloat(sec, 'f', 3, 64)
}
