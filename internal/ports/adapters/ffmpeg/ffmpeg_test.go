package ffmpeg

import (
	"strings"
	"testing"
	"time"

	"github.com/forPelevin/viralcut/internal/ports"
)

func TestEncodeArgs_StillsInOrderWithExactDurations(t *testing.T) {
	args, err := EncodeArgs(ports.EncodeJob{
		Stills: []ports.Still{
			{Path: "000.png", Duration: 3 * time.Second},
			{Path: "001.png", Duration: 5 * time.Second},
			{Path: "002.png", Duration: 7 * time.Second},
		},
		Audio:       "temp-audio.m4a",
		Out:         "out.mp4",
		Width:       1080,
		Height:      1920,
		FPS:         30,
		Threads:     4,
		VideoCodec:  "libx264",
		AudioCodec:  "aac",
		Preset:      "medium",
		PixelFormat: "yuv420p",
	})
	if err != nil {
		t.Fatalf("args: %v", err)
	}
	joined := strings.Join(args, " ")

	for _, want := range []string{
		"-loop 1 -framerate 30 -t 3.000 -i 000.png",
		"-loop 1 -framerate 30 -t 5.000 -i 001.png",
		"-loop 1 -framerate 30 -t 7.000 -i 002.png",
		"-i temp-audio.m4a",
		"[v0][v1][v2]concat=n=3:v=1:a=0,format=yuv420p[vout]",
		"-map [vout] -map 3:a",
		"-r 30 -c:v libx264 -preset medium -c:a aac",
		"-threads 4",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in args:\n%s", want, joined)
		}
	}
	if strings.Index(joined, "000.png") > strings.Index(joined, "001.png") {
		t.Fatalf("stills out of order:\n%s", joined)
	}
	if strings.Contains(joined, "-shortest") {
		t.Fatalf("video must not be cut to the audio length")
	}
	if args[len(args)-1] != "out.mp4" {
		t.Fatalf("output must be last, got %q", args[len(args)-1])
	}
}

func TestEncodeArgs_NoAudio(t *testing.T) {
	args, err := EncodeArgs(ports.EncodeJob{
		Stills: []ports.Still{{Path: "a.png", Duration: time.Second}},
		Out:    "o.mp4",
		FPS:    30,
	})
	if err != nil {
		t.Fatalf("args: %v", err)
	}
	joined := strings.Join(args, " ")
	if strings.Contains(joined, "-map 1:a") || strings.Contains(joined, "-c:a") {
		t.Fatalf("unexpected audio args:\n%s", joined)
	}
}

func TestEncodeArgs_Rejects(t *testing.T) {
	if _, err := EncodeArgs(ports.EncodeJob{FPS: 30}); err == nil {
		t.Fatalf("expected error for empty stills")
	}
	if _, err := EncodeArgs(ports.EncodeJob{Stills: []ports.Still{{Path: "a.png"}}, FPS: 30}); err == nil {
		t.Fatalf("expected error for zero duration")
	}
}

func TestAudioArgs_TrimKeepsLeadingPart(t *testing.T) {
	got := strings.Join(AudioArgs(ports.AudioJob{In: "v.mp3", Out: "t.m4a", Limit: 20 * time.Second, Codec: "aac", Bitrate: "192k"}), " ")
	want := "-y -i v.mp3 -vn -t 20.000 -c:a aac -b:a 192k t.m4a"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	got = strings.Join(AudioArgs(ports.AudioJob{In: "v.mp3", Out: "t.m4a"}), " ")
	if strings.Contains(got, "-t ") {
		t.Fatalf("untrimmed audio must not carry -t: %q", got)
	}
}

func TestFmtSeconds(t *testing.T) {
	if got := fmtSeconds(1500 * time.Millisecond); got != "1.500" {
		t.Fatalf("fmtSeconds = %s", got)
	}
}
