package subtitles

import (
	"strings"
	"testing"
	"time"

	"github.com/forPelevin/viralcut/internal/types"
)

func TestRenderSRT_CumulativeCues(t *testing.T) {
	srt := RenderSRT([]types.TimelineEntry{
		{Kind: types.EntryIntro, Duration: 3 * time.Second, Text: "hook"},
		{Kind: types.EntryThumbnailOverlay, Duration: 5 * time.Second, Text: "why?"},
		{Kind: types.EntrySceneText, Duration: 5 * time.Second, Text: "  "},
		{Kind: types.EntrySceneText, Duration: 7 * time.Second, Text: "line one\n\nline two"},
	})

	want := "1\n00:00:00,000 --> 00:00:03,000\nhook\n\n" +
		"2\n00:00:03,000 --> 00:00:08,000\nwhy?\n\n" +
		"3\n00:00:13,000 --> 00:00:20,000\nline one line two\n\n"
	if srt != want {
		t.Fatalf("unexpected srt:\n%s", srt)
	}
}

func TestRenderSRT_Empty(t *testing.T) {
	if got := RenderSRT(nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	if strings.Contains(RenderSRT([]types.TimelineEntry{{Duration: time.Second}}), "-->") {
		t.Fatalf("textless entry must not produce a cue")
	}
}

func TestSrtTime_Format(t *testing.T) {
	got := srtTime(time.Hour + 61*time.Second + 234*time.Millisecond)
	if got != "01:01:01,234" {
		t.Fatalf("unexpected srtTime: %s", got)
	}
}
