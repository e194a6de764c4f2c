package subtitles

import (
	"fmt"
	"strings"
	"time"

	"github.com/forPelevin/viralcut/internal/types"
)

// RenderSRT emits one SubRip cue per timeline entry that carries text, timed
// on the cumulative timeline. Entries without text still advance the clock.
func RenderSRT(entries []types.TimelineEntry) string {
	var b strings.Builder
	var at time.Duration
	n := 0
	for _, e := range entries {
		start, end := at, at+e.Duration
		at = end
		text := sanitize(e.Text)
		if text == "" || e.Duration <= 0 {
			continue
		}
		n++
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", n, srtTime(start), srtTime(end), text)
	}
	return b.String()
}

func srtTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hs := int(d / time.Hour)
	d -= time.Duration(hs) * time.Hour
	ms := int(d / time.Minute)
	d -= time.Duration(ms) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	milli := int(d / time.Millisecond)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hs, ms, s, milli)
}

// A blank line ends an SRT cue, so text is folded onto one line.
func sanitize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
