package cli

import (
	"context"
	"reflect"
	"testing"
	"time"
)

func TestSplitList(t *testing.T) {
	tests := map[string][]string{
		"":                              nil,
		" , ":                           nil,
		"i.ytimg.com":                   {"i.ytimg.com"},
		" i.ytimg.com, cdn.example ,, ": {"i.ytimg.com", "cdn.example"},
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			if got := splitList(in); !reflect.DeepEqual(got, want) {
				t.Fatalf("splitList(%q) = %#v, want %#v", in, got, want)
			}
		})
	}
}

func TestGetenvDefault(t *testing.T) {
	t.Setenv("VIRALCUT_TEST_VAR", "")
	if got := getenvDefault("VIRALCUT_TEST_VAR", "ffmpeg"); got != "ffmpeg" {
		t.Fatalf("getenvDefault = %q", got)
	}
	t.Setenv("VIRALCUT_TEST_VAR", "/opt/ffmpeg")
	if got := getenvDefault("VIRALCUT_TEST_VAR", "ffmpeg"); got != "/opt/ffmpeg" {
		t.Fatalf("getenvDefault = %q", got)
	}
}

func TestWithDeadline(t *testing.T) {
	ctx, cancel := withDeadline(context.Background(), 0)
	defer cancel()
	if _, ok := ctx.Deadline(); ok {
		t.Fatalf("zero timeout must not set a deadline")
	}

	ctx, cancel = withDeadline(context.Background(), time.Minute)
	defer cancel()
	dl, ok := ctx.Deadline()
	if !ok {
		t.Fatalf("expected a deadline")
	}
	if left := time.Until(dl); left <= 0 || left > time.Minute {
		t.Fatalf("deadline in %s, want within 1m", left)
	}
}
