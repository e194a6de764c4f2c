package timeline

import (
	"fmt"
	"time"

	"github.com/forPelevin/viralcut/internal/config"
	"github.com/forPelevin/viralcut/internal/types"
)

// Build turns a script into the ordered entries that drive composition:
// the hook intro, the thumbnail overlay, then one entry per remaining scene.
//
// With rules.HookConsumesFirstScene set, scenes[0] is assumed to repeat the
// hook and is not given its own entry. Its timing is still validated.
func Build(s types.Script, rules config.TimelineRules) ([]types.TimelineEntry, error) {
	if err := Validate(s.Scenes); err != nil {
		return nil, err
	}

	out := make([]types.TimelineEntry, 0, len(s.Scenes)+2)
	out = append(out,
		types.TimelineEntry{
			Kind:     types.EntryIntro,
			Duration: time.Duration(rules.IntroSeconds) * time.Second,
			Text:     s.Hook,
		},
		types.TimelineEntry{
			Kind:     types.EntryThumbnailOverlay,
			Duration: time.Duration(rules.OverlaySeconds) * time.Second,
			Text:     rules.OverlayCaption,
		},
	)

	for _, sc := range SceneEntries(s.Scenes, rules) {
		out = append(out, types.TimelineEntry{
			Kind:     types.EntrySceneText,
			Duration: sc.Duration(),
			Text:     sc.Text,
		})
	}
	return out, nil
}

// SceneEntries returns the scenes that get their own SceneText entry.
func SceneEntries(scenes []types.Scene, rules config.TimelineRules) []types.Scene {
	if rules.HookConsumesFirstScene {
		if len(scenes) == 0 {
			return nil
		}
		return scenes[1:]
	}
	return scenes
}

// Validate checks that every scene has end > start, whole-second bounds and
// that scenes are ordered by start.
func Validate(scenes []types.Scene) error {
	for i, sc := range scenes {
		if sc.Start < 0 {
			return &types.InvalidScriptError{Scene: i, Reason: fmt.Sprintf("negative start %s", sc.Start)}
		}
		if sc.End <= sc.Start {
			return &types.InvalidScriptError{Scene: i, Reason: fmt.Sprintf("end %s is not after start %s", sc.End, sc.Start)}
		}
		if sc.Start%time.Second != 0 || sc.End%time.Second != 0 {
			return &types.InvalidScriptError{Scene: i, Reason: "timing must be whole seconds"}
		}
		if i > 0 && sc.Start < scenes[i-1].Start {
			return &types.InvalidScriptError{Scene: i, Reason: fmt.Sprintf("start %s is before previous scene start %s", sc.Start, scenes[i-1].Start)}
		}
	}
	return nil
}

func Total(entries []types.TimelineEntry) time.Duration {
	var d time.Duration
	for _, e := range entries {
		d += e.Duration
	}
	return d
}
