// Package artifacts decodes the upstream JSON files into typed values. All
// schema problems surface here, before any rendering starts.
package artifacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/forPelevin/viralcut/internal/types"
)

type scriptFile struct {
	Title       string          `json:"title"`
	Hook        string          `json:"hook"`
	Scenes      []sceneFile     `json:"scenes"`
	Description string          `json:"description"`
	Tags        json.RawMessage `json:"tags"`
}

type sceneFile struct {
	Timing     string `json:"timing"`
	Text       string `json:"text"`
	VisualNote string `json:"visual_note"`
}

// LoadScript reads script.json. Unreadable or malformed files and missing
// required fields wrap types.ErrInputMissing; bad timings are
// *types.InvalidScriptError.
func LoadScript(path string) (types.Script, error) {
	b, err := readJSON(path)
	if err != nil {
		return types.Script{}, err
	}
	var raw scriptFile
	if err := json.Unmarshal(b, &raw); err != nil {
		return types.Script{}, fmt.Errorf("%w: parse %s: %v", types.ErrInputMissing, path, err)
	}
	if strings.TrimSpace(raw.Title) == "" {
		return types.Script{}, fmt.Errorf("%w: %s: title is required", types.ErrInputMissing, path)
	}
	if raw.Scenes == nil {
		return types.Script{}, fmt.Errorf("%w: %s: scenes is required", types.ErrInputMissing, path)
	}

	tags, err := parseTags(raw.Tags)
	if err != nil {
		return types.Script{}, fmt.Errorf("%w: %s: %v", types.ErrInputMissing, path, err)
	}

	s := types.Script{
		Title:       raw.Title,
		Hook:        raw.Hook,
		Description: raw.Description,
		Tags:        tags,
		Scenes:      make([]types.Scene, 0, len(raw.Scenes)),
	}
	for i, sc := range raw.Scenes {
		start, end, err := ParseTiming(sc.Timing)
		if err != nil {
			return types.Script{}, &types.InvalidScriptError{Scene: i, Reason: err.Error()}
		}
		s.Scenes = append(s.Scenes, types.Scene{
			Start:      start,
			End:        end,
			Text:       sc.Text,
			VisualNote: sc.VisualNote,
		})
	}
	return s, nil
}

// LoadSourceVideo reads selected_video.json.
func LoadSourceVideo(path string) (types.SourceVideo, error) {
	b, err := readJSON(path)
	if err != nil {
		return types.SourceVideo{}, err
	}
	var v types.SourceVideo
	if err := json.Unmarshal(b, &v); err != nil {
		return types.SourceVideo{}, fmt.Errorf("%w: parse %s: %v", types.ErrInputMissing, path, err)
	}
	v.VideoID = strings.TrimSpace(v.VideoID)
	v.ThumbnailURL = strings.TrimSpace(v.ThumbnailURL)
	if v.VideoID == "" {
		return types.SourceVideo{}, fmt.Errorf("%w: %s: video_id is required", types.ErrInputMissing, path)
	}
	if v.ThumbnailURL == "" {
		return types.SourceVideo{}, fmt.Errorf("%w: %s: thumbnail is required", types.ErrInputMissing, path)
	}
	return v, nil
}

// ParseTiming parses "start-end" in whole seconds, e.g. "3-8".
func ParseTiming(s string) (start, end time.Duration, err error) {
	a, b, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return 0, 0, fmt.Errorf("timing %q: want \"start-end\"", s)
	}
	st, err := parseSeconds(a)
	if err != nil {
		return 0, 0, fmt.Errorf("timing %q: start: %w", s, err)
	}
	en, err := parseSeconds(b)
	if err != nil {
		return 0, 0, fmt.Errorf("timing %q: end: %w", s, err)
	}
	if en <= st {
		return 0, 0, fmt.Errorf("timing %q: end must be after start", s)
	}
	return time.Duration(st) * time.Second, time.Duration(en) * time.Second, nil
}

func parseSeconds(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number of seconds", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%q is negative", s)
	}
	return n, nil
}

// parseTags accepts a JSON list or a comma separated string and drops
// duplicates, keeping first-seen order.
func parseTags(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		var joined string
		if err2 := json.Unmarshal(raw, &joined); err2 != nil {
			return nil, errors.New("tags must be a list or a comma separated string")
		}
		list = strings.Split(joined, ",")
	}
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, t := range list {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		k := strings.ToLower(t)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}

func readJSON(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInputMissing, err)
	}
	return stripCodeFence(b), nil
}

// Scripts come straight from a language model and are sometimes still
// wrapped in a Markdown fence.
func stripCodeFence(b []byte) []byte {
	t := strings.TrimSpace(string(b))
	if !strings.HasPrefix(t, "```") {
		return b
	}
	if i := strings.Index(t, "\n"); i >= 0 {
		t = t[i+1:]
	}
	if j := strings.LastIndex(t, "```"); j >= 0 {
		t = t[:j]
	}
	return []byte(strings.TrimSpace(t))
}
