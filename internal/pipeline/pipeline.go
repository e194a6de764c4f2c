package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/forPelevin/viralcut/internal/config"
	"github.com/forPelevin/viralcut/internal/domain/artifacts"
	"github.com/forPelevin/viralcut/internal/ports"
	"github.com/forPelevin/viralcut/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/viralcut/internal/ports/adapters/thumbnail"
	"github.com/forPelevin/viralcut/internal/types"
	"github.com/forPelevin/viralcut/internal/usecase"
)

const (
	ScriptFile    = "script.json"
	SourceFile    = "selected_video.json"
	NarrationFile = "voiceover.mp3"
	MetadataFile  = "video_metadata.json"
)

type Config struct {
	// CacheDir holds the upstream artifacts and per-run work dirs.
	// If empty, defaults to "data/cache".
	CacheDir string
	// OutDir receives the video and its sidecars. Defaults to "data/processed".
	OutDir string

	// ProfilePath is an optional YAML render profile.
	ProfilePath string
	// AudioPath overrides <CacheDir>/voiceover.mp3.
	AudioPath string
	// Fonts are tried before the profile's font list.
	Fonts []string

	FFmpegPath  string
	FFprobePath string

	ThumbnailAllowedHosts []string

	// KeepWork leaves <CacheDir>/runs/<id> in place for debugging.
	KeepWork bool

	Logf func(format string, args ...any)
}

func (c Config) cacheDir() string {
	if c.CacheDir == "" {
		return filepath.Join("data", "cache")
	}
	return c.CacheDir
}

func (c Config) outDir() string {
	if c.OutDir == "" {
		return filepath.Join("data", "processed")
	}
	return c.OutDir
}

func (c Config) narrationPath() string {
	if c.AudioPath != "" {
		return c.AudioPath
	}
	return filepath.Join(c.cacheDir(), NarrationFile)
}

func (c Config) Validate() error {
	st, err := os.Stat(c.cacheDir())
	if err != nil {
		return fmt.Errorf("%w: cache dir: %v", types.ErrInputMissing, err)
	}
	if !st.IsDir() {
		return fmt.Errorf("cache dir %s is not a directory", c.cacheDir())
	}
	if st, err := os.Stat(c.outDir()); err == nil && !st.IsDir() {
		return fmt.Errorf("out dir %s is not a directory", c.outDir())
	}
	if c.ProfilePath != "" {
		if _, err := os.Stat(c.ProfilePath); err != nil {
			return fmt.Errorf("stat profile: %w", err)
		}
	}
	for _, name := range []string{SourceFile, ScriptFile} {
		if _, err := os.Stat(filepath.Join(c.cacheDir(), name)); err != nil {
			return fmt.Errorf("%w: %s: %v", types.ErrInputMissing, name, err)
		}
	}
	if _, err := os.Stat(c.narrationPath()); err != nil {
		return fmt.Errorf("%w: narration: %v", types.ErrInputMissing, err)
	}
	return thumbnail.ValidateHosts(c.ThumbnailAllowedHosts)
}

func Run(ctx context.Context, cfg Config) error {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	profile := config.Default()
	if cfg.ProfilePath != "" {
		p, err := config.Load(cfg.ProfilePath)
		if err != nil {
			return err
		}
		profile = p
		logf("profile: %s", cfg.ProfilePath)
	}
	if len(cfg.Fonts) > 0 {
		profile.Fonts = append(append([]string(nil), cfg.Fonts...), profile.Fonts...)
	}

	cacheDir := cfg.cacheDir()
	src, err := artifacts.LoadSourceVideo(filepath.Join(cacheDir, SourceFile))
	if err != nil {
		return err
	}
	script, err := artifacts.LoadScript(filepath.Join(cacheDir, ScriptFile))
	if err != nil {
		return err
	}
	logf("script %q: %d scenes, source video %s", script.Title, len(script.Scenes), src.VideoID)

	// adapters
	media := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath)
	thumbs := thumbnail.New(cfg.ThumbnailAllowedHosts, 0)

	uc := usecase.New(usecase.Deps{
		Media:      media,
		Thumbnails: thumbs,
	})

	workDir := filepath.Join(cacheDir, "runs", uuid.NewString())
	logf("preparing workspace")
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return err
	}
	if cfg.KeepWork {
		logf("work dir kept: %s", workDir)
	} else {
		defer os.RemoveAll(workDir)
	}

	outDir := cfg.outDir()
	files := outputNames(src.VideoID, profile.Extension)
	res, err := uc.Run(ctx, usecase.Input{
		Profile:      profile,
		Script:       script,
		Source:       src,
		Narration:    cfg.narrationPath(),
		WorkDir:      workDir,
		OutPath:      filepath.Join(outDir, files.video),
		MetadataPath: filepath.Join(outDir, MetadataFile),
		CaptionsPath: filepath.Join(outDir, files.captions),
		Logf:         logf,
	})
	if err != nil {
		return err
	}

	logf("video written (%s): %s", res.Video.Duration, res.Video.Path)
	logf("metadata: %s", filepath.Join(outDir, MetadataFile))
	if res.Video.Metadata.CaptionsPath != "" {
		logf("captions: %s", res.Video.Metadata.CaptionsPath)
	}
	return nil
}

type outputFiles struct {
	video    string
	captions string
}

func outputNames(videoID, ext string) outputFiles {
	id := normalizePathSegment(videoID)
	if id == "" {
		id = "video"
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "mp4"
	}
	return outputFiles{
		video:    fmt.Sprintf("final_video_%s.%s", id, ext),
		captions: fmt.Sprintf("captions_%s.srt", id),
	}
}

// normalizePathSegment keeps letters, digits, '_' and '-', so YouTube ids
// survive unchanged. Any other run of characters becomes a single '-' and is
// dropped at the edges.
func normalizePathSegment(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r == '-':
			b.WriteRune(r)
			pending = false
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			if pending {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pending = false
		default:
			pending = b.Len() > 0 && !strings.HasSuffix(b.String(), "-")
		}
	}
	return b.String()
}

// ensure adapters implement ports
var _ ports.MediaTool = (*ffmpeg.Adapter)(nil)
var _ ports.ThumbnailFetcher = (*thumbnail.Adapter)(nil)
