// Package render encodes assembled clips and the attached narration into the
// final video and writes its metadata sidecar.
package render

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/forPelevin/viralcut/internal/config"
	"github.com/forPelevin/viralcut/internal/ports"
	"github.com/forPelevin/viralcut/internal/types"
)

type Renderer struct {
	profile config.Profile
	media   ports.MediaTool
	logf    func(format string, args ...any)
}

func New(p config.Profile, media ports.MediaTool, logf func(format string, args ...any)) *Renderer {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Renderer{profile: p, media: media, logf: logf}
}

// Target says where one render goes. WorkDir holds intermediates and must be
// owned by the caller's run; OutPath and MetadataPath are the final
// locations. Captions, when non-empty, is written to CaptionsPath.
type Target struct {
	WorkDir      string
	OutPath      string
	MetadataPath string

	VideoID     string
	Title       string
	Description string

	Captions     string
	CaptionsPath string
}

// Render writes one PNG per clip, prepares the narration as a temporary
// intermediate file, encodes, then moves the result into place. Nothing is
// left at the final paths when any step fails.
func (r *Renderer) Render(ctx context.Context, clips []types.RasterClip, audio types.AudioTrack, t Target) (types.RenderedVideo, error) {
	if len(clips) == 0 {
		return types.RenderedVideo{}, errors.New("render: no clips")
	}
	if t.WorkDir == "" || t.OutPath == "" || t.MetadataPath == "" {
		return types.RenderedVideo{}, errors.New("render: work dir, output path and metadata path are required")
	}

	framesDir := filepath.Join(t.WorkDir, "frames")
	if err := os.MkdirAll(framesDir, 0o755); err != nil {
		return types.RenderedVideo{}, err
	}
	defer os.RemoveAll(framesDir)

	stills, total, err := r.writeFrames(ctx, clips, framesDir)
	if err != nil {
		return types.RenderedVideo{}, err
	}
	r.logf("frames written: %d clips, %s total", len(stills), total)

	tempAudio := filepath.Join(t.WorkDir, "temp-audio.m4a")
	defer os.Remove(tempAudio)

	job := ports.AudioJob{
		In:      audio.Path,
		Out:     tempAudio,
		Codec:   r.profile.AudioCodec,
		Bitrate: r.profile.AudioBitrate,
	}
	if audio.Trimmed {
		job.Limit = audio.Duration
		r.logf("narration trimmed to %s", audio.Duration)
	}
	if err := r.media.TranscodeAudio(ctx, job); err != nil {
		return types.RenderedVideo{}, fmt.Errorf("%w: %v", types.ErrEncoding, err)
	}

	if err := os.MkdirAll(filepath.Dir(t.OutPath), 0o755); err != nil {
		return types.RenderedVideo{}, err
	}
	partial := partialPath(t.OutPath)
	err = r.media.EncodeStills(ctx, ports.EncodeJob{
		Stills:       stills,
		Audio:        tempAudio,
		Out:          partial,
		Width:        r.profile.Width,
		Height:       r.profile.Height,
		FPS:          r.profile.FPS,
		Threads:      r.profile.Threads,
		VideoCodec:   r.profile.VideoCodec,
		AudioCodec:   r.profile.AudioCodec,
		AudioBitrate: r.profile.AudioBitrate,
		Preset:       r.profile.Preset,
		PixelFormat:  r.profile.PixelFormat,
	})
	if err != nil {
		_ = os.Remove(partial)
		return types.RenderedVideo{}, fmt.Errorf("%w: %v", types.ErrEncoding, err)
	}
	if err := os.Rename(partial, t.OutPath); err != nil {
		_ = os.Remove(partial)
		return types.RenderedVideo{}, fmt.Errorf("move output into place: %w", err)
	}

	meta := types.VideoMetadata{
		OutputPath:      t.OutPath,
		OriginalVideoID: t.VideoID,
		Title:           t.Title,
		Description:     t.Description,
	}
	if t.Captions != "" && t.CaptionsPath != "" {
		if err := writeAtomic(t.CaptionsPath, []byte(t.Captions)); err != nil {
			_ = os.Remove(t.OutPath)
			return types.RenderedVideo{}, fmt.Errorf("write captions: %w", err)
		}
		meta.CaptionsPath = t.CaptionsPath
	}

	b, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		_ = os.Remove(t.OutPath)
		return types.RenderedVideo{}, fmt.Errorf("marshal metadata: %w", err)
	}
	if err := writeAtomic(t.MetadataPath, b); err != nil {
		_ = os.Remove(t.OutPath)
		if meta.CaptionsPath != "" {
			_ = os.Remove(meta.CaptionsPath)
		}
		return types.RenderedVideo{}, fmt.Errorf("write metadata: %w", err)
	}

	return types.RenderedVideo{Path: t.OutPath, Duration: total, Metadata: meta}, nil
}

// writeFrames encodes the clip frames concurrently, bounded by the profile's
// thread count. Still order follows clip order regardless of completion order.
func (r *Renderer) writeFrames(ctx context.Context, clips []types.RasterClip, dir string) ([]ports.Still, time.Duration, error) {
	stills := make([]ports.Still, len(clips))
	var total time.Duration
	for i, c := range clips {
		if c.Frame == nil {
			return nil, 0, fmt.Errorf("render: clip %d has no frame", i)
		}
		if c.Duration <= 0 {
			return nil, 0, fmt.Errorf("render: clip %d has duration %s", i, c.Duration)
		}
		stills[i] = ports.Still{Path: filepath.Join(dir, fmt.Sprintf("frame_%03d.png", i)), Duration: c.Duration}
		total += c.Duration
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.profile.Threads, 1))
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	for i := range clips {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := os.Create(stills[i].Path)
			if err != nil {
				return err
			}
			if err := enc.Encode(f, clips[i].Frame); err != nil {
				f.Close()
				return fmt.Errorf("encode frame %d: %w", i, err)
			}
			return f.Close()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return stills, total, nil
}

// partialPath keeps the extension so the encoder still picks the container.
func partialPath(out string) string {
	ext := filepath.Ext(out)
	return strings.TrimSuffix(out, ext) + ".partial" + ext
}

func writeAtomic(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
