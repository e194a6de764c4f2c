package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/forPelevin/viralcut/internal/pipeline"
)

func run(cmd *cobra.Command) error {
	cacheDir, _ := cmd.Flags().GetString("cache")
	outDir, _ := cmd.Flags().GetString("out")
	profilePath, _ := cmd.Flags().GetString("config")
	audioPath, _ := cmd.Flags().GetString("audio")
	quiet, _ := cmd.Flags().GetBool("quiet")
	keepWork, _ := cmd.Flags().GetBool("keep-work")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	// interrupt cancels ffmpeg so partial outputs and the work dir are cleaned up
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := withDeadline(ctx, timeout)
	defer cancel()

	cfg := pipeline.Config{
		CacheDir:    cacheDir,
		OutDir:      outDir,
		ProfilePath: profilePath,
		AudioPath:   audioPath,
		KeepWork:    keepWork,

		FFmpegPath:  getenvDefault("FFMPEG_PATH", "ffmpeg"),
		FFprobePath: getenvDefault("FFPROBE_PATH", "ffprobe"),

		ThumbnailAllowedHosts: splitList(os.Getenv("THUMBNAIL_ALLOWED_HOSTS")),
	}
	if font := strings.TrimSpace(os.Getenv("VIRALCUT_FONT")); font != "" {
		cfg.Fonts = []string{font}
	}
	if !quiet {
		errOut := cmd.ErrOrStderr()
		cfg.Logf = func(format string, args ...any) {
			fmt.Fprintf(errOut, format+"\n", args...)
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return pipeline.Run(ctx, cfg)
}

// withDeadline bounds the run by d; zero or negative means no deadline.
func withDeadline(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
