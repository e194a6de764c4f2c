package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "viralcut",
		Short:        "Assemble a vertical short from a script, a thumbnail and a narration",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd)
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().String("cache", "data/cache", "Directory with script.json, selected_video.json and voiceover.mp3")
	root.Flags().String("out", "data/processed", "Output directory")
	root.Flags().String("config", "", "Optional YAML render profile")
	root.Flags().String("audio", "", "Narration file (default <cache>/voiceover.mp3)")
	root.Flags().BoolP("quiet", "q", false, "Only print errors")
	root.Flags().Duration("timeout", time.Hour, "Abort the run after this long (0 disables)")

	// Hidden debugging flag (internal)
	root.Flags().Bool("keep-work", false, "Keep the per-run work directory")
	_ = root.Flags().MarkHidden("keep-work")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
