package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/annotext/annotext/internal/infrastructure/tts"
)

func newSpeakCmd() *cobra.Command {
	var (
		voice   string
		rate    float64
		out     string
		script  string
		python  string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "speak [text]",
		Short: "Synthesize one clip through the TTS bridge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := tts.NewEdgeProvider(tts.EdgeConfig{
				PythonBin:    python,
				ScriptPath:   script,
				DefaultVoice: voice,
				Timeout:      timeout,
			}, nil)

			result, err := provider.Synthesize(cmd.Context(), tts.SynthesisRequest{
				Text:  args[0],
				Voice: voice,
				Rate:  rate,
			})
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, result.Audio, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d bytes to %s\n", len(result.Audio), out)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result.Boundaries)
		},
	}
	cmd.Flags().StringVar(&voice, "voice", "en-US-GuyNeural", "engine voice")
	cmd.Flags().Float64Var(&rate, "rate", 1.0, "speed multiplier")
	cmd.Flags().StringVarP(&out, "out", "o", "clip.mp3", "audio output file")
	cmd.Flags().StringVar(&script, "script", "scripts/tts_bridge.py", "bridge script path")
	cmd.Flags().StringVar(&python, "python", "python3", "python interpreter")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "synthesis timeout")
	return cmd
}
