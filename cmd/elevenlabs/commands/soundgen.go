package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/longcipher/elevenlabs-go/pkg/elevenlabs"
)

var soundCmd = &cobra.Command{
	Use:   "sound",
	Short: "Sound effect generation",
}

var soundGenerateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate a sound effect from a text prompt",
	Long: `Generate a sound effect from a text prompt.

Examples:
  elevenlabs -c myctx sound generate "rain on a tin roof" -o rain.mp3
  elevenlabs -c myctx sound generate "door creak" --duration 3 -o creak.mp3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputPath := getOutputFile()
		if outputPath == "" {
			return fmt.Errorf("output file is required for audio, use -o flag")
		}

		duration, err := cmd.Flags().GetFloat64("duration")
		if err != nil {
			return fmt.Errorf("failed to read 'duration' flag: %w", err)
		}
		loop, err := cmd.Flags().GetBool("loop")
		if err != nil {
			return fmt.Errorf("failed to read 'loop' flag: %w", err)
		}
		influence, err := cmd.Flags().GetFloat64("prompt-influence")
		if err != nil {
			return fmt.Errorf("failed to read 'prompt-influence' flag: %w", err)
		}

		ctx, err := getContext()
		if err != nil {
			return err
		}

		req := &elevenlabs.SoundGenerationRequest{
			Text:            args[0],
			Loop:            loop,
			PromptInfluence: influence,
		}
		if duration > 0 {
			req.DurationSeconds = &duration
		}

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
		defer cancel()

		audio, err := client.SoundGeneration.Generate(reqCtx, req)
		if err != nil {
			return fmt.Errorf("sound generation failed: %w", err)
		}

		if err := outputBytes(audio, outputPath); err != nil {
			return fmt.Errorf("failed to write audio file: %w", err)
		}

		printSuccess("Sound effect saved to: %s (%s)", outputPath, formatBytes(len(audio)))
		return nil
	},
}

func init() {
	soundGenerateCmd.Flags().Float64("duration", 0, "Duration in seconds (0.5-30, default: auto)")
	soundGenerateCmd.Flags().Bool("loop", false, "Generate a smoothly looping effect")
	soundGenerateCmd.Flags().Float64("prompt-influence", 0.3, "Prompt adherence (0.0-1.0)")

	soundCmd.AddCommand(soundGenerateCmd)
}
