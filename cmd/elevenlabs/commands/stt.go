package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/longcipher/elevenlabs-go/pkg/elevenlabs"
)

var sttCmd = &cobra.Command{
	Use:   "stt",
	Short: "Speech-to-text transcription",
}

var sttTranscribeCmd = &cobra.Command{
	Use:   "transcribe <audio-file>",
	Short: "Transcribe an audio file",
	Long: `Transcribe an audio file to text.

Examples:
  elevenlabs -c myctx stt transcribe recording.mp3
  elevenlabs -c myctx stt transcribe call.wav --diarize --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		audioPath := args[0]

		modelID, err := cmd.Flags().GetString("model")
		if err != nil {
			return fmt.Errorf("failed to read 'model' flag: %w", err)
		}
		language, err := cmd.Flags().GetString("language")
		if err != nil {
			return fmt.Errorf("failed to read 'language' flag: %w", err)
		}
		diarize, err := cmd.Flags().GetBool("diarize")
		if err != nil {
			return fmt.Errorf("failed to read 'diarize' flag: %w", err)
		}
		numSpeakers, err := cmd.Flags().GetInt("num-speakers")
		if err != nil {
			return fmt.Errorf("failed to read 'num-speakers' flag: %w", err)
		}

		ctx, err := getContext()
		if err != nil {
			return err
		}

		f, err := os.Open(audioPath)
		if err != nil {
			return fmt.Errorf("open audio file: %w", err)
		}
		defer f.Close()

		printVerbose("Using context: %s", ctx.Name)
		printVerbose("Transcribing: %s", audioPath)

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 600*time.Second)
		defer cancel()

		resp, err := client.SpeechToText.Transcribe(reqCtx, filepath.Base(audioPath), f,
			&elevenlabs.SpeechToTextRequest{
				ModelID:      modelID,
				LanguageCode: language,
				Diarize:      diarize,
				NumSpeakers:  numSpeakers,
			})
		if err != nil {
			return fmt.Errorf("transcription failed: %w", err)
		}

		if !isJSONOutput() && getOutputFile() == "" {
			fmt.Println(resp.Text)
			return nil
		}
		return outputResult(resp, getOutputFile(), isJSONOutput())
	},
}

func init() {
	sttTranscribeCmd.Flags().String("model", "scribe_v1", "Transcription model ID")
	sttTranscribeCmd.Flags().String("language", "", "Language code hint (ISO 639-1)")
	sttTranscribeCmd.Flags().Bool("diarize", false, "Annotate speakers")
	sttTranscribeCmd.Flags().Int("num-speakers", 0, "Maximum number of speakers")

	sttCmd.AddCommand(sttTranscribeCmd)
}
