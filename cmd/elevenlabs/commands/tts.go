package commands

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/longcipher/elevenlabs-go/pkg/elevenlabs"
)

// ttsRequestFile is the request file shape for tts commands. The voice
// is a top-level field so one file fully describes a synthesis.
type ttsRequestFile struct {
	VoiceID      string   `json:"voice_id" yaml:"voice_id"`
	OutputFormat string   `json:"output_format" yaml:"output_format"`
	Text         string   `json:"text" yaml:"text"`
	ModelID      string   `json:"model_id" yaml:"model_id"`
	LanguageCode string   `json:"language_code" yaml:"language_code"`
	Stability    *float64 `json:"stability" yaml:"stability"`
	Similarity   *float64 `json:"similarity_boost" yaml:"similarity_boost"`
}

func (f *ttsRequestFile) toRequest() *elevenlabs.TextToSpeechRequest {
	req := &elevenlabs.TextToSpeechRequest{
		Text:         f.Text,
		ModelID:      f.ModelID,
		LanguageCode: f.LanguageCode,
	}
	if f.Stability != nil || f.Similarity != nil {
		req.VoiceSettings = &elevenlabs.VoiceSettings{
			Stability:       f.Stability,
			SimilarityBoost: f.Similarity,
		}
	}
	return req
}

var ttsCmd = &cobra.Command{
	Use:   "tts",
	Short: "Text-to-speech synthesis",
	Long: `Text-to-speech synthesis service.

Example request file (tts.yaml):
  voice_id: 21m00Tcm4TlvDq8ikWAM
  text: Hello, this is a test message.
  model_id: eleven_multilingual_v2
  output_format: mp3_44100_128
  stability: 0.5
  similarity_boost: 0.75`,
}

var ttsSynthesizeCmd = &cobra.Command{
	Use:   "synthesize",
	Short: "Synthesize speech from text",
	Long: `Synthesize speech from text (synchronous).

The audio output will be saved to the specified output file.

Examples:
  elevenlabs -c myctx tts synthesize -f tts.yaml -o output.mp3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireInputFile(); err != nil {
			return err
		}

		outputPath := getOutputFile()
		if outputPath == "" {
			return fmt.Errorf("output file is required for audio, use -o flag")
		}

		ctx, err := getContext()
		if err != nil {
			return err
		}

		var file ttsRequestFile
		if err := loadRequest(getInputFile(), &file); err != nil {
			return err
		}
		if file.VoiceID == "" {
			file.VoiceID = ctx.GetExtra("default_voice")
		}
		if file.ModelID == "" {
			file.ModelID = ctx.GetExtra("default_model")
		}

		printVerbose("Using context: %s", ctx.Name)
		printVerbose("Voice: %s", file.VoiceID)
		printVerbose("Text length: %d characters", len(file.Text))

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
		defer cancel()

		audio, err := client.TTS.Convert(reqCtx, file.VoiceID, file.toRequest(),
			elevenlabs.OutputFormat(file.OutputFormat))
		if err != nil {
			return fmt.Errorf("speech synthesis failed: %w", err)
		}

		if err := outputBytes(audio, outputPath); err != nil {
			return fmt.Errorf("failed to write audio file: %w", err)
		}

		printSuccess("Audio saved to: %s (%s)", outputPath, formatBytes(len(audio)))
		return nil
	},
}

var ttsStreamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Stream speech synthesis",
	Long: `Stream speech synthesis over chunked HTTP.

Audio is streamed and saved incrementally.

Examples:
  elevenlabs -c myctx tts stream -f tts.yaml -o output.mp3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireInputFile(); err != nil {
			return err
		}

		outputPath := getOutputFile()
		if outputPath == "" {
			return fmt.Errorf("output file is required for streaming audio, use -o flag")
		}

		ctx, err := getContext()
		if err != nil {
			return err
		}

		var file ttsRequestFile
		if err := loadRequest(getInputFile(), &file); err != nil {
			return err
		}
		if file.VoiceID == "" {
			file.VoiceID = ctx.GetExtra("default_voice")
		}

		printVerbose("Using context: %s", ctx.Name)
		printVerbose("Streaming to: %s", outputPath)

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 300*time.Second)
		defer cancel()

		var audioBuf bytes.Buffer
		for chunk, err := range client.TTS.ConvertStream(reqCtx, file.VoiceID, file.toRequest(),
			elevenlabs.OutputFormat(file.OutputFormat)) {
			if err != nil {
				return fmt.Errorf("streaming failed: %w", err)
			}
			audioBuf.Write(chunk)
		}

		if err := outputBytes(audioBuf.Bytes(), outputPath); err != nil {
			return fmt.Errorf("failed to write audio file: %w", err)
		}

		printSuccess("Audio saved to: %s (%s)", outputPath, formatBytes(audioBuf.Len()))
		return nil
	},
}

var ttsWSStreamCmd = &cobra.Command{
	Use:   "ws-stream",
	Short: "Stream speech synthesis over WebSocket",
	Long: `Stream speech synthesis over the input-streaming WebSocket.

The request text is sent incrementally and audio chunks are collected
as the server produces them.

Examples:
  elevenlabs -c myctx tts ws-stream -f tts.yaml -o output.mp3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireInputFile(); err != nil {
			return err
		}

		outputPath := getOutputFile()
		if outputPath == "" {
			return fmt.Errorf("output file is required for streaming audio, use -o flag")
		}

		ctx, err := getContext()
		if err != nil {
			return err
		}

		var file ttsRequestFile
		if err := loadRequest(getInputFile(), &file); err != nil {
			return err
		}
		if file.VoiceID == "" {
			file.VoiceID = ctx.GetExtra("default_voice")
		}

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 300*time.Second)
		defer cancel()

		cfg := &elevenlabs.TTSStreamConfig{
			VoiceID:          file.VoiceID,
			ModelID:          file.ModelID,
			OutputFormat:     elevenlabs.OutputFormat(file.OutputFormat),
			GenerationConfig: elevenlabs.DefaultGenerationConfig(),
		}
		if file.Stability != nil || file.Similarity != nil {
			cfg.VoiceSettings = &elevenlabs.VoiceSettings{
				Stability:       file.Stability,
				SimilarityBoost: file.Similarity,
			}
		}

		stream, err := client.TTS.OpenStream(reqCtx, cfg)
		if err != nil {
			return fmt.Errorf("open stream failed: %w", err)
		}
		defer stream.Close()

		if err := stream.SendText(reqCtx, file.Text); err != nil {
			return fmt.Errorf("send text failed: %w", err)
		}
		if err := stream.Flush(reqCtx); err != nil {
			return fmt.Errorf("flush failed: %w", err)
		}
		if err := stream.End(reqCtx); err != nil {
			return fmt.Errorf("end stream failed: %w", err)
		}

		var audioBuf bytes.Buffer
		for chunk, err := range stream.Recv() {
			if err != nil {
				return fmt.Errorf("streaming failed: %w", err)
			}
			audioBuf.Write(chunk.Audio)
		}

		if err := outputBytes(audioBuf.Bytes(), outputPath); err != nil {
			return fmt.Errorf("failed to write audio file: %w", err)
		}

		printSuccess("Audio saved to: %s (%s)", outputPath, formatBytes(audioBuf.Len()))
		return nil
	},
}

func init() {
	ttsCmd.AddCommand(ttsSynthesizeCmd)
	ttsCmd.AddCommand(ttsStreamCmd)
	ttsCmd.AddCommand(ttsWSStreamCmd)
}
