package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/longcipher/elevenlabs-go/pkg/elevenlabs"
)

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "Voice management",
	Long: `Voice management service.

List, inspect, clone and delete voices in the account's library.`,
}

var voicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all voices",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		voices, err := client.Voices.List(reqCtx)
		if err != nil {
			return fmt.Errorf("list voices failed: %w", err)
		}

		if isJSONOutput() || getOutputFile() != "" {
			return outputResult(voices, getOutputFile(), isJSONOutput())
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "VOICE_ID\tNAME\tCATEGORY")
		for _, v := range voices {
			fmt.Fprintf(w, "%s\t%s\t%s\n", v.VoiceID, v.Name, v.Category)
		}
		w.Flush()
		return nil
	},
}

var voicesGetCmd = &cobra.Command{
	Use:   "get <voice-id>",
	Short: "Get voice details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		voice, err := client.Voices.Get(reqCtx, args[0])
		if err != nil {
			return fmt.Errorf("get voice failed: %w", err)
		}

		return outputResult(voice, getOutputFile(), isJSONOutput())
	},
}

var voicesSettingsCmd = &cobra.Command{
	Use:   "settings [voice-id]",
	Short: "Show voice settings (default settings when no voice given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		var settings *elevenlabs.VoiceSettings
		if len(args) == 0 {
			settings, err = client.Voices.GetDefaultSettings(reqCtx)
		} else {
			settings, err = client.Voices.GetSettings(reqCtx, args[0])
		}
		if err != nil {
			return fmt.Errorf("get settings failed: %w", err)
		}

		return outputResult(settings, getOutputFile(), isJSONOutput())
	},
}

var voicesAddCmd = &cobra.Command{
	Use:   "add <name> <sample-file>...",
	Short: "Clone a new voice from audio samples",
	Long: `Clone a new voice from one or more audio sample files.

Examples:
  elevenlabs -c myctx voices add "My Voice" sample1.mp3 sample2.mp3
  elevenlabs -c myctx voices add "My Voice" sample.mp3 --description "Narration voice"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		samplePaths := args[1:]

		description, err := cmd.Flags().GetString("description")
		if err != nil {
			return fmt.Errorf("failed to read 'description' flag: %w", err)
		}

		ctx, err := getContext()
		if err != nil {
			return err
		}

		req := &elevenlabs.AddVoiceRequest{
			Name:        name,
			Description: description,
		}
		var closers []*os.File
		defer func() {
			for _, f := range closers {
				f.Close()
			}
		}()
		for _, path := range samplePaths {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open sample: %w", err)
			}
			closers = append(closers, f)
			req.Samples = append(req.Samples, elevenlabs.VoiceSampleFile{
				Filename: filepath.Base(path),
				Reader:   f,
			})
		}

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 300*time.Second)
		defer cancel()

		voiceID, err := client.Voices.Add(reqCtx, req)
		if err != nil {
			return fmt.Errorf("add voice failed: %w", err)
		}

		printSuccess("Voice %q created: %s", name, voiceID)
		return nil
	},
}

var voicesDeleteCmd = &cobra.Command{
	Use:   "delete <voice-id>",
	Short: "Delete a voice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		if err := client.Voices.Delete(reqCtx, args[0]); err != nil {
			return fmt.Errorf("delete voice failed: %w", err)
		}

		printSuccess("Voice %s deleted", args[0])
		return nil
	},
}

func init() {
	voicesAddCmd.Flags().String("description", "", "Voice description")

	voicesCmd.AddCommand(voicesListCmd)
	voicesCmd.AddCommand(voicesGetCmd)
	voicesCmd.AddCommand(voicesSettingsCmd)
	voicesCmd.AddCommand(voicesAddCmd)
	voicesCmd.AddCommand(voicesDeleteCmd)
}
