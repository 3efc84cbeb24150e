package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/longcipher/elevenlabs-go/pkg/cli"
	"github.com/longcipher/elevenlabs-go/pkg/elevenlabs"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Generation history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generation history",
	Long: `List previously generated audio, newest first.

Examples:
  elevenlabs -c myctx history list --page-size 20
  elevenlabs -c myctx history list --voice-id 21m00Tcm4TlvDq8ikWAM`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pageSize, err := cmd.Flags().GetInt("page-size")
		if err != nil {
			return fmt.Errorf("failed to read 'page-size' flag: %w", err)
		}
		startAfter, err := cmd.Flags().GetString("start-after")
		if err != nil {
			return fmt.Errorf("failed to read 'start-after' flag: %w", err)
		}
		voiceID, err := cmd.Flags().GetString("voice-id")
		if err != nil {
			return fmt.Errorf("failed to read 'voice-id' flag: %w", err)
		}

		ctx, err := getContext()
		if err != nil {
			return err
		}

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		resp, err := client.History.List(reqCtx, &elevenlabs.HistoryQuery{
			PageSize:                pageSize,
			StartAfterHistoryItemID: startAfter,
			VoiceID:                 voiceID,
		})
		if err != nil {
			return fmt.Errorf("list history failed: %w", err)
		}

		if isJSONOutput() || getOutputFile() != "" {
			return outputResult(resp, getOutputFile(), isJSONOutput())
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "HISTORY_ITEM_ID\tVOICE\tDATE\tTEXT")
		for _, item := range resp.History {
			text := item.Text
			if len(text) > 40 {
				text = text[:37] + "..."
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				item.HistoryItemID, item.VoiceName, cli.FormatUnixDate(item.DateUnix), text)
		}
		w.Flush()

		if resp.HasMore {
			cli.PrintInfo("More items available, continue with: --start-after %s", resp.LastHistoryItemID)
		}
		return nil
	},
}

var historyGetCmd = &cobra.Command{
	Use:   "get <history-item-id>",
	Short: "Get a history item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		item, err := client.History.Get(reqCtx, args[0])
		if err != nil {
			return fmt.Errorf("get history item failed: %w", err)
		}

		return outputResult(item, getOutputFile(), isJSONOutput())
	},
}

var historyAudioCmd = &cobra.Command{
	Use:   "audio <history-item-id>",
	Short: "Download the audio of a history item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputPath := getOutputFile()
		if outputPath == "" {
			return fmt.Errorf("output file is required for audio, use -o flag")
		}

		ctx, err := getContext()
		if err != nil {
			return err
		}

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
		defer cancel()

		audio, err := client.History.GetAudio(reqCtx, args[0])
		if err != nil {
			return fmt.Errorf("get history audio failed: %w", err)
		}

		if err := outputBytes(audio, outputPath); err != nil {
			return fmt.Errorf("failed to write audio file: %w", err)
		}

		printSuccess("Audio saved to: %s (%s)", outputPath, formatBytes(len(audio)))
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <history-item-id>",
	Short: "Delete a history item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		if err := client.History.Delete(reqCtx, args[0]); err != nil {
			return fmt.Errorf("delete history item failed: %w", err)
		}

		printSuccess("History item %s deleted", args[0])
		return nil
	},
}

func init() {
	historyListCmd.Flags().Int("page-size", 0, "Number of items per page")
	historyListCmd.Flags().String("start-after", "", "Paginate after this history item ID")
	historyListCmd.Flags().String("voice-id", "", "Filter by voice ID")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyGetCmd)
	historyCmd.AddCommand(historyAudioCmd)
	historyCmd.AddCommand(historyDeleteCmd)
}
