package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Model listing",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available models",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		models, err := client.Models.List(reqCtx)
		if err != nil {
			return fmt.Errorf("list models failed: %w", err)
		}

		if isJSONOutput() || getOutputFile() != "" {
			return outputResult(models, getOutputFile(), isJSONOutput())
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "MODEL_ID\tNAME\tTTS\tLANGUAGES")
		for _, m := range models {
			tts := ""
			if m.CanDoTextToSpeech {
				tts = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", m.ModelID, m.Name, tts, len(m.Languages))
		}
		w.Flush()
		return nil
	},
}

func init() {
	modelsCmd.AddCommand(modelsListCmd)
}
