package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/longcipher/elevenlabs-go/pkg/cli"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Conversational AI agents",
}

var agentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversational agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		agents, err := client.Agents.List(reqCtx)
		if err != nil {
			return fmt.Errorf("list agents failed: %w", err)
		}

		if isJSONOutput() || getOutputFile() != "" {
			return outputResult(agents, getOutputFile(), isJSONOutput())
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "AGENT_ID\tNAME\tCREATED")
		for _, a := range agents {
			fmt.Fprintf(w, "%s\t%s\t%s\n", a.AgentID, a.Name, cli.FormatUnixDate(a.CreatedAtUnixSecs))
		}
		w.Flush()
		return nil
	},
}

var agentsGetCmd = &cobra.Command{
	Use:   "get <agent-id>",
	Short: "Get agent details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		agent, err := client.Agents.Get(reqCtx, args[0])
		if err != nil {
			return fmt.Errorf("get agent failed: %w", err)
		}

		return outputResult(agent, getOutputFile(), isJSONOutput())
	},
}

var agentsSignedURLCmd = &cobra.Command{
	Use:   "signed-url <agent-id>",
	Short: "Get a signed conversation URL for an agent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		url, err := client.Agents.GetSignedURL(reqCtx, args[0])
		if err != nil {
			return fmt.Errorf("get signed URL failed: %w", err)
		}

		fmt.Println(url)
		return nil
	},
}

func init() {
	agentsCmd.AddCommand(agentsListCmd)
	agentsCmd.AddCommand(agentsGetCmd)
	agentsCmd.AddCommand(agentsSignedURLCmd)
}
