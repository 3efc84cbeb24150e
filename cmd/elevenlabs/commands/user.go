package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/longcipher/elevenlabs-go/pkg/cli"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Account information",
}

var userInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the current user profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		user, err := client.User.Get(reqCtx)
		if err != nil {
			return fmt.Errorf("get user failed: %w", err)
		}

		return outputResult(user, getOutputFile(), isJSONOutput())
	},
}

var userSubscriptionCmd = &cobra.Command{
	Use:   "subscription",
	Short: "Show the subscription and character quota",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		sub, err := client.User.GetSubscription(reqCtx)
		if err != nil {
			return fmt.Errorf("get subscription failed: %w", err)
		}

		if isJSONOutput() || getOutputFile() != "" {
			return outputResult(sub, getOutputFile(), isJSONOutput())
		}

		fmt.Printf("Tier: %s\n", sub.Tier)
		fmt.Printf("Status: %s\n", sub.Status)
		fmt.Printf("Characters: %s\n", cli.FormatQuota(sub.CharacterCount, sub.CharacterLimit))
		if sub.NextCharacterCountResetUnix > 0 {
			fmt.Printf("Quota resets: %s\n", cli.FormatUnixDate(sub.NextCharacterCountResetUnix))
		}
		return nil
	},
}

func init() {
	userCmd.AddCommand(userInfoCmd)
	userCmd.AddCommand(userSubscriptionCmd)
}
