package command

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fandomhub/cmd/cli/command/client"
)

var notificationCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notif", "n"},
	Short:   "List, mark and follow your notifications",
}

var notificationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications from your fandoms, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		var isHidden *bool
		if cmd.Flags().Changed("hidden") {
			v, _ := cmd.Flags().GetBool("hidden")
			isHidden = &v
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()

		httpClient, _, err := authenticatedClient(ctx)
		if err != nil {
			return err
		}
		items, err := httpClient.ListNotifications(ctx, isHidden)
		if err != nil {
			return err
		}

		if len(items) == 0 {
			fmt.Println("No notifications")
			return nil
		}
		for _, n := range items {
			client.PrintNotificationState(os.Stdout, n)
		}
		return nil
	},
}

var notificationCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show how many notifications you have not viewed",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		httpClient, _, err := authenticatedClient(ctx)
		if err != nil {
			return err
		}
		count, err := httpClient.UnviewedCount(ctx)
		if err != nil {
			return err
		}
		fmt.Println(strconv.FormatInt(count, 10))
		return nil
	},
}

// stateCommand builds one of the viewed/unviewed/hide/unhide subcommands
func stateCommand(use, op, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [notification_id...]",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			ctx, cancel := requestContext(cmd)
			defer cancel()

			httpClient, _, err := authenticatedClient(ctx)
			if err != nil {
				return err
			}
			result, err := httpClient.ApplyState(ctx, op, ids)
			if err != nil {
				return err
			}

			if len(result.Succeeded) > 0 {
				color.Green("✓ %s: %v", op, result.Succeeded)
			}
			for _, f := range result.Failed {
				color.Red("✗ %d: %s", f.ID, f.Reason)
			}
			if len(result.Failed) > 0 {
				return fmt.Errorf("%d of %d notification(s) failed", len(result.Failed), len(ids))
			}
			return nil
		},
	}
}

var notificationListenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Print new notifications as they arrive (Ctrl+C to stop)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		_, creds, err := authenticatedClient(ctx)
		if err != nil {
			return err
		}
		wsURL, err := client.WebSocketURL(apiURL)
		if err != nil {
			return err
		}

		color.Yellow("🔔 Listening for notifications as %s...", creds.Username)
		return client.ListenNotifications(ctx, wsURL, creds.AccessToken, os.Stdout)
	},
}

func init() {
	notificationCmd.AddCommand(notificationListCmd)
	notificationCmd.AddCommand(notificationCountCmd)
	notificationCmd.AddCommand(stateCommand("viewed", "viewed", "Mark notifications as viewed"))
	notificationCmd.AddCommand(stateCommand("unviewed", "unviewed", "Mark notifications as not viewed"))
	notificationCmd.AddCommand(stateCommand("hide", "hidden", "Hide notifications"))
	notificationCmd.AddCommand(stateCommand("unhide", "unhidden", "Unhide notifications"))
	notificationCmd.AddCommand(notificationListenCmd)

	notificationListCmd.Flags().Bool("hidden", false, "Only hidden (true) or only visible (false) notifications")
}
