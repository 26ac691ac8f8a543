package command

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var fandomCmd = &cobra.Command{
	Use:   "fandom",
	Short: "Browse and join fandoms",
}

var fandomListCmd = &cobra.Command{
	Use:   "list [game_id]",
	Short: "List the fandoms of a game",
	Args:  cobra.ExactArgs(1),
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
		fandoms, err := httpClient.ListFandoms(ctx, ids[0])
		if err != nil {
			return err
		}

		if len(fandoms) == 0 {
			fmt.Println("No fandoms for this game yet")
			return nil
		}
		for _, f := range fandoms {
			color.New(color.Bold).Printf("%d. %s", f.ID, f.Name)
			if f.Description != "" {
				fmt.Printf(" - %s", f.Description)
			}
			fmt.Println()
		}
		return nil
	},
}

var fandomJoinCmd = &cobra.Command{
	Use:   "join [fandom_id...]",
	Short: "Subscribe to one or more fandoms",
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
		for _, id := range ids {
			if err := httpClient.Subscribe(ctx, id); err != nil {
				color.Red("✗ fandom %d: %v", id, err)
				continue
			}
			color.Green("✓ joined fandom %d", id)
		}
		return nil
	},
}

var fandomLeaveCmd = &cobra.Command{
	Use:   "leave [fandom_id]",
	Short: "Unsubscribe from a fandom",
	Args:  cobra.ExactArgs(1),
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
		if err := httpClient.Unsubscribe(ctx, ids[0]); err != nil {
			return err
		}
		color.Green("✓ left fandom %d", ids[0])
		return nil
	},
}

var fandomMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List the fandoms you belong to",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		httpClient, _, err := authenticatedClient(ctx)
		if err != nil {
			return err
		}
		subs, err := httpClient.MySubscriptions(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("You belong to %d fandom(s)\n", len(subs))
		for _, s := range subs {
			fmt.Printf("%d. %s (since %s)\n", s.FandomID, s.FandomName, s.SubscribedAt.Local().Format("2006-01-02"))
		}
		return nil
	},
}

func init() {
	fandomCmd.AddCommand(fandomListCmd)
	fandomCmd.AddCommand(fandomJoinCmd)
	fandomCmd.AddCommand(fandomLeaveCmd)
	fandomCmd.AddCommand(fandomMineCmd)
}
