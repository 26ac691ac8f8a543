package command

// root.go defines the root command and the flags shared by every subcommand.

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"fandomhub/cmd/cli/authentication"
	"fandomhub/cmd/cli/command/client"
)

var apiURL string // global flag for API server URL

var rootCmd = &cobra.Command{
	Use:   "fandomhub",
	Short: "fandomhub - command line client for the fandomhub API",
	Long: `fandomhub is a terminal client for the fandomhub API. Use it to:
- Log in and manage your session
- Join and leave fandoms
- List notifications and mark them viewed, unviewed, hidden or unhidden
- Follow new notifications live

Use "fandomhub [command] --help" to see the flags of each command.`,
	SilenceUsage: true,
}

// Execute runs the root command; main calls it once
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultAPI := os.Getenv("FANDOMHUB_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultAPI, "API server URL")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(fandomCmd)
	rootCmd.AddCommand(notificationCmd)
}

// authenticatedClient loads the stored tokens, refreshing them first when the
// access token is about to expire
func authenticatedClient(ctx context.Context) (*client.HTTPClient, *authentication.StoredCredentials, error) {
	creds, err := authentication.For(apiURL).Load()
	if err != nil {
		return nil, nil, err
	}

	httpClient := client.NewHTTPClient(apiURL)
	if creds.Expired(time.Now()) && creds.RefreshToken != "" {
		refreshed, err := httpClient.RefreshToken(ctx, creds.RefreshToken)
		if err != nil {
			return nil, nil, fmt.Errorf("session expired, log in again: %w", err)
		}
		creds.AccessToken = refreshed.AccessToken
		creds.RefreshToken = refreshed.RefreshToken
		creds.ExpiresAt = time.Now().Add(time.Duration(refreshed.ExpiresIn) * time.Second).Unix()
		if err := authentication.For(apiURL).Save(creds); err != nil {
			return nil, nil, err
		}
	}

	httpClient.SetToken(creds.AccessToken)
	return httpClient, creds, nil
}

// parseIDs converts positional arguments into positive int64 ids
func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 15*time.Second)
}
