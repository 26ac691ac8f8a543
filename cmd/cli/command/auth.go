package command

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fandomhub/cmd/cli/authentication"
	"fandomhub/cmd/cli/command/client"
	"fandomhub/internal/microservices/http-api/dto"
)

// authCmd groups login, registration and logout
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Authenticate with the fandomhub API server. Tokens are kept in the system keyring.`,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new fandomhub account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.RegisterRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.Password, _ = cmd.Flags().GetString("password")
		req.Email, _ = cmd.Flags().GetString("email")

		ctx, cancel := requestContext(cmd)
		defer cancel()

		resp, err := client.NewHTTPClient(apiURL).Register(ctx, &req)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		color.Green("✓ Registered %s. Log in to continue.", resp.Username)
		fmt.Printf("UserID: %s\n", resp.UserID)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to your fandomhub account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.LoginRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.Password, _ = cmd.Flags().GetString("password")

		ctx, cancel := requestContext(cmd)
		defer cancel()

		resp, err := client.NewHTTPClient(apiURL).Login(ctx, &req)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		creds := &authentication.StoredCredentials{
			AccessToken:  resp.AccessToken,
			RefreshToken: resp.RefreshToken,
			UserID:       resp.UserID,
			Username:     resp.Username,
			ExpiresAt:    time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix(),
		}
		if err := authentication.For(apiURL).Save(creds); err != nil {
			return fmt.Errorf("could not store tokens: %w", err)
		}

		color.Green("✓ Logged in as %s", resp.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the refresh token and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := authentication.For(apiURL).Load()
		if err == nil && creds.RefreshToken != "" {
			ctx, cancel := requestContext(cmd)
			defer cancel()
			// the local session is dropped even if the server is unreachable
			_ = client.NewHTTPClient(apiURL).RevokeToken(ctx, creds.RefreshToken)
		}

		if err := authentication.For(apiURL).Clear(); err != nil {
			return err
		}
		color.Green("✓ Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := authentication.For(apiURL).Load()
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", creds.Username, creds.UserID)
		return nil
	},
}

func init() {
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(whoamiCmd)

	registerCmd.Flags().StringP("username", "u", "", "Username for the new account")
	registerCmd.Flags().StringP("password", "p", "", "Password for the new account")
	registerCmd.Flags().StringP("email", "e", "", "Email address for the new account")
	registerCmd.MarkFlagRequired("username")
	registerCmd.MarkFlagRequired("password")
	registerCmd.MarkFlagRequired("email")

	loginCmd.Flags().StringP("username", "u", "", "Username for the account")
	loginCmd.Flags().StringP("password", "p", "", "Password for the account")
	loginCmd.MarkFlagRequired("username")
	loginCmd.MarkFlagRequired("password")
}
