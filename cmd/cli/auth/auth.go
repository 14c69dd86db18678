package auth

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/crucial707/loanapp/cmd/cli/client"
	"github.com/crucial707/loanapp/cmd/cli/config"
	tokens "github.com/crucial707/loanapp/internal/auth"
	"github.com/spf13/cobra"
)

var (
	errUsernameTaken      = errors.New("username already exists")
	errInvalidCredentials = errors.New("invalid username or password")
)

// InitAuth registers auth-related CLI commands on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(registerCmd(), loginCmd(), logoutCmd(), whoamiCmd())
}

// ==========================
// Register
// ==========================
func registerCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password are required")
			}

			resp, err := client.PostForm("/register", credentials(username, password))
			if err != nil {
				return fmt.Errorf("failed to register user: %w", err)
			}
			switch {
			case resp.Status == http.StatusFound:
				fmt.Fprintln(cmd.OutOrStdout(), "Registration successful. Run `loanctl login` to sign in.")
				return nil
			case resp.Status == http.StatusOK && strings.Contains(resp.Body, "Username Already Exists!"):
				return errUsernameTaken
			default:
				return fmt.Errorf("failed to register user: %w", resp.Err())
			}
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username to register")
	cmd.Flags().StringVar(&password, "password", "", "Password for the new user")
	return cmd
}

// ==========================
// Login
// ==========================
func loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the token locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password are required")
			}

			resp, err := client.PostForm("/login", credentials(username, password))
			if err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}
			switch resp.Status {
			case http.StatusFound:
			case http.StatusOK:
				return errInvalidCredentials
			default:
				return fmt.Errorf("failed to login: %w", resp.Err())
			}

			token, err := resp.TokenFromRedirect()
			if err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}
			if err := config.SaveToken(token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Login successful. Token stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username to authenticate as")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	return cmd
}

// ==========================
// Logout
// ==========================
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and remove the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.PostForm("/logout", nil)
			if err != nil {
				return fmt.Errorf("failed to logout: %w", err)
			}
			if resp.Status != http.StatusOK {
				return fmt.Errorf("failed to logout: %w", resp.Err())
			}
			if err := config.RemoveToken(); err != nil {
				return fmt.Errorf("failed to remove token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logout successful")
			return nil
		},
	}
}

// ==========================
// Whoami
// ==========================
func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the username in the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.LoadToken()
			if err != nil {
				return err
			}
			username, err := tokens.UnverifiedUsername(token)
			if err != nil {
				return fmt.Errorf("stored token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), username)
			return nil
		},
	}
}

func credentials(username, password string) url.Values {
	return url.Values{"username": {username}, "password": {password}}
}
