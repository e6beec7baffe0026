package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/api"
	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/querycache"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
}

// authLoginCmd establishes a session and persists the credentials
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the Naxum API",
	Long: `Log in with email and password. On success the token and user record
are stored locally, so later commands run without logging in again.

Examples:
  naxum auth login --email leader@naxum.com --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := a.session.Login(cmd.Context(), email, password); err != nil {
			return err
		}

		state := a.session.Snapshot()
		fmt.Printf("Logged in as %s (%s)\n", state.User.Name, state.User.Email)
		return nil
	},
}

// authRegisterCmd creates an account and establishes a session
var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	Long: `Register a new account. With an invite code you join the inviter's
team as a member; without one you start as a team leader.

Examples:
  naxum auth register --email member@naxum.com --password secret --name "New Member" --invite-code INVITE-42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := api.RegisterRequest{}
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")
		req.Name, _ = cmd.Flags().GetString("name")
		req.Phone, _ = cmd.Flags().GetString("phone")
		req.InviteCode, _ = cmd.Flags().GetString("invite-code")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := a.session.Register(cmd.Context(), req); err != nil {
			return err
		}

		state := a.session.Snapshot()
		fmt.Printf("Registered and logged in as %s (%s)\n", state.User.Name, state.User.Email)
		return nil
	},
}

// authLogoutCmd tears the session down locally no matter what the server says
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := a.session.Logout(cmd.Context()); err != nil {
			return err
		}

		fmt.Println("Logged out.")
		return nil
	},
}

// authStatusCmd reports the restored session without touching the network
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		state := a.session.Snapshot()
		if !state.IsAuthenticated() {
			fmt.Println("Not logged in.")
			fmt.Println("Use 'naxum auth login' to authenticate.")
			return nil
		}

		fmt.Println("Logged in")
		fmt.Printf("User ID: %d\n", state.User.ID)
		fmt.Printf("Email:   %s\n", state.User.Email)
		fmt.Printf("Name:    %s\n", state.User.Name)
		fmt.Printf("Role:    %s\n", state.User.Role)
		return nil
	},
}

// authWhoamiCmd fetches the identity record from the server
var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Fetch the current user from the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(); err != nil {
			return err
		}

		user, err := querycache.Fetch(cmd.Context(), a.cache, querycache.KeyCurrentUser, a.client.Me)
		if err != nil {
			return err
		}

		fmt.Printf("User ID: %d\n", user.ID)
		fmt.Printf("Email:   %s\n", user.Email)
		fmt.Printf("Name:    %s\n", user.Name)
		fmt.Printf("Role:    %s\n", user.Role)
		return nil
	},
}

func init() {
	authLoginCmd.Flags().String("email", "", "account email")
	authLoginCmd.Flags().String("password", "", "account password")

	authRegisterCmd.Flags().String("email", "", "account email")
	authRegisterCmd.Flags().String("password", "", "account password")
	authRegisterCmd.Flags().String("name", "", "full name")
	authRegisterCmd.Flags().String("phone", "", "phone number")
	authRegisterCmd.Flags().String("invite-code", "", "invitation code for joining a team")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authWhoamiCmd)
	rootCmd.AddCommand(authCmd)
}
