package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Sign in and persist the session",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		a, cleanup := newApp()
		defer cleanup()

		user, err := a.Sessions.Login(cmd.Context(), args[0], args[1])
		if err != nil {
			exitErr("login", err)
		}
		fmt.Printf("signed in as %s (%s)\n", user.Name, user.Role)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		a, cleanup := newApp()
		defer cleanup()

		a.Sessions.Logout(cmd.Context())
		fmt.Println("signed out")
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		a, cleanup := newApp()
		defer cleanup()

		user := a.Sessions.CurrentUser(cmd.Context())
		if user == nil {
			fmt.Println("not signed in")
			return
		}
		fmt.Printf("%s <%s> role=%s\n", user.Name, user.Email, user.Role)
	},
}

func init() {
	RootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
