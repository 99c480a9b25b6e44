package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/powerclass/marketctl/app"
	"github.com/powerclass/marketctl/core/model"
)

var (
	loginRole    string
	loginUtility string
	loginSession string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Persist the role, utility and session to operate on",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the persisted identity and session",
	RunE:  runLogout,
}

func init() {
	loginCmd.Flags().StringVar(&loginRole, "role", "utility", "role: operator or utility")
	loginCmd.Flags().StringVar(&loginUtility, "utility", "", "utility id to act as")
	loginCmd.Flags().StringVar(&loginSession, "session", "", "session id to select")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		role := model.Role(loginRole)
		if !role.Valid() {
			return fmt.Errorf("unknown role %q", loginRole)
		}
		if err := svc.Store.SetRole(role); err != nil {
			return err
		}
		if loginUtility != "" {
			if err := svc.Store.SetUtilityID(loginUtility); err != nil {
				return err
			}
		}
		if loginSession != "" {
			sess, err := svc.API.GetSession(ctx, loginSession)
			if err != nil {
				return fmt.Errorf("session %s: %w", loginSession, err)
			}
			if _, err := svc.Store.SetCurrentSession(&sess); err != nil {
				return err
			}
			fmt.Printf("session %s (%s), year %d, state %s\n", sess.ID, sess.Name, sess.CurrentYear, sess.State)
		}
		fmt.Printf("logged in as %s", role)
		if loginUtility != "" {
			fmt.Printf(" (utility %s)", loginUtility)
		}
		fmt.Println()
		return nil
	})
}

func runLogout(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		if err := svc.Store.Reset(); err != nil {
			return err
		}
		fmt.Println("identity cleared")
		return nil
	})
}
