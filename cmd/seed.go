package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/powerclass/marketctl/app"
	"github.com/powerclass/marketctl/core/model"
	"github.com/powerclass/marketctl/infra/rest"
)

var (
	userName   string
	userRole   string
	userBudget float64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create demo data and select the demo session",
	RunE:  runSeed,
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Account commands",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	RunE:  runUserCreate,
}

var userLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List accounts",
	RunE:  runUserLs,
}

func init() {
	userCreateCmd.Flags().StringVar(&userName, "name", "", "username")
	userCreateCmd.Flags().StringVar(&userRole, "role", "utility", "role: operator or utility")
	userCreateCmd.Flags().Float64Var(&userBudget, "budget", 0, "starting budget for utilities")
	_ = userCreateCmd.MarkFlagRequired("name")

	userCmd.AddCommand(userCreateCmd, userLsCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(userCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		data, err := svc.API.CreateSampleData(ctx)
		if err != nil {
			return err
		}
		sess, err := svc.API.GetSession(ctx, data.GameSessionID)
		if err != nil {
			return err
		}
		if _, err := svc.Store.SetCurrentSession(&sess); err != nil {
			return err
		}
		fmt.Printf("created demo session %s with %d utilities\n", data.GameSessionID, len(data.UtilityIDs))
		for _, uid := range data.UtilityIDs {
			fmt.Printf("  utility %s\n", uid)
		}
		return nil
	})
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		role := model.Role(userRole)
		if !role.Valid() {
			return fmt.Errorf("unknown role %q", userRole)
		}
		user, err := svc.API.CreateUser(ctx, rest.CreateUserRequest{
			Username: userName,
			UserType: role,
			Budget:   userBudget,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created %s %s (%s)\n", user.UserType, user.Username, user.ID)
		return nil
	})
}

func runUserLs(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		users, err := svc.API.ListUsers(ctx)
		if err != nil {
			return err
		}
		for _, u := range users {
			fmt.Printf("%s  %-8s  %s\n", u.ID, u.UserType, u.Username)
		}
		return nil
	})
}
