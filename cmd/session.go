package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/powerclass/marketctl/app"
	"github.com/powerclass/marketctl/core/actionlog"
	"github.com/powerclass/marketctl/core/model"
	"github.com/powerclass/marketctl/infra/rest"
)

var (
	sessionName        string
	sessionOperator    string
	sessionStartYear   int
	sessionEndYear     int
	sessionCarbonPrice float64
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Game session commands",
}

var sessionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a game session and select it",
	RunE:  runSessionCreate,
}

var sessionSelectCmd = &cobra.Command{
	Use:   "select <id>",
	Short: "Select an existing session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionSelect,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the selected session",
	RunE:  runSessionShow,
}

var sessionStateCmd = &cobra.Command{
	Use:   "state <new_state>",
	Short: "Set the session phase",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionState,
}

var sessionAdvanceCmd = &cobra.Command{
	Use:   "advance",
	Short: "Advance the session to the next year",
	RunE:  runSessionAdvance,
}

var sessionDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the session overview",
	RunE:  runSessionDashboard,
}

var sessionUtilitiesCmd = &cobra.Command{
	Use:   "utilities",
	Short: "List session participants",
	RunE:  runSessionUtilities,
}

func init() {
	sessionCreateCmd.Flags().StringVar(&sessionName, "name", "", "session name")
	sessionCreateCmd.Flags().StringVar(&sessionOperator, "operator", "", "operator user id")
	sessionCreateCmd.Flags().IntVar(&sessionStartYear, "start-year", 2025, "first simulated year")
	sessionCreateCmd.Flags().IntVar(&sessionEndYear, "end-year", 2035, "last simulated year")
	sessionCreateCmd.Flags().Float64Var(&sessionCarbonPrice, "carbon-price", 0, "carbon price in $/ton")
	_ = sessionCreateCmd.MarkFlagRequired("name")
	_ = sessionCreateCmd.MarkFlagRequired("operator")

	sessionCmd.AddCommand(sessionCreateCmd, sessionSelectCmd, sessionShowCmd,
		sessionStateCmd, sessionAdvanceCmd, sessionDashboardCmd, sessionUtilitiesCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runSessionCreate(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := svc.API.CreateSession(ctx, rest.CreateSessionRequest{
			Name:              sessionName,
			OperatorID:        sessionOperator,
			StartYear:         sessionStartYear,
			EndYear:           sessionEndYear,
			CarbonPricePerTon: sessionCarbonPrice,
		})
		if err != nil {
			return err
		}
		if _, err := svc.Store.SetCurrentSession(&sess); err != nil {
			return err
		}
		fmt.Printf("created session %s (%s), years %d-%d\n", sess.ID, sess.Name, sess.StartYear, sess.EndYear)
		return nil
	})
}

func runSessionSelect(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := svc.API.GetSession(ctx, args[0])
		if err != nil {
			return err
		}
		if _, err := svc.Store.SetCurrentSession(&sess); err != nil {
			return err
		}
		fmt.Printf("selected session %s (%s), year %d, state %s\n", sess.ID, sess.Name, sess.CurrentYear, sess.State)
		return nil
	})
}

func runSessionShow(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		// Refresh before printing so the phase is current.
		got, err := svc.API.GetSession(ctx, sess.ID)
		if err == nil {
			if _, serr := svc.Store.SetCurrentSession(&got); serr == nil {
				sess = &got
			}
		}
		fmt.Printf("session:  %s (%s)\n", sess.ID, sess.Name)
		fmt.Printf("years:    %d-%d (current %d, %d remaining)\n", sess.StartYear, sess.EndYear, sess.CurrentYear, sess.YearsRemaining())
		fmt.Printf("state:    %s\n", sess.State)
		fmt.Printf("phase:    %s\n", sess.State.Label())
		if sess.CarbonPricePerTon > 0 {
			fmt.Printf("carbon:   $%.2f/ton\n", sess.CarbonPricePerTon)
		}
		if role := svc.Store.Role(); role != "" {
			fmt.Printf("role:     %s\n", role)
		}
		if uid := svc.Store.UtilityID(); uid != "" {
			fmt.Printf("utility:  %s\n", uid)
		}
		return nil
	})
}

func runSessionState(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		state := model.GameState(args[0])
		if !state.Valid() {
			return fmt.Errorf("unknown state %q", args[0])
		}
		msg, err := svc.API.UpdateSessionState(ctx, sess.ID, state)
		recordAction(svc, actionlog.ActionStateCommand, sess.ID, "set state "+string(state), err)
		if err != nil {
			return err
		}
		fmt.Println(msg.Message)
		return nil
	})
}

func runSessionAdvance(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		msg, err := svc.API.AdvanceYear(ctx, sess.ID)
		recordAction(svc, actionlog.ActionStateCommand, sess.ID, "advance year", err)
		if err != nil {
			return err
		}
		fmt.Println(msg.Message)
		return nil
	})
}

func runSessionDashboard(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		view, err := svc.FetchDashboard(ctx)
		if err != nil {
			return err
		}
		d := view.Dashboard
		fmt.Printf("%s, year %d, state %s\n", d.SessionInfo.Name, d.SessionInfo.CurrentYear, d.SessionInfo.State)
		fmt.Printf("capacity: %.0f MW across %d operating plants, %d utilities\n",
			d.MarketStats.TotalCapacityMW, d.MarketStats.OperatingPlants, d.Participants.TotalUtilities)
		if len(d.CurrentDemandMW) > 0 {
			fmt.Println("demand (MW):")
			for _, p := range model.Periods() {
				if mw, ok := d.CurrentDemandMW[string(p)]; ok {
					fmt.Printf("  %-9s %.0f\n", p, mw)
				}
			}
		}
		if len(view.Results) > 0 {
			fmt.Println("recent clearing prices:")
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "YEAR\tPERIOD\tPRICE $/MWh\tCLEARED MW")
			for _, r := range view.Results {
				fmt.Fprintf(w, "%d\t%s\t%.2f\t%.0f\n", r.Year, r.Period, r.ClearingPrice, r.ClearedQuantity)
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}
		return nil
	})
}

func runSessionUtilities(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		utils, err := svc.API.ListUtilities(ctx, sess.ID)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "UTILITY\tUSER\tBUDGET\tPLANTS\tCAPACITY MW")
		for _, u := range utils {
			fmt.Fprintf(w, "%s\t%s\t%.0f\t%d\t%.0f\n", u.ID, u.Username, u.Budget, u.PlantCount, u.TotalCapacityMW)
		}
		return w.Flush()
	})
}
