package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/powerclass/marketctl/app"
	"github.com/powerclass/marketctl/core/actionlog"
	"github.com/powerclass/marketctl/infra/rest"
)

var yearCmd = &cobra.Command{
	Use:   "year",
	Short: "Operator commands driving the annual cycle",
}

var yearPlanCmd = &cobra.Command{
	Use:   "plan [year]",
	Short: "Open the planning phase for a year",
	Args:  cobra.MaximumNArgs(1),
	RunE:  yearAction("start-year-planning"),
}

var yearBiddingCmd = &cobra.Command{
	Use:   "open-bidding [year]",
	Short: "Open annual bidding for a year",
	Args:  cobra.MaximumNArgs(1),
	RunE:  yearAction("open-annual-bidding"),
}

var yearClearCmd = &cobra.Command{
	Use:   "clear [year]",
	Short: "Clear the annual markets for a year",
	Args:  cobra.MaximumNArgs(1),
	RunE:  yearAction("clear-annual-markets"),
}

var yearCompleteCmd = &cobra.Command{
	Use:   "complete [year]",
	Short: "Complete a year and publish its summary",
	Args:  cobra.MaximumNArgs(1),
	RunE:  yearAction("complete-year"),
}

var yearSummaryCmd = &cobra.Command{
	Use:   "summary [year]",
	Short: "Show the cleared outcome of a year",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runYearSummary,
}

func init() {
	yearCmd.AddCommand(yearPlanCmd, yearBiddingCmd, yearClearCmd, yearCompleteCmd, yearSummaryCmd)
	rootCmd.AddCommand(yearCmd)
}

func yearAction(action string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *app.Service) error {
			sess, err := requireSession(svc)
			if err != nil {
				return err
			}
			year, err := parseYearArg(args, sess.CurrentYear)
			if err != nil {
				return err
			}
			var msg rest.StatusMessage
			switch action {
			case "start-year-planning":
				msg, err = svc.API.StartYearPlanning(ctx, sess.ID, year)
			case "open-annual-bidding":
				msg, err = svc.API.OpenAnnualBidding(ctx, sess.ID, year)
			case "clear-annual-markets":
				msg, err = svc.API.ClearAnnualMarkets(ctx, sess.ID, year)
			case "complete-year":
				msg, err = svc.API.CompleteYear(ctx, sess.ID, year)
			}
			recordAction(svc, actionlog.ActionStateCommand, sess.ID, fmt.Sprintf("%s %d", action, year), err)
			if err != nil {
				return err
			}
			fmt.Println(msg.Message)
			return nil
		})
	}
}

func runYearSummary(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		year, err := parseYearArg(args, sess.CurrentYear)
		if err != nil {
			return err
		}
		sum, err := svc.API.YearlySummary(ctx, sess.ID, year)
		if err != nil {
			return err
		}
		fmt.Printf("year %d (%s)\n", sum.Year, sum.State)
		for _, r := range sum.MarketResults {
			fmt.Printf("  %-9s %.2f $/MWh, %.0f MW cleared, %.0f MWh\n", r.Period, r.ClearingPrice, r.ClearedQuantity, r.TotalEnergy)
		}
		if len(sum.UtilityPerformance) > 0 {
			fmt.Println("utility performance:")
			for uid, p := range sum.UtilityPerformance {
				fmt.Printf("  %s: revenue %.0f, costs %.0f, profit %.0f\n", uid, p.Revenue, p.VariableCosts+p.FixedCosts, p.Profit)
			}
		}
		for _, line := range sum.Insights {
			fmt.Printf("note: %s\n", line)
		}
		return nil
	})
}
