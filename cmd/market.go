package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/powerclass/marketctl/app"
	"github.com/powerclass/marketctl/core/actionlog"
	"github.com/powerclass/marketctl/core/analysis"
	"github.com/powerclass/marketctl/core/model"
	"github.com/powerclass/marketctl/infra/rest"
)

var (
	marketYear      int
	fuelPriceSet    map[string]string
	demandGrowth    float64
	demandOffPeak   float64
	demandShoulder  float64
	demandPeak      float64
	eventYear       int
	eventType       string
	eventImpact     float64
	eventDescriptor string
	renewSolar      float64
	renewWindOn     float64
	renewWindOff    float64
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Market data and operator scenario commands",
}

var marketResultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show clearing results",
	RunE:  runMarketResults,
}

var marketAnalysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Show cross-year price statistics",
	RunE:  runMarketAnalysis,
}

var marketFuelCmd = &cobra.Command{
	Use:   "fuel-prices [year]",
	Short: "Show or set fuel prices for a year",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMarketFuel,
}

var marketDemandCmd = &cobra.Command{
	Use:   "demand",
	Short: "Update the session demand profile",
	RunE:  runMarketDemand,
}

var marketEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List market events",
	RunE:  runMarketEvents,
}

var marketEventCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a market event",
	RunE:  runMarketEventCreate,
}

var marketEventTriggerCmd = &cobra.Command{
	Use:   "trigger <event_id>",
	Short: "Trigger a market event",
	Args:  cobra.ExactArgs(1),
	RunE:  runMarketEventTrigger,
}

var marketEventDeleteCmd = &cobra.Command{
	Use:   "rm <event_id>",
	Short: "Delete a market event",
	Args:  cobra.ExactArgs(1),
	RunE:  runMarketEventDelete,
}

var marketRenewablesCmd = &cobra.Command{
	Use:   "renewables [year]",
	Short: "Show or set renewable availability for a year",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMarketRenewables,
}

func init() {
	marketResultsCmd.Flags().IntVar(&marketYear, "year", 0, "restrict to one year")
	marketFuelCmd.Flags().StringToStringVar(&fuelPriceSet, "set", nil, "fuel=price pairs to set, $/MMBtu")
	marketDemandCmd.Flags().Float64Var(&demandOffPeak, "off-peak", 0, "off-peak demand MW")
	marketDemandCmd.Flags().Float64Var(&demandShoulder, "shoulder", 0, "shoulder demand MW")
	marketDemandCmd.Flags().Float64Var(&demandPeak, "peak", 0, "peak demand MW")
	marketDemandCmd.Flags().Float64Var(&demandGrowth, "growth", 0, "annual demand growth rate")
	marketEventCreateCmd.Flags().IntVar(&eventYear, "year", 0, "event year")
	marketEventCreateCmd.Flags().StringVar(&eventType, "type", "", "event type")
	marketEventCreateCmd.Flags().Float64Var(&eventImpact, "impact", 0, "event impact factor")
	marketEventCreateCmd.Flags().StringVar(&eventDescriptor, "description", "", "event description")
	_ = marketEventCreateCmd.MarkFlagRequired("type")

	marketRenewablesCmd.Flags().Float64Var(&renewSolar, "solar", -1, "solar availability factor")
	marketRenewablesCmd.Flags().Float64Var(&renewWindOn, "wind-onshore", -1, "onshore wind availability factor")
	marketRenewablesCmd.Flags().Float64Var(&renewWindOff, "wind-offshore", -1, "offshore wind availability factor")

	marketEventsCmd.AddCommand(marketEventCreateCmd, marketEventTriggerCmd, marketEventDeleteCmd)
	marketCmd.AddCommand(marketResultsCmd, marketAnalysisCmd, marketFuelCmd, marketDemandCmd,
		marketRenewablesCmd, marketEventsCmd)
	rootCmd.AddCommand(marketCmd)
}

func runMarketResults(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		results, err := svc.API.ListMarketResults(ctx, sess.ID, marketYear)
		if err != nil {
			return err
		}
		svc.Store.AddMarketResults(results)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "YEAR\tPERIOD\tPRICE $/MWh\tCLEARED MW\tENERGY MWh")
		for _, r := range results {
			fmt.Fprintf(w, "%d\t%s\t%.2f\t%.0f\t%.0f\n", r.Year, r.Period, r.ClearingPrice, r.ClearedQuantity, r.TotalEnergy)
		}
		return w.Flush()
	})
}

func runMarketAnalysis(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		results, err := svc.API.ListMarketResults(ctx, sess.ID, 0)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("no cleared results yet")
			return nil
		}
		svc.Store.AddMarketResults(results)

		fmt.Println("energy-weighted average price per year:")
		for _, avg := range analysis.YearlyAverages(results) {
			fmt.Printf("  %d: %.2f $/MWh\n", avg.Year, avg.AveragePrice)
		}
		fmt.Printf("price trend: %+.2f $/MWh per year\n", analysis.PriceTrend(results))
		vol := analysis.Volatility(results)
		for _, p := range model.Periods() {
			if v, ok := vol[p]; ok {
				fmt.Printf("volatility %-9s %.2f\n", p, v)
			}
		}

		// The server adds renewable penetration and utilization on top.
		mya, err := svc.API.MultiYearAnalysis(ctx, sess.ID)
		if err != nil {
			svc.Logger().Debugf("multi-year analysis: %v", err)
			return nil
		}
		if mya.Trends.RenewableGrowthPerYear != 0 {
			fmt.Printf("renewable growth: %+.2f%% per year\n", mya.Trends.RenewableGrowthPerYear*100)
		}
		return nil
	})
}

func runMarketFuel(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		year, err := parseYearArg(args, sess.CurrentYear)
		if err != nil {
			return err
		}
		if len(fuelPriceSet) > 0 {
			prices := model.FuelPrices{Year: year, Prices: make(map[string]float64, len(fuelPriceSet))}
			for fuel, raw := range fuelPriceSet {
				var v float64
				if _, perr := fmt.Sscanf(raw, "%g", &v); perr != nil {
					return fmt.Errorf("invalid price %q for %s", raw, fuel)
				}
				prices.Prices[fuel] = v
			}
			msg, err := svc.API.UpdateFuelPrices(ctx, sess.ID, prices)
			recordAction(svc, actionlog.ActionStateCommand, sess.ID, fmt.Sprintf("fuel prices %d", year), err)
			if err != nil {
				return err
			}
			fmt.Println(msg.Message)
			return nil
		}
		prices, err := svc.API.FuelPrices(ctx, sess.ID, year)
		if err != nil {
			return err
		}
		fmt.Printf("fuel prices %d ($/MMBtu):\n", prices.Year)
		for fuel, v := range prices.Prices {
			fmt.Printf("  %-12s %.2f\n", fuel, v)
		}
		return nil
	})
}

func runMarketDemand(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		profile := model.DemandProfile{
			OffPeakDemand:    demandOffPeak,
			ShoulderDemand:   demandShoulder,
			PeakDemand:       demandPeak,
			DemandGrowthRate: demandGrowth,
		}
		msg, err := svc.API.UpdateDemandProfile(ctx, sess.ID, profile)
		recordAction(svc, actionlog.ActionStateCommand, sess.ID, "demand profile", err)
		if err != nil {
			return err
		}
		fmt.Println(msg.Message)
		return nil
	})
}

func runMarketEvents(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		events, err := svc.API.ListMarketEvents(ctx, sess.ID)
		if errors.Is(err, rest.ErrUnsupported) {
			return fmt.Errorf("the backend does not provide market events")
		}
		if err != nil {
			return err
		}
		for _, ev := range events {
			marker := " "
			if ev.Triggered {
				marker = "*"
			}
			fmt.Printf("%s %s year %d %s impact %.2f: %s\n", marker, ev.ID, ev.Year, ev.EventType, ev.Impact, ev.Description)
		}
		return nil
	})
}

func runMarketEventCreate(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		year := eventYear
		if year == 0 {
			year = sess.CurrentYear
		}
		ev, err := svc.API.CreateMarketEvent(ctx, sess.ID, model.MarketEvent{
			Year:        year,
			EventType:   eventType,
			Description: eventDescriptor,
			Impact:      eventImpact,
		})
		if errors.Is(err, rest.ErrUnsupported) {
			return fmt.Errorf("the backend does not provide market events")
		}
		if err != nil {
			return err
		}
		fmt.Printf("created event %s for year %d\n", ev.ID, ev.Year)
		return nil
	})
}

func runMarketRenewables(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		year, err := parseYearArg(args, sess.CurrentYear)
		if err != nil {
			return err
		}
		if renewSolar >= 0 || renewWindOn >= 0 || renewWindOff >= 0 {
			avail, err := svc.API.RenewableAvailability(ctx, sess.ID, year)
			if err != nil {
				return err
			}
			if renewSolar >= 0 {
				avail.Solar = renewSolar
			}
			if renewWindOn >= 0 {
				avail.WindOn = renewWindOn
			}
			if renewWindOff >= 0 {
				avail.WindOff = renewWindOff
			}
			avail.Year = year
			msg, err := svc.API.UpdateRenewableAvailability(ctx, sess.ID, avail)
			recordAction(svc, actionlog.ActionStateCommand, sess.ID, fmt.Sprintf("renewables %d", year), err)
			if err != nil {
				return err
			}
			fmt.Println(msg.Message)
			return nil
		}
		avail, err := svc.API.RenewableAvailability(ctx, sess.ID, year)
		if err != nil {
			return err
		}
		fmt.Printf("renewable availability %d:\n", avail.Year)
		fmt.Printf("  solar          %.2f\n", avail.Solar)
		fmt.Printf("  wind onshore   %.2f\n", avail.WindOn)
		fmt.Printf("  wind offshore  %.2f\n", avail.WindOff)
		return nil
	})
}

func runMarketEventDelete(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		err = svc.API.DeleteMarketEvent(ctx, sess.ID, args[0])
		if errors.Is(err, rest.ErrUnsupported) {
			return fmt.Errorf("the backend does not provide market events")
		}
		if err != nil {
			return err
		}
		fmt.Printf("deleted event %s\n", args[0])
		return nil
	})
}

func runMarketEventTrigger(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		msg, err := svc.API.TriggerMarketEvent(ctx, sess.ID, args[0])
		recordAction(svc, actionlog.ActionEventTriggered, sess.ID, "event "+args[0], err)
		if errors.Is(err, rest.ErrUnsupported) {
			return fmt.Errorf("the backend does not provide market events")
		}
		if err != nil {
			return err
		}
		fmt.Println(msg.Message)
		return nil
	})
}
