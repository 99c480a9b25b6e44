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
)

var (
	bidPlant    string
	bidYear     int
	bidOffPeak  []float64
	bidShoulder []float64
	bidPeak     []float64
)

var bidCmd = &cobra.Command{
	Use:   "bid",
	Short: "Yearly bid commands",
}

var bidSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a yearly bid for one plant",
	Long: `Submit a yearly bid for one plant. Each load period takes a
"quantity,price" pair, quantity in MW and price in $/MWh.`,
	RunE: runBidSubmit,
}

var bidLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the utility's bids for a year",
	RunE:  runBidLs,
}

func init() {
	bidSubmitCmd.Flags().StringVar(&bidPlant, "plant", "", "plant id")
	bidSubmitCmd.Flags().IntVar(&bidYear, "year", 0, "bid year, defaults to the current year")
	bidSubmitCmd.Flags().Float64SliceVar(&bidOffPeak, "off-peak", nil, "off-peak quantity,price")
	bidSubmitCmd.Flags().Float64SliceVar(&bidShoulder, "shoulder", nil, "shoulder quantity,price")
	bidSubmitCmd.Flags().Float64SliceVar(&bidPeak, "peak", nil, "peak quantity,price")
	_ = bidSubmitCmd.MarkFlagRequired("plant")

	bidLsCmd.Flags().IntVar(&bidYear, "year", 0, "bid year, defaults to the current year")

	bidCmd.AddCommand(bidSubmitCmd, bidLsCmd)
	rootCmd.AddCommand(bidCmd)
}

func pairValues(name string, pair []float64) (qty, price float64, err error) {
	if len(pair) == 0 {
		return 0, 0, nil
	}
	if len(pair) != 2 {
		return 0, 0, fmt.Errorf("--%s wants quantity,price", name)
	}
	return pair[0], pair[1], nil
}

func runBidSubmit(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		uid, err := requireUtility(svc)
		if err != nil {
			return err
		}
		year := bidYear
		if year == 0 {
			year = sess.CurrentYear
		}
		bid := model.YearlyBid{UtilityID: uid, PlantID: bidPlant, Year: year}
		if bid.OffPeakQuantity, bid.OffPeakPrice, err = pairValues("off-peak", bidOffPeak); err != nil {
			return err
		}
		if bid.ShoulderQuantity, bid.ShoulderPrice, err = pairValues("shoulder", bidShoulder); err != nil {
			return err
		}
		if bid.PeakQuantity, bid.PeakPrice, err = pairValues("peak", bidPeak); err != nil {
			return err
		}
		// Reject malformed bids locally before they hit the server.
		if err := bid.Validate(); err != nil {
			return fmt.Errorf("invalid bid: %w", err)
		}
		submitted, err := svc.API.SubmitYearlyBid(ctx, sess.ID, bid)
		recordAction(svc, actionlog.ActionBidSubmitted, sess.ID,
			fmt.Sprintf("plant %s year %d", bidPlant, year), err)
		if err != nil {
			return err
		}
		fmt.Printf("bid %s accepted for plant %s, year %d\n", submitted.ID, submitted.PlantID, submitted.Year)
		return nil
	})
}

func runBidLs(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		uid, err := requireUtility(svc)
		if err != nil {
			return err
		}
		year := bidYear
		if year == 0 {
			year = sess.CurrentYear
		}
		bids, err := svc.API.ListYearlyBids(ctx, sess.ID, uid, year)
		if err != nil {
			return err
		}
		svc.Store.SetBids(bids)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PLANT\tYEAR\tOFF-PEAK\tSHOULDER\tPEAK")
		for _, b := range bids {
			fmt.Fprintf(w, "%s\t%d\t%.0f MW @ %.2f\t%.0f MW @ %.2f\t%.0f MW @ %.2f\n",
				b.PlantID, b.Year,
				b.OffPeakQuantity, b.OffPeakPrice,
				b.ShoulderQuantity, b.ShoulderPrice,
				b.PeakQuantity, b.PeakPrice)
		}
		return w.Flush()
	})
}
