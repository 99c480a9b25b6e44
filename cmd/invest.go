package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/powerclass/marketctl/app"
	"github.com/powerclass/marketctl/core/model"
)

var (
	investType      string
	investCapacity  float64
	investStartYear int
)

var investCmd = &cobra.Command{
	Use:   "invest",
	Short: "Investment planning commands",
}

var investSimulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate a plant investment without committing",
	RunE:  runInvestSimulate,
}

func init() {
	investSimulateCmd.Flags().StringVar(&investType, "type", "", "technology, see 'plants templates'")
	investSimulateCmd.Flags().Float64Var(&investCapacity, "capacity", 0, "capacity in MW")
	investSimulateCmd.Flags().IntVar(&investStartYear, "start-year", 0, "construction start year, defaults to the current year")
	_ = investSimulateCmd.MarkFlagRequired("type")
	_ = investSimulateCmd.MarkFlagRequired("capacity")

	investCmd.AddCommand(investSimulateCmd)
	rootCmd.AddCommand(investCmd)
}

func runInvestSimulate(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		uid, err := requireUtility(svc)
		if err != nil {
			return err
		}
		startYear := investStartYear
		if startYear == 0 {
			startYear = sess.CurrentYear
		}
		sim, err := svc.API.SimulateInvestment(ctx, sess.ID, uid, model.PlantType(investType), investCapacity, startYear)
		if err != nil {
			return err
		}
		s := sim.InvestmentSummary
		fin := sim.FinancingStructure
		impact := sim.FinancialImpact
		fmt.Printf("%s, %.0f MW, online %d, life %d years\n", s.PlantType, s.CapacityMW, s.CommissioningYear, s.EconomicLife)
		fmt.Printf("capex:     $%.0f (%.0f%% debt, %.0f%% equity)\n", s.TotalCapex, fin.DebtPercentage, fin.EquityPercentage)
		fmt.Printf("budget:    $%.0f -> $%.0f\n", impact.CurrentBudget, impact.PostInvestmentBudget)
		if sim.Recommendation != "" {
			fmt.Printf("verdict:   %s\n", sim.Recommendation)
		}
		return nil
	})
}
