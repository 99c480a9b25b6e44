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
	plantName      string
	plantType      string
	plantCapacity  float64
	plantStartYear int
	plantYear      int
	portfolioName  string
)

var plantsCmd = &cobra.Command{
	Use:   "plants",
	Short: "Generation asset commands",
}

var plantsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the plants of the selected utility",
	RunE:  runPlantsLs,
}

var plantsTemplatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the technology catalog",
	RunE:  runPlantsTemplates,
}

var plantsBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Invest in a new plant",
	RunE:  runPlantsBuild,
}

var plantsRetireCmd = &cobra.Command{
	Use:   "retire <plant_id>",
	Short: "Retire a plant",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlantsRetire,
}

var plantsMaintenanceCmd = &cobra.Command{
	Use:   "maintenance <plant_id>",
	Short: "Schedule maintenance for a plant",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlantsMaintenance,
}

var plantsEconomicsCmd = &cobra.Command{
	Use:   "economics <plant_id>",
	Short: "Show a plant's cost and revenue estimates",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlantsEconomics,
}

var plantsPortfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Assign a starting portfolio template to the selected utility",
	RunE:  runPlantsPortfolio,
}

func init() {
	plantsBuildCmd.Flags().StringVar(&plantName, "name", "", "plant name")
	plantsBuildCmd.Flags().StringVar(&plantType, "type", "", "technology, see 'plants templates'")
	plantsBuildCmd.Flags().Float64Var(&plantCapacity, "capacity", 0, "capacity in MW")
	plantsBuildCmd.Flags().IntVar(&plantStartYear, "start-year", 0, "construction start year, defaults to the current year")
	_ = plantsBuildCmd.MarkFlagRequired("name")
	_ = plantsBuildCmd.MarkFlagRequired("type")
	_ = plantsBuildCmd.MarkFlagRequired("capacity")

	plantsRetireCmd.Flags().IntVar(&plantYear, "year", 0, "retirement year, defaults to the current year")
	plantsMaintenanceCmd.Flags().IntVar(&plantYear, "year", 0, "maintenance year, defaults to the next year")
	plantsPortfolioCmd.Flags().StringVar(&portfolioName, "template", "", "portfolio template name")
	_ = plantsPortfolioCmd.MarkFlagRequired("template")

	plantsCmd.AddCommand(plantsLsCmd, plantsTemplatesCmd, plantsBuildCmd,
		plantsRetireCmd, plantsMaintenanceCmd, plantsEconomicsCmd, plantsPortfolioCmd)
	rootCmd.AddCommand(plantsCmd)
}

func requireUtility(svc *app.Service) (string, error) {
	uid := svc.Store.UtilityID()
	if uid == "" {
		return "", fmt.Errorf("no utility selected, run 'marketctl login --utility <id>' first")
	}
	return uid, nil
}

func runPlantsLs(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		uid, err := requireUtility(svc)
		if err != nil {
			return err
		}
		plants, err := svc.API.ListPlants(ctx, sess.ID, uid)
		if err != nil {
			return err
		}
		svc.Store.SetPlants(plants)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tMW\tSTATUS\tONLINE\tRETIRES")
		for _, p := range plants {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%s\t%d\t%d\n",
				p.ID, p.Name, p.PlantType, p.CapacityMW, p.Status, p.CommissioningYear, p.RetirementYear)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("total operating capacity: %.0f MW\n", svc.Store.TotalCapacity())
		return nil
	})
}

func runPlantsTemplates(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		templates, err := svc.API.ListPlantTemplates(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tNAME\t$/kW\tBUILD YRS\tLIFE YRS\tCF\tVAR $/MWh")
		for _, t := range templates {
			fmt.Fprintf(w, "%s\t%s\t%.0f\t%d\t%d\t%.2f\t%.2f\n",
				t.PlantType, t.Name, t.OvernightCostPerKW, t.ConstructionTimeYears,
				t.EconomicLifeYears, t.CapacityFactorBase, t.VariableOMPerMWh)
		}
		return w.Flush()
	})
}

func runPlantsBuild(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		uid, err := requireUtility(svc)
		if err != nil {
			return err
		}
		startYear := plantStartYear
		if startYear == 0 {
			startYear = sess.CurrentYear
		}
		req := rest.CreatePlantRequest{
			Name:                  plantName,
			PlantType:             model.PlantType(plantType),
			CapacityMW:            plantCapacity,
			ConstructionStartYear: startYear,
		}
		plant, err := svc.API.CreatePlant(ctx, sess.ID, uid, req)
		recordAction(svc, actionlog.ActionPlantBuilt, sess.ID,
			fmt.Sprintf("%s %.0f MW %s", plantType, plantCapacity, plantName), err)
		if err != nil {
			return err
		}
		fmt.Printf("built %s (%s), %.0f MW, online %d, capital cost $%.0f\n",
			plant.Name, plant.ID, plant.CapacityMW, plant.CommissioningYear, plant.CapitalCostTotal)
		return nil
	})
}

func runPlantsRetire(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		year := plantYear
		if year == 0 {
			year = sess.CurrentYear
		}
		msg, err := svc.API.RetirePlant(ctx, sess.ID, args[0], year)
		recordAction(svc, actionlog.ActionPlantRetired, sess.ID,
			fmt.Sprintf("plant %s in %d", args[0], year), err)
		if err != nil {
			return err
		}
		fmt.Println(msg.Message)
		return nil
	})
}

func runPlantsMaintenance(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		year := plantYear
		if year == 0 {
			year = sess.CurrentYear + 1
		}
		msg, err := svc.API.ScheduleMaintenance(ctx, sess.ID, args[0], year)
		recordAction(svc, actionlog.ActionMaintenanceSet, sess.ID,
			fmt.Sprintf("plant %s in %d", args[0], year), err)
		if err != nil {
			return err
		}
		fmt.Println(msg.Message)
		return nil
	})
}

func runPlantsEconomics(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		eco, err := svc.API.PlantEconomics(ctx, sess.ID, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("plant %s\n", eco.PlantID)
		fmt.Printf("  marginal cost:     %.2f $/MWh\n", eco.MarginalCostPerMWh)
		fmt.Printf("  annual generation: %.0f MWh (CF %.2f)\n", eco.AnnualGenerationMWh, eco.CapacityFactor)
		fmt.Printf("  annual fixed cost: $%.0f\n", eco.AnnualFixedCosts)
		fmt.Printf("  revenue estimate:  $%.0f\n", eco.AnnualRevenueEstimate)
		return nil
	})
}

func runPlantsPortfolio(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		uid, err := requireUtility(svc)
		if err != nil {
			return err
		}
		msg, err := svc.API.AssignPortfolioTemplate(ctx, sess.ID, rest.PortfolioAssignment{
			UtilityID:    uid,
			TemplateName: portfolioName,
		})
		recordAction(svc, actionlog.ActionPortfolioAssign, sess.ID, portfolioName, err)
		if err != nil {
			return err
		}
		fmt.Println(msg.Message)
		return nil
	})
}
