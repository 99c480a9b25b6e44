package rest

import "github.com/powerclass/marketctl/core/model"

// HealthResponse is the backend liveness report. Features advertises optional
// endpoint groups; backends predating capability reporting return none.
type HealthResponse struct {
	Status    string   `json:"status"`
	Version   string   `json:"version"`
	Framework string   `json:"framework"`
	Timestamp string   `json:"timestamp"`
	Features  []string `json:"features,omitempty"`
}

// Capabilities describes which optional endpoint groups the backend provides.
type Capabilities struct {
	MarketEvents bool
}

// CreateUserRequest creates an account.
type CreateUserRequest struct {
	Username string     `json:"username"`
	UserType model.Role `json:"user_type"`
	Budget   float64    `json:"budget,omitempty"`
}

// CreateSessionRequest starts a new game session.
type CreateSessionRequest struct {
	Name              string  `json:"name"`
	OperatorID        string  `json:"operator_id"`
	StartYear         int     `json:"start_year"`
	EndYear           int     `json:"end_year"`
	CarbonPricePerTon float64 `json:"carbon_price_per_ton"`
}

// CreatePlantRequest invests in a new generation asset.
type CreatePlantRequest struct {
	Name                  string          `json:"name"`
	PlantType             model.PlantType `json:"plant_type"`
	CapacityMW            float64         `json:"capacity_mw"`
	ConstructionStartYear int             `json:"construction_start_year"`
	CommissioningYear     int             `json:"commissioning_year"`
	RetirementYear        int             `json:"retirement_year"`
}

// Dashboard is the instructor overview of one session.
type Dashboard struct {
	SessionInfo struct {
		ID          string          `json:"id"`
		Name        string          `json:"name"`
		CurrentYear int             `json:"current_year"`
		State       model.GameState `json:"state"`
		CarbonPrice float64         `json:"carbon_price"`
	} `json:"session_info"`
	MarketStats struct {
		TotalCapacityMW float64 `json:"total_capacity_mw"`
		OperatingPlants int     `json:"operating_plants"`
		CapacityMargin  float64 `json:"capacity_margin"`
	} `json:"market_stats"`
	Participants struct {
		TotalUtilities int `json:"total_utilities"`
	} `json:"participants"`
	CurrentDemandMW map[string]float64 `json:"current_demand_mw"`
	RecentResults   []RecentResult     `json:"recent_results"`
}

// RecentResult is a condensed clearing outcome shown on the dashboard.
type RecentResult struct {
	Year            int              `json:"year"`
	Period          model.LoadPeriod `json:"period"`
	ClearingPrice   float64          `json:"clearing_price"`
	ClearedQuantity float64          `json:"cleared_quantity"`
	Timestamp       string           `json:"timestamp"`
}

// UtilitySummary is one row of the session participant list.
type UtilitySummary struct {
	ID              string  `json:"id"`
	Username        string  `json:"username"`
	Budget          float64 `json:"budget"`
	Debt            float64 `json:"debt"`
	Equity          float64 `json:"equity"`
	PlantCount      int     `json:"plant_count"`
	TotalCapacityMW float64 `json:"total_capacity_mw"`
}

// YearData aggregates one simulated year inside the multi-year analysis.
type YearData struct {
	TotalEnergy          float64 `json:"total_energy"`
	AveragePrice         float64 `json:"average_price"`
	TotalValue           float64 `json:"total_value"`
	RenewablePenetration float64 `json:"renewable_penetration"`
	CapacityUtilization  float64 `json:"capacity_utilization"`
}

// MultiYearAnalysis is the server-side cross-year market summary.
type MultiYearAnalysis struct {
	SessionID  string              `json:"session_id"`
	YearlyData map[string]YearData `json:"yearly_data"`
	Trends     struct {
		PriceTrendPerYear      float64 `json:"price_trend_per_year"`
		RenewableGrowthPerYear float64 `json:"renewable_growth_per_year"`
	} `json:"trends"`
	MarketEvents []model.MarketEvent `json:"market_events"`
}

// UtilityPerformance is one utility's result line in a yearly summary.
type UtilityPerformance struct {
	Revenue       float64 `json:"revenue"`
	VariableCosts float64 `json:"variable_costs"`
	FixedCosts    float64 `json:"fixed_costs"`
	Profit        float64 `json:"profit"`
	EnergySoldMWh float64 `json:"energy_sold_mwh"`
}

// YearlySummary reports the cleared outcome of one simulated year.
type YearlySummary struct {
	Year               int                           `json:"year"`
	State              model.GameState               `json:"state"`
	MarketResults      []model.MarketResult          `json:"market_results"`
	UtilityPerformance map[string]UtilityPerformance `json:"utility_performance"`
	Insights           []string                      `json:"insights"`
}

// PlantEconomics is the per-plant cost/revenue breakdown.
type PlantEconomics struct {
	PlantID               string  `json:"plant_id"`
	MarginalCostPerMWh    float64 `json:"marginal_cost_per_mwh"`
	AnnualGenerationMWh   float64 `json:"annual_generation_mwh"`
	AnnualFixedCosts      float64 `json:"annual_fixed_costs"`
	AnnualRevenueEstimate float64 `json:"annual_revenue_estimate"`
	CapacityFactor        float64 `json:"capacity_factor"`
}

// InvestmentSimulation is the what-if response for a prospective plant.
type InvestmentSimulation struct {
	InvestmentSummary struct {
		PlantType         model.PlantType `json:"plant_type"`
		CapacityMW        float64         `json:"capacity_mw"`
		TotalCapex        float64         `json:"total_capex"`
		ConstructionStart int             `json:"construction_start"`
		CommissioningYear int             `json:"commissioning_year"`
		EconomicLife      int             `json:"economic_life"`
	} `json:"investment_summary"`
	FinancingStructure struct {
		DebtFinancing    float64 `json:"debt_financing"`
		EquityFinancing  float64 `json:"equity_financing"`
		DebtPercentage   float64 `json:"debt_percentage"`
		EquityPercentage float64 `json:"equity_percentage"`
	} `json:"financing_structure"`
	FinancialImpact struct {
		CurrentBudget        float64 `json:"current_budget"`
		PostInvestmentBudget float64 `json:"post_investment_budget"`
		CurrentDebt          float64 `json:"current_debt"`
		PostInvestmentDebt   float64 `json:"post_investment_debt"`
		BudgetSufficient     bool    `json:"budget_sufficient"`
	} `json:"financial_impact"`
	RevenueProjections struct {
		AnnualGenerationMWh     float64 `json:"annual_generation_mwh"`
		EstimatedRevenuePerMWh  float64 `json:"estimated_revenue_per_mwh"`
		AnnualRevenueProjection float64 `json:"annual_revenue_projection"`
		AnnualFixedCosts        float64 `json:"annual_fixed_costs"`
		AnnualEBITDA            float64 `json:"annual_ebitda"`
		AnnualCashFlow          float64 `json:"annual_cash_flow"`
	} `json:"revenue_projections"`
	Recommendation string `json:"recommendation"`
}

// SampleData identifies the demo records created by the seeding endpoint.
type SampleData struct {
	GameSessionID string   `json:"game_session_id"`
	OperatorID    string   `json:"operator_id"`
	UtilityIDs    []string `json:"utility_ids"`
}

// PortfolioAssignment hands a predefined starting portfolio to one utility.
type PortfolioAssignment struct {
	UtilityID    string `json:"utility_id"`
	TemplateName string `json:"template_name"`
}

// StatusMessage is the generic acknowledgment returned by control endpoints.
type StatusMessage struct {
	Message string `json:"message"`
	State   string `json:"state,omitempty"`
}
