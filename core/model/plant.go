package model

// PlantType identifies a generation technology.
type PlantType string

const (
	PlantCoal         PlantType = "coal"
	PlantGasCC        PlantType = "natural_gas_cc"
	PlantGasCT        PlantType = "natural_gas_ct"
	PlantNuclear      PlantType = "nuclear"
	PlantSolar        PlantType = "solar"
	PlantWindOnshore  PlantType = "wind_onshore"
	PlantWindOffshore PlantType = "wind_offshore"
	PlantBattery      PlantType = "battery"
	PlantHydro        PlantType = "hydro"
	PlantBiomass      PlantType = "biomass"
)

// PlantStatus is the lifecycle state of a generation asset.
type PlantStatus string

const (
	StatusPlanned           PlantStatus = "planned"
	StatusUnderConstruction PlantStatus = "under_construction"
	StatusOperating         PlantStatus = "operating"
	StatusMaintenance       PlantStatus = "maintenance"
	StatusRetired           PlantStatus = "retired"
)

// PowerPlant is a generation asset owned by one utility within one session.
type PowerPlant struct {
	ID                    string      `json:"id"`
	UtilityID             string      `json:"utility_id"`
	SessionID             string      `json:"game_session_id"`
	Name                  string      `json:"name"`
	PlantType             PlantType   `json:"plant_type"`
	CapacityMW            float64     `json:"capacity_mw"`
	ConstructionStartYear int         `json:"construction_start_year"`
	CommissioningYear     int         `json:"commissioning_year"`
	RetirementYear        int         `json:"retirement_year"`
	Status                PlantStatus `json:"status"`
	CapitalCostTotal      float64     `json:"capital_cost_total"`
	FixedOMAnnual         float64     `json:"fixed_om_annual"`
	VariableOMPerMWh      float64     `json:"variable_om_per_mwh"`
	CapacityFactor        float64     `json:"capacity_factor"`
	HeatRate              float64     `json:"heat_rate,omitempty"` // BTU/kWh, thermal plants only
	FuelType              string      `json:"fuel_type,omitempty"`
	MinGenerationMW       float64     `json:"min_generation_mw"`
	MaintenanceYears      []int       `json:"maintenance_years,omitempty"`
}

// IsAvailable reports whether the plant can run in the given year: it must be
// operating, within its commissioning/retirement window and not scheduled for
// maintenance that year.
func (p PowerPlant) IsAvailable(year int) bool {
	if p.Status != StatusOperating {
		return false
	}
	if year < p.CommissioningYear || year >= p.RetirementYear {
		return false
	}
	for _, y := range p.MaintenanceYears {
		if y == year {
			return false
		}
	}
	return true
}

// MarginalCost returns the short-run cost per MWh: variable O&M plus fuel cost
// derived from the heat rate plus the carbon cost of the plant's emissions.
// Fuel prices are $/MMBtu keyed by fuel type; emissionsPerMWh is tons CO2/MWh.
func (p PowerPlant) MarginalCost(fuelPrices map[string]float64, carbonPricePerTon, emissionsPerMWh float64) float64 {
	cost := p.VariableOMPerMWh
	if p.FuelType != "" && p.HeatRate > 0 {
		// heat rate BTU/kWh * $/MMBtu -> $/MWh
		cost += p.HeatRate * fuelPrices[p.FuelType] / 1000
	}
	cost += emissionsPerMWh * carbonPricePerTon
	return cost
}

// PlantTemplate is a catalog entry describing the economics of a technology.
type PlantTemplate struct {
	PlantType             PlantType `json:"plant_type"`
	Name                  string    `json:"name"`
	OvernightCostPerKW    float64   `json:"overnight_cost_per_kw"`
	ConstructionTimeYears int       `json:"construction_time_years"`
	EconomicLifeYears     int       `json:"economic_life_years"`
	CapacityFactorBase    float64   `json:"capacity_factor_base"`
	HeatRate              float64   `json:"heat_rate,omitempty"`
	FuelType              string    `json:"fuel_type,omitempty"`
	FixedOMPerKWYear      float64   `json:"fixed_om_per_kw_year"`
	VariableOMPerMWh      float64   `json:"variable_om_per_mwh"`
	MinGenerationPct      float64   `json:"min_generation_pct"`
	CO2TonsPerMWh         float64   `json:"co2_emissions_tons_per_mwh"`
}

// CapitalCost returns the overnight capital cost for a plant of the given
// capacity in MW.
func (t PlantTemplate) CapitalCost(capacityMW float64) float64 {
	return capacityMW * 1000 * t.OvernightCostPerKW
}

// UtilityFinancials is the server-computed financial position of one utility
// in one session. Refreshed by polling, never mutated directly by the client.
type UtilityFinancials struct {
	UtilityID            string  `json:"utility_id"`
	Budget               float64 `json:"budget"`
	Debt                 float64 `json:"debt"`
	Equity               float64 `json:"equity"`
	TotalCapitalInvested float64 `json:"total_capital_invested"`
	AnnualFixedCosts     float64 `json:"annual_fixed_costs"`
	PlantCount           int     `json:"plant_count"`
	TotalCapacityMW      float64 `json:"total_capacity_mw"`
}
