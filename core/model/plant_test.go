package model

import "testing"

func TestPlantIsAvailable(t *testing.T) {
	p := PowerPlant{
		Status:            StatusOperating,
		CommissioningYear: 2026,
		RetirementYear:    2040,
		MaintenanceYears:  []int{2030},
	}
	if p.IsAvailable(2025) {
		t.Errorf("available before commissioning")
	}
	if !p.IsAvailable(2027) {
		t.Errorf("not available in operating window")
	}
	if p.IsAvailable(2030) {
		t.Errorf("available during maintenance year")
	}
	if p.IsAvailable(2040) {
		t.Errorf("available at retirement year")
	}
	p.Status = StatusUnderConstruction
	if p.IsAvailable(2027) {
		t.Errorf("available while under construction")
	}
}

func TestPlantMarginalCost(t *testing.T) {
	p := PowerPlant{
		VariableOMPerMWh: 3.0,
		HeatRate:         6400,
		FuelType:         "natural_gas",
	}
	fuel := map[string]float64{"natural_gas": 4.0}
	// 3.0 variable + 6400*4/1000 fuel + 0.35*50 carbon
	got := p.MarginalCost(fuel, 50, 0.35)
	want := 3.0 + 25.6 + 17.5
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("marginal cost = %v, want %v", got, want)
	}
}

func TestTemplateCapitalCost(t *testing.T) {
	tpl := PlantTemplate{OvernightCostPerKW: 1200}
	if got := tpl.CapitalCost(250); got != 250*1000*1200 {
		t.Fatalf("capital cost = %v", got)
	}
}
