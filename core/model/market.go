package model

import "time"

// MarketResult is the server-computed clearing outcome for one year and load
// period. Append-only from the client's perspective.
type MarketResult struct {
	Year            int        `json:"year"`
	Period          LoadPeriod `json:"period"`
	ClearingPrice   float64    `json:"clearing_price"`   // $/MWh
	ClearedQuantity float64    `json:"cleared_quantity"` // MW
	TotalEnergy     float64    `json:"total_energy"`     // MWh
	AcceptedBids    []string   `json:"accepted_supply_bids,omitempty"`
	MarginalPlant   string     `json:"marginal_plant,omitempty"`
	Timestamp       time.Time  `json:"timestamp"`
}

// MarketValue returns the total value cleared in this result.
func (r MarketResult) MarketValue() float64 {
	return r.ClearingPrice * r.TotalEnergy
}

// FuelPrices holds $/MMBtu prices per fuel type for one year.
type FuelPrices struct {
	Year   int                `json:"year"`
	Prices map[string]float64 `json:"prices"`
}

// RenewableAvailability holds per-period capacity-factor multipliers for the
// renewable fleet in one year.
type RenewableAvailability struct {
	Year     int     `json:"year"`
	Solar    float64 `json:"solar_availability"`
	WindOn   float64 `json:"wind_onshore_availability"`
	WindOff  float64 `json:"wind_offshore_availability"`
	Comments string  `json:"comments,omitempty"`
}
