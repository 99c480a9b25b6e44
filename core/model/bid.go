package model

import (
	"fmt"
	"time"
)

// LoadPeriod is one of the three demand buckets used for yearly bidding.
type LoadPeriod string

const (
	PeriodOffPeak  LoadPeriod = "off_peak"
	PeriodShoulder LoadPeriod = "shoulder"
	PeriodPeak     LoadPeriod = "peak"
)

// Periods lists the load periods in canonical order.
func Periods() []LoadPeriod {
	return []LoadPeriod{PeriodOffPeak, PeriodShoulder, PeriodPeak}
}

// Hours returns the number of hours a year assigned to the period.
func (p LoadPeriod) Hours() int {
	switch p {
	case PeriodOffPeak:
		return 5000
	case PeriodShoulder:
		return 2500
	case PeriodPeak:
		return 1260
	default:
		return 0
	}
}

// YearlyBid is a utility's offer to sell energy from one plant for one
// simulated year, split into the three load periods. At most one bid per
// (plant, year) is accepted by the server; the client does not enforce this.
type YearlyBid struct {
	ID               string    `json:"id,omitempty"`
	UtilityID        string    `json:"utility_id"`
	PlantID          string    `json:"plant_id"`
	Year             int       `json:"year"`
	OffPeakQuantity  float64   `json:"off_peak_quantity"`
	ShoulderQuantity float64   `json:"shoulder_quantity"`
	PeakQuantity     float64   `json:"peak_quantity"`
	OffPeakPrice     float64   `json:"off_peak_price"`
	ShoulderPrice    float64   `json:"shoulder_price"`
	PeakPrice        float64   `json:"peak_price"`
	Timestamp        time.Time `json:"timestamp,omitempty"`
}

// Validate checks the bid locally before it is submitted. Prices must be
// positive, quantities non-negative, and plant, utility and year set.
func (b YearlyBid) Validate() error {
	if b.PlantID == "" {
		return fmt.Errorf("plant_id is required")
	}
	if b.UtilityID == "" {
		return fmt.Errorf("utility_id is required")
	}
	if b.Year <= 0 {
		return fmt.Errorf("year is required")
	}
	for _, q := range []float64{b.OffPeakQuantity, b.ShoulderQuantity, b.PeakQuantity} {
		if q < 0 {
			return fmt.Errorf("quantities must be non-negative")
		}
	}
	for _, pr := range []float64{b.OffPeakPrice, b.ShoulderPrice, b.PeakPrice} {
		if pr <= 0 {
			return fmt.Errorf("prices must be positive")
		}
	}
	return nil
}

// Quantity returns the MW offered for the period.
func (b YearlyBid) Quantity(p LoadPeriod) float64 {
	switch p {
	case PeriodOffPeak:
		return b.OffPeakQuantity
	case PeriodShoulder:
		return b.ShoulderQuantity
	case PeriodPeak:
		return b.PeakQuantity
	}
	return 0
}

// Price returns the $/MWh asked for the period.
func (b YearlyBid) Price(p LoadPeriod) float64 {
	switch p {
	case PeriodOffPeak:
		return b.OffPeakPrice
	case PeriodShoulder:
		return b.ShoulderPrice
	case PeriodPeak:
		return b.PeakPrice
	}
	return 0
}
