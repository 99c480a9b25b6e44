package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/powerclass/marketctl/core/model"
)

// YearlyAverage is the energy-weighted average clearing price of one year.
type YearlyAverage struct {
	Year         int
	AveragePrice float64 // $/MWh, weighted by cleared energy
	TotalEnergy  float64 // MWh
	TotalValue   float64 // $
}

// YearlyAverages aggregates clearing results per year, sorted by year.
// Results with zero energy contribute value but not to the weighted price.
func YearlyAverages(results []model.MarketResult) []YearlyAverage {
	byYear := make(map[int]*YearlyAverage)
	for _, r := range results {
		a, ok := byYear[r.Year]
		if !ok {
			a = &YearlyAverage{Year: r.Year}
			byYear[r.Year] = a
		}
		a.TotalEnergy += r.TotalEnergy
		a.TotalValue += r.ClearingPrice * r.TotalEnergy
	}
	out := make([]YearlyAverage, 0, len(byYear))
	for _, a := range byYear {
		if a.TotalEnergy > 0 {
			a.AveragePrice = a.TotalValue / a.TotalEnergy
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// PriceTrend fits a least-squares line through the yearly average prices and
// returns its slope in $/MWh per year. Fewer than two years yields zero.
func PriceTrend(results []model.MarketResult) float64 {
	averages := YearlyAverages(results)
	if len(averages) < 2 {
		return 0
	}
	xs := make([]float64, len(averages))
	ys := make([]float64, len(averages))
	for i, a := range averages {
		xs[i] = float64(a.Year)
		ys[i] = a.AveragePrice
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope
}

// Volatility returns the standard deviation of clearing prices per load
// period. Periods with fewer than two observations report zero.
func Volatility(results []model.MarketResult) map[model.LoadPeriod]float64 {
	prices := make(map[model.LoadPeriod][]float64)
	for _, r := range results {
		prices[r.Period] = append(prices[r.Period], r.ClearingPrice)
	}
	out := make(map[model.LoadPeriod]float64, len(prices))
	for period, ps := range prices {
		if len(ps) < 2 {
			out[period] = 0
			continue
		}
		out[period] = stat.StdDev(ps, nil)
	}
	return out
}

// PlantRevenue estimates the revenue one plant earned from cleared results:
// for every result whose accepted bids include one of the plant's bids, the
// bid quantity (capped by cleared quantity) priced at the clearing price over
// the period's hours.
func PlantRevenue(plant model.PowerPlant, bids []model.YearlyBid, results []model.MarketResult) float64 {
	bidByID := make(map[string]model.YearlyBid)
	for _, b := range bids {
		if b.PlantID == plant.ID {
			bidByID[b.ID] = b
		}
	}
	var revenue float64
	for _, r := range results {
		for _, accepted := range r.AcceptedBids {
			b, ok := bidByID[accepted]
			if !ok || b.Year != r.Year {
				continue
			}
			qty := b.Quantity(r.Period)
			if r.ClearedQuantity > 0 && qty > r.ClearedQuantity {
				qty = r.ClearedQuantity
			}
			revenue += qty * float64(r.Period.Hours()) * r.ClearingPrice
		}
	}
	return revenue
}
