package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powerclass/marketctl/core/model"
)

func TestYearlyAverages(t *testing.T) {
	results := []model.MarketResult{
		{Year: 2026, Period: model.PeriodOffPeak, ClearingPrice: 20, TotalEnergy: 1000},
		{Year: 2026, Period: model.PeriodPeak, ClearingPrice: 80, TotalEnergy: 1000},
		{Year: 2025, Period: model.PeriodPeak, ClearingPrice: 60, TotalEnergy: 500},
	}
	averages := YearlyAverages(results)
	require.Len(t, averages, 2)
	assert.Equal(t, 2025, averages[0].Year)
	assert.InDelta(t, 60, averages[0].AveragePrice, 1e-9)
	assert.Equal(t, 2026, averages[1].Year)
	// (20*1000 + 80*1000) / 2000
	assert.InDelta(t, 50, averages[1].AveragePrice, 1e-9)
}

func TestPriceTrend(t *testing.T) {
	var results []model.MarketResult
	// Average price rises by exactly 2 $/MWh per year.
	for i, price := range []float64{40, 42, 44, 46} {
		results = append(results, model.MarketResult{
			Year: 2025 + i, Period: model.PeriodShoulder, ClearingPrice: price, TotalEnergy: 100,
		})
	}
	assert.InDelta(t, 2.0, PriceTrend(results), 1e-9)
	assert.Zero(t, PriceTrend(results[:1]))
	assert.Zero(t, PriceTrend(nil))
}

func TestVolatility(t *testing.T) {
	results := []model.MarketResult{
		{Year: 2025, Period: model.PeriodPeak, ClearingPrice: 50},
		{Year: 2026, Period: model.PeriodPeak, ClearingPrice: 70},
		{Year: 2025, Period: model.PeriodOffPeak, ClearingPrice: 20},
	}
	vol := Volatility(results)
	// Sample std-dev of {50, 70} is sqrt(200).
	assert.InDelta(t, math.Sqrt(200), vol[model.PeriodPeak], 1e-9)
	assert.Zero(t, vol[model.PeriodOffPeak])
}

func TestPlantRevenue(t *testing.T) {
	plant := model.PowerPlant{ID: "p1"}
	bids := []model.YearlyBid{
		{ID: "b1", PlantID: "p1", Year: 2026, PeakQuantity: 100, PeakPrice: 55},
		{ID: "b2", PlantID: "p2", Year: 2026, PeakQuantity: 100, PeakPrice: 45},
	}
	results := []model.MarketResult{
		{
			Year: 2026, Period: model.PeriodPeak,
			ClearingPrice: 60, ClearedQuantity: 500,
			AcceptedBids: []string{"b1", "b2"},
		},
	}
	// 100 MW * 1260 peak hours * 60 $/MWh
	assert.InDelta(t, 100*1260*60, PlantRevenue(plant, bids, results), 1e-9)

	// A plant with no accepted bids earns nothing.
	other := model.PowerPlant{ID: "p3"}
	assert.Zero(t, PlantRevenue(other, bids, results))
}
