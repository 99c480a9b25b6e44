package export

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/powerclass/marketctl/core/model"
)

// PriceChartHTML renders a line chart of clearing prices over the simulated
// years, one series per load period, and returns it as a standalone HTML
// document.
func PriceChartHTML(results []model.MarketResult) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Clearing Prices"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Year"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Price ($/MWh)"}),
	)

	years := make(map[int]bool)
	byPeriod := make(map[model.LoadPeriod]map[int]float64)
	for _, r := range results {
		years[r.Year] = true
		if byPeriod[r.Period] == nil {
			byPeriod[r.Period] = make(map[int]float64)
		}
		byPeriod[r.Period][r.Year] = r.ClearingPrice
	}
	sortedYears := make([]int, 0, len(years))
	for y := range years {
		sortedYears = append(sortedYears, y)
	}
	sort.Ints(sortedYears)

	var xAxis []string
	for _, y := range sortedYears {
		xAxis = append(xAxis, strconv.Itoa(y))
	}
	line.SetXAxis(xAxis)

	for _, period := range model.Periods() {
		prices, ok := byPeriod[period]
		if !ok {
			continue
		}
		var series []opts.LineData
		for _, y := range sortedYears {
			if price, ok := prices[y]; ok {
				series = append(series, opts.LineData{Value: price})
			} else {
				series = append(series, opts.LineData{Value: nil})
			}
		}
		line.AddSeries(string(period), series)
	}

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
