package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powerclass/marketctl/core/model"
)

func sampleResults() []model.MarketResult {
	ts := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return []model.MarketResult{
		{Year: 2025, Period: model.PeriodPeak, ClearingPrice: 62.5, ClearedQuantity: 2200, TotalEnergy: 2772000, Timestamp: ts},
		{Year: 2026, Period: model.PeriodPeak, ClearingPrice: 64, ClearedQuantity: 2300, TotalEnergy: 2898000, Timestamp: ts},
		{Year: 2026, Period: model.PeriodOffPeak, ClearingPrice: 21, ClearedQuantity: 1100, TotalEnergy: 5500000, Timestamp: ts},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResults()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "year", records[0][0])
	assert.Equal(t, "2025", records[1][0])
	assert.Equal(t, "peak", records[1][1])
	assert.Equal(t, "62.5", records[1][2])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResults()))
	var decoded []model.MarketResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, model.PeriodOffPeak, decoded[2].Period)
}

func TestPriceChartHTML(t *testing.T) {
	html, err := PriceChartHTML(sampleResults())
	require.NoError(t, err)
	assert.True(t, strings.Contains(html, "Clearing Prices"))
	assert.True(t, strings.Contains(html, "peak"))
}
