package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/powerclass/marketctl/core/model"
)

// WriteJSON writes the clearing results to w in JSON format.
func WriteJSON(w io.Writer, results []model.MarketResult) error {
	enc := json.NewEncoder(w)
	return enc.Encode(results)
}

// WriteCSV writes the clearing results to w in CSV format.
func WriteCSV(w io.Writer, results []model.MarketResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "period", "clearing_price", "cleared_quantity_mw", "total_energy_mwh", "timestamp"}); err != nil {
		return err
	}
	for _, r := range results {
		rec := []string{
			strconv.Itoa(r.Year),
			string(r.Period),
			strconv.FormatFloat(r.ClearingPrice, 'f', -1, 64),
			strconv.FormatFloat(r.ClearedQuantity, 'f', -1, 64),
			strconv.FormatFloat(r.TotalEnergy, 'f', -1, 64),
			r.Timestamp.Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
