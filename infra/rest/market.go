package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/powerclass/marketctl/core/model"
)

// SubmitYearlyBid submits a bid for one plant and year. The bid must have
// passed local validation; the server enforces the one-bid-per-plant-and-year
// rule and rejects duplicates.
func (c *Client) SubmitYearlyBid(ctx context.Context, sessionID string, bid model.YearlyBid) (model.YearlyBid, error) {
	var out model.YearlyBid
	err := c.do(ctx, callOpts{
		method:        http.MethodPost,
		route:         "/game-sessions/{id}/yearly-bids",
		path:          sessionPath(sessionID, "/yearly-bids"),
		body:          bid,
		sessionScoped: true,
	}, &out)
	return out, err
}

// ListYearlyBids returns submitted bids, optionally filtered by utility and
// year.
func (c *Client) ListYearlyBids(ctx context.Context, sessionID, utilityID string, year int) ([]model.YearlyBid, error) {
	var out []model.YearlyBid
	q := url.Values{}
	if utilityID != "" {
		q.Set("utility_id", utilityID)
	}
	if year > 0 {
		q.Set("year", strconv.Itoa(year))
	}
	err := c.do(ctx, callOpts{
		method:        http.MethodGet,
		route:         "/game-sessions/{id}/yearly-bids",
		path:          sessionPath(sessionID, "/yearly-bids"),
		query:         q,
		sessionScoped: true,
	}, &out)
	return out, err
}

// ListMarketResults returns clearing results, optionally for one year.
func (c *Client) ListMarketResults(ctx context.Context, sessionID string, year int) ([]model.MarketResult, error) {
	var out []model.MarketResult
	q := url.Values{}
	if year > 0 {
		q.Set("year", strconv.Itoa(year))
	}
	err := c.do(ctx, callOpts{
		method:        http.MethodGet,
		route:         "/game-sessions/{id}/market-results",
		path:          sessionPath(sessionID, "/market-results"),
		query:         q,
		sessionScoped: true,
	}, &out)
	return out, err
}

// FuelPrices returns fuel prices for one year.
func (c *Client) FuelPrices(ctx context.Context, sessionID string, year int) (model.FuelPrices, error) {
	var out model.FuelPrices
	err := c.do(ctx, callOpts{
		method:        http.MethodGet,
		route:         "/game-sessions/{id}/fuel-prices/{year}",
		path:          sessionPath(sessionID, "/fuel-prices/"+strconv.Itoa(year)),
		sessionScoped: true,
	}, &out)
	return out, err
}

// UpdateFuelPrices sets fuel prices for one year (instructor only).
func (c *Client) UpdateFuelPrices(ctx context.Context, sessionID string, prices model.FuelPrices) (StatusMessage, error) {
	var out StatusMessage
	err := c.do(ctx, callOpts{
		method:        http.MethodPut,
		route:         "/game-sessions/{id}/fuel-prices/{year}",
		path:          sessionPath(sessionID, "/fuel-prices/"+strconv.Itoa(prices.Year)),
		body:          prices,
		sessionScoped: true,
	}, &out)
	return out, err
}

// RenewableAvailability returns the per-period renewable multipliers for one
// year.
func (c *Client) RenewableAvailability(ctx context.Context, sessionID string, year int) (model.RenewableAvailability, error) {
	var out model.RenewableAvailability
	err := c.do(ctx, callOpts{
		method:        http.MethodGet,
		route:         "/game-sessions/{id}/renewable-availability/{year}",
		path:          sessionPath(sessionID, "/renewable-availability/"+strconv.Itoa(year)),
		sessionScoped: true,
	}, &out)
	return out, err
}

// UpdateRenewableAvailability sets renewable multipliers for one year
// (instructor only).
func (c *Client) UpdateRenewableAvailability(ctx context.Context, sessionID string, avail model.RenewableAvailability) (StatusMessage, error) {
	var out StatusMessage
	err := c.do(ctx, callOpts{
		method:        http.MethodPut,
		route:         "/game-sessions/{id}/renewable-availability/{year}",
		path:          sessionPath(sessionID, "/renewable-availability/"+strconv.Itoa(avail.Year)),
		body:          avail,
		sessionScoped: true,
	}, &out)
	return out, err
}

// UpdateDemandProfile replaces the session's demand profile (instructor
// only).
func (c *Client) UpdateDemandProfile(ctx context.Context, sessionID string, profile model.DemandProfile) (StatusMessage, error) {
	var out StatusMessage
	err := c.do(ctx, callOpts{
		method:        http.MethodPut,
		route:         "/game-sessions/{id}/demand-profile",
		path:          sessionPath(sessionID, "/demand-profile"),
		body:          profile,
		sessionScoped: true,
	}, &out)
	return out, err
}

// SimulateInvestment runs a what-if analysis for a prospective plant without
// committing funds.
func (c *Client) SimulateInvestment(ctx context.Context, sessionID, utilityID string, plantType model.PlantType, capacityMW float64, constructionStartYear int) (InvestmentSimulation, error) {
	var out InvestmentSimulation
	q := url.Values{
		"utility_id":              {utilityID},
		"plant_type":              {string(plantType)},
		"capacity_mw":             {strconv.FormatFloat(capacityMW, 'f', -1, 64)},
		"construction_start_year": {strconv.Itoa(constructionStartYear)},
	}
	err := c.do(ctx, callOpts{
		method:        http.MethodPost,
		route:         "/game-sessions/{id}/simulate-investment",
		path:          sessionPath(sessionID, "/simulate-investment"),
		query:         q,
		sessionScoped: true,
	}, &out)
	return out, err
}
