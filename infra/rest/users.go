package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/powerclass/marketctl/core/model"
)

// Health checks backend liveness and returns its self-report.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, callOpts{method: http.MethodGet, route: "/health", path: "/health"}, &out)
	return out, err
}

// Capabilities fetches the backend's advertised feature set once and caches
// it. Endpoint groups not advertised are treated as unsupported; discovering
// missing routes through failed calls at arbitrary times is exactly what this
// avoids.
func (c *Client) Capabilities(ctx context.Context) (Capabilities, error) {
	c.capOnce.Do(func() {
		health, err := c.Health(ctx)
		if err != nil {
			c.capErr = err
			return
		}
		for _, f := range health.Features {
			if f == "market_events" {
				c.caps.MarketEvents = true
			}
		}
	})
	return c.caps, c.capErr
}

// CreateUser registers an account.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (model.User, error) {
	var out model.User
	err := c.do(ctx, callOpts{
		method: http.MethodPost, route: "/users", path: "/users", body: req,
	}, &out)
	return out, err
}

// ListUsers returns all accounts.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	err := c.do(ctx, callOpts{method: http.MethodGet, route: "/users", path: "/users"}, &out)
	return out, err
}

// GetUser returns one account.
func (c *Client) GetUser(ctx context.Context, userID string) (model.User, error) {
	var out model.User
	err := c.do(ctx, callOpts{
		method: http.MethodGet,
		route:  "/users/{id}",
		path:   "/users/" + url.PathEscape(userID),
	}, &out)
	return out, err
}

// FinancialSummary returns the utility's financial position in one session.
func (c *Client) FinancialSummary(ctx context.Context, userID, sessionID string) (model.UtilityFinancials, error) {
	var out model.UtilityFinancials
	q := url.Values{"game_session_id": {sessionID}}
	err := c.do(ctx, callOpts{
		method:        http.MethodGet,
		route:         "/users/{id}/financial-summary",
		path:          "/users/" + url.PathEscape(userID) + "/financial-summary",
		query:         q,
		sessionScoped: true,
	}, &out)
	return out, err
}

// CreateSampleData seeds the backend with a demo session, users and plants.
func (c *Client) CreateSampleData(ctx context.Context) (SampleData, error) {
	var out SampleData
	err := c.do(ctx, callOpts{
		method: http.MethodPost, route: "/sample-data/create", path: "/sample-data/create",
	}, &out)
	return out, err
}
