package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/powerclass/marketctl/core/model"
)

func sessionPath(sessionID string, rest string) string {
	return "/game-sessions/" + url.PathEscape(sessionID) + rest
}

// CreateSession creates a game session.
func (c *Client) CreateSession(ctx context.Context, req CreateSessionRequest) (model.GameSession, error) {
	var out model.GameSession
	err := c.do(ctx, callOpts{
		method: http.MethodPost, route: "/game-sessions", path: "/game-sessions", body: req,
	}, &out)
	return out, err
}

// GetSession returns the current server-authoritative session.
func (c *Client) GetSession(ctx context.Context, sessionID string) (model.GameSession, error) {
	var out model.GameSession
	err := c.do(ctx, callOpts{
		method:        http.MethodGet,
		route:         "/game-sessions/{id}",
		path:          sessionPath(sessionID, ""),
		sessionScoped: true,
	}, &out)
	return out, err
}

// UpdateSessionState moves the session to a new phase (instructor only).
func (c *Client) UpdateSessionState(ctx context.Context, sessionID string, state model.GameState) (StatusMessage, error) {
	var out StatusMessage
	q := url.Values{"new_state": {string(state)}}
	err := c.do(ctx, callOpts{
		method:        http.MethodPut,
		route:         "/game-sessions/{id}/state",
		path:          sessionPath(sessionID, "/state"),
		query:         q,
		sessionScoped: true,
	}, &out)
	return out, err
}

// AdvanceYear moves the session to the next simulated year.
func (c *Client) AdvanceYear(ctx context.Context, sessionID string) (StatusMessage, error) {
	var out StatusMessage
	err := c.do(ctx, callOpts{
		method:        http.MethodPut,
		route:         "/game-sessions/{id}/advance-year",
		path:          sessionPath(sessionID, "/advance-year"),
		sessionScoped: true,
	}, &out)
	return out, err
}

// Dashboard returns the instructor overview.
func (c *Client) Dashboard(ctx context.Context, sessionID string) (Dashboard, error) {
	var out Dashboard
	err := c.do(ctx, callOpts{
		method:        http.MethodGet,
		route:         "/game-sessions/{id}/dashboard",
		path:          sessionPath(sessionID, "/dashboard"),
		sessionScoped: true,
	}, &out)
	return out, err
}

// ListUtilities returns the session participants with their positions.
func (c *Client) ListUtilities(ctx context.Context, sessionID string) ([]UtilitySummary, error) {
	var out []UtilitySummary
	err := c.do(ctx, callOpts{
		method:        http.MethodGet,
		route:         "/game-sessions/{id}/utilities",
		path:          sessionPath(sessionID, "/utilities"),
		sessionScoped: true,
	}, &out)
	return out, err
}

// MultiYearAnalysis returns the cross-year market summary.
func (c *Client) MultiYearAnalysis(ctx context.Context, sessionID string) (MultiYearAnalysis, error) {
	var out MultiYearAnalysis
	err := c.do(ctx, callOpts{
		method:        http.MethodGet,
		route:         "/game-sessions/{id}/multi-year-analysis",
		path:          sessionPath(sessionID, "/multi-year-analysis"),
		sessionScoped: true,
	}, &out)
	return out, err
}

// YearlySummary returns the cleared outcome of one year.
func (c *Client) YearlySummary(ctx context.Context, sessionID string, year int) (YearlySummary, error) {
	var out YearlySummary
	err := c.do(ctx, callOpts{
		method:        http.MethodGet,
		route:         "/game-sessions/{id}/yearly-summary/{year}",
		path:          sessionPath(sessionID, "/yearly-summary/"+strconv.Itoa(year)),
		sessionScoped: true,
	}, &out)
	return out, err
}

// Orchestration commands drive the annual cycle: planning, bidding, clearing,
// completion. All are instructor-issued.

func (c *Client) StartYearPlanning(ctx context.Context, sessionID string, year int) (StatusMessage, error) {
	return c.orchestrate(ctx, sessionID, "start-year-planning", year)
}

func (c *Client) OpenAnnualBidding(ctx context.Context, sessionID string, year int) (StatusMessage, error) {
	return c.orchestrate(ctx, sessionID, "open-annual-bidding", year)
}

func (c *Client) ClearAnnualMarkets(ctx context.Context, sessionID string, year int) (StatusMessage, error) {
	return c.orchestrate(ctx, sessionID, "clear-annual-markets", year)
}

func (c *Client) CompleteYear(ctx context.Context, sessionID string, year int) (StatusMessage, error) {
	return c.orchestrate(ctx, sessionID, "complete-year", year)
}

func (c *Client) orchestrate(ctx context.Context, sessionID, action string, year int) (StatusMessage, error) {
	var out StatusMessage
	err := c.do(ctx, callOpts{
		method:        http.MethodPost,
		route:         "/game-sessions/{id}/" + action + "/{year}",
		path:          sessionPath(sessionID, "/"+action+"/"+strconv.Itoa(year)),
		sessionScoped: true,
	}, &out)
	return out, err
}
