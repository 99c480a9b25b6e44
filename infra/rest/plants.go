package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/powerclass/marketctl/core/model"
)

// ListPlantTemplates returns the technology catalog.
func (c *Client) ListPlantTemplates(ctx context.Context) ([]model.PlantTemplate, error) {
	var out []model.PlantTemplate
	err := c.do(ctx, callOpts{
		method: http.MethodGet, route: "/plant-templates", path: "/plant-templates",
	}, &out)
	return out, err
}

// GetPlantTemplate returns one catalog entry.
func (c *Client) GetPlantTemplate(ctx context.Context, plantType model.PlantType) (model.PlantTemplate, error) {
	var out model.PlantTemplate
	err := c.do(ctx, callOpts{
		method: http.MethodGet,
		route:  "/plant-templates/{type}",
		path:   "/plant-templates/" + url.PathEscape(string(plantType)),
	}, &out)
	return out, err
}

// CreatePlant invests in a new plant for the utility. The server checks
// budget sufficiency and computes capital and fixed costs from the template.
func (c *Client) CreatePlant(ctx context.Context, sessionID, utilityID string, req CreatePlantRequest) (model.PowerPlant, error) {
	var out model.PowerPlant
	q := url.Values{"utility_id": {utilityID}}
	err := c.do(ctx, callOpts{
		method:        http.MethodPost,
		route:         "/game-sessions/{id}/plants",
		path:          sessionPath(sessionID, "/plants"),
		query:         q,
		body:          req,
		sessionScoped: true,
	}, &out)
	return out, err
}

// ListPlants returns the session's plants, optionally filtered to one
// utility.
func (c *Client) ListPlants(ctx context.Context, sessionID, utilityID string) ([]model.PowerPlant, error) {
	var out []model.PowerPlant
	q := url.Values{}
	if utilityID != "" {
		q.Set("utility_id", utilityID)
	}
	err := c.do(ctx, callOpts{
		method:        http.MethodGet,
		route:         "/game-sessions/{id}/plants",
		path:          sessionPath(sessionID, "/plants"),
		query:         q,
		sessionScoped: true,
	}, &out)
	return out, err
}

// PlantEconomics returns the per-plant cost breakdown for the current year.
func (c *Client) PlantEconomics(ctx context.Context, sessionID, plantID string) (PlantEconomics, error) {
	var out PlantEconomics
	err := c.do(ctx, callOpts{
		method:        http.MethodGet,
		route:         "/game-sessions/{id}/plants/{plant}/economics",
		path:          sessionPath(sessionID, "/plants/"+url.PathEscape(plantID)+"/economics"),
		sessionScoped: true,
	}, &out)
	return out, err
}

// ScheduleMaintenance books a maintenance year for the plant.
func (c *Client) ScheduleMaintenance(ctx context.Context, sessionID, plantID string, year int) (StatusMessage, error) {
	var out StatusMessage
	q := url.Values{"year": {strconv.Itoa(year)}}
	err := c.do(ctx, callOpts{
		method:        http.MethodPut,
		route:         "/game-sessions/{id}/plants/{plant}/maintenance",
		path:          sessionPath(sessionID, "/plants/"+url.PathEscape(plantID)+"/maintenance"),
		query:         q,
		sessionScoped: true,
	}, &out)
	return out, err
}

// RetirePlant retires the plant at the end of the given year.
func (c *Client) RetirePlant(ctx context.Context, sessionID, plantID string, year int) (StatusMessage, error) {
	var out StatusMessage
	q := url.Values{"year": {strconv.Itoa(year)}}
	err := c.do(ctx, callOpts{
		method:        http.MethodPut,
		route:         "/game-sessions/{id}/plants/{plant}/retire",
		path:          sessionPath(sessionID, "/plants/"+url.PathEscape(plantID)+"/retire"),
		query:         q,
		sessionScoped: true,
	}, &out)
	return out, err
}

// AssignPortfolioTemplate hands a predefined starting portfolio to one
// utility.
func (c *Client) AssignPortfolioTemplate(ctx context.Context, sessionID string, assignment PortfolioAssignment) (StatusMessage, error) {
	var out StatusMessage
	err := c.do(ctx, callOpts{
		method:        http.MethodPut,
		route:         "/game-sessions/{id}/utilities/{utility}/portfolio-template",
		path:          sessionPath(sessionID, "/utilities/"+url.PathEscape(assignment.UtilityID)+"/portfolio-template"),
		body:          assignment,
		sessionScoped: true,
	}, &out)
	return out, err
}

// BulkAssignPortfolioTemplates assigns portfolios to several utilities in one
// call.
func (c *Client) BulkAssignPortfolioTemplates(ctx context.Context, sessionID string, assignments []PortfolioAssignment) (StatusMessage, error) {
	var out StatusMessage
	err := c.do(ctx, callOpts{
		method:        http.MethodPost,
		route:         "/game-sessions/{id}/portfolio-templates/bulk",
		path:          sessionPath(sessionID, "/portfolio-templates/bulk"),
		body:          map[string]any{"assignments": assignments},
		sessionScoped: true,
	}, &out)
	return out, err
}
